package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
)

var addPolicy string

var addCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Ingest a book into the library",
	Long: `Converts an EPUB, FB2 or plain text file into a normalized text
artifact and makes it the current book. Prose should use the by_sense
policy, which reconstructs sentences across line breaks; poetry and
pre-formatted text should use by_line.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addPolicy, "policy", "p", "", "segmentation policy: by_sense or by_line")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	policyName := addPolicy
	if policyName == "" && configStore != nil {
		policyName = configStore.GetString("default_policy")
	}
	if policyName == "" {
		policyName = "by_sense"
	}
	policy, err := domain.ParsePolicy(policyName)
	if err != nil {
		return err
	}

	artifactID, err := ingestService.Ingest(cmd.Context(), ownerID(), args[0], policy)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFormat) {
			return fmt.Errorf("%s is not a supported book format (epub, fb2, txt)", args[0])
		}
		return fmt.Errorf("ingesting %s: %w", args[0], err)
	}

	cmd.Printf("Added %s\n", artifactID)
	cmd.Println("It is now the current book. Run 'bookdrip read' to start reading.")
	return nil
}
