package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
)

var (
	readRestart  bool
	readPortions int
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read the next portion of the current book",
	Long: `Prints the next portion of the current book and advances the saved
position. Each invocation picks up where the previous one stopped.`,
	Args: cobra.NoArgs,
	RunE: runRead,
}

func init() {
	readCmd.Flags().BoolVar(&readRestart, "restart", false, "start over from the beginning")
	readCmd.Flags().IntVarP(&readPortions, "count", "n", 1, "number of portions to read")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, _ []string) error {
	if readerService == nil {
		return errors.New("reader service not configured")
	}

	if readRestart {
		if err := readerService.Restart(cmd.Context(), ownerID()); err != nil {
			return describeNoCurrentBook(err)
		}
	}

	for i := 0; i < readPortions; i++ {
		portion, err := readerService.NextPortion(cmd.Context(), ownerID())
		if err != nil {
			return describeNoCurrentBook(err)
		}

		cmd.Print(portion.Text)

		if portion.Finished {
			if isTerminal() {
				cmd.Println("\nYou have finished the book. Run 'bookdrip read --restart' to reread it.")
			}
			break
		}
	}
	return nil
}

// describeNoCurrentBook turns the bare sentinel error into a hint.
func describeNoCurrentBook(err error) error {
	if errors.Is(err, domain.ErrNoCurrentBook) {
		return errors.New("no current book; add one with 'bookdrip add' or pick one with 'bookdrip library select'")
	}
	return err
}

// isTerminal reports whether stdout is an interactive terminal. Hints
// are suppressed when output is piped, keeping the portion text clean.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
