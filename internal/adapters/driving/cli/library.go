package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage ingested books",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the books in the library",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var librarySelectCmd = &cobra.Command{
	Use:   "select [artifact-id]",
	Short: "Make a book the current one",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibrarySelect,
}

var libraryInfoCmd = &cobra.Command{
	Use:   "info [artifact-id]",
	Short: "Show size and reading time for a book",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryInfo,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove [artifact-id]",
	Short: "Delete a book and its artifact",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryRemove,
}

func init() {
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(librarySelectCmd)
	libraryCmd.AddCommand(libraryInfoCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	books, err := libraryService.List(cmd.Context(), ownerID())
	if err != nil {
		return fmt.Errorf("listing books: %w", err)
	}
	if len(books) == 0 {
		cmd.Println("The library is empty. Add a book with 'bookdrip add'.")
		return nil
	}

	for _, book := range books {
		marker := " "
		if book.Current {
			marker = "*"
		}
		cmd.Printf("%s %s  (%s)\n", marker, book.DisplayName(), book.ArtifactID)
	}
	return nil
}

func runLibrarySelect(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.Select(cmd.Context(), ownerID(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no book %s in the library", args[0])
		}
		return fmt.Errorf("selecting book: %w", err)
	}
	cmd.Printf("Current book is now %s\n", args[0])
	return nil
}

func runLibraryInfo(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	info, err := libraryService.Info(cmd.Context(), ownerID(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no book %s in the library", args[0])
		}
		return fmt.Errorf("reading book info: %w", err)
	}

	cmd.Printf("Lines:        %d\n", info.Lines)
	cmd.Printf("Characters:   %d\n", info.Chars)
	cmd.Printf("Words:        %d\n", info.Words)
	cmd.Printf("Reading time: ~%d min\n", info.EstimatedMinutes)
	cmd.Printf("Progress:     %d%% (line %d)\n", info.PercentRead, info.Position)
	return nil
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.Remove(cmd.Context(), ownerID(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no book %s in the library", args[0])
		}
		return fmt.Errorf("removing book: %w", err)
	}
	cmd.Printf("Removed %s\n", args[0])
	return nil
}
