// Package cli wires the cobra command tree to the core services.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/inkwell-labs/bookdrip/internal/adapters/driven/config/file"
	fsstore "github.com/inkwell-labs/bookdrip/internal/adapters/driven/storage/fs"
	"github.com/inkwell-labs/bookdrip/internal/adapters/driven/storage/sqlite"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driven"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driving"
	"github.com/inkwell-labs/bookdrip/internal/core/services"
	"github.com/inkwell-labs/bookdrip/internal/extractors/epub"
	"github.com/inkwell-labs/bookdrip/internal/extractors/fb2"
	"github.com/inkwell-labs/bookdrip/internal/extractors/plaintext"
	"github.com/inkwell-labs/bookdrip/internal/logger"
	"github.com/inkwell-labs/bookdrip/internal/segment"
)

// Services used by the commands. Wired in initServices, replaced by
// fakes in tests.
var (
	ingestService  driving.IngestService
	readerService  driving.ReaderService
	libraryService driving.LibraryService
	configStore    driven.ConfigStore
)

var (
	version = "dev"

	verboseFlag    bool
	configDirFlag  string
	libraryDirFlag string
	ownerFlag      string

	// Keeps the database handle alive for the process lifetime.
	metadataStore *sqlite.Store
)

// DefaultSentinel is the end-of-book marker appended to every artifact.
const DefaultSentinel = "---THE END---"

var configDefaults = map[string]any{
	"owner_id":           "local",
	"chunk_size":         services.DefaultChunkSize,
	"sentinel":           DefaultSentinel,
	"tokenizer_language": segment.DefaultLanguage,
	"default_policy":     "by_sense",
}

var rootCmd = &cobra.Command{
	Use:   "bookdrip",
	Short: "Ingest books and read them in bite-sized portions",
	Long: `bookdrip converts EPUB, FB2 and plain text books into normalized
text artifacts and pages through them, remembering where you stopped.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "config directory (default ~/.bookdrip)")
	rootCmd.PersistentFlags().StringVar(&libraryDirFlag, "library-dir", "", "artifact library directory (default ~/.bookdrip/library)")
	rootCmd.PersistentFlags().StringVar(&ownerFlag, "owner", "", "owner id the library belongs to")
}

// Execute runs the root command.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

// initServices builds the adapter stack and the core services. A no-op
// when services are already set, so tests can install fakes.
func initServices() error {
	if ingestService != nil && readerService != nil && libraryService != nil {
		return nil
	}

	cfg, err := configfile.NewConfigStore(configDirFlag)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	if err := cfg.EnsureDefaults(configDefaults); err != nil {
		return fmt.Errorf("writing config defaults: %w", err)
	}
	configStore = cfg

	libraryDir := libraryDirFlag
	if libraryDir == "" {
		libraryDir = cfg.GetString("library_dir")
	}
	if libraryDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("getting home directory: %w", err)
		}
		libraryDir = filepath.Join(home, ".bookdrip", "library")
	}

	artifacts, err := fsstore.NewStore(libraryDir, cfg.GetString("sentinel"))
	if err != nil {
		return fmt.Errorf("opening artifact library: %w", err)
	}

	metadataStore, err = sqlite.NewStore(cfg.GetString("data_dir"))
	if err != nil {
		return fmt.Errorf("opening metadata store: %w", err)
	}
	library := metadataStore.LibraryStore()

	segmenter, err := segment.New(segment.WithLanguage(cfg.GetString("tokenizer_language")))
	if err != nil {
		return fmt.Errorf("creating segmenter: %w", err)
	}

	extractors := []driven.Extractor{
		epub.New(),
		fb2.New(),
		plaintext.New(),
	}

	ingestService = services.NewIngestService(extractors, segmenter, artifacts, library)
	readerService = services.NewReaderService(artifacts, library, cfg.GetInt("chunk_size"), cfg.GetString("sentinel"))
	libraryService = services.NewLibraryService(artifacts, library)

	logger.Debug("library at %s, config at %s", libraryDir, cfg.Path())
	return nil
}

// ownerID resolves the acting owner: the --owner flag, then the
// configured owner_id, then "local".
func ownerID() string {
	if ownerFlag != "" {
		return ownerFlag
	}
	if configStore != nil {
		if owner := configStore.GetString("owner_id"); owner != "" {
			return owner
		}
	}
	return "local"
}
