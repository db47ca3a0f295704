package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	fsstore "github.com/inkwell-labs/bookdrip/internal/adapters/driven/storage/fs"
	"github.com/inkwell-labs/bookdrip/internal/adapters/driven/storage/memory"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driven"
	"github.com/inkwell-labs/bookdrip/internal/core/services"
	"github.com/inkwell-labs/bookdrip/internal/extractors/epub"
	"github.com/inkwell-labs/bookdrip/internal/extractors/fb2"
	"github.com/inkwell-labs/bookdrip/internal/extractors/plaintext"
	"github.com/inkwell-labs/bookdrip/internal/segment"
)

// setupTestServices wires the commands to in-memory and temp-dir backed
// services, returning a cleanup that restores the previous wiring.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	prevIngest := ingestService
	prevReader := readerService
	prevLibrary := libraryService
	prevConfig := configStore

	artifacts, err := fsstore.NewStore(t.TempDir(), DefaultSentinel)
	require.NoError(t, err)
	library := memory.NewLibraryStore()
	segmenter, err := segment.New()
	require.NoError(t, err)

	extractors := []driven.Extractor{epub.New(), fb2.New(), plaintext.New()}

	ingestService = services.NewIngestService(extractors, segmenter, artifacts, library)
	readerService = services.NewReaderService(artifacts, library, 60, DefaultSentinel)
	libraryService = services.NewLibraryService(artifacts, library)
	configStore = nil

	return func() {
		ingestService = prevIngest
		readerService = prevReader
		libraryService = prevLibrary
		configStore = prevConfig
	}
}

// executeCommand runs the root command with the given args and returns
// the combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
