package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsstore "github.com/inkwell-labs/bookdrip/internal/adapters/driven/storage/fs"
	"github.com/inkwell-labs/bookdrip/internal/adapters/driven/storage/memory"
	"github.com/inkwell-labs/bookdrip/internal/core/domain"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driven"
	"github.com/inkwell-labs/bookdrip/internal/segment"
)

const testSentinel = "---THE END---"

// stubExtractor returns canned blocks for one format.
type stubExtractor struct {
	format domain.Format
	title  string
	blocks []domain.Block
	err    error
}

func (s *stubExtractor) Format() domain.Format { return s.format }

func (s *stubExtractor) Extract(_ context.Context, _ string) (*driven.Extraction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &driven.Extraction{Title: s.title, Blocks: s.blocks}, nil
}

func newIngestFixture(t *testing.T, extractors ...driven.Extractor) (*IngestService, driven.ArtifactStore, driven.LibraryStore) {
	t.Helper()
	artifacts, err := fsstore.NewStore(t.TempDir(), testSentinel)
	require.NoError(t, err)
	library := memory.NewLibraryStore()
	segmenter, err := segment.New()
	require.NoError(t, err)
	return NewIngestService(extractors, segmenter, artifacts, library), artifacts, library
}

func TestIngest_PublishesArtifactAndRegistersBook(t *testing.T) {
	extractor := &stubExtractor{
		format: domain.FormatPlainText,
		title:  "Война и мир",
		blocks: []domain.Block{
			{Ordinal: 0, Text: "First sentence. Second sentence."},
		},
	}
	svc, artifacts, library := newIngestFixture(t, extractor)
	ctx := context.Background()

	artifactID, err := svc.Ingest(ctx, "140887", "/books/book.txt", domain.BySense)
	require.NoError(t, err)
	assert.Equal(t, "140887_vojna_i_mir", artifactID)

	// The artifact is published with the sentinel appended.
	assert.True(t, artifacts.Exists(ctx, artifactID))
	chunk, err := artifacts.ReadChunk(ctx, artifactID, 0, 10_000)
	require.NoError(t, err)
	assert.Equal(t, "First sentence.\nSecond sentence.\n"+testSentinel+"\n", chunk.Text)

	// The book is current with the cursor at zero.
	book, err := library.CurrentBook(ctx, "140887")
	require.NoError(t, err)
	assert.Equal(t, artifactID, book.ArtifactID)
	assert.Equal(t, "Война и мир", book.Title)
	assert.Equal(t, 0, book.Position)
	assert.NotEmpty(t, book.ID)
}

func TestIngest_ByLineKeepsEveryLine(t *testing.T) {
	extractor := &stubExtractor{
		format: domain.FormatPlainText,
		title:  "verse",
		blocks: []domain.Block{
			{Ordinal: 0, Text: "line one\n\nline three"},
		},
	}
	svc, artifacts, _ := newIngestFixture(t, extractor)
	ctx := context.Background()

	artifactID, err := svc.Ingest(ctx, "9", "/books/verse.txt", domain.ByLine)
	require.NoError(t, err)

	chunk, err := artifacts.ReadChunk(ctx, artifactID, 0, 10_000)
	require.NoError(t, err)
	assert.Equal(t, "line one\n\nline three\n"+testSentinel+"\n", chunk.Text)
}

func TestIngest_UnknownExtension(t *testing.T) {
	svc, _, _ := newIngestFixture(t)

	_, err := svc.Ingest(context.Background(), "9", "/books/book.pdf", domain.BySense)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestIngest_NoExtractorForFormat(t *testing.T) {
	// Only an EPUB extractor is wired; a .txt file parses but cannot be
	// dispatched.
	svc, _, _ := newIngestFixture(t, &stubExtractor{format: domain.FormatEPUB})

	_, err := svc.Ingest(context.Background(), "9", "/books/book.txt", domain.BySense)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestIngest_ExtractionFailureLeavesNoArtifact(t *testing.T) {
	extractor := &stubExtractor{
		format: domain.FormatPlainText,
		err:    domain.ErrExtractionFailed,
	}
	root := t.TempDir()
	artifacts, err := fsstore.NewStore(root, testSentinel)
	require.NoError(t, err)
	segmenter, err := segment.New()
	require.NoError(t, err)
	svc := NewIngestService([]driven.Extractor{extractor}, segmenter, artifacts, memory.NewLibraryStore())

	_, err = svc.Ingest(context.Background(), "9", "/books/book.txt", domain.BySense)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "no artifact or temp file left behind")
}

func TestIngest_ReingestReplacesArtifact(t *testing.T) {
	extractor := &stubExtractor{
		format: domain.FormatPlainText,
		title:  "Same Book",
		blocks: []domain.Block{{Ordinal: 0, Text: "Old text."}},
	}
	svc, artifacts, library := newIngestFixture(t, extractor)
	ctx := context.Background()

	first, err := svc.Ingest(ctx, "9", "/books/a.txt", domain.BySense)
	require.NoError(t, err)

	extractor.blocks = []domain.Block{{Ordinal: 0, Text: "New text."}}
	second, err := svc.Ingest(ctx, "9", "/books/a.txt", domain.BySense)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same owner and title map to the same artifact id")

	chunk, err := artifacts.ReadChunk(ctx, second, 0, 10_000)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(chunk.Text, "New text.\n"))

	books, err := library.ListBooks(ctx, "9")
	require.NoError(t, err)
	assert.Len(t, books, 1, "re-ingest keeps a single library record")
}

func TestIngest_EmptyTitleFallsBack(t *testing.T) {
	extractor := &stubExtractor{
		format: domain.FormatPlainText,
		title:  "",
		blocks: []domain.Block{{Ordinal: 0, Text: "Body."}},
	}
	svc, _, _ := newIngestFixture(t, extractor)

	artifactID, err := svc.Ingest(context.Background(), "9", "/books/x.txt", domain.BySense)
	require.NoError(t, err)
	assert.Equal(t, "9_untitled", artifactID)
}

func TestIngest_ArtifactPathIsDerivedName(t *testing.T) {
	extractor := &stubExtractor{
		format: domain.FormatPlainText,
		title:  "Философия без дураков",
		blocks: []domain.Block{{Ordinal: 0, Text: "Текст."}},
	}
	root := t.TempDir()
	artifacts, err := fsstore.NewStore(root, testSentinel)
	require.NoError(t, err)
	segmenter, err := segment.New()
	require.NoError(t, err)
	svc := NewIngestService([]driven.Extractor{extractor}, segmenter, artifacts, memory.NewLibraryStore())

	artifactID, err := svc.Ingest(context.Background(), "140887", "/books/x.txt", domain.BySense)
	require.NoError(t, err)
	assert.Equal(t, "140887_filosofija_bez_durakov", artifactID)

	_, err = os.Stat(filepath.Join(root, artifactID+".txt"))
	assert.NoError(t, err)
}
