package driven

import (
	"context"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
)

// Extraction is the output of reading one source document: its title and
// its body as ordered blocks.
type Extraction struct {
	// Title is the book title. EPUB extractors read it from the
	// document's bibliographic metadata; FB2 and plain text extractors
	// derive it from the source file's base name.
	Title string

	// Blocks is the document body in reading order.
	Blocks []domain.Block
}

// Extractor produces ordered text blocks from one source format.
// Implementations exist per domain.Format; dispatch over the closed
// format set happens in the ingest service.
type Extractor interface {
	// Format reports the source format this extractor handles.
	Format() domain.Format

	// Extract reads the document at path and returns its title and
	// body blocks. Malformed input fails with domain.ErrExtractionFailed;
	// nothing is written to the filesystem.
	Extract(ctx context.Context, path string) (*Extraction, error)
}
