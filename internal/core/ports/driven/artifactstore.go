package driven

import (
	"context"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
)

// Chunk is one bounded read from an artifact.
type Chunk struct {
	// Text is the accumulated lines, each terminated by a newline.
	// Empty when the start line is at or past the end of the artifact.
	Text string

	// NextLine is the line index the following read resumes from.
	// Equal to the requested start line when nothing was read.
	NextLine int
}

// ArtifactWriter appends lines to one artifact under creation. Exactly
// one of Finalize or Discard must be called; no writes are permitted
// after either.
type ArtifactWriter interface {
	// WriteLine appends one unit of text as a single artifact line.
	WriteLine(line string) error

	// Finalize appends the sentinel end marker and publishes the
	// artifact. Until Finalize returns, readers cannot observe the
	// artifact id.
	Finalize() error

	// Discard drops the partial artifact, leaving no file behind.
	Discard() error
}

// ArtifactStore persists normalized book artifacts and reads them back
// in bounded chunks. Artifacts are keyed by their derived id; the store
// owns the file layout beneath its configured root.
type ArtifactStore interface {
	// Create opens a writer for the given artifact id, truncating any
	// previous artifact with the same id once the writer finalizes.
	Create(ctx context.Context, id string) (ArtifactWriter, error)

	// ReadChunk accumulates whole lines starting at startLine until the
	// chunk's rune count exceeds targetChars, always completing the line
	// that crosses the threshold. A missing artifact fails with
	// domain.ErrArtifactNotFound.
	ReadChunk(ctx context.Context, id string, startLine, targetChars int) (*Chunk, error)

	// Exists reports whether the artifact id has been published.
	Exists(ctx context.Context, id string) bool

	// Info summarises a published artifact.
	Info(ctx context.Context, id string) (*domain.BookInfo, error)

	// Remove deletes a published artifact.
	Remove(ctx context.Context, id string) error
}
