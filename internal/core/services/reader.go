package services

import (
	"context"
	"strings"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driven"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driving"
	"github.com/inkwell-labs/bookdrip/internal/logger"
)

// DefaultChunkSize is the portion size in characters used when none is
// configured.
const DefaultChunkSize = 893

// Ensure ReaderService implements the interface.
var _ driving.ReaderService = (*ReaderService)(nil)

// ReaderService pages through the owner's current book.
type ReaderService struct {
	artifacts driven.ArtifactStore
	library   driven.LibraryStore
	chunkSize int
	sentinel  string
}

// NewReaderService creates a reader service. A non-positive chunkSize
// falls back to DefaultChunkSize.
func NewReaderService(artifacts driven.ArtifactStore, library driven.LibraryStore, chunkSize int, sentinel string) *ReaderService {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &ReaderService{
		artifacts: artifacts,
		library:   library,
		chunkSize: chunkSize,
		sentinel:  sentinel,
	}
}

// NextPortion returns the next bounded chunk of the current book and
// advances the stored cursor. Read failures degrade to an empty portion
// so read loops stay simple.
func (s *ReaderService) NextPortion(ctx context.Context, ownerID string) (*domain.Portion, error) {
	book, err := s.library.CurrentBook(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	chunk, err := s.artifacts.ReadChunk(ctx, book.ArtifactID, book.Position, s.chunkSize)
	if err != nil {
		logger.Warn("reading %s at line %d: %v", book.ArtifactID, book.Position, err)
		return &domain.Portion{Position: book.Position}, nil
	}

	if chunk.NextLine != book.Position {
		if err := s.library.SetPosition(ctx, ownerID, book.ArtifactID, chunk.NextLine); err != nil {
			logger.Warn("saving cursor for %s: %v", book.ArtifactID, err)
		}
	}

	return &domain.Portion{
		Text:     chunk.Text,
		Position: chunk.NextLine,
		Finished: s.finished(chunk.Text),
	}, nil
}

// Restart resets the cursor of the owner's current book to zero.
func (s *ReaderService) Restart(ctx context.Context, ownerID string) error {
	book, err := s.library.CurrentBook(ctx, ownerID)
	if err != nil {
		return err
	}
	return s.library.SetPosition(ctx, ownerID, book.ArtifactID, 0)
}

// finished reports whether the portion text reached the artifact's end.
// The sentinel is always the final artifact line, so it can only show
// up as the last line of a chunk. An empty chunk means the cursor is
// already past the end.
func (s *ReaderService) finished(text string) bool {
	if text == "" {
		return true
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	return lines[len(lines)-1] == s.sentinel
}
