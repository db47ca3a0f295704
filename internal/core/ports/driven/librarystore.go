package driven

import (
	"context"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
)

// LibraryStore persists book records and read cursors per owner.
// The read cursor is owned by this store; the reader service takes the
// current position as input and writes the new one back here.
type LibraryStore interface {
	// SaveBook inserts or updates a book, keyed by (owner, artifact).
	SaveBook(ctx context.Context, book domain.Book) error

	// GetBook retrieves one book. Missing books fail with domain.ErrNotFound.
	GetBook(ctx context.Context, ownerID, artifactID string) (*domain.Book, error)

	// ListBooks returns all books for an owner, newest first.
	ListBooks(ctx context.Context, ownerID string) ([]domain.Book, error)

	// CurrentBook returns the owner's active book, or domain.ErrNoCurrentBook.
	CurrentBook(ctx context.Context, ownerID string) (*domain.Book, error)

	// SetCurrent marks one book active and clears the flag on the rest.
	SetCurrent(ctx context.Context, ownerID, artifactID string) error

	// SetPosition stores the owner's read cursor for a book.
	SetPosition(ctx context.Context, ownerID, artifactID string, position int) error

	// Position reads the owner's cursor for a book.
	Position(ctx context.Context, ownerID, artifactID string) (int, error)

	// DeleteBook removes a book record.
	DeleteBook(ctx context.Context, ownerID, artifactID string) error
}
