package driving

import (
	"context"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
)

// LibraryService manages an owner's ingested books.
type LibraryService interface {
	// List returns the owner's books, newest first.
	List(ctx context.Context, ownerID string) ([]domain.Book, error)

	// Select makes the given artifact the owner's current book.
	Select(ctx context.Context, ownerID, artifactID string) error

	// Info summarises a book's artifact (lines, characters, words,
	// estimated reading time).
	Info(ctx context.Context, ownerID, artifactID string) (*domain.BookInfo, error)

	// Remove deletes the book record and its artifact file.
	Remove(ctx context.Context, ownerID, artifactID string) error
}
