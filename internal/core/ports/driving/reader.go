package driving

import (
	"context"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
)

// ReaderService pages through the owner's current book, advancing the
// stored read cursor after every portion.
type ReaderService interface {
	// NextPortion returns the next bounded chunk of the current book.
	// Read failures degrade to an empty portion rather than an error so
	// read loops stay simple; only the absence of a current book is
	// surfaced, as domain.ErrNoCurrentBook.
	NextPortion(ctx context.Context, ownerID string) (*domain.Portion, error)

	// Restart resets the cursor of the owner's current book to zero.
	Restart(ctx context.Context, ownerID string) error
}
