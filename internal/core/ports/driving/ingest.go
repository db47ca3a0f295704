package driving

import (
	"context"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
)

// IngestService converts a source document into a published text
// artifact and records it in the owner's library.
type IngestService interface {
	// Ingest extracts the document at path, segments it under the given
	// policy, writes the artifact and registers it as the owner's
	// current book with the cursor at zero. Returns the artifact id.
	//
	// Unrecognised extensions fail with domain.ErrUnsupportedFormat and
	// malformed documents with domain.ErrExtractionFailed; in both
	// cases no artifact file is left behind.
	Ingest(ctx context.Context, ownerID, path string, policy domain.SegmentationPolicy) (string, error)
}
