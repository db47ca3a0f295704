package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a source file extension outside the
	// supported {EPUB, FB2, plain text} set. No artifact is written when
	// ingestion fails with this error.
	ErrUnsupportedFormat = errors.New("unsupported source format")

	// ErrExtractionFailed indicates a malformed archive or XML document.
	// Ingestion aborts and no partial artifact is retained.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrArtifactNotFound indicates a read against a missing artifact id.
	// The reader service degrades this to an empty portion so read loops
	// stay simple.
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrNoCurrentBook indicates the owner has no book selected.
	ErrNoCurrentBook = errors.New("no current book")
)
