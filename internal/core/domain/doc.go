// Package domain defines the core business entities for bookdrip.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Format: The closed set of supported source document formats
//   - Block: One raw extracted unit of document content
//   - Book: A book record in an owner's library
//   - Portion: A bounded chunk of artifact text returned to a reader
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
