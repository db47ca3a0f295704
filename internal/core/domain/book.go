package domain

import (
	"strings"
	"time"
	"unicode"
)

// Block is one extracted unit of body content: one EPUB spine item, the
// whole FB2 body, or a single physical line of a plain text file. Blocks
// are produced by extractors and consumed immediately by segmentation;
// they are never persisted.
type Block struct {
	// Ordinal is the block's position in reading order, starting at 0.
	Ordinal int

	// Text is the raw extracted text.
	Text string
}

// Book is one ingested book in an owner's library. The artifact itself
// lives on disk; Book carries the metadata and the read cursor.
type Book struct {
	// ID is the unique identifier for the library record.
	ID string

	// OwnerID identifies the owner the book belongs to.
	OwnerID string

	// ArtifactID is the derived artifact identifier
	// ({owner_id}_{normalized_title}).
	ArtifactID string

	// Title is the original, human-readable book title.
	Title string

	// Position is the last line read, as the index one past the final
	// line of the previously returned portion.
	Position int

	// Current marks the owner's active book.
	Current bool

	// CreatedAt is when the book was ingested.
	CreatedAt time.Time

	// UpdatedAt is when the record was last touched.
	UpdatedAt time.Time
}

// DisplayName returns a reader-facing name for the book: the artifact id
// with the owner prefix removed, underscores as spaces, first letter
// capitalised. Falls back to Title when the artifact id is empty.
func (b Book) DisplayName() string {
	name := strings.TrimPrefix(b.ArtifactID, b.OwnerID+"_")
	if name == "" {
		name = b.Title
	}
	name = strings.ReplaceAll(name, "_", " ")
	runes := []rune(name)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

// Portion is one bounded chunk of artifact text returned to a reader.
type Portion struct {
	// Text is the chunk content. The sentinel end marker, when present,
	// is returned as ordinary text.
	Text string

	// Position is the line index the next read resumes from.
	Position int

	// Finished reports that the sentinel end marker was reached.
	Finished bool
}

// BookInfo summarises a finished artifact for display.
type BookInfo struct {
	// Lines is the total line count, sentinel included.
	Lines int

	// Chars is the total character (rune) count.
	Chars int

	// Words is the whitespace-delimited word count.
	Words int

	// EstimatedMinutes is the reading time at 200 words per minute.
	EstimatedMinutes int

	// Position is the owner's read cursor, filled in by the library
	// service; the artifact store leaves it zero.
	Position int

	// PercentRead is Position over Lines, 0-100.
	PercentRead int
}
