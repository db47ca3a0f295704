// Package naming derives stable, filesystem-safe artifact identifiers
// from a book title and its owner.
package naming

import (
	"strings"

	"github.com/inkwell-labs/bookdrip/internal/translit"
)

// MaxTitleLength caps the normalized title portion of an artifact id.
const MaxTitleLength = 150

// fallbackTitle is used when nothing survives normalization. The
// original timestamp fallback would break idempotent naming, so a fixed
// word is used instead.
const fallbackTitle = "untitled"

// ArtifactID builds the identifier "{ownerID}_{normalized_title}".
// The title is transliterated, stripped to [a-z0-9_], space runs become
// single underscores, and the result is truncated to MaxTitleLength.
// The same (ownerID, rawTitle) pair always yields the same id, so
// re-ingesting a book overwrites its artifact instead of duplicating it.
func ArtifactID(ownerID, rawTitle string) string {
	return ownerID + "_" + NormalizeTitle(rawTitle)
}

// NormalizeTitle returns the sanitised title portion of an artifact id.
func NormalizeTitle(rawTitle string) string {
	title := translit.Transliterate(rawTitle, translit.AlphabetAuto)

	// Keep letters, digits, underscores and spaces; quotes, backslashes
	// and the transliteration sign markers all fall away here.
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune(' ')
		}
	}

	normalized := strings.ToLower(strings.Join(strings.Fields(b.String()), "_"))
	if len(normalized) > MaxTitleLength {
		normalized = normalized[:MaxTitleLength]
	}
	normalized = strings.Trim(normalized, "_")
	if normalized == "" {
		return fallbackTitle
	}
	return normalized
}
