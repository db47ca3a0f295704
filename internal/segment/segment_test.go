package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
)

func newSegmenter(t *testing.T, opts ...Option) *Segmenter {
	t.Helper()
	s, err := New(opts...)
	require.NoError(t, err)
	return s
}

func TestSegment_ByLine_RoundTrip(t *testing.T) {
	s := newSegmenter(t)

	tests := []struct {
		name string
		text string
	}{
		{name: "plain lines", text: "one\ntwo\nthree"},
		{name: "empty pieces preserved", text: "one\n\ntwo\n"},
		{name: "single line", text: "no newline here"},
		{name: "leading whitespace kept", text: "В сто сорок солнц закат пылал, \n   в июль катилось лето, "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units := s.Segment(tt.text, domain.ByLine)
			assert.Equal(t, tt.text, strings.Join(units, "\n"))
		})
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	s := newSegmenter(t)

	assert.Nil(t, s.Segment("", domain.BySense))
	assert.Equal(t, []string{""}, s.Segment("", domain.ByLine))
}

func TestSegment_BySense_Simple(t *testing.T) {
	s := newSegmenter(t)
	assert.Equal(t, []string{"One.", "Two."}, s.Segment("One. Two.", domain.BySense))
}

func TestSegment_BySense_BareNewlineBecomesSentenceBreak(t *testing.T) {
	s := newSegmenter(t)
	assert.Equal(t, []string{"One.", "Two."}, s.Segment("One\nTwo.", domain.BySense))
}

func TestSegment_BySense_NewlineBeforeDigit(t *testing.T) {
	s := newSegmenter(t)
	// The rewrite fires before a digit too; whether punkt then splits
	// ahead of a numeral is tokenizer behaviour, so only the implied
	// sentence end is asserted.
	units := s.Segment("chapter one\n2 was next.", domain.BySense)
	require.NotEmpty(t, units)
	assert.Equal(t, "chapter one. 2 was next.", strings.Join(units, " "))
}

func TestSegment_BySense_WrappedProseIsJoined(t *testing.T) {
	// A wrap before a lowercase word is not a sentence end; the lines
	// merge into one unit with whitespace collapsed.
	s := newSegmenter(t)
	text := "В сто сорок солнц закат пылал, \n   в июль катилось лето, "
	units := s.Segment(text, domain.BySense)
	assert.Equal(t, []string{"В сто сорок солнц закат пылал, в июль катилось лето,"}, units)
}

func TestSegment_BySense_RepairsMissingSpaceAfterDot(t *testing.T) {
	s := newSegmenter(t)
	units := s.Segment("The staff step aside.The brain works on.", domain.BySense)
	assert.Equal(t, []string{"The staff step aside.", "The brain works on."}, units)
}

func TestSegment_BySense_InitialsKnownLimitation(t *testing.T) {
	// Initials before a surname are a known false-positive split point
	// for the punkt tokenizer. This documents the limitation; the exact
	// split is tokenizer behaviour, not a contract.
	s := newSegmenter(t)
	units := s.Segment("В.И. Ленин.", domain.BySense)
	require.NotEmpty(t, units)
	assert.Equal(t, "В.И. Ленин.", strings.Join(units, " "))
}

func TestSegment_BySense_UnitsNeverEmpty(t *testing.T) {
	s := newSegmenter(t)
	for _, text := range []string{"   \n\n  ", "One. Two.", "a\nB", "\n\n"} {
		for _, unit := range s.Segment(text, domain.BySense) {
			assert.NotEmpty(t, strings.TrimSpace(unit), "input %q", text)
		}
	}
}

func TestWithLanguage(t *testing.T) {
	s := newSegmenter(t, WithLanguage("russian"))
	assert.Equal(t, "russian", s.Language())

	// Unsupported locales fall back to the bundled model but still split.
	assert.Equal(t, []string{"One.", "Two."}, s.Segment("One. Two.", domain.BySense))
}
