// Package segment splits raw text blocks into ordered sentence or line
// units before they are written to an artifact.
package segment

import (
	"regexp"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
)

// DefaultLanguage is the tokenizer locale used when none is configured.
const DefaultLanguage = "english"

// Pre-compiled rewrites applied before sentence tokenization. Go's \w is
// ASCII-only, so the classes are spelled out with Unicode properties.
var (
	// A word character, a run of line breaks, then an uppercase letter
	// or digit: a bare newline standing in for a sentence end.
	breakBeforeCapital = regexp.MustCompile(`([\p{L}\p{N}_])[\n\r\f\v]+([0-9\p{Lu}])`)

	// A sentence joined onto the next with no space after the dot.
	dotWithoutSpace = regexp.MustCompile(`([\p{L}\p{N}_])\.([\p{L}\p{N}_]{2})`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Segmenter splits text under a domain.SegmentationPolicy.
type Segmenter struct {
	language  string
	tokenizer *sentences.DefaultSentenceTokenizer
}

// Option configures the segmenter.
type Option func(*Segmenter)

// WithLanguage sets the sentence tokenizer locale. Only the bundled
// English training data ships with the binary; other locales silently
// fall back to it, since punkt boundary detection keys on punctuation
// and capitalisation either way.
func WithLanguage(language string) Option {
	return func(s *Segmenter) {
		if language != "" {
			s.language = language
		}
	}
}

// New creates a segmenter with the given options.
func New(opts ...Option) (*Segmenter, error) {
	s := &Segmenter{language: DefaultLanguage}
	for _, opt := range opts {
		opt(s)
	}

	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, err
	}
	s.tokenizer = tokenizer
	return s, nil
}

// Language returns the configured tokenizer locale.
func (s *Segmenter) Language() string {
	return s.language
}

// Segment splits text into ordered units under the given policy.
//
// ByLine splits strictly on newlines: joining the result with "\n"
// reconstructs the input exactly, empty pieces included.
//
// BySense rewrites implied sentence ends (word character, line break,
// capital letter or digit), repairs dots with no following space,
// collapses whitespace runs, and hands the single resulting block to the
// sentence tokenizer. Empty input yields no units.
func (s *Segmenter) Segment(text string, policy domain.SegmentationPolicy) []string {
	if policy == domain.ByLine {
		return strings.Split(text, "\n")
	}

	if text == "" {
		return nil
	}

	text = breakBeforeCapital.ReplaceAllString(text, "${1}. ${2}")
	text = dotWithoutSpace.ReplaceAllString(text, "${1}. ${2}")
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	if text == "" {
		return nil
	}

	tokens := s.tokenizer.Tokenize(text)
	units := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if unit := strings.TrimSpace(token.Text); unit != "" {
			units = append(units, unit)
		}
	}
	return units
}
