package domain

import "fmt"

// SegmentationPolicy selects how raw block text is split into artifact
// lines during ingestion.
type SegmentationPolicy int

const (
	// BySense reconstructs sentences across accidental line breaks.
	// Used for prose, where a human line wrap is not a paragraph break.
	BySense SegmentationPolicy = iota

	// ByLine splits strictly on newline characters, preserving empty
	// pieces. Used for poetry and pre-formatted text.
	ByLine
)

// String returns the canonical policy name.
func (p SegmentationPolicy) String() string {
	switch p {
	case BySense:
		return "by_sense"
	case ByLine:
		return "by_line"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy resolves a policy name. Unknown names are invalid input.
func ParsePolicy(name string) (SegmentationPolicy, error) {
	switch name {
	case "by_sense", "sense":
		return BySense, nil
	case "by_line", "line":
		return ByLine, nil
	default:
		return 0, fmt.Errorf("%w: unknown segmentation policy %q", ErrInvalidInput, name)
	}
}
