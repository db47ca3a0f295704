package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported source document format. It is a closed
// enumeration: dispatch over it always carries an error arm for
// unrecognised extensions instead of silently falling through.
type Format int

const (
	// FormatEPUB is an EPUB archive.
	FormatEPUB Format = iota

	// FormatFB2 is a FictionBook 2 XML document.
	FormatFB2

	// FormatPlainText is a plain UTF-8 text file.
	FormatPlainText
)

// String returns the canonical lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatEPUB:
		return "epub"
	case FormatFB2:
		return "fb2"
	case FormatPlainText:
		return "txt"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat resolves a source file path to its format by extension.
// Unrecognised extensions return ErrUnsupportedFormat.
func ParseFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".epub":
		return FormatEPUB, nil
	case ".fb2":
		return FormatFB2, nil
	case ".txt", ".text":
		return FormatPlainText, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
