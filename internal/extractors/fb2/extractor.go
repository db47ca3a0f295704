// Package fb2 extracts body text from FictionBook 2 XML documents.
package fb2

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads FB2 documents.
type Extractor struct{}

// New creates a new FB2 extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format reports the source format this extractor handles.
func (e *Extractor) Format() domain.Format {
	return domain.FormatFB2
}

// Subtrees that carry cover images and bibliographic metadata rather
// than body text.
var skipSubtrees = map[string]bool{
	"binary":      true,
	"description": true,
	"stylesheet":  true,
}

// Elements whose close marks a structural break worth a newline.
var breakAfter = map[string]bool{
	"p":        true,
	"v":        true,
	"title":    true,
	"subtitle": true,
	"stanza":   true,
	"epigraph": true,
}

// Extract parses the document as XML with a real decoder, drops the
// binary and description subtrees, and collects the remaining character
// data as a single block. The title comes from the source file's base
// name, not in-document metadata.
func (e *Extractor) Extract(_ context.Context, path string) (*driven.Extraction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening fb2: %w", err)
	}
	defer f.Close()

	decoder := xml.NewDecoder(f)
	// FB2 files in the wild are frequently windows-1251 encoded.
	decoder.CharsetReader = charset.NewReaderLabel

	var b strings.Builder
	needSpace := false
	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: parsing fb2: %v", domain.ErrExtractionFailed, err)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if skipSubtrees[tok.Name.Local] {
				if err := decoder.Skip(); err != nil {
					return nil, fmt.Errorf("%w: parsing fb2: %v", domain.ErrExtractionFailed, err)
				}
			}
		case xml.CharData:
			if t := strings.TrimSpace(string(tok)); t != "" {
				if needSpace {
					b.WriteString(" ")
				}
				b.WriteString(t)
				needSpace = true
			}
		case xml.EndElement:
			if breakAfter[tok.Name.Local] && b.Len() > 0 {
				b.WriteString("\n")
				needSpace = false
			}
		}
	}

	var blocks []domain.Block
	if text := strings.TrimSpace(b.String()); text != "" {
		blocks = append(blocks, domain.Block{Ordinal: 0, Text: text})
	}

	return &driven.Extraction{
		Title:  titleFromPath(path),
		Blocks: blocks,
	}, nil
}

// titleFromPath derives a human-readable title from the file base name.
func titleFromPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
