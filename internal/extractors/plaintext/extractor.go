// Package plaintext reads plain text sources line by line.
package plaintext

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads plain UTF-8 text files.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format reports the source format this extractor handles.
func (e *Extractor) Format() domain.Format {
	return domain.FormatPlainText
}

// Extract reads the file line by line; each physical line is one block.
// Existing line structure is preserved without re-segmentation
// assumptions, so poems and pre-formatted text survive a ByLine ingest
// untouched. The title comes from the file base name.
func (e *Extractor) Extract(_ context.Context, path string) (*driven.Extraction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening text file: %w", err)
	}
	defer f.Close()

	var blocks []domain.Block
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		blocks = append(blocks, domain.Block{Ordinal: len(blocks), Text: scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading text file: %v", domain.ErrExtractionFailed, err)
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
