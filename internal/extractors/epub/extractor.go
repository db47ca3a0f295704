// Package epub extracts body text from EPUB archives in spine order.
package epub

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads EPUB archives.
type Extractor struct{}

// New creates a new EPUB extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format reports the source format this extractor handles.
func (e *Extractor) Format() domain.Format {
	return domain.FormatEPUB
}

// Extract opens the archive and walks its spine. Each spine entry whose
// manifest item carries a document media type becomes one block, in
// spine order - not archive order, which EPUBs do not keep consistent
// with the declared reading sequence. Markup is collapsed onto text
// nodes with head, metadata and scripting families excluded.
func (e *Extractor) Extract(_ context.Context, path string) (*driven.Extraction, error) {
	rc, err := epub.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening epub: %v", domain.ErrExtractionFailed, err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("%w: epub has no rootfiles", domain.ErrExtractionFailed)
	}
	book := rc.Rootfiles[0]

	var blocks []domain.Block
	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil || !isDocumentItem(ref.Item.MediaType) {
			continue
		}

		r, err := ref.Item.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening spine item %s: %v", domain.ErrExtractionFailed, ref.IDREF, err)
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: reading spine item %s: %v", domain.ErrExtractionFailed, ref.IDREF, err)
		}

		text := flattenMarkup(string(data))
		if strings.TrimSpace(text) == "" {
			continue
		}
		blocks = append(blocks, domain.Block{Ordinal: len(blocks), Text: text})
	}

	return &driven.Extraction{
		Title:  book.Metadata.Title,
		Blocks: blocks,
	}, nil
}

// Title returns the bibliographic title of the archive at path, or the
// empty string when the handle is empty or unreadable.
func (e *Extractor) Title(path string) string {
	if path == "" {
		return ""
	}
	rc, err := epub.OpenReader(path)
	if err != nil {
		return ""
	}
	defer rc.Close()
	if len(rc.Rootfiles) == 0 {
		return ""
	}
	return rc.Rootfiles[0].Metadata.Title
}

// isDocumentItem reports whether a manifest media type is primary
// document content rather than styling, imagery or navigation data.
func isDocumentItem(mediaType string) bool {
	switch mediaType {
	case "application/xhtml+xml", "text/html", "application/html+xml", "text/x-oeb1-document":
		return true
	default:
		return false
	}
}

// skipElements are tag families that never carry body text.
var skipElements = map[string]bool{
	"html":     false, // container, descend but emit nothing itself
	"head":     true,
	"meta":     true,
	"title":    true,
	"link":     true,
	"script":   true,
	"noscript": true,
	"style":    true,
	"header":   true,
	"input":    true,
	"iframe":   true,
	"svg":      true,
}

// flattenMarkup parses the spine item's markup and collapses it onto its
// text nodes, one space between nodes. A real parser is used so body
// text containing angle brackets survives intact.
func flattenMarkup(markup string) string {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if b.Len() > 0 {
					b.WriteString(" ")
				}
				b.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}
