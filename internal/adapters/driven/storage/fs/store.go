// Package fs stores book artifacts as plain text files under a
// configured library root, one line per segmented unit.
package fs

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
	"github.com/inkwell-labs/bookdrip/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ArtifactStore = (*Store)(nil)

// maxLineSize bounds a single artifact line during reads. BySense units
// are sentences, but a pathological source can produce very long lines.
const maxLineSize = 1024 * 1024

// Store is a file-backed artifact store. Artifacts are published
// atomically: the writer works on a temp file and renames it into place
// on finalize, so a failed ingest never leaves a partial artifact
// visible under its id.
type Store struct {
	root     string
	sentinel string
}

// NewStore creates the library root if needed and returns a store that
// appends sentinel as the final line of every artifact.
func NewStore(root, sentinel string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty artifact root", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("creating artifact root: %w", err)
	}
	return &Store{root: root, sentinel: sentinel}, nil
}

// Root returns the library root directory.
func (s *Store) Root() string {
	return s.root
}

// Sentinel returns the end-of-book marker line.
func (s *Store) Sentinel() string {
	return s.sentinel
}

// path maps an artifact id to its file path.
func (s *Store) path(id string) string {
	return filepath.Join(s.root, id+".txt")
}

// Create opens a writer for the artifact id. The handle is scoped to
// one ingest and must be finalized or discarded.
func (s *Store) Create(_ context.Context, id string) (driven.ArtifactWriter, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty artifact id", domain.ErrInvalidInput)
	}
	f, err := os.CreateTemp(s.root, id+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating artifact temp file: %w", err)
	}
	return &writer{
		f:        f,
		buf:      bufio.NewWriter(f),
		final:    s.path(id),
		sentinel: s.sentinel,
	}, nil
}

// ReadChunk accumulates whole lines from startLine until the rune count
// exceeds targetChars, completing the line that crosses the threshold
// rather than truncating it. The file handle is held only for the
// duration of the call.
func (s *Store) ReadChunk(_ context.Context, id string, startLine, targetChars int) (*driven.Chunk, error) {
	f, err := os.Open(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return &driven.Chunk{NextLine: startLine}, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("opening artifact: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	chars := 0
	line := 0
	next := startLine

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if line >= startLine {
			text := scanner.Text()
			b.WriteString(text)
			b.WriteString("\n")
			chars += utf8.RuneCountInString(text) + 1
			next = line + 1
			if chars > targetChars {
				break
			}
		}
		line++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}

	return &driven.Chunk{Text: b.String(), NextLine: next}, nil
}

// Exists reports whether the artifact has been published.
func (s *Store) Exists(_ context.Context, id string) bool {
	_, err := os.Stat(s.path(id))
	return err == nil
}

// Info summarises a published artifact.
func (s *Store) Info(_ context.Context, id string) (*domain.BookInfo, error) {
	f, err := os.Open(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("opening artifact: %w", err)
	}
	defer f.Close()

	info := &domain.BookInfo{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		text := scanner.Text()
		info.Lines++
		info.Chars += utf8.RuneCountInString(text)
		info.Words += len(strings.Fields(text))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}

	// Average reading speed of 200 words per minute.
	info.EstimatedMinutes = info.Words / 200
	return info, nil
}

// Remove deletes a published artifact. Removing a missing artifact is
// not an error.
func (s *Store) Remove(_ context.Context, id string) error {
	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing artifact: %w", err)
	}
	return nil
}

// writer appends lines to a temp file and publishes it on finalize.
type writer struct {
	f        *os.File
	buf      *bufio.Writer
	final    string
	sentinel string
	done     bool
}

var _ driven.ArtifactWriter = (*writer)(nil)

// WriteLine appends one unit as a single artifact line.
func (w *writer) WriteLine(line string) error {
	if w.done {
		return fmt.Errorf("%w: artifact already finalized", domain.ErrInvalidInput)
	}
	if _, err := w.buf.WriteString(line); err != nil {
		return fmt.Errorf("writing artifact line: %w", err)
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing artifact line: %w", err)
	}
	return nil
}

// Finalize appends the sentinel line, flushes, and atomically renames
// the temp file onto the artifact path.
func (w *writer) Finalize() error {
	if w.done {
		return fmt.Errorf("%w: artifact already finalized", domain.ErrInvalidInput)
	}
	w.done = true

	if _, err := w.buf.WriteString(w.sentinel + "\n"); err != nil {
		w.cleanup()
		return fmt.Errorf("writing sentinel: %w", err)
	}
	if err := w.buf.Flush(); err != nil {
		w.cleanup()
		return fmt.Errorf("flushing artifact: %w", err)
	}
	if err := w.f.Close(); err != nil {
		os.Remove(w.f.Name())
		return fmt.Errorf("closing artifact: %w", err)
	}
	if err := os.Rename(w.f.Name(), w.final); err != nil {
		os.Remove(w.f.Name())
		return fmt.Errorf("publishing artifact: %w", err)
	}
	return nil
}

// Discard drops the partial artifact, leaving no file behind.
func (w *writer) Discard() error {
	if w.done {
		return nil
	}
	w.done = true
	w.cleanup()
	return nil
}

func (w *writer) cleanup() {
	w.f.Close()
	os.Remove(w.f.Name())
}
