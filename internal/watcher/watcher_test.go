package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
)

// recordingIngest records every ingest call.
type recordingIngest struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingIngest) Ingest(_ context.Context, _ string, path string, _ domain.SegmentationPolicy) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, filepath.Base(path))
	return "artifact", nil
}

func (r *recordingIngest) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestRun_IngestsNewBook(t *testing.T) {
	dir := t.TempDir()
	ingest := &recordingIngest{}
	w := New(ingest, "9", dir, domain.BySense, WithSettleDelay(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher a moment to register before creating the file.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.txt"), []byte("text"), 0600))

	require.Eventually(t, func() bool {
		return len(ingest.recorded()) == 1
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{"book.txt"}, ingest.recorded())

	cancel()
	assert.NoError(t, <-done)
}

func TestRun_IgnoresUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	ingest := &recordingIngest{}
	w := New(ingest, "9", dir, domain.BySense, WithSettleDelay(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.pdf"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.fb2"), []byte("x"), 0600))

	require.Eventually(t, func() bool {
		return len(ingest.recorded()) == 1
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{"book.fb2"}, ingest.recorded())

	cancel()
	assert.NoError(t, <-done)
}

func TestRun_MissingDirectory(t *testing.T) {
	w := New(&recordingIngest{}, "9", filepath.Join(t.TempDir(), "nope"), domain.BySense)

	err := w.Run(context.Background())
	assert.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	w := New(&recordingIngest{}, "9", t.TempDir(), domain.BySense)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}
