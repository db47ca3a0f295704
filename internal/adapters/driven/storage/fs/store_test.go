package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
)

const testSentinel = "---THE END---"

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), testSentinel)
	require.NoError(t, err)
	return store
}

func writeArtifact(t *testing.T, store *Store, id string, lines []string) {
	t.Helper()
	w, err := store.Create(context.Background(), id)
	require.NoError(t, err)
	for _, line := range lines {
		require.NoError(t, w.WriteLine(line))
	}
	require.NoError(t, w.Finalize())
}

func TestCreate_FinalizeAppendsSentinel(t *testing.T) {
	store := newStore(t)
	writeArtifact(t, store, "1_book", []string{"first line", "second line"})

	data, err := os.ReadFile(filepath.Join(store.Root(), "1_book.txt"))
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line\n"+testSentinel+"\n", string(data))
}

func TestCreate_NotVisibleUntilFinalize(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	w, err := store.Create(ctx, "1_pending")
	require.NoError(t, err)
	require.NoError(t, w.WriteLine("line"))

	assert.False(t, store.Exists(ctx, "1_pending"))
	require.NoError(t, w.Finalize())
	assert.True(t, store.Exists(ctx, "1_pending"))
}

func TestDiscard_LeavesNoFile(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	w, err := store.Create(ctx, "1_dropped")
	require.NoError(t, err)
	require.NoError(t, w.WriteLine("partial"))
	require.NoError(t, w.Discard())

	assert.False(t, store.Exists(ctx, "1_dropped"))
	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	assert.Empty(t, entries, "no temp files left behind")
}

func TestWriteLine_AfterFinalizeFails(t *testing.T) {
	store := newStore(t)
	w, err := store.Create(context.Background(), "1_closed")
	require.NoError(t, err)
	require.NoError(t, w.Finalize())

	assert.ErrorIs(t, w.WriteLine("too late"), domain.ErrInvalidInput)
}

func TestReadChunk_CompletesCrossingLine(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	writeArtifact(t, store, "1_book", []string{"0123456789", "abcdefghij", "tail"})

	// Target 15 chars: the second line crosses the threshold and is
	// returned whole.
	chunk, err := store.ReadChunk(ctx, "1_book", 0, 15)
	require.NoError(t, err)
	assert.Equal(t, "0123456789\nabcdefghij\n", chunk.Text)
	assert.Equal(t, 2, chunk.NextLine)
}

func TestReadChunk_AdvancesMonotonicallyToSentinel(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	writeArtifact(t, store, "1_book", []string{"one", "two", "three", "four"})

	pos := 0
	var last string
	for i := 0; i < 10; i++ {
		chunk, err := store.ReadChunk(ctx, "1_book", pos, 5)
		require.NoError(t, err)
		if chunk.Text == "" {
			break
		}
		require.Greater(t, chunk.NextLine, pos)
		pos = chunk.NextLine
		last = chunk.Text
	}
	assert.Contains(t, last, testSentinel)
}

func TestReadChunk_StartBeyondEnd(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	writeArtifact(t, store, "1_book", []string{"only line"})

	chunk, err := store.ReadChunk(ctx, "1_book", 99, 100)
	require.NoError(t, err)
	assert.Empty(t, chunk.Text)
	assert.Equal(t, 99, chunk.NextLine)
}

func TestReadChunk_MissingArtifact(t *testing.T) {
	store := newStore(t)

	chunk, err := store.ReadChunk(context.Background(), "1_ghost", 0, 100)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	assert.Empty(t, chunk.Text)
	assert.Equal(t, 0, chunk.NextLine)
}

func TestReadChunk_SentinelReturnedAsOrdinaryText(t *testing.T) {
	store := newStore(t)
	writeArtifact(t, store, "1_tiny", []string{"the whole book"})

	chunk, err := store.ReadChunk(context.Background(), "1_tiny", 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, "the whole book\n"+testSentinel+"\n", chunk.Text)
}

func TestReadChunk_CountsRunesNotBytes(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	// Ten Cyrillic runes are twenty bytes; a byte count would stop a
	// rune-targeted read early.
	writeArtifact(t, store, "1_ru", []string{strings.Repeat("ж", 10), "next"})

	chunk, err := store.ReadChunk(ctx, "1_ru", 0, 12)
	require.NoError(t, err)
	assert.Equal(t, 2, chunk.NextLine, "second line should complete the chunk")
}

func TestInfo(t *testing.T) {
	store := newStore(t)
	writeArtifact(t, store, "1_info", []string{"one two three", "four five"})

	info, err := store.Info(context.Background(), "1_info")
	require.NoError(t, err)
	assert.Equal(t, 3, info.Lines, "sentinel counts as a line")
	assert.Equal(t, 7, info.Words, "sentinel fields included")
	assert.Greater(t, info.Chars, 0)
}

func TestInfo_Missing(t *testing.T) {
	store := newStore(t)
	_, err := store.Info(context.Background(), "1_ghost")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestRemove(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	writeArtifact(t, store, "1_gone", []string{"text"})

	require.NoError(t, store.Remove(ctx, "1_gone"))
	assert.False(t, store.Exists(ctx, "1_gone"))
	assert.NoError(t, store.Remove(ctx, "1_gone"), "second remove is a no-op")
}

func TestOwnersDoNotCollide(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	writeArtifact(t, store, "1_same_title", []string{"owner one text"})
	writeArtifact(t, store, "2_same_title", []string{"owner two text"})

	one, err := store.ReadChunk(ctx, "1_same_title", 0, 1000)
	require.NoError(t, err)
	two, err := store.ReadChunk(ctx, "2_same_title", 0, 1000)
	require.NoError(t, err)

	assert.Contains(t, one.Text, "owner one text")
	assert.Contains(t, two.Text, "owner two text")
}
