package watcher

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codescribe/internal/tester"

	"github.com/stretchr/testify/require"
)

func TestWatcher_EmitsChangedFiles(t *testing.T) {
	dir := t.TempDir()
	tester.WriteFile(t, dir, "a.py", "def a(): pass\n")

	filter := func(p string) bool { return strings.HasSuffix(p, ".py") }
	w, err := New([]string{dir}, filter, 20*time.Millisecond, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	tester.WriteFile(t, dir, "notes.txt", "ignored")
	tester.WriteFile(t, dir, "a.py", "def a(): return 1\n")

	want, err := filepath.Abs(filepath.Join(dir, "a.py"))
	require.NoError(t, err)
	want, _ = filepath.EvalSymlinks(want)

	select {
	case batch := <-w.Events():
		require.Len(t, batch, 1)
		got, _ := filepath.EvalSymlinks(batch[0])
		require.Equal(t, want, got)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change")
	}
}

func TestWatcher_FileInputIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	target := tester.WriteFile(t, dir, "views.py", "def v(): pass\n")

	w, err := New([]string{target}, nil, 20*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	abs, _ := filepath.Abs(target)
	require.True(t, w.accepts(abs))
	require.False(t, w.accepts(filepath.Join(filepath.Dir(abs), "other.py")))
}

func TestNew_MissingInput(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "nope")}, nil, 0, nil)
	require.Error(t, err)
}
