package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcher_DebouncesAndIgnoresOutput(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	runs := make(chan struct{}, 16)
	w, err := NewWatcher([]string{dir}, "isx_gen.go", func(context.Context) error {
		runs <- struct{}{}
		return nil
	})
	require.NoError(t, err)
	w.Debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	write := func(name string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("package shapes\n"), 0644))
	}

	write("isx_gen.go")
	write("shapes_test.go")
	write("notes.txt")
	select {
	case <-runs:
		t.Fatal("output, test and non-Go files must not trigger a run")
	case <-time.After(300 * time.Millisecond):
	}

	for i := 0; i < 5; i++ {
		write("shapes.go")
	}
	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal("no run after source change")
	}
	select {
	case <-runs:
		t.Fatal("burst of writes produced more than one run")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_Relevant(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher([]string{dir}, "isx_gen.go", func(context.Context) error { return nil })
	require.NoError(t, err)
	defer w.stop()

	ev := func(name string, op fsnotify.Op) fsnotify.Event {
		return fsnotify.Event{Name: filepath.Join(dir, name), Op: op}
	}
	assert.True(t, w.relevant(ev("shapes.go", fsnotify.Write)))
	assert.True(t, w.relevant(ev("shapes.go", fsnotify.Remove)))
	assert.False(t, w.relevant(ev("shapes.go", fsnotify.Chmod)))
	assert.False(t, w.relevant(ev("isx_gen.go", fsnotify.Write)))

	w.Match = func(path string) bool { return filepath.Ext(path) == ".yaml" }
	assert.True(t, w.relevant(ev("isx.yaml", fsnotify.Write)))
	assert.False(t, w.relevant(ev("shapes.go", fsnotify.Write)))

	_, err = NewWatcher([]string{filepath.Join(dir, "missing")}, "isx_gen.go", nil)
	assert.Error(t, err)
}

func TestIsSource(t *testing.T) {
	assert.True(t, IsSource("/a/shapes.go"))
	assert.False(t, IsSource("/a/shapes_test.go"))
	assert.False(t, IsSource("/a/isx.yaml"))
}
