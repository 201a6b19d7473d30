package fsnotify

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan string, timeout time.Duration) (string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return "", false
	}
}

func newTestWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := NewWatcher()
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)
	t.Cleanup(func() { w.Stop() })
	return w
}

func TestWatcher_DetectsCorpusChange(t *testing.T) {
	dir := t.TempDir()
	corpusFile := filepath.Join(dir, "corpus.json")
	require.NoError(t, os.WriteFile(corpusFile, []byte(`[]`), 0644))

	w := newTestWatcher(t)
	changed := make(chan string, 10)
	require.NoError(t, w.Watch([]string{corpusFile}, func(path string) {
		changed <- path
	}))

	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(corpusFile, []byte(`[{"text": "abc"}]`), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for corpus change")
	assert.Equal(t, corpusFile, path)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	corpusFile := filepath.Join(dir, "corpus.json")
	require.NoError(t, os.WriteFile(corpusFile, []byte(`[]`), 0644))

	w := newTestWatcher(t)
	changed := make(chan string, 10)
	require.NoError(t, w.Watch([]string{corpusFile}, func(path string) {
		changed <- path
	}))
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	_, ok := waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, ok, "unrelated file must not trigger")
}

func TestWatcher_Debounces(t *testing.T) {
	dir := t.TempDir()
	corpusFile := filepath.Join(dir, "corpus.json")
	require.NoError(t, os.WriteFile(corpusFile, []byte(`[]`), 0644))

	w := newTestWatcher(t)
	w.SetDebounce(150 * time.Millisecond)
	var calls atomic.Int32
	require.NoError(t, w.Watch([]string{corpusFile}, func(string) { calls.Add(1) }))
	time.Sleep(50 * time.Millisecond)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(corpusFile, []byte(`[ ]`), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "burst of writes collapses into one callback")
}

func TestWatcher_StopPreventsCallbacks(t *testing.T) {
	dir := t.TempDir()
	corpusFile := filepath.Join(dir, "corpus.json")
	require.NoError(t, os.WriteFile(corpusFile, []byte(`[]`), 0644))

	w := newTestWatcher(t)
	changed := make(chan string, 10)
	require.NoError(t, w.Watch([]string{corpusFile}, func(path string) {
		changed <- path
	}))

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop(), "second stop is a no-op")

	require.NoError(t, os.WriteFile(corpusFile, []byte(`[ ]`), 0644))
	_, ok := waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, ok)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := newTestWatcher(t)
	err := w.Watch([]string{filepath.Join(t.TempDir(), "nope", "corpus.json")}, func(string) {})
	assert.Error(t, err)
}

func TestWatcher_StopWaitsForRunningCallback(t *testing.T) {
	dir := t.TempDir()
	corpusFile := filepath.Join(dir, "corpus.json")
	require.NoError(t, os.WriteFile(corpusFile, []byte(`[]`), 0644))

	w := newTestWatcher(t)
	started := make(chan struct{})
	var once sync.Once
	var finished atomic.Bool
	require.NoError(t, w.Watch([]string{corpusFile}, func(string) {
		once.Do(func() { close(started) })
		time.Sleep(200 * time.Millisecond)
		finished.Store(true)
	}))
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(corpusFile, []byte(`[ ]`), 0644))
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never started")
	}

	require.NoError(t, w.Stop())
	assert.True(t, finished.Load(), "Stop returned while a callback was still running")
}

func TestWatcher_SupersededTimerDoesNotFire(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()
	w.SetDebounce(time.Hour)

	var calls atomic.Int32
	onChange := func(string) { calls.Add(1) }
	w.schedule("corpus.json", onChange)
	// A timer that fired just before being superseded carries a stale generation.
	w.schedule("corpus.json", onChange)
	w.fire("corpus.json", 1, onChange)
	assert.Equal(t, int32(0), calls.Load())

	w.fire("corpus.json", 2, onChange)
	require.NoError(t, w.Stop())
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_WatchAfterStop(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Stop())
	assert.Error(t, w.Watch([]string{filepath.Join(dir, "corpus.json")}, func(string) {}))
}
