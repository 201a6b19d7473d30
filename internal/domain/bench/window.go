package bench

import (
	"runtime"
	"runtime/debug"
)

// Window suppresses garbage collection while a measurement is in progress.
//
// The GC percent is process-wide state, so windows must not overlap; the
// harness opens exactly one at a time. Closing a window restores the prior
// setting and forces a collection so that deferred work is paid before the
// next window opens.
type Window struct {
	prev   int
	closed bool
}

// OpenWindow disables the collector and returns the open window.
func OpenWindow() *Window {
	return &Window{prev: debug.SetGCPercent(-1)}
}

// Close re-enables the collector and runs a full collection. Calling Close
// more than once has no further effect.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	debug.SetGCPercent(w.prev)
	runtime.GC()
}

// Measure runs fn inside a window. The window is closed even if fn panics.
func Measure(fn func()) {
	w := OpenWindow()
	defer w.Close()
	fn()
}
