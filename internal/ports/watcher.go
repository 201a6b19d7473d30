package ports

// Watcher monitors corpus files and triggers a new benchmark run when one
// changes. Only one Watch call should be active at a time.
type Watcher interface {
	// Watch starts monitoring the given files. onChange is called with the
	// absolute path of each changed file, after debouncing. The callback may
	// be invoked from any goroutine. Returns an error if a file's directory
	// cannot be watched.
	Watch(paths []string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. It waits for any
	// onChange call in flight, so onChange must not call Stop. After Stop
	// returns, no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
