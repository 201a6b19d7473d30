// Package app wires together the search engine, the benchmark harness, and
// the adapters (bbolt run store, fsnotify corpus watcher).
package app

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/corey/strsearch/internal/adapters/bbolt"
	"github.com/corey/strsearch/internal/domain/bench"
	"github.com/corey/strsearch/internal/domain/corpus"
	"github.com/corey/strsearch/internal/domain/search"
	"github.com/corey/strsearch/internal/ports"
)

// Config holds initialization parameters for the App.
type Config struct {
	ProjectRoot string
	DBPath      string // path to bbolt file (default: .strsearch/results.db)

	// Persist opens the run store. Without it, runs are not saved and the
	// run history is unavailable.
	Persist bool

	Bench  bench.Config
	Search []search.Option
	Logger *slog.Logger
}

// App is the top-level container wiring all components together.
type App struct {
	Paths   *Paths
	Engine  *search.Engine
	Harness *bench.Harness
	Store   ports.RunStore // nil unless Config.Persist

	store *bbolt.Store
	log   *slog.Logger
	mu    sync.Mutex // serializes benchmark runs; measurements must not overlap
}

// New creates an App with all dependencies wired.
func New(cfg Config) (*App, error) {
	if cfg.ProjectRoot == "" {
		return nil, fmt.Errorf("project root required")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if cfg.Bench.Logger == nil {
		cfg.Bench.Logger = log
	}

	engine, err := search.NewEngine(cfg.Search...)
	if err != nil {
		return nil, fmt.Errorf("search engine: %w", err)
	}
	harness, err := bench.New(engine, cfg.Bench)
	if err != nil {
		return nil, err
	}

	a := &App{
		Paths:   NewPaths(cfg.ProjectRoot),
		Engine:  engine,
		Harness: harness,
		log:     log,
	}

	if cfg.Persist {
		if err := a.Paths.EnsureDirs(); err != nil {
			return nil, fmt.Errorf("create %s: %w", a.Paths.Root, err)
		}
		dbPath := cfg.DBPath
		if dbPath == "" {
			dbPath = a.Paths.DB
		}
		store, err := bbolt.NewStore(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		a.store = store
		a.Store = store
	}
	return a, nil
}

// Benchmark measures c and, when persistence is enabled, saves the run.
// Concurrent calls are serialized.
func (a *App) Benchmark(c *corpus.Corpus) (*bench.Run, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	run, err := a.Harness.Run(c)
	if err != nil {
		return nil, err
	}
	if d := run.Table.Disagreements(); len(d) > 0 {
		a.log.Warn("algorithms disagree", "count", len(d))
	}
	if a.Store != nil {
		if err := a.Store.SaveRun(run); err != nil {
			return run, fmt.Errorf("save run: %w", err)
		}
		a.log.Info("run saved", "id", run.ID)
	}
	return run, nil
}

// WatchCorpus re-runs the benchmark every time the corpus file at path
// changes. onRun receives each result, or the load/benchmark error.
func (a *App) WatchCorpus(path string, w ports.Watcher, onRun func(*bench.Run, error)) error {
	return w.Watch([]string{path}, func(changed string) {
		a.log.Info("corpus changed", "path", changed)
		c, err := corpus.LoadFile(path)
		if err != nil {
			onRun(nil, err)
			return
		}
		onRun(a.Benchmark(c))
	})
}

// Runs lists stored runs, oldest first.
func (a *App) Runs() ([]ports.RunSummary, error) {
	if a.Store == nil {
		return nil, fmt.Errorf("run store not open")
	}
	return a.Store.ListRuns()
}

// LoadRun returns a stored run or ports.ErrRunNotFound.
func (a *App) LoadRun(id uint64) (*bench.Run, error) {
	if a.Store == nil {
		return nil, fmt.Errorf("run store not open")
	}
	run, err := a.Store.LoadRun(id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("run %d: %w", id, ports.ErrRunNotFound)
	}
	return run, nil
}

// DeleteRun removes a stored run.
func (a *App) DeleteRun(id uint64) error {
	if a.Store == nil {
		return fmt.Errorf("run store not open")
	}
	return a.Store.DeleteRun(id)
}

// Close releases the run store.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
