// Package ports defines the interfaces (contracts) that adapters must implement.
// Domain logic depends only on these interfaces, never on concrete implementations.
package ports

import (
	"errors"

	"github.com/corey/strsearch/internal/domain/bench"
)

// ErrRunNotFound is returned by operations that require an existing run.
var ErrRunNotFound = errors.New("run not found")

// RunSummary is the listing form of a stored run: metadata only, no records.
type RunSummary struct {
	ID           uint64
	Started      int64 // unix nanoseconds
	ElapsedNanos int64
	Repeat       int
	HashStrategy string
	Texts        int
	Records      int
}

// RunStore persists benchmark runs to durable storage.
//
// Crash safety: SaveRun must be transactional. A crash mid-write must not
// corrupt previously committed runs.
type RunStore interface {
	// SaveRun persists run and assigns run.ID. IDs increase monotonically.
	SaveRun(run *bench.Run) error

	// LoadRun retrieves a run with all records and samples.
	// Returns nil, nil if no run has that ID.
	LoadRun(id uint64) (*bench.Run, error)

	// ListRuns returns summaries of all runs, oldest first.
	ListRuns() ([]RunSummary, error)

	// DeleteRun removes a run. Deleting a nonexistent run is not an error.
	DeleteRun(id uint64) error
}
