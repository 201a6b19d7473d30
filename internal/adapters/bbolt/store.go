// Package bbolt implements the ports.RunStore interface using bbolt (embedded B+ tree).
// All runs live under one top-level "runs" bucket. Each run gets a sub-bucket
// keyed by its big-endian ID holding "meta", "records", and "samples" blobs.
// Writes are transactional: a crash mid-write cannot corrupt previously
// committed runs. The records blob is JSON compressed with snappy; samples
// use the binary layout in encoding.go.
package bbolt

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/corey/strsearch/internal/domain/bench"
	"github.com/corey/strsearch/internal/ports"
	"github.com/golang/snappy"
	bolt "go.etcd.io/bbolt"
)

// Bucket keys
var (
	bucketRuns = []byte("runs")
	keyMeta    = []byte("meta")
	keyRecords = []byte("records")
	keySamples = []byte("samples")
)

// Store implements ports.RunStore backed by bbolt.
type Store struct {
	db *bolt.DB
}

var _ ports.RunStore = (*Store)(nil)

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// runKey encodes a run ID so that keys sort in ID order.
func runKey(id uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, id)
	return k
}

// runMeta is the stored form of a run without its table.
type runMeta struct {
	ID           uint64        `json:"id"`
	Started      time.Time     `json:"started"`
	Elapsed      time.Duration `json:"elapsed"`
	Repeat       int           `json:"repeat"`
	HashStrategy string        `json:"hash_strategy"`
	Texts        int           `json:"texts"`
	Records      int           `json:"records"`
}

// SaveRun persists run under a fresh ID and sets run.ID.
func (s *Store) SaveRun(run *bench.Run) error {
	if run == nil || run.Table == nil {
		return fmt.Errorf("nil run")
	}

	records := run.Table.Records()
	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	// Records repeat the same keys for every triple and compress well.
	recordsBlob := snappy.Encode(nil, recordsJSON)
	samples := make([][]float64, len(records))
	for i, r := range records {
		samples[i] = r.Samples
	}
	samplesBin, err := encodeSamples(samples)
	if err != nil {
		return fmt.Errorf("encode samples: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		runs, err := tx.CreateBucketIfNotExists(bucketRuns)
		if err != nil {
			return err
		}
		id, err := runs.NextSequence()
		if err != nil {
			return err
		}
		meta := runMeta{
			ID:           id,
			Started:      run.Started,
			Elapsed:      run.Elapsed,
			Repeat:       run.Repeat,
			HashStrategy: run.HashStrategy,
			Texts:        run.Texts,
			Records:      len(records),
		}
		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("marshal meta: %w", err)
		}

		rb, err := runs.CreateBucket(runKey(id))
		if err != nil {
			return err
		}
		if err := rb.Put(keyMeta, metaJSON); err != nil {
			return err
		}
		if err := rb.Put(keyRecords, recordsBlob); err != nil {
			return err
		}
		if err := rb.Put(keySamples, samplesBin); err != nil {
			return err
		}
		// Only publish the ID once the transaction body has succeeded.
		run.ID = id
		return nil
	})
}

// LoadRun retrieves a run with all records and samples.
// Returns nil, nil if no run has that ID.
func (s *Store) LoadRun(id uint64) (*bench.Run, error) {
	var metaJSON, recordsBlob, samplesBin []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		runs := tx.Bucket(bucketRuns)
		if runs == nil {
			return nil
		}
		rb := runs.Bucket(runKey(id))
		if rb == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		metaJSON = copyBytes(rb.Get(keyMeta))
		recordsBlob = copyBytes(rb.Get(keyRecords))
		samplesBin = copyBytes(rb.Get(keySamples))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if metaJSON == nil {
		return nil, nil
	}

	var meta runMeta
	if err := json.Unmarshal(metaJSON, &meta); err != nil {
		return nil, fmt.Errorf("unmarshal meta: %w", err)
	}
	var records []*bench.Record
	if recordsBlob != nil {
		recordsJSON, err := snappy.Decode(nil, recordsBlob)
		if err != nil {
			return nil, fmt.Errorf("decompress records: %w", err)
		}
		if err := json.Unmarshal(recordsJSON, &records); err != nil {
			return nil, fmt.Errorf("unmarshal records: %w", err)
		}
	}
	if samplesBin != nil {
		samples, err := decodeSamples(samplesBin)
		if err != nil {
			return nil, fmt.Errorf("decode samples: %w", err)
		}
		if len(samples) != len(records) {
			return nil, fmt.Errorf("run %d: %d sample sets for %d records", id, len(samples), len(records))
		}
		for i, r := range records {
			r.Samples = samples[i]
		}
	}

	table := bench.NewTable()
	for _, r := range records {
		if err := table.Add(r); err != nil {
			return nil, fmt.Errorf("run %d: %w", id, err)
		}
	}
	return &bench.Run{
		ID:           meta.ID,
		Started:      meta.Started,
		Elapsed:      meta.Elapsed,
		Repeat:       meta.Repeat,
		HashStrategy: meta.HashStrategy,
		Texts:        meta.Texts,
		Table:        table,
	}, nil
}

// ListRuns returns summaries of all runs, oldest first.
func (s *Store) ListRuns() ([]ports.RunSummary, error) {
	var out []ports.RunSummary
	err := s.db.View(func(tx *bolt.Tx) error {
		runs := tx.Bucket(bucketRuns)
		if runs == nil {
			return nil
		}
		c := runs.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if v != nil {
				continue // not a run bucket
			}
			rb := runs.Bucket(k)
			var meta runMeta
			if err := json.Unmarshal(rb.Get(keyMeta), &meta); err != nil {
				return fmt.Errorf("run %x: unmarshal meta: %w", k, err)
			}
			out = append(out, ports.RunSummary{
				ID:           meta.ID,
				Started:      meta.Started.UnixNano(),
				ElapsedNanos: int64(meta.Elapsed),
				Repeat:       meta.Repeat,
				HashStrategy: meta.HashStrategy,
				Texts:        meta.Texts,
				Records:      meta.Records,
			})
		}
		return nil
	})
	return out, err
}

// DeleteRun removes a run.
// Idempotent: deleting a nonexistent run is not an error.
func (s *Store) DeleteRun(id uint64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket(bucketRuns)
		if runs == nil {
			return nil
		}
		if err := runs.DeleteBucket(runKey(id)); errors.Is(err, bolt.ErrBucketNotFound) {
			return nil // idempotent
		} else {
			return err
		}
	})
}

func copyBytes(v []byte) []byte {
	if v == nil {
		return nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out
}
