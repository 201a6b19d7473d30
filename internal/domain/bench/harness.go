// Package bench measures search algorithms over a corpus.
//
// Every (text, pattern, algorithm) triple is measured sequentially: one
// untimed call captures and verifies the match position, then Repeat trials
// of Number back-to-back calls are timed inside a GC-suppressing Window.
// Trial totals are divided by Number to get per-call seconds, aggregated,
// and stored as a Record in the run's Table.
package bench

import (
	"fmt"
	"runtime"
	"time"

	"github.com/corey/strsearch/internal/domain/corpus"
	"github.com/corey/strsearch/internal/domain/search"
)

// sink keeps search results observable so calls are not optimized away.
var sink int

// Engine supplies the searcher bound to each algorithm.
// *search.Engine satisfies it.
type Engine interface {
	Searcher(a search.Algorithm) search.Searcher
	HashStrategy() search.HashStrategy
}

// Harness runs benchmarks against one search engine.
type Harness struct {
	engine Engine
	cfg    Config
	now    func() time.Time
}

// New returns a harness for engine. The config is validated here.
func New(engine Engine, cfg Config) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("bench config: %w", err)
	}
	return &Harness{engine: engine, cfg: cfg, now: time.Now}, nil
}

// Config returns the harness configuration.
func (h *Harness) Config() Config { return h.cfg }

// Run measures every triple in c. It stops at the first algorithm defect,
// returning the error; a pattern that is not found is a normal result.
// Panics raised by an algorithm are not recovered.
func (h *Harness) Run(c *corpus.Corpus) (*Run, error) {
	log := h.cfg.logger()
	run := &Run{
		Started:      h.now(),
		Repeat:       h.cfg.Repeat,
		HashStrategy: h.engine.HashStrategy().String(),
		Texts:        c.Len(),
		Table:        NewTable(),
	}
	log.Info("benchmark started", "texts", c.Len(), "pairs", c.Pairs(),
		"algorithms", len(h.cfg.algorithms()), "repeat", h.cfg.Repeat, "hash", run.HashStrategy)

	for ti, e := range c.Entries() {
		digest := corpus.Digest(e.Text)
		for pi, pattern := range e.Patterns {
			for _, a := range h.cfg.algorithms() {
				rec, err := h.measure(e.Text, pattern, a)
				if err != nil {
					return nil, fmt.Errorf("text #%d pattern #%d: %w", ti, pi, err)
				}
				rec.Key = Key{Text: ti, Algorithm: a, Pattern: pi}
				rec.TextDigest = digest
				if err := run.Table.Add(rec); err != nil {
					return nil, err
				}
				log.Debug("measured", "key", rec.Key.String(), "text_len", rec.TextLen,
					"pattern_len", rec.PatternLen(), "number", rec.Number,
					"position", rec.Position, "min", rec.Min, "mean", rec.Mean, "max", rec.Max)
				if h.cfg.OnRecord != nil {
					h.cfg.OnRecord(rec)
				}
			}
		}
	}

	run.Elapsed = h.now().Sub(run.Started)
	log.Info("benchmark finished", "records", run.Table.Len(), "elapsed", run.Elapsed)
	return run, nil
}

// Measure runs the protocol for a single triple outside of any corpus.
// The returned record has a zero Key.
func (h *Harness) Measure(text, pattern string, a search.Algorithm) (*Record, error) {
	rec, err := h.measure(text, pattern, a)
	if err != nil {
		return nil, err
	}
	rec.Key.Algorithm = a
	rec.TextDigest = corpus.Digest(text)
	return rec, nil
}

func (h *Harness) measure(text, pattern string, a search.Algorithm) (*Record, error) {
	s := h.engine.Searcher(a)

	pos := s.Index(text, pattern)
	if err := search.Verify(text, pattern, pos); err != nil {
		return nil, fmt.Errorf("%v: %w", a, err)
	}

	number := h.cfg.Number(len(pattern))
	totals := make([]time.Duration, h.cfg.Repeat)
	var before, after runtime.MemStats
	Measure(func() {
		runtime.ReadMemStats(&before)
		for r := range totals {
			start := time.Now()
			for i := 0; i < number; i++ {
				sink = s.Index(text, pattern)
			}
			totals[r] = time.Since(start)
		}
		runtime.ReadMemStats(&after)
	})

	samples := make([]float64, len(totals))
	for i, d := range totals {
		samples[i] = d.Seconds() / float64(number)
	}
	calls := float64(len(totals) * number)
	return &Record{
		Stats:        Aggregate(samples),
		TextLen:      len(text),
		Pattern:      pattern,
		Position:     pos,
		Number:       number,
		Samples:      samples,
		BytesPerCall: float64(after.TotalAlloc-before.TotalAlloc) / calls,
	}, nil
}
