package bench

import (
	"fmt"
	"log/slog"

	"github.com/corey/strsearch/internal/domain/search"
)

// DefaultRepeat is the number of timed trials per triple.
const DefaultRepeat = 5

// Step sets the batch size for patterns up to MaxLen bytes long.
type Step struct {
	MaxLen int
	Number int
}

// Config controls a benchmark run.
type Config struct {
	// Repeat is the number of independent timed trials per triple.
	Repeat int

	// Steps map pattern length to calls per trial. They must be ordered by
	// MaxLen with non-increasing Number: shorter patterns are cheaper per
	// call and get larger batches. Fallback applies beyond the last step.
	Steps    []Step
	Fallback int

	// Algorithms restricts the run; empty means all of them.
	Algorithms []search.Algorithm

	// Logger receives per-triple debug events. Nil discards them.
	Logger *slog.Logger

	// OnRecord, when set, is called after each triple is measured.
	OnRecord func(*Record)
}

// DefaultConfig returns the standard calibration.
// The thresholds are empirical and may be tuned freely.
func DefaultConfig() Config {
	return Config{
		Repeat: DefaultRepeat,
		Steps: []Step{
			{MaxLen: 5, Number: 3000},
			{MaxLen: 15, Number: 1000},
			{MaxLen: 50, Number: 200},
			{MaxLen: 200, Number: 50},
		},
		Fallback: 10,
	}
}

// Number returns the calls per trial for a pattern of the given length.
func (c Config) Number(patternLen int) int {
	for _, s := range c.Steps {
		if patternLen <= s.MaxLen {
			return s.Number
		}
	}
	return c.Fallback
}

// Validate checks the config for values that would break the protocol.
func (c Config) Validate() error {
	if c.Repeat < 1 {
		return fmt.Errorf("repeat must be at least 1, got %d", c.Repeat)
	}
	if c.Fallback < 1 {
		return fmt.Errorf("fallback number must be at least 1, got %d", c.Fallback)
	}
	prev := Step{MaxLen: -1}
	for i, s := range c.Steps {
		if s.Number < 1 {
			return fmt.Errorf("step %d: number must be at least 1, got %d", i, s.Number)
		}
		if s.MaxLen <= prev.MaxLen {
			return fmt.Errorf("step %d: max length %d is not above %d", i, s.MaxLen, prev.MaxLen)
		}
		if i > 0 && s.Number > prev.Number {
			return fmt.Errorf("step %d: number %d exceeds shorter-pattern number %d", i, s.Number, prev.Number)
		}
		prev = s
	}
	if len(c.Steps) > 0 && c.Fallback > prev.Number {
		return fmt.Errorf("fallback number %d exceeds last step number %d", c.Fallback, prev.Number)
	}
	for _, a := range c.Algorithms {
		if !a.Valid() {
			return fmt.Errorf("invalid algorithm %d", int(a))
		}
	}
	return nil
}

func (c Config) algorithms() []search.Algorithm {
	if len(c.Algorithms) == 0 {
		return search.Algorithms()
	}
	return c.Algorithms
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
