// Package search implements exact single-pattern substring search.
//
// Three algorithms are provided (Knuth–Morris–Pratt, Boyer–Moore with the
// bad-character rule only, and Rabin–Karp with a rolling polynomial hash)
// alongside two baselines: the runtime's native substring scan and the
// regexp engine. Every implementation matches over bytes and returns the
// byte offset of the first occurrence, or NotFound.
//
// All searches are pure functions of their inputs. Per-call state (tables,
// hash accumulators) is owned by the call that builds it.
package search

import (
	"errors"
	"fmt"
)

// NotFound is the position returned when the pattern does not occur.
const NotFound = -1

// ErrAlgorithmDefect reports a position that does not hold an exact match.
var ErrAlgorithmDefect = errors.New("algorithm defect")

// Searcher finds the first occurrence of pattern in text.
// An empty pattern matches at 0; a pattern longer than text is NotFound.
//
// Text and pattern must be valid UTF-8. The byte-level algorithms accept any
// bytes, but the regexp baseline decodes invalid bytes as U+FFFD and so can
// disagree with them. corpus.CheckText enforces this at input boundaries.
type Searcher interface {
	Index(text, pattern string) int
}

// SearcherFunc adapts a plain function to the Searcher interface.
type SearcherFunc func(text, pattern string) int

// Index calls f(text, pattern).
func (f SearcherFunc) Index(text, pattern string) int { return f(text, pattern) }

// Verify checks that pos is NotFound or the start of an exact occurrence of
// pattern in text. It does not check that pos is the first occurrence.
func Verify(text, pattern string, pos int) error {
	if pos == NotFound {
		return nil
	}
	if pos < 0 || pos+len(pattern) > len(text) {
		return fmt.Errorf("%w: position %d out of range for text of length %d", ErrAlgorithmDefect, pos, len(text))
	}
	if text[pos:pos+len(pattern)] != pattern {
		return fmt.Errorf("%w: no match at position %d", ErrAlgorithmDefect, pos)
	}
	return nil
}

// bounds handles the degenerate cases shared by every algorithm.
// ok is false when the caller must not scan.
func bounds(text, pattern string) (pos int, ok bool) {
	switch {
	case len(pattern) == 0:
		return 0, false
	case len(pattern) > len(text):
		return NotFound, false
	}
	return 0, true
}
