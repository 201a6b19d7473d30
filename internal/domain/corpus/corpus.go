// Package corpus supplies the (text, pattern) pairs a benchmark run searches.
//
// A Corpus is an ordered mapping from text to the patterns searched in it.
// Texts are unique keys: adding the same text twice appends to its pattern
// list. Corpora come from a JSON file (Load), from the built-in sample
// (Sample), or are derived from arbitrary text (FromText).
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// ErrInvalid reports a malformed corpus file.
var ErrInvalid = errors.New("invalid corpus")

// Entry is one text and the patterns to search for in it, in order.
type Entry struct {
	Text     string   `json:"text"`
	Patterns []string `json:"patterns"`
}

// Corpus is an insertion-ordered set of entries keyed by text.
type Corpus struct {
	entries []Entry
	index   map[string]int
}

// New returns an empty corpus.
func New() *Corpus {
	return &Corpus{index: make(map[string]int)}
}

// Add appends patterns to text's entry, creating it if needed. Patterns
// already listed for text are skipped. Text and patterns must be valid UTF-8.
func (c *Corpus) Add(text string, patterns ...string) error {
	if err := CheckText(text, patterns...); err != nil {
		return err
	}
	i, ok := c.index[text]
	if !ok {
		i = len(c.entries)
		c.index[text] = i
		c.entries = append(c.entries, Entry{Text: text})
	}
	e := &c.entries[i]
	for _, p := range patterns {
		if !contains(e.Patterns, p) {
			e.Patterns = append(e.Patterns, p)
		}
	}
	return nil
}

// CheckText reports ErrInvalid if text or any pattern is not valid UTF-8.
// The regexp baseline decodes its input as UTF-8, so only valid input has
// one answer across every algorithm.
func CheckText(text string, patterns ...string) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: text %s is not valid UTF-8", ErrInvalid, Label(text))
	}
	for _, p := range patterns {
		if !utf8.ValidString(p) {
			return fmt.Errorf("%w: pattern %q is not valid UTF-8", ErrInvalid, p)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Entries returns the entries in insertion order. The slice is shared;
// callers must not modify it.
func (c *Corpus) Entries() []Entry { return c.entries }

// Len returns the number of texts.
func (c *Corpus) Len() int { return len(c.entries) }

// Pairs returns the total number of (text, pattern) pairs.
func (c *Corpus) Pairs() int {
	n := 0
	for _, e := range c.entries {
		n += len(e.Patterns)
	}
	return n
}

// Texts returns every text in order.
func (c *Corpus) Texts() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Text
	}
	return out
}

// Digest returns the identity digest of a text. Stored results carry the
// digest instead of the text itself.
func Digest(text string) uint64 {
	return xxhash.Sum64String(text)
}

// Label returns a short printable identity for a text: the high 32 bits of
// its digest in hex.
func Label(text string) string {
	return fmt.Sprintf("%08x", Digest(text)>>32)
}

// Load reads a JSON corpus: an array of {"text": ..., "patterns": [...]}.
func Load(r io.Reader) (*Corpus, error) {
	var raw []struct {
		Text     *string  `json:"text"`
		Patterns []string `json:"patterns"`
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	c := New()
	for i, e := range raw {
		if e.Text == nil {
			return nil, fmt.Errorf("%w: entry %d has no text", ErrInvalid, i)
		}
		if err := c.Add(*e.Text, e.Patterns...); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return c, nil
}

// LoadFile reads a JSON corpus from path.
func LoadFile(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// MarshalJSON writes the corpus in the format Load reads.
func (c *Corpus) MarshalJSON() ([]byte, error) {
	if c.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.entries)
}

// AbsentPattern returns a pattern that occurs in none of texts.
func AbsentPattern(texts ...string) string {
	const stem = "~no-such-substring~"
	for n := 0; ; n++ {
		p := stem + strconv.Itoa(n)
		if !anyContains(texts, p) {
			return p
		}
	}
}

func anyContains(texts []string, p string) bool {
	for _, t := range texts {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}
