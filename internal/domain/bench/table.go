package bench

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/corey/strsearch/internal/domain/search"
)

// ErrDuplicateRecord is returned when a triple is recorded twice.
var ErrDuplicateRecord = errors.New("duplicate benchmark record")

// Key identifies a measured triple. Text is the text's position in the
// corpus and Pattern the pattern's position within that text's list.
type Key struct {
	Text      int              `json:"text_index"`
	Algorithm search.Algorithm `json:"algorithm"`
	Pattern   int              `json:"pattern_index"`
}

func (k Key) String() string {
	return fmt.Sprintf("text#%d/%s/pattern#%d", k.Text, k.Algorithm, k.Pattern)
}

// Record is the measurement of one triple. Records are not modified after
// they are added to a Table.
type Record struct {
	Key
	Stats

	TextLen    int    `json:"text_len"`
	TextDigest uint64 `json:"text_digest"`
	Pattern    string `json:"pattern"`

	// Position is the match result of the untimed call.
	Position int `json:"position"`

	Number  int       `json:"number"` // calls per trial
	Samples []float64 `json:"-"`      // per-call seconds, one per trial

	// BytesPerCall is heap allocation per call over the timed section.
	BytesPerCall float64 `json:"bytes_per_call"`
}

// PatternLen returns the pattern length in bytes.
func (r *Record) PatternLen() int { return len(r.Pattern) }

// Found reports whether the pattern was found.
func (r *Record) Found() bool { return r.Position != search.NotFound }

// Table holds the records of a run in insertion order.
type Table struct {
	records []*Record
	index   map[Key]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[Key]int)}
}

// Add appends rec. Each key may be added once.
func (t *Table) Add(rec *Record) error {
	if _, ok := t.index[rec.Key]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateRecord, rec.Key)
	}
	t.index[rec.Key] = len(t.records)
	t.records = append(t.records, rec)
	return nil
}

// Get returns the record for k, or nil.
func (t *Table) Get(k Key) *Record {
	if i, ok := t.index[k]; ok {
		return t.records[i]
	}
	return nil
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// Records returns the records in insertion order.
func (t *Table) Records() []*Record { return t.records }

// Rows returns the records in report order: longest text first, then
// longest pattern first, then canonical algorithm order.
func (t *Table) Rows() []*Record {
	rows := make([]*Record, len(t.records))
	copy(rows, t.records)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.TextLen != b.TextLen {
			return a.TextLen > b.TextLen
		}
		if a.Key.Text != b.Key.Text {
			return a.Key.Text < b.Key.Text
		}
		if a.PatternLen() != b.PatternLen() {
			return a.PatternLen() > b.PatternLen()
		}
		if a.Key.Pattern != b.Key.Pattern {
			return a.Key.Pattern < b.Key.Pattern
		}
		return a.Algorithm < b.Algorithm
	})
	return rows
}

// Disagreement is a record whose position differs from the reference
// algorithm's for the same text and pattern.
type Disagreement struct {
	Record *Record
	Want   int
}

// Disagreements cross-validates every record against NativeIndex on the
// same text and pattern. When NativeIndex was not measured, the first
// algorithm recorded for the pair is the reference.
func (t *Table) Disagreements() []Disagreement {
	type pair struct{ text, pattern int }
	ref := make(map[pair]*Record)
	for _, r := range t.records {
		p := pair{r.Key.Text, r.Key.Pattern}
		if cur, ok := ref[p]; !ok || (r.Algorithm == search.NativeIndex && cur.Algorithm != search.NativeIndex) {
			ref[p] = r
		}
	}

	var out []Disagreement
	for _, r := range t.records {
		want := ref[pair{r.Key.Text, r.Key.Pattern}]
		if r.Position != want.Position {
			out = append(out, Disagreement{Record: r, Want: want.Position})
		}
	}
	return out
}

type recordJSON struct {
	*Record
	Samples []float64 `json:"samples"`
}

// MarshalJSON encodes the table as an array of records including samples.
func (t *Table) MarshalJSON() ([]byte, error) {
	out := make([]recordJSON, len(t.records))
	for i, r := range t.records {
		out[i] = recordJSON{Record: r, Samples: r.Samples}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (t *Table) UnmarshalJSON(data []byte) error {
	var in []recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*t = *NewTable()
	for _, rj := range in {
		if rj.Record == nil {
			return errors.New("null benchmark record")
		}
		rj.Record.Samples = rj.Samples
		if err := t.Add(rj.Record); err != nil {
			return err
		}
	}
	return nil
}

// Run is the result of one benchmark invocation.
type Run struct {
	ID           uint64        `json:"id"`
	Started      time.Time     `json:"started"`
	Elapsed      time.Duration `json:"elapsed"`
	Repeat       int           `json:"repeat"`
	HashStrategy string        `json:"hash_strategy"`
	Texts        int           `json:"texts"`
	Table        *Table        `json:"table"`
}
