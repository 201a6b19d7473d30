package search

import (
	"fmt"
	"strings"
)

// Algorithm identifies one of the compared search implementations.
type Algorithm int

const (
	KMP Algorithm = iota
	BoyerMoore
	RabinKarpHash
	NativeIndex
	RegexpSearch

	numAlgorithms = iota
)

var algorithmNames = [numAlgorithms]struct{ name, title string }{
	KMP:           {"kmp", "Knuth-Morris-Pratt"},
	BoyerMoore:    {"bm", "Boyer-Moore"},
	RabinKarpHash: {"rk", "Rabin-Karp"},
	NativeIndex:   {"index", "strings.Index"},
	RegexpSearch:  {"regexp", "regexp.FindStringIndex"},
}

// Algorithms returns every algorithm in canonical report order: the three
// implementations first, then the baselines.
func Algorithms() []Algorithm {
	all := make([]Algorithm, numAlgorithms)
	for i := range all {
		all[i] = Algorithm(i)
	}
	return all
}

// Valid reports whether a names a known algorithm.
func (a Algorithm) Valid() bool { return a >= 0 && a < numAlgorithms }

// String returns the short name used on the command line and in storage.
func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmNames[a].name
}

// Title returns the display name.
func (a Algorithm) Title() string {
	if !a.Valid() {
		return a.String()
	}
	return algorithmNames[a].title
}

// IsBaseline reports whether a is a reference search rather than one of the
// implemented algorithms.
func (a Algorithm) IsBaseline() bool {
	return a == NativeIndex || a == RegexpSearch
}

// ParseAlgorithm resolves a short name or a few common long forms.
func ParseAlgorithm(name string) (Algorithm, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, a := range Algorithms() {
		if key == a.String() {
			return a, nil
		}
	}
	switch key {
	case "knuth-morris-pratt":
		return KMP, nil
	case "boyer-moore", "boyermoore":
		return BoyerMoore, nil
	case "rabin-karp", "rabinkarp":
		return RabinKarpHash, nil
	case "native", "strings.index", "find":
		return NativeIndex, nil
	case "re", "regex":
		return RegexpSearch, nil
	}
	return 0, fmt.Errorf("unknown algorithm %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid algorithm %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(b []byte) error {
	v, err := ParseAlgorithm(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
