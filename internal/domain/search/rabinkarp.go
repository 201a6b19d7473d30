package search

// RabinKarp searches with a rolling polynomial hash. Hash equality only
// nominates a candidate window; every candidate is verified byte by byte, so
// collisions never produce a wrong answer whatever the modulus.
//
// A zero Base or a Modulus below 2 falls back to DefaultBase or
// DefaultModulus, so the zero value searches with direct hashing.
type RabinKarp struct {
	Strategy HashStrategy
	Base     uint64
	Modulus  uint64 // should be a large prime
}

// NewRabinKarp returns a searcher using strategy with the default base and
// modulus.
func NewRabinKarp(strategy HashStrategy) *RabinKarp {
	return &RabinKarp{
		Strategy: strategy,
		Base:     DefaultBase,
		Modulus:  DefaultModulus,
	}
}

// Index returns the first verified occurrence of pattern in text.
func (rk *RabinKarp) Index(text, pattern string) int {
	if pos, ok := bounds(text, pattern); !ok {
		return pos
	}

	base, modulus := rk.params()
	n, m := len(text), len(pattern)
	want := PolynomialHash(rk.Strategy, pattern, base, modulus)
	window := NewRollingHash(rk.Strategy, text[:m], base, modulus)
	for i := 0; i <= n-m; i++ {
		if window.Sum() == want && text[i:i+m] == pattern {
			return i
		}
		if i < n-m {
			window.Roll(text[i], text[i+m])
		}
	}
	return NotFound
}

func (rk *RabinKarp) params() (base, modulus uint64) {
	base, modulus = rk.Base, rk.Modulus
	if base == 0 {
		base = DefaultBase
	}
	if modulus < 2 {
		modulus = DefaultModulus
	}
	return base, modulus
}

// RabinKarpIndex searches with the default parameters and direct hashing.
func RabinKarpIndex(text, pattern string) int {
	return NewRabinKarp(HashDirect).Index(text, pattern)
}
