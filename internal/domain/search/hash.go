package search

import (
	"fmt"
	"math/bits"
	"strings"
)

// Default Rabin–Karp parameters.
const (
	DefaultBase    uint64 = 257
	DefaultModulus uint64 = 1000003
)

// HashStrategy selects how a polynomial hash is computed from scratch.
// Both strategies yield identical values; they differ only in cost.
type HashStrategy int

const (
	// HashDirect sums c·base^(m-1-i) with one modular exponentiation per term.
	HashDirect HashStrategy = iota
	// HashIncremental folds characters in with Horner's rule.
	HashIncremental
)

func (s HashStrategy) String() string {
	switch s {
	case HashDirect:
		return "direct"
	case HashIncremental:
		return "incremental"
	default:
		return fmt.Sprintf("HashStrategy(%d)", int(s))
	}
}

// ParseHashStrategy resolves a strategy name. "pow" and "fast" are accepted
// as aliases for direct and incremental.
func ParseHashStrategy(name string) (HashStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "direct", "pow":
		return HashDirect, nil
	case "incremental", "fast":
		return HashIncremental, nil
	}
	return 0, fmt.Errorf("unknown hash strategy %q (want direct or incremental)", name)
}

// PolynomialHash returns Σ s[i]·base^(len(s)-1-i) mod modulus.
func PolynomialHash(strategy HashStrategy, s string, base, modulus uint64) uint64 {
	if strategy == HashIncremental {
		return hashIncremental(s, base, modulus)
	}
	return hashDirect(s, base, modulus)
}

func hashDirect(s string, base, modulus uint64) uint64 {
	n := len(s)
	var h uint64
	for i := 0; i < n; i++ {
		p := PowMod(base, uint64(n-i-1), modulus)
		h = addMod(h, mulMod(uint64(s[i]), p, modulus), modulus)
	}
	return h
}

func hashIncremental(s string, base, modulus uint64) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = addMod(mulMod(h, base, modulus), uint64(s[i])%modulus, modulus)
	}
	return h
}

// PowMod returns base^exp mod modulus by square-and-multiply.
func PowMod(base, exp, modulus uint64) uint64 {
	if modulus == 1 {
		return 0
	}
	result := uint64(1)
	base %= modulus
	for ; exp > 0; exp >>= 1 {
		if exp&1 != 0 {
			result = mulMod(result, base, modulus)
		}
		base = mulMod(base, base, modulus)
	}
	return result
}

// mulMod returns a·b mod m without overflowing for any 64-bit modulus.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// addMod returns a+b mod m for a, b < m without wrapping past 2^64.
func addMod(a, b, m uint64) uint64 {
	if a >= m-b {
		return a - (m - b)
	}
	return a + b
}

// RollingHash is the hash of a fixed-width window that can slide by one byte
// in O(1). Its value always stays in [0, modulus).
type RollingHash struct {
	base, modulus uint64
	multiplier    uint64 // base^(width-1) mod modulus
	value         uint64
}

// NewRollingHash hashes the initial window with the given strategy.
func NewRollingHash(strategy HashStrategy, window string, base, modulus uint64) *RollingHash {
	mult := uint64(0)
	if len(window) > 0 {
		mult = PowMod(base, uint64(len(window)-1), modulus)
	}
	return &RollingHash{
		base:       base,
		modulus:    modulus,
		multiplier: mult,
		value:      PolynomialHash(strategy, window, base, modulus),
	}
}

// Roll removes out from the front of the window and appends in.
func (r *RollingHash) Roll(out, in byte) {
	left := mulMod(uint64(out), r.multiplier, r.modulus)
	if r.value >= left {
		r.value -= left
	} else {
		r.value += r.modulus - left
	}
	r.value = addMod(mulMod(r.value, r.base, r.modulus), uint64(in)%r.modulus, r.modulus)
}

// Sum returns the hash of the current window.
func (r *RollingHash) Sum() uint64 { return r.value }

// Multiplier returns base^(width-1) mod modulus.
func (r *RollingHash) Multiplier() uint64 { return r.multiplier }
