package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolynomialHash_StrategiesAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	params := []struct{ base, modulus uint64 }{
		{DefaultBase, DefaultModulus},
		{31, 1_000_000_007},
		{256, 101},
		{257, 2},
		// Products exceed 64 bits here.
		{0xffff_ffff_fffe, 0xffff_ffff_ffff_ffc5},
	}
	for _, p := range params {
		for n := 0; n < 200; n++ {
			s := randomString(rng, rng.Intn(40), "abcdefghij\x00\xff\xd0\xbf")
			direct := PolynomialHash(HashDirect, s, p.base, p.modulus)
			incr := PolynomialHash(HashIncremental, s, p.base, p.modulus)
			require.Equal(t, direct, incr, "s=%q base=%d mod=%d", s, p.base, p.modulus)
			assert.Less(t, direct, p.modulus)
		}
	}
}

func TestPolynomialHash_KnownValue(t *testing.T) {
	// 'a'*257^2 + 'b'*257 + 'c' = 97*66049 + 98*257 + 99
	want := uint64(97*66049+98*257+99) % DefaultModulus
	assert.Equal(t, want, PolynomialHash(HashDirect, "abc", DefaultBase, DefaultModulus))
	assert.Equal(t, want, PolynomialHash(HashIncremental, "abc", DefaultBase, DefaultModulus))
	assert.Equal(t, uint64(0), PolynomialHash(HashDirect, "", DefaultBase, DefaultModulus))
}

func TestPowMod(t *testing.T) {
	assert.Equal(t, uint64(1), PowMod(257, 0, DefaultModulus))
	assert.Equal(t, uint64(257), PowMod(257, 1, DefaultModulus))
	assert.Equal(t, uint64(66049), PowMod(257, 2, DefaultModulus))
	assert.Equal(t, uint64(24), PowMod(2, 10, 1000))
	assert.Equal(t, uint64(0), PowMod(5, 3, 1))
}

func TestRollingHash_MatchesRecompute(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	text := randomString(rng, 500, "abcxyz \xc3\xa9")
	params := []struct{ base, modulus uint64 }{
		{DefaultBase, DefaultModulus},
		// Sums of two residues exceed 64 bits here.
		{1<<48 - 2, 1<<64 - 59},
	}
	for _, p := range params {
		for _, strategy := range []HashStrategy{HashDirect, HashIncremental} {
			for _, width := range []int{1, 2, 5, 17, 64} {
				r := NewRollingHash(strategy, text[:width], p.base, p.modulus)
				assert.Equal(t, PowMod(p.base, uint64(width-1), p.modulus), r.Multiplier())
				for i := 0; i+width < len(text); i++ {
					r.Roll(text[i], text[i+width])
					want := PolynomialHash(HashIncremental, text[i+1:i+1+width], p.base, p.modulus)
					require.Equal(t, want, r.Sum(), "mod=%d strategy=%v width=%d slide=%d", p.modulus, strategy, width, i)
					require.Less(t, r.Sum(), p.modulus)
				}
			}
		}
	}
}

func TestAddMod(t *testing.T) {
	const m = 1<<64 - 59
	assert.Equal(t, uint64(3), addMod(1, 2, 7))
	assert.Equal(t, uint64(1), addMod(4, 4, 7))
	assert.Equal(t, uint64(0), addMod(3, 4, 7))
	assert.Equal(t, uint64(m-3), addMod(m-1, m-2, m))
	assert.Equal(t, uint64(m-1), addMod(m-1, 0, m))
}

func TestRabinKarp_ZeroValue(t *testing.T) {
	var rk RabinKarp
	assert.Equal(t, 10, rk.Index("ababcabcabababd", "ababd"))
	assert.Equal(t, NotFound, rk.Index("ababcabcabababd", "xyz"))
}

func TestParseHashStrategy(t *testing.T) {
	for name, want := range map[string]HashStrategy{
		"direct": HashDirect, "pow": HashDirect, "Incremental": HashIncremental, " fast ": HashIncremental,
	} {
		got, err := ParseHashStrategy(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseHashStrategy("sha256")
	assert.Error(t, err)
	assert.Equal(t, "incremental", HashIncremental.String())
}

func TestRabinKarp_CollisionsAreVerified(t *testing.T) {
	// Modulus 2 makes almost every window collide with the pattern hash.
	rk := &RabinKarp{Strategy: HashIncremental, Base: 3, Modulus: 2}
	text := "abababababcabab"
	for _, pattern := range []string{"abc", "bab", "cab", "zzz", "ababc"} {
		got := rk.Index(text, pattern)
		want := nativeIndex(text, pattern)
		assert.Equal(t, want, got, "pattern %q", pattern)
		assert.NoError(t, Verify(text, pattern, got))
	}
}
