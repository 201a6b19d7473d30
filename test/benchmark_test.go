package test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/corey/strsearch/internal/domain/corpus"
	"github.com/corey/strsearch/internal/domain/search"
)

// =============================================================================
// Performance Benchmarks: every algorithm over the sample corpus, plus the
// Boyer-Moore worst case and the two Rabin-Karp hash strategies.
// =============================================================================

var benchSink int

func BenchmarkSampleCorpus(b *testing.B) {
	e, err := search.NewEngine()
	if err != nil {
		b.Fatal(err)
	}
	c := corpus.Sample()
	for _, a := range search.Algorithms() {
		s := e.Searcher(a)
		for ti, entry := range c.Entries() {
			for pi, p := range entry.Patterns {
				name := fmt.Sprintf("%s/text%d_%dB/pattern%d_%dB", a, ti, len(entry.Text), pi, len(p))
				b.Run(name, func(b *testing.B) {
					b.SetBytes(int64(len(entry.Text)))
					for i := 0; i < b.N; i++ {
						benchSink = s.Index(entry.Text, p)
					}
				})
			}
		}
	}
}

func BenchmarkRabinKarp_HashStrategy(b *testing.B) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 200)
	for _, m := range []int{4, 32, 256} {
		pattern := strings.Repeat("z", m)
		for _, s := range []search.HashStrategy{search.HashDirect, search.HashIncremental} {
			rk := search.NewRabinKarp(s)
			b.Run(fmt.Sprintf("%s/m%d", s, m), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					benchSink = rk.Index(text, pattern)
				}
			})
		}
	}
}

func BenchmarkBoyerMoore_WorstCase(b *testing.B) {
	// Every alignment matches all but the first pattern byte.
	text := strings.Repeat("a", 10000)
	pattern := "b" + strings.Repeat("a", 99)
	e, err := search.NewEngine()
	if err != nil {
		b.Fatal(err)
	}
	for _, a := range []search.Algorithm{search.BoyerMoore, search.KMP, search.NativeIndex} {
		searcher := e.Searcher(a)
		b.Run(a.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				benchSink = searcher.Index(text, pattern)
			}
		})
	}
}

func BenchmarkPrefixFunction(b *testing.B) {
	pattern := strings.Repeat("abcab", 200)
	for i := 0; i < b.N; i++ {
		benchSink = len(search.PrefixFunction(pattern))
	}
}
