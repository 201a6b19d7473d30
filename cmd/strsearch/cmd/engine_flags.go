package cmd

import (
	"fmt"

	"github.com/corey/strsearch/internal/domain/search"
	"github.com/creachadair/mds/mapset"
	"github.com/spf13/pflag"
)

// engineFlags are the search engine flags shared by bench and find.
type engineFlags struct {
	hash    string
	base    uint64
	modulus uint64
	algos   []string
}

func (ef *engineFlags) register(f *pflag.FlagSet) {
	f.StringVar(&ef.hash, "hash", search.HashDirect.String(), "Rabin-Karp hash strategy: direct, incremental")
	f.Uint64Var(&ef.base, "base", search.DefaultBase, "Rabin-Karp polynomial base")
	f.Uint64Var(&ef.modulus, "modulus", search.DefaultModulus, "Rabin-Karp modulus")
	f.StringSliceVarP(&ef.algos, "algo", "a", nil, "Algorithms to run (kmp, bm, rk, index, regexp); default all")
}

func (ef *engineFlags) options() ([]search.Option, error) {
	strategy, err := search.ParseHashStrategy(ef.hash)
	if err != nil {
		return nil, fmt.Errorf("--hash: %w", err)
	}
	return []search.Option{
		search.WithHashStrategy(strategy),
		search.WithBase(ef.base),
		search.WithModulus(ef.modulus),
	}, nil
}

// algorithms resolves --algo. Nil means every algorithm.
func (ef *engineFlags) algorithms() ([]search.Algorithm, error) {
	if len(ef.algos) == 0 {
		return nil, nil
	}
	out := make([]search.Algorithm, 0, len(ef.algos))
	seen := mapset.New[search.Algorithm]()
	for _, name := range ef.algos {
		a, err := search.ParseAlgorithm(name)
		if err != nil {
			return nil, fmt.Errorf("--algo: %w", err)
		}
		if !seen.Has(a) {
			seen.Add(a)
			out = append(out, a)
		}
	}
	return out, nil
}
