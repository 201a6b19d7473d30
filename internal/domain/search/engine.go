package search

import "fmt"

// Engine binds every Algorithm to one Searcher. The Rabin–Karp searcher is
// configured once at construction.
type Engine struct {
	searchers [numAlgorithms]Searcher
	rk        *RabinKarp
}

// Option configures an Engine.
type Option func(*RabinKarp)

// WithHashStrategy selects the Rabin–Karp hash strategy.
func WithHashStrategy(s HashStrategy) Option {
	return func(rk *RabinKarp) { rk.Strategy = s }
}

// WithBase sets the Rabin–Karp polynomial base.
func WithBase(base uint64) Option {
	return func(rk *RabinKarp) { rk.Base = base }
}

// WithModulus sets the Rabin–Karp modulus.
func WithModulus(modulus uint64) Option {
	return func(rk *RabinKarp) { rk.Modulus = modulus }
}

// NewEngine returns an engine with all five searchers. It fails if the
// Rabin–Karp parameters cannot produce a hash.
func NewEngine(opts ...Option) (*Engine, error) {
	rk := NewRabinKarp(HashDirect)
	for _, opt := range opts {
		opt(rk)
	}
	if rk.Modulus < 2 {
		return nil, fmt.Errorf("rabin-karp modulus must be at least 2, got %d", rk.Modulus)
	}
	if rk.Base == 0 {
		return nil, fmt.Errorf("rabin-karp base must be positive")
	}
	if rk.Strategy != HashDirect && rk.Strategy != HashIncremental {
		return nil, fmt.Errorf("invalid hash strategy %v", rk.Strategy)
	}

	e := &Engine{rk: rk}
	for _, a := range Algorithms() {
		switch a {
		case KMP:
			e.searchers[a] = SearcherFunc(KMPIndex)
		case BoyerMoore:
			e.searchers[a] = SearcherFunc(BoyerMooreIndex)
		case RabinKarpHash:
			e.searchers[a] = rk
		case NativeIndex:
			e.searchers[a] = SearcherFunc(nativeIndex)
		case RegexpSearch:
			e.searchers[a] = newRegexpSearcher()
		default:
			panic(fmt.Sprintf("search: no searcher for %v", a))
		}
	}
	return e, nil
}

// Searcher returns the implementation bound to a.
func (e *Engine) Searcher(a Algorithm) Searcher {
	if !a.Valid() {
		panic(fmt.Sprintf("search: invalid algorithm %d", int(a)))
	}
	return e.searchers[a]
}

// Search runs algorithm a.
func (e *Engine) Search(a Algorithm, text, pattern string) int {
	return e.Searcher(a).Index(text, pattern)
}

// HashStrategy returns the Rabin–Karp strategy the engine was built with.
func (e *Engine) HashStrategy() HashStrategy { return e.rk.Strategy }
