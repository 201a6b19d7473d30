package search

import (
	"regexp"
	"strings"
	"sync"
)

// nativeIndex is the runtime's substring scan.
func nativeIndex(text, pattern string) int {
	return strings.Index(text, pattern)
}

// maxCachedPatterns bounds the compiled-expression cache. When full the
// cache is dropped wholesale rather than evicted entry by entry.
const maxCachedPatterns = 512

// regexpSearcher runs the pattern, quoted, through the regexp engine.
// Compiled expressions are cached per pattern so repeated calls measure
// matching rather than compilation. The engine decodes UTF-8: a pattern that
// is not valid UTF-8 does not compile and is reported as NotFound.
type regexpSearcher struct {
	mu    sync.Mutex
	cache map[string]*regexp.Regexp
}

func newRegexpSearcher() *regexpSearcher {
	return &regexpSearcher{cache: make(map[string]*regexp.Regexp)}
}

func (s *regexpSearcher) compile(pattern string) (*regexp.Regexp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if re, ok := s.cache[pattern]; ok {
		return re, nil
	}
	if len(s.cache) >= maxCachedPatterns {
		clear(s.cache)
	}
	re, err := regexp.Compile(regexp.QuoteMeta(pattern))
	if err != nil {
		return nil, err
	}
	s.cache[pattern] = re
	return re, nil
}

// Index returns the start of the leftmost match, or NotFound.
func (s *regexpSearcher) Index(text, pattern string) int {
	re, err := s.compile(pattern)
	if err != nil {
		return NotFound
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return NotFound
	}
	return loc[0]
}
