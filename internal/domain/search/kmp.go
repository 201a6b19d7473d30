package search

// KMPIndex returns the first occurrence of pattern in text using
// Knuth–Morris–Pratt. The text cursor never moves backwards: on a mismatch
// the pattern cursor falls back through the prefix function instead.
// O(n+m) time, O(m) extra space.
func KMPIndex(text, pattern string) int {
	if pos, ok := bounds(text, pattern); !ok {
		return pos
	}

	lps := PrefixFunction(pattern)
	n, m := len(text), len(pattern)
	i, j := 0, 0
	for i < n {
		if text[i] == pattern[j] {
			i++
			j++
			if j == m {
				return i - j
			}
			continue
		}
		if j != 0 {
			j = lps[j-1]
		} else {
			i++
		}
	}
	return NotFound
}
