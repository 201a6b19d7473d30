package search

// BoyerMooreIndex returns the first occurrence of pattern in text using
// Boyer–Moore with the bad-character rule only. There is no good-suffix
// table, so the worst case is O(n·m) rather than O(n+m); the table costs
// O(m + alphabet).
func BoyerMooreIndex(text, pattern string) int {
	if pos, ok := bounds(text, pattern); !ok {
		return pos
	}

	last := NewLastOccurrence(pattern)
	n, m := len(text), len(pattern)
	for i := 0; i <= n-m; {
		j := m - 1
		for j >= 0 && text[i+j] == pattern[j] {
			j--
		}
		if j < 0 {
			return i
		}
		// The mismatched byte may last occur at or right of j, which would
		// give a non-positive shift.
		i += max(1, j-last.Get(text[i+j]))
	}
	return NotFound
}
