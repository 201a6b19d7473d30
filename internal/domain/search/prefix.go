package search

// PrefixFunction returns the KMP failure table of pattern: lps[i] is the
// length of the longest proper prefix of pattern[:i+1] that is also a suffix
// of it. Always 0 <= lps[i] <= i.
func PrefixFunction(pattern string) []int {
	m := len(pattern)
	lps := make([]int, m)
	length := 0
	for i := 1; i < m; {
		switch {
		case pattern[i] == pattern[length]:
			length++
			lps[i] = length
			i++
		case length != 0:
			// Fall back without advancing i.
			length = lps[length-1]
		default:
			lps[i] = 0
			i++
		}
	}
	return lps
}
