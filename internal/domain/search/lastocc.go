package search

// LastOccurrence maps every byte value to the index of its rightmost
// occurrence in a pattern, or -1 when the byte does not occur.
type LastOccurrence [256]int

// NewLastOccurrence builds the bad-character table for pattern.
func NewLastOccurrence(pattern string) LastOccurrence {
	var t LastOccurrence
	for i := range t {
		t[i] = -1
	}
	// Later positions overwrite earlier ones.
	for i := 0; i < len(pattern); i++ {
		t[pattern[i]] = i
	}
	return t
}

// Get returns the last index of c in the pattern, or -1.
func (t *LastOccurrence) Get(c byte) int { return t[c] }
