package corpus

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Pattern lengths FromText aims for: short, medium, and long.
var derivedLengths = []int{5, 40, 150}

// FromText derives a short, a medium, and a long pattern from text, each
// taken verbatim from a different region so it is guaranteed to occur.
// Lengths that do not fit in text are skipped.
func FromText(text string) []string {
	var out []string
	for i, n := range derivedLengths {
		if n > len(text) {
			break
		}
		// Spread the slices over the text: 1/4, 1/2, 3/4.
		start := (len(text) - n) * (i + 1) / (len(derivedLengths) + 1)
		start, end := runeAligned(text, start, start+n)
		if end > start {
			out = append(out, text[start:end])
		}
	}
	return out
}

// runeAligned moves start back and end forward to UTF-8 rune boundaries.
func runeAligned(text string, start, end int) (int, int) {
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	return start, end
}

// Sample returns the built-in corpus: texts of increasing length, each with
// a short, medium, and long pattern taken from it plus one pattern that is
// absent from every text.
func Sample() *Corpus {
	texts := sampleTexts()
	absent := AbsentPattern(texts...)
	c := New()
	for _, t := range texts {
		if err := c.Add(t, append(FromText(t), absent)...); err != nil {
			panic(err) // sample texts are constants
		}
	}
	return c
}

func sampleTexts() []string {
	short := sampleParagraphs[0]
	medium := strings.Join(sampleParagraphs, "\n\n")

	var sb strings.Builder
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&sb, "Section %d.\n\n", i)
		for j := range sampleParagraphs {
			// Rotate paragraph order so sections are not byte-identical.
			sb.WriteString(sampleParagraphs[(i+j)%len(sampleParagraphs)])
			sb.WriteString("\n\n")
		}
	}
	return []string{short, medium, sb.String()}
}

var sampleParagraphs = []string{
	`String searching is one of the oldest problems in computing. Given a ` +
		`text and a pattern, the task is to report where the pattern first ` +
		`appears, or that it does not appear at all. The naive approach tries ` +
		`every alignment and compares character by character, which is simple ` +
		`and often fast enough, but degrades badly on repetitive input.`,

	`The Knuth-Morris-Pratt algorithm never moves backwards in the text. ` +
		`It precomputes, for every prefix of the pattern, the length of the ` +
		`longest proper prefix that is also a suffix, and uses that table to ` +
		`decide how far the pattern may slide after a mismatch without missing ` +
		`an occurrence. The result is a guaranteed linear running time.`,

	`Boyer-Moore compares the pattern from right to left. When a mismatch ` +
		`occurs, the bad-character rule looks up the last position of the ` +
		`offending character in the pattern and shifts the window so that the ` +
		`two line up, or past it entirely when the character is absent. On ` +
		`natural language this often skips most of the text.`,

	`Rabin-Karp replaces character comparisons with arithmetic. It keeps a ` +
		`polynomial hash of the current window and updates it in constant time ` +
		`as the window slides: subtract the outgoing character, multiply by the ` +
		`base, add the incoming one. Equal hashes only suggest a match, so each ` +
		`candidate is confirmed by a direct comparison.`,

	`Measuring such algorithms fairly takes care. Each call is short, so ` +
		`many calls are timed together and the total divided by their number. ` +
		`Trials are repeated to expose variance, and background work such as ` +
		`garbage collection is held back while the clock is running and ` +
		`settled before the next measurement begins.`,
}
