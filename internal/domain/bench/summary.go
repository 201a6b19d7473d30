package bench

// Summary picks out the extremes of a run, separately for the implemented
// algorithms and the baselines. Fastest compares Min; slowest compares Max.
// Fields are nil when the group has no records.
type Summary struct {
	FastestOwn      *Record
	SlowestOwn      *Record
	FastestBaseline *Record
	SlowestBaseline *Record
}

// Summarize scans t once.
func Summarize(t *Table) Summary {
	var s Summary
	for _, r := range t.Records() {
		fastest, slowest := &s.FastestOwn, &s.SlowestOwn
		if r.Algorithm.IsBaseline() {
			fastest, slowest = &s.FastestBaseline, &s.SlowestBaseline
		}
		if *fastest == nil || r.Min < (*fastest).Min {
			*fastest = r
		}
		if *slowest == nil || r.Max > (*slowest).Max {
			*slowest = r
		}
	}
	return s
}
