package bench

import "math"

// Stats aggregates a sequence of per-call times in seconds.
type Stats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// Aggregate returns min, max, and mean of samples. An empty sequence yields
// the zero Stats.
func Aggregate(samples []float64) Stats {
	if len(samples) == 0 {
		return Stats{}
	}
	s := Stats{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for _, v := range samples {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		sum += v
	}
	s.Mean = sum / float64(len(samples))
	return s
}

// StdDev returns the population standard deviation of samples.
func StdDev(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	mean := Aggregate(samples).Mean
	var ss float64
	for _, v := range samples {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(samples)))
}
