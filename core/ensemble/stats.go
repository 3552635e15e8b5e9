// core/ensemble/stats.go
package ensemble

import "math"

// mean of xs; NaN when xs is empty, to keep "no data" distinct from a
// genuine zero potential.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStd is the sample (n−1) standard deviation. A single
// observation has no spread: one column yields 0, not NaN, so a
// one-file ensemble still produces usable error bars. Zero columns
// yield NaN.
func sampleStd(xs []float64) float64 {
	switch len(xs) {
	case 0:
		return math.NaN()
	case 1:
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
