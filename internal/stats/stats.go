// Package stats holds the numeric conventions shared by every
// aggregator: population standard deviation, the documented rounding
// policy, and word counting for review text.
package stats

import (
	"math"
	"regexp"
)

// Round rounds x half-away-from-zero to the given number of decimal
// places. All published statistics go through this helper so that the
// output is comparable across runs.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// Mean returns the arithmetic mean of xs. ok is false for an empty
// sample; callers must publish null, not zero, in that case.
func Mean(xs []float64) (mean float64, ok bool) {
	if len(xs) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs)), true
}

// PopulationStd returns the population standard deviation (divide by N,
// not N-1). Fewer than two samples yield exactly 0.
func PopulationStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m, _ := Mean(xs)
	sum := 0.0
	for _, v := range xs {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

// MinMax returns the extrema of xs. ok is false for an empty sample.
func MinMax(xs []float64) (min, max float64, ok bool) {
	if len(xs) == 0 {
		return 0, 0, false
	}
	min, max = xs[0], xs[0]
	for _, v := range xs[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, true
}

var wordPattern = regexp.MustCompile(`\w+`)

// WordCount counts word tokens the same way the upstream tooling did.
func WordCount(s string) int {
	if s == "" {
		return 0
	}
	return len(wordPattern.FindAllString(s, -1))
}
