package scoring

import "math"

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundHalfDown rounds to one decimal place with exact halves resolving
// downward, so a composite sitting on a band boundary lands in the lower
// recommendation category.
func roundHalfDown(v float64) float64 {
	return math.Ceil(v*10-0.5) / 10
}
