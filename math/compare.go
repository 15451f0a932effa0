package math

// MinInt returns the smaller of a and b
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// MaxInt returns the larger of a and b
func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ClampInt restricts v to the range [lo, hi]. If hi < lo, lo wins.
func ClampInt(v, lo, hi int) int {
	return MaxInt(lo, MinInt(v, hi))
}

// Clamp restricts v to the range [lo, hi]. If hi < lo, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
