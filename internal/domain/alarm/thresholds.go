package alarm

const (
	lowThreshold  = 17.0
	highThreshold = 21.0
)

// LowThreshold returns the lowest safe reading.
func LowThreshold() float64 {
	return lowThreshold
}

// HighThreshold returns the highest safe reading.
func HighThreshold() float64 {
	return highThreshold
}

// IsOutOfRange reports whether v lies strictly outside the safe range.
func IsOutOfRange(v float64) bool {
	return v < lowThreshold || v > highThreshold
}
