package core

// Argmax returns the index of the maximum value. Ties go to the lowest
// index: a later candidate must be strictly greater to win.
func Argmax(values []int32) int {
	if len(values) == 0 {
		panic("argmax over no values")
	}

	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
