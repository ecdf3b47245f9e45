package fuzzy

import "math"

// And is the fuzzy conjunction (minimum).
func And(a, b float64) float64 {
	return math.Min(a, b)
}

// Or is the fuzzy disjunction (maximum).
func Or(a, b float64) float64 {
	return math.Max(a, b)
}

// Not is the fuzzy complement. Values outside [0,1] are not clamped.
func Not(a float64) float64 {
	return 1 - a
}

// AndAll returns the minimum of degrees.
func AndAll(degrees ...float64) (float64, error) {
	if len(degrees) == 0 {
		return 0, ErrEmptyInput
	}
	v := degrees[0]
	for _, d := range degrees[1:] {
		v = And(v, d)
	}
	return v, nil
}

// OrAll returns the maximum of degrees.
func OrAll(degrees ...float64) (float64, error) {
	if len(degrees) == 0 {
		return 0, ErrEmptyInput
	}
	v := degrees[0]
	for _, d := range degrees[1:] {
		v = Or(v, d)
	}
	return v, nil
}
