package errors

import "math"

// ValidatePositive reports an INVALID_CONFIG error when v is not a finite
// number strictly greater than zero.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateNonNegative reports an INVALID_CONFIG error when v is negative or
// not finite.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidConfig, "%s must not be negative, got %v", name, v)
	}
	return nil
}

// ValidateRange reports an INVALID_CONFIG error when v lies outside [lo, hi].
func ValidateRange(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return New(ErrCodeInvalidConfig, "%s must be within [%v, %v], got %v", name, lo, hi, v)
	}
	return nil
}

// ValidateIndex reports an INVALID_INDEX error when i is outside [0, count).
func ValidateIndex(i, count int) error {
	if i < 0 || i >= count {
		return New(ErrCodeInvalidIndex, "index %d out of range [0, %d)", i, count)
	}
	return nil
}
