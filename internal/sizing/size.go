// Package sizing provides safe size arithmetic for 32-bit archive fields.
package sizing

import "math"

// ToUint32 converts a file size to uint32, returning overflowErr if it
// is negative or does not fit.
func ToUint32(size int64, overflowErr error) (uint32, error) {
	if size < 0 || size > math.MaxUint32 {
		return 0, overflowErr
	}
	return uint32(size), nil
}

// AddUint32 adds two uint32 values, returning (result, false) on overflow.
func AddUint32(a, b uint32) (uint32, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}
