package sysfont

import "math/bits"

// NextPowerOfTwo returns the smallest power of two greater than or equal to
// n. Values of n below 1 return 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
