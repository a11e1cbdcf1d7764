package predictor

import "fmt"

// maxPow2Exponent is the largest exponent Pow2 accepts.
const maxPow2Exponent = 32

// Pow2 returns 2^x. Exponents above 32 are rejected.
func Pow2(x uint) (uint64, error) {
	if x > maxPow2Exponent {
		return 0, fmt.Errorf("%w: pow2 exponent %d is greater than %d",
			ErrInvalidArgument, x, maxPow2Exponent)
	}

	return uint64(1) << x, nil
}

// lowMask returns a value with the low n bits set.
func lowMask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << n) - 1
}
