package math

import "math/bits"

// ISqrt returns floor(sqrt(n)) for n >= 0 using integer Newton iteration.
// ok is false for negative n.
func ISqrt(n int) (root int, ok bool) {
	switch {
	case n < 0:
		return 0, false
	case n == 0:
		return 0, true
	}

	x := 1 << ((bits.Len(uint(n)) + 1) >> 1)
	for {
		y := (x + n/x) >> 1
		if y >= x {
			return x, true
		}
		x = y
	}
}
