package engine

import "math"

// Validation and range kernels shared by the CPU engines. Every kernel
// operates on the half-open element range [lo, hi) so the parallel engine
// can split work into contiguous chunks.

func shapeVolume(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, ErrInvalidShape
	}

	maxInt := int(^uint(0) >> 1)
	vol := 1
	for _, s := range shape {
		if s < 1 {
			return 0, ErrInvalidShape
		}
		if vol > maxInt/s {
			return 0, ErrInvalidShape
		}
		vol *= s
	}

	return vol, nil
}

func validateBroadcast(dst []float64, shape []int, axis int, src []float64) (stride int, err error) {
	if dst == nil || src == nil {
		return 0, ErrNilSlice
	}

	vol, err := shapeVolume(shape)
	if err != nil {
		return 0, err
	}

	if axis < 0 || axis >= len(shape) {
		return 0, ErrInvalidShape
	}

	if len(dst) != vol || len(src) != shape[axis] {
		return 0, ErrLengthMismatch
	}

	stride = 1
	for _, s := range shape[axis+1:] {
		stride *= s
	}

	return stride, nil
}

func broadcastRange(dst []float64, extent, stride int, src []float64, lo, hi int) {
	for i := lo; i < hi; i++ {
		dst[i] = src[(i/stride)%extent]
	}
}

func validateCombine(dst []float64, coeffs []float64, srcs [][]float64) error {
	if dst == nil {
		return ErrNilSlice
	}

	if len(coeffs) != len(srcs) {
		return ErrLengthMismatch
	}

	for _, s := range srcs {
		if s == nil {
			return ErrNilSlice
		}
		if len(s) != len(dst) {
			return ErrLengthMismatch
		}
	}

	return nil
}

func combineRange(dst []float64, coeffs []float64, srcs [][]float64, lo, hi int) {
	for i := lo; i < hi; i++ {
		var acc float64
		for k, s := range srcs {
			acc += coeffs[k] * s[i]
		}
		dst[i] = acc
	}
}

func validateExp(dst []complex128, angle []float64) error {
	if dst == nil || angle == nil {
		return ErrNilSlice
	}

	if len(dst) != len(angle) {
		return ErrLengthMismatch
	}

	return nil
}

func expRange(dst []complex128, angle []float64, lo, hi int) {
	for i := lo; i < hi; i++ {
		s, c := math.Sincos(angle[i])
		dst[i] = complex(c, s)
	}
}

func validateStack(dst []complex128, fields [][]complex128) (n int, err error) {
	if dst == nil {
		return 0, ErrNilSlice
	}

	if len(fields) == 0 {
		if len(dst) != 0 {
			return 0, ErrLengthMismatch
		}
		return 0, nil
	}

	n = len(fields[0])
	for _, f := range fields {
		if f == nil {
			return 0, ErrNilSlice
		}
		if len(f) != n {
			return 0, ErrLengthMismatch
		}
	}

	if len(dst) != n*len(fields) {
		return 0, ErrLengthMismatch
	}

	return n, nil
}
