package algophase

import "fmt"

// A site (x, y, z, t) of the local lattice lives in parity plane
// (x+y+z+t) mod 2 at half-x index x/2. For a fixed (t, z, y) the even
// x samples therefore land in plane (t+z+y) mod 2 and the odd x samples in
// the other plane, which is the layout the solver library expects.

// SiteIndex returns the checkerboard offset of local site (x, y, z, t).
func (s CheckerboardShape) SiteIndex(x, y, z, t int) int {
	return s.Index((x+y+z+t)&1, t, z, y, x>>1)
}

func checkDense(n int, local Dims) error {
	for d := X; d <= T; d++ {
		if local[d] < 1 {
			return &GeometryError{Field: "local", Dim: d, Value: local[d], Reason: "extent must be positive"}
		}
	}
	if local[X]%2 != 0 {
		return &GeometryError{Field: "local", Dim: X, Value: local[X], Reason: "checkerboard packing needs an even extent"}
	}
	if n != local.Volume() {
		return fmt.Errorf("%w: %d values for local volume %v", ErrInvalidGeometry, n, local)
	}
	return nil
}

// PackCheckerboard reorders a dense row-major (T, Z, Y, X) tensor into
// checkerboard (2, T, Z, Y, X/2) order.
func PackCheckerboard[E Element](dense []E, local Dims) ([]E, error) {
	if err := checkDense(len(dense), local); err != nil {
		return nil, err
	}

	cb := make([]E, len(dense))
	packInto(cb, dense, local)

	return cb, nil
}

// UnpackCheckerboard is the inverse of PackCheckerboard.
func UnpackCheckerboard[E Element](cb []E, local Dims) ([]E, error) {
	if err := checkDense(len(cb), local); err != nil {
		return nil, err
	}

	lx := local[X]
	shape := CheckerboardShape{T: local[T], Z: local[Z], Y: local[Y], XHalf: lx / 2}
	dense := make([]E, len(cb))

	for t := 0; t < shape.T; t++ {
		for z := 0; z < shape.Z; z++ {
			for y := 0; y < shape.Y; y++ {
				parity := (t + z + y) & 1
				row := dense[((t*shape.Z+z)*shape.Y+y)*lx:][:lx]
				even := cb[shape.Index(parity, t, z, y, 0):][:shape.XHalf]
				odd := cb[shape.Index(1-parity, t, z, y, 0):][:shape.XHalf]
				for xh := 0; xh < shape.XHalf; xh++ {
					row[2*xh] = even[xh]
					row[2*xh+1] = odd[xh]
				}
			}
		}
	}

	return dense, nil
}

// packInto assumes dst and dense have already been validated against local.
func packInto[E Element](dst, dense []E, local Dims) {
	lx := local[X]
	shape := CheckerboardShape{T: local[T], Z: local[Z], Y: local[Y], XHalf: lx / 2}

	for t := 0; t < shape.T; t++ {
		for z := 0; z < shape.Z; z++ {
			for y := 0; y < shape.Y; y++ {
				parity := (t + z + y) & 1
				row := dense[((t*shape.Z+z)*shape.Y+y)*lx:][:lx]
				even := dst[shape.Index(parity, t, z, y, 0):][:shape.XHalf]
				odd := dst[shape.Index(1-parity, t, z, y, 0):][:shape.XHalf]
				for xh := 0; xh < shape.XHalf; xh++ {
					even[xh] = row[2*xh]
					odd[xh] = row[2*xh+1]
				}
			}
		}
	}
}
