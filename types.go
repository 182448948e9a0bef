package algophase

import (
	"fmt"

	imath "github.com/cwbudde/algo-phase/internal/math"
)

// Element is the constraint for per-site values: real angles or complex phases.
type Element = imath.Element

// Dim indexes a lattice direction.
type Dim int

// Lattice directions in storage order. X runs fastest in memory.
const (
	X Dim = iota
	Y
	Z
	T
)

// SpatialDims are the directions a momentum is projected onto.
var SpatialDims = [3]Dim{X, Y, Z}

func (d Dim) String() string {
	switch d {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	case T:
		return "t"
	default:
		return fmt.Sprintf("dim(%d)", int(d))
	}
}

// Dims holds one integer per direction in (X, Y, Z, T) order.
type Dims [4]int

// Volume returns the product of all four extents.
func (d Dims) Volume() int {
	return d[X] * d[Y] * d[Z] * d[T]
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%dx%d", d[X], d[Y], d[Z], d[T])
}

// Geometry describes one rank's share of a periodic 4D lattice.
//
// The rank owns [Coord[d]*Local[d], (Coord[d]+1)*Local[d]) along each
// direction d of the global lattice of extent Local[d]*Grid[d].
type Geometry struct {
	Local Dims
	Grid  Dims
	Coord Dims
}

// NewGeometry validates and returns a Geometry.
func NewGeometry(local, grid, coord Dims) (Geometry, error) {
	g := Geometry{Local: local, Grid: grid, Coord: coord}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

// Validate checks that the geometry can be checkerboarded.
func (g Geometry) Validate() error {
	for d := X; d <= T; d++ {
		if g.Local[d] < 1 {
			return &GeometryError{Field: "local", Dim: d, Value: g.Local[d], Reason: "extent must be positive"}
		}
		if g.Grid[d] < 1 {
			return &GeometryError{Field: "grid", Dim: d, Value: g.Grid[d], Reason: "extent must be positive"}
		}
		if g.Coord[d] < 0 || g.Coord[d] >= g.Grid[d] {
			return &GeometryError{
				Field:  "coord",
				Dim:    d,
				Value:  g.Coord[d],
				Reason: fmt.Sprintf("outside process grid [0,%d)", g.Grid[d]),
			}
		}
	}

	if g.Local[X]%2 != 0 {
		return &GeometryError{Field: "local", Dim: X, Value: g.Local[X], Reason: "checkerboard packing needs an even extent"}
	}

	return nil
}

// Global returns the global lattice extents.
func (g Geometry) Global() Dims {
	var out Dims
	for d := range out {
		out[d] = g.Local[d] * g.Grid[d]
	}
	return out
}

// Offset returns the global coordinate of the rank's first site along d.
func (g Geometry) Offset(d Dim) int {
	return g.Coord[d] * g.Local[d]
}

// Shape returns the checkerboard storage shape of the local sub-lattice.
func (g Geometry) Shape() CheckerboardShape {
	return CheckerboardShape{
		T:     g.Local[T],
		Z:     g.Local[Z],
		Y:     g.Local[Y],
		XHalf: g.Local[X] / 2,
	}
}

func (g Geometry) String() string {
	return fmt.Sprintf("local=%v grid=%v coord=%v", g.Local, g.Grid, g.Coord)
}

// CheckerboardShape is the (2, T, Z, Y, XHalf) storage shape of a
// parity-split field. Each parity plane holds half of the local sites.
type CheckerboardShape struct {
	T, Z, Y, XHalf int
}

// Len returns the number of sites in both parity planes.
func (s CheckerboardShape) Len() int {
	return 2 * s.PlaneLen()
}

// PlaneLen returns the number of sites in one parity plane.
func (s CheckerboardShape) PlaneLen() int {
	return s.T * s.Z * s.Y * s.XHalf
}

// SliceLen returns the number of sites of one parity at a fixed time.
func (s CheckerboardShape) SliceLen() int {
	return s.Z * s.Y * s.XHalf
}

// Index returns the flat offset of (parity, t, z, y, xh).
func (s CheckerboardShape) Index(parity, t, z, y, xh int) int {
	return (((parity*s.T+t)*s.Z+z)*s.Y+y)*s.XHalf + xh
}

// Dims returns the shape as a slice, leading parity axis first.
func (s CheckerboardShape) Dims() []int {
	return []int{2, s.T, s.Z, s.Y, s.XHalf}
}

func (s CheckerboardShape) String() string {
	return fmt.Sprintf("(2,%d,%d,%d,%d)", s.T, s.Z, s.Y, s.XHalf)
}
