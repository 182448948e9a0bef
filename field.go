package algophase

// Field is the phase exp(i p·x) of one momentum over the local sub-lattice,
// stored in checkerboard order.
type Field struct {
	Momentum Momentum
	Shape    CheckerboardShape
	Data     []complex128
}

// At returns the phase at local site (x, y, z, t).
func (f *Field) At(x, y, z, t int) complex128 {
	return f.Data[f.Shape.SiteIndex(x, y, z, t)]
}

// Dense returns the field in row-major (T, Z, Y, X) order.
func (f *Field) Dense() []complex128 {
	local := Dims{X: 2 * f.Shape.XHalf, Y: f.Shape.Y, Z: f.Shape.Z, T: f.Shape.T}
	dense, err := UnpackCheckerboard(f.Data, local)
	if err != nil {
		// Shape and Data are produced together, so only a hand-built Field gets here.
		panic(err)
	}
	return dense
}

// FieldStack holds one Field per momentum along a leading axis:
// Data[k*Shape.Len() : (k+1)*Shape.Len()] is the phase of Momenta[k].
type FieldStack struct {
	Momenta []Momentum
	Shape   CheckerboardShape
	Data    []complex128
}

// Len returns the number of fields in the stack.
func (s *FieldStack) Len() int {
	return len(s.Momenta)
}

// Field returns entry k as a view sharing the stack's storage.
func (s *FieldStack) Field(k int) *Field {
	n := s.Shape.Len()
	return &Field{
		Momentum: s.Momenta[k],
		Shape:    s.Shape,
		Data:     s.Data[k*n : (k+1)*n : (k+1)*n],
	}
}

// IndexOf returns the first position of p in the stack, or -1.
func (s *FieldStack) IndexOf(p Momentum) int {
	for i, q := range s.Momenta {
		if q == p {
			return i
		}
	}
	return -1
}
