package math

// Element is the constraint for per-site lattice values: real angles or
// complex phases.
type Element interface {
	~float64 | ~complex128
}
