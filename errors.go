package algophase

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by phase-cache operations.
var (
	// ErrDomain is returned when an integer argument is outside the domain of
	// the operation, e.g. the integer square root of a negative number or a
	// negative squared-momentum bound.
	ErrDomain = errors.New("algophase: argument outside domain")

	// ErrInvalidGeometry is returned when lattice extents, process-grid extents
	// or grid coordinates cannot describe a checkerboarded sub-lattice.
	// The local x-extent must be even.
	ErrInvalidGeometry = errors.New("algophase: invalid lattice geometry")

	// ErrShapeMismatch is returned when a field or stack does not match the
	// checkerboard shape of the phase cache it is used with. It always comes
	// wrapped in a ShapeError, which also matches ErrInvalidGeometry.
	ErrShapeMismatch = errors.New("algophase: field shape mismatch")

	// ErrNilField is returned when a nil field, stack or gradient is passed.
	ErrNilField = errors.New("algophase: nil field")

	// ErrClosed is returned by operations on a closed Phase.
	ErrClosed = errors.New("algophase: phase cache closed")
)

// GeometryError reports the offending dimension of an invalid geometry.
//
// It matches ErrInvalidGeometry under errors.Is.
type GeometryError struct {
	// Field names the geometry component: "local", "grid", "coord" or "global".
	Field  string
	Dim    Dim
	Value  int
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%v: %s[%s]=%d: %s", ErrInvalidGeometry, e.Field, e.Dim, e.Value, e.Reason)
}

func (e *GeometryError) Unwrap() error { return ErrInvalidGeometry }

// ShapeError reports a field or stack whose layout disagrees with the
// geometry it is combined with.
//
// It matches both ErrShapeMismatch and ErrInvalidGeometry under errors.Is.
type ShapeError struct {
	// Operand names the mismatched argument: "field" or "stack".
	Operand string
	Got     string
	Want    string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: %s is %s, want %s", ErrShapeMismatch, e.Operand, e.Got, e.Want)
}

func (e *ShapeError) Unwrap() []error { return []error{ErrShapeMismatch, ErrInvalidGeometry} }
