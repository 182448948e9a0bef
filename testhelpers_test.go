package algophase

import (
	"math/cmplx"
	"testing"
)

// Shared test helper functions used across multiple test files

func assertApproxComplex128Tolf(t *testing.T, got, want complex128, tol float64, format string, args ...any) {
	t.Helper()

	if cmplx.Abs(got-want) > tol {
		t.Fatalf(format+": got %v want %v (diff=%v)", append(args, got, want, cmplx.Abs(got-want))...)
	}
}

func mustGeometry(t *testing.T, local, grid, coord Dims) Geometry {
	t.Helper()

	g, err := NewGeometry(local, grid, coord)
	if err != nil {
		t.Fatalf("NewGeometry(%v, %v, %v): %v", local, grid, coord, err)
	}

	return g
}

func mustPhase(t *testing.T, geom Geometry, opts ...Option) *Phase {
	t.Helper()

	p, err := NewPhase(geom, opts...)
	if err != nil {
		t.Fatalf("NewPhase(%v): %v", geom, err)
	}
	t.Cleanup(func() { _ = p.Close() })

	return p
}
