package algophase

import (
	"fmt"

	"github.com/cwbudde/algo-phase/engine"
	imath "github.com/cwbudde/algo-phase/internal/math"
)

// PhaseGradient holds, for each spatial direction, the angle 2π·n/(L·G) of
// every local site's global coordinate n, in checkerboard order.
//
// A PhaseGradient is immutable once built and may be shared freely.
type PhaseGradient struct {
	geom   Geometry
	shape  CheckerboardShape
	angles [3][]float64
}

// BuildPhaseGradient computes the gradient of the sub-lattice owned by the
// rank at coord on a process grid of the given extents, using the serial
// CPU engine.
func BuildPhaseGradient(local, grid, coord Dims) (*PhaseGradient, error) {
	geom, err := NewGeometry(local, grid, coord)
	if err != nil {
		return nil, err
	}

	ctx, err := engine.NewCPUBackend().NewContext(0)
	if err != nil {
		return nil, err
	}
	defer ctx.Close()

	return buildGradient(ctx, geom)
}

// denseAxis maps a spatial direction to its axis in the dense (T, Z, Y, X)
// tensor.
var denseAxis = [3]int{X: 3, Y: 2, Z: 1}

func buildGradient(ctx engine.Context, geom Geometry) (*PhaseGradient, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}

	local := geom.Local
	denseShape := []int{local[T], local[Z], local[Y], local[X]}
	dense := make([]float64, local.Volume())

	grad := &PhaseGradient{geom: geom, shape: geom.Shape()}

	for _, d := range SpatialDims {
		angles := axisAngles(geom, d)

		if err := ctx.Broadcast(dense, denseShape, denseAxis[d], angles); err != nil {
			return nil, fmt.Errorf("broadcast %s angles: %w", d, err)
		}

		cb := make([]float64, len(dense))
		packInto(cb, dense, local)
		grad.angles[d] = cb
	}

	return grad, nil
}

// axisAngles returns 2π·n/(L·G) for the rank's global coordinates n along d.
func axisAngles(geom Geometry, d Dim) []float64 {
	l := geom.Local[d]
	step := imath.TwoPi / float64(l*geom.Grid[d])
	offset := geom.Offset(d)

	angles := make([]float64, l)
	for i := range angles {
		angles[i] = float64(offset+i) * step
	}

	return angles
}

// Geometry returns the geometry the gradient was built for.
func (g *PhaseGradient) Geometry() Geometry {
	return g.geom
}

// Shape returns the checkerboard storage shape.
func (g *PhaseGradient) Shape() CheckerboardShape {
	return g.shape
}

// Angles returns a copy of the checkerboard angle field for direction d.
// T has no angle field and yields nil.
func (g *PhaseGradient) Angles(d Dim) []float64 {
	if d < X || d > Z {
		return nil
	}
	return append([]float64(nil), g.angles[d]...)
}

// AngleAt returns the angle for direction d at local site (x, y, z, t).
func (g *PhaseGradient) AngleAt(d Dim, x, y, z, t int) float64 {
	return g.angles[d][g.shape.SiteIndex(x, y, z, t)]
}
