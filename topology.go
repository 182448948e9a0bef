package algophase

import "fmt"

// Topology reports the process grid and this rank's place in it.
// It is normally backed by the communicator that launched the job.
type Topology interface {
	GridSize() Dims
	GridCoord() Dims
}

// CartesianTopology places ranks on the process grid in lexicographic order
// with T running fastest:
//
//	rank = ((gx*Gy + gy)*Gz + gz)*Gt + gt
type CartesianTopology struct {
	Grid Dims
	Rank int
}

// NewCartesianTopology validates the grid and the rank.
func NewCartesianTopology(grid Dims, rank int) (CartesianTopology, error) {
	for d := X; d <= T; d++ {
		if grid[d] < 1 {
			return CartesianTopology{}, &GeometryError{Field: "grid", Dim: d, Value: grid[d], Reason: "extent must be positive"}
		}
	}

	if rank < 0 || rank >= grid.Volume() {
		return CartesianTopology{}, fmt.Errorf("%w: rank %d outside grid %v of %d ranks",
			ErrInvalidGeometry, rank, grid, grid.Volume())
	}

	return CartesianTopology{Grid: grid, Rank: rank}, nil
}

func (c CartesianTopology) GridSize() Dims {
	return c.Grid
}

func (c CartesianTopology) GridCoord() Dims {
	var coord Dims
	r := c.Rank
	for d := T; d >= X; d-- {
		coord[d] = r % c.Grid[d]
		r /= c.Grid[d]
	}
	return coord
}

// RankOf returns the rank owning grid coordinate coord.
func (c CartesianTopology) RankOf(coord Dims) int {
	r := 0
	for d := X; d <= T; d++ {
		r = r*c.Grid[d] + coord[d]
	}
	return r
}

// GeometryFromGlobal splits the global lattice evenly over topo's process
// grid and returns the share owned by topo's rank.
func GeometryFromGlobal(global Dims, topo Topology) (Geometry, error) {
	grid := topo.GridSize()

	var local Dims
	for d := X; d <= T; d++ {
		if global[d] < 1 {
			return Geometry{}, &GeometryError{Field: "global", Dim: d, Value: global[d], Reason: "extent must be positive"}
		}
		if grid[d] < 1 {
			return Geometry{}, &GeometryError{Field: "grid", Dim: d, Value: grid[d], Reason: "extent must be positive"}
		}
		if global[d]%grid[d] != 0 {
			return Geometry{}, &GeometryError{
				Field:  "global",
				Dim:    d,
				Value:  global[d],
				Reason: fmt.Sprintf("not divisible by grid extent %d", grid[d]),
			}
		}
		local[d] = global[d] / grid[d]
	}

	return NewGeometry(local, grid, topo.GridCoord())
}
