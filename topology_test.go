package algophase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartesianTopologyCoords(t *testing.T) {
	t.Parallel()

	grid := Dims{2, 1, 3, 2}

	seen := make(map[Dims]int)
	for rank := 0; rank < grid.Volume(); rank++ {
		topo, err := NewCartesianTopology(grid, rank)
		require.NoError(t, err)

		c := topo.GridCoord()
		for d := X; d <= T; d++ {
			require.True(t, c[d] >= 0 && c[d] < grid[d], "rank %d coord %v", rank, c)
		}

		_, dup := seen[c]
		require.False(t, dup, "coord %v assigned twice", c)
		seen[c] = rank

		assert.Equal(t, rank, topo.RankOf(c))
		assert.Equal(t, grid, topo.GridSize())
	}

	// T runs fastest.
	topo, _ := NewCartesianTopology(grid, 1)
	assert.Equal(t, Dims{0, 0, 0, 1}, topo.GridCoord())
	topo, _ = NewCartesianTopology(grid, 2)
	assert.Equal(t, Dims{0, 0, 1, 0}, topo.GridCoord())
	topo, _ = NewCartesianTopology(grid, 6)
	assert.Equal(t, Dims{1, 0, 0, 0}, topo.GridCoord())
}

func TestNewCartesianTopologyErrors(t *testing.T) {
	t.Parallel()

	_, err := NewCartesianTopology(Dims{1, 1, 1, 2}, 2)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = NewCartesianTopology(Dims{1, 1, 1, 2}, -1)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = NewCartesianTopology(Dims{1, 0, 1, 2}, 0)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestGeometryFromGlobal(t *testing.T) {
	t.Parallel()

	topo, err := NewCartesianTopology(Dims{2, 1, 1, 4}, 7)
	require.NoError(t, err)

	geom, err := GeometryFromGlobal(Dims{8, 4, 4, 16}, topo)
	require.NoError(t, err)

	assert.Equal(t, Dims{4, 4, 4, 4}, geom.Local)
	assert.Equal(t, Dims{2, 1, 1, 4}, geom.Grid)
	assert.Equal(t, Dims{1, 0, 0, 3}, geom.Coord)
	assert.Equal(t, Dims{8, 4, 4, 16}, geom.Global())
	assert.Equal(t, 4, geom.Offset(X))
	assert.Equal(t, 12, geom.Offset(T))
}

func TestGeometryFromGlobalErrors(t *testing.T) {
	t.Parallel()

	topo, err := NewCartesianTopology(Dims{3, 1, 1, 1}, 0)
	require.NoError(t, err)

	_, err = GeometryFromGlobal(Dims{8, 4, 4, 4}, topo)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	// 12/2 = 6 is even, 10/2 = 5 is not.
	topo, err = NewCartesianTopology(Dims{2, 1, 1, 1}, 1)
	require.NoError(t, err)

	_, err = GeometryFromGlobal(Dims{12, 4, 4, 4}, topo)
	require.NoError(t, err)

	_, err = GeometryFromGlobal(Dims{10, 4, 4, 4}, topo)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}
