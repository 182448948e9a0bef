package engine

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends() []Backend {
	// Two workers with a volume above minChunk exercises the chunked path.
	return []Backend{NewCPUBackend(), NewParallelBackend(2), NewParallelBackend(7)}
}

func newContext(t *testing.T, b Backend) Context {
	t.Helper()

	ctx, err := b.NewContext(0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctx.Close() })

	return ctx
}

func TestBroadcast(t *testing.T) {
	t.Parallel()

	shape := []int{3, 4, 5}
	for _, b := range backends() {
		t.Run(b.Info().Name, func(t *testing.T) {
			ctx := newContext(t, b)

			for axis := range shape {
				src := make([]float64, shape[axis])
				for i := range src {
					src[i] = float64(10*axis + i)
				}

				dst := make([]float64, 60)
				require.NoError(t, ctx.Broadcast(dst, shape, axis, src))

				for z := 0; z < 3; z++ {
					for y := 0; y < 4; y++ {
						for x := 0; x < 5; x++ {
							coord := [3]int{z, y, x}
							assert.Equal(t, src[coord[axis]], dst[(z*4+y)*5+x], "axis %d at %v", axis, coord)
						}
					}
				}
			}
		})
	}
}

func TestCombineAndExpLarge(t *testing.T) {
	t.Parallel()

	const n = 3*minChunk + 17

	a := make([]float64, n)
	c := make([]float64, n)
	for i := range a {
		a[i] = float64(i) * 1e-3
		c[i] = -float64(i) * 2e-3
	}

	want := make([]complex128, n)
	for i := range want {
		want[i] = cmplx.Exp(complex(0, 2*a[i]-c[i]))
	}

	for _, b := range backends() {
		t.Run(b.Info().Name, func(t *testing.T) {
			ctx := newContext(t, b)

			angle := make([]float64, n)
			require.NoError(t, ctx.Combine(angle, []float64{2, -1}, a, c))

			got := make([]complex128, n)
			require.NoError(t, ctx.Exp(got, angle))

			for i := range got {
				if cmplx.Abs(got[i]-want[i]) > 1e-12 {
					t.Fatalf("site %d: got %v want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestExpZeroIsExactlyOne(t *testing.T) {
	t.Parallel()

	for _, b := range backends() {
		ctx := newContext(t, b)

		dst := make([]complex128, 8)
		require.NoError(t, ctx.Exp(dst, make([]float64, 8)))

		for i, v := range dst {
			assert.Equal(t, complex(1, 0), v, "%s site %d", b.Info().Name, i)
		}
	}
}

func TestStack(t *testing.T) {
	t.Parallel()

	fields := [][]complex128{{1, 2}, {3i, 4i}, {5, 6 + 1i}}
	for _, b := range backends() {
		ctx := newContext(t, b)

		dst := make([]complex128, 6)
		require.NoError(t, ctx.Stack(dst, fields...))
		assert.Equal(t, []complex128{1, 2, 3i, 4i, 5, 6 + 1i}, dst, b.Info().Name)

		require.NoError(t, ctx.Stack([]complex128{}), "empty stack")
	}
}

func TestContextErrors(t *testing.T) {
	t.Parallel()

	for _, b := range backends() {
		ctx := newContext(t, b)

		assert.ErrorIs(t, ctx.Broadcast(make([]float64, 6), []int{2, 3}, 2, make([]float64, 3)), ErrInvalidShape)
		assert.ErrorIs(t, ctx.Broadcast(make([]float64, 6), []int{2, 0}, 0, make([]float64, 2)), ErrInvalidShape)
		assert.ErrorIs(t, ctx.Broadcast(make([]float64, 5), []int{2, 3}, 0, make([]float64, 2)), ErrLengthMismatch)
		assert.ErrorIs(t, ctx.Broadcast(nil, []int{2, 3}, 0, make([]float64, 2)), ErrNilSlice)
		assert.ErrorIs(t, ctx.Combine(make([]float64, 2), []float64{1}, make([]float64, 3)), ErrLengthMismatch)
		assert.ErrorIs(t, ctx.Combine(make([]float64, 2), []float64{1, 2}, make([]float64, 2)), ErrLengthMismatch)
		assert.ErrorIs(t, ctx.Exp(make([]complex128, 2), make([]float64, 3)), ErrLengthMismatch)
		assert.ErrorIs(t, ctx.Stack(make([]complex128, 3), []complex128{1, 2}, []complex128{3}), ErrLengthMismatch)

		require.NoError(t, ctx.Close())
		assert.ErrorIs(t, ctx.Exp(make([]complex128, 1), []float64{math.Pi}), ErrContextClosed)
	}
}

func TestNewContextDeviceIndex(t *testing.T) {
	t.Parallel()

	for _, b := range backends() {
		_, err := b.NewContext(1)
		assert.Error(t, err, b.Info().Name)

		devs, err := b.Devices()
		require.NoError(t, err)
		require.Len(t, devs, 1)
		assert.Equal(t, "host", devs[0].Name)
	}
}

func TestByName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"cpu", "parallel", "auto", "", " Parallel "} {
		b, err := ByName(name, 3)
		require.NoError(t, err, name)
		assert.True(t, b.Available(), name)
	}

	b, err := ByName("parallel", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Info().Workers)

	_, err = ByName("tpu", 0)
	assert.ErrorIs(t, err, ErrUnknownBackend)

	// Device stubs are unavailable whether or not their build tag is set.
	for _, name := range []string{"cuda", "opencl"} {
		_, err := ByName(name, 0)
		assert.True(t, errors.Is(err, ErrBackendUnavailable), "%s: %v", name, err)
	}
}

func TestDefaultIsUsable(t *testing.T) {
	t.Parallel()

	b := Default()
	require.True(t, b.Available())
	assert.NotEmpty(t, b.Info().Features)
}
