package engine

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-phase/internal/cpu"
)

// minChunk is the smallest element range handed to a worker. Below it the
// goroutine overhead dominates the sincos work.
const minChunk = 4096

// ParallelBackend splits every operation into contiguous chunks and runs
// them on a bounded set of goroutines.
type ParallelBackend struct {
	workers  int
	device   DeviceInfo
	features cpu.Features
}

// NewParallelBackend returns a backend using at most workers goroutines per
// operation. workers <= 0 selects runtime.GOMAXPROCS(0).
func NewParallelBackend(workers int) *ParallelBackend {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	f := cpu.DetectFeatures()
	return &ParallelBackend{
		workers:  workers,
		device:   hostDevice(f),
		features: f,
	}
}

func (b *ParallelBackend) Info() BackendInfo {
	return BackendInfo{
		Name:        "parallel",
		Version:     "1",
		Description: fmt.Sprintf("chunked CPU engine (%d workers)", b.workers),
		Features:    b.features.String(),
		Workers:     b.workers,
	}
}

func (b *ParallelBackend) Available() bool {
	return true
}

func (b *ParallelBackend) Devices() ([]DeviceInfo, error) {
	return []DeviceInfo{b.device}, nil
}

func (b *ParallelBackend) NewContext(deviceIndex int) (Context, error) {
	if deviceIndex != 0 {
		return nil, fmt.Errorf("parallel backend: device index %d out of range", deviceIndex)
	}
	return &parallelContext{device: b.device, workers: b.workers}, nil
}

type parallelContext struct {
	device  DeviceInfo
	workers int
	closed  atomic.Bool
}

func (c *parallelContext) Device() DeviceInfo {
	return c.device
}

// run calls fn over [0, n) split into at most c.workers chunks.
func (c *parallelContext) run(n int, fn func(lo, hi int)) {
	chunks := c.workers
	if n/minChunk < chunks {
		chunks = n / minChunk
	}

	if chunks <= 1 {
		fn(0, n)
		return
	}

	size := (n + chunks - 1) / chunks

	var g errgroup.Group
	g.SetLimit(c.workers)

	for lo := 0; lo < n; lo += size {
		lo, hi := lo, min(lo+size, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}

	_ = g.Wait()
}

func (c *parallelContext) Broadcast(dst []float64, shape []int, axis int, src []float64) error {
	if c.closed.Load() {
		return ErrContextClosed
	}
	stride, err := validateBroadcast(dst, shape, axis, src)
	if err != nil {
		return err
	}
	extent := shape[axis]
	c.run(len(dst), func(lo, hi int) {
		broadcastRange(dst, extent, stride, src, lo, hi)
	})
	return nil
}

func (c *parallelContext) Combine(dst []float64, coeffs []float64, srcs ...[]float64) error {
	if c.closed.Load() {
		return ErrContextClosed
	}
	if err := validateCombine(dst, coeffs, srcs); err != nil {
		return err
	}
	c.run(len(dst), func(lo, hi int) {
		combineRange(dst, coeffs, srcs, lo, hi)
	})
	return nil
}

func (c *parallelContext) Exp(dst []complex128, angle []float64) error {
	if c.closed.Load() {
		return ErrContextClosed
	}
	if err := validateExp(dst, angle); err != nil {
		return err
	}
	c.run(len(dst), func(lo, hi int) {
		expRange(dst, angle, lo, hi)
	})
	return nil
}

func (c *parallelContext) Stack(dst []complex128, fields ...[]complex128) error {
	if c.closed.Load() {
		return ErrContextClosed
	}
	n, err := validateStack(dst, fields)
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(c.workers)

	for k, f := range fields {
		k, f := k, f
		g.Go(func() error {
			copy(dst[k*n:(k+1)*n], f)
			return nil
		})
	}

	return g.Wait()
}

func (c *parallelContext) Close() error {
	c.closed.Store(true)
	return nil
}

var _ Backend = (*ParallelBackend)(nil)
