package engine

import (
	"fmt"
	"runtime"
	"strings"
)

// Default returns the parallel engine when more than one CPU is usable and
// the serial engine otherwise.
func Default() Backend {
	if runtime.GOMAXPROCS(0) > 1 {
		return NewParallelBackend(0)
	}
	return NewCPUBackend()
}

// ByName constructs a backend from its name: "cpu", "parallel", "auto",
// "cuda" or "opencl". Device backends compiled out by build tags return
// ErrBackendUnavailable, as do backends with no usable device.
func ByName(name string, workers int) (Backend, error) {
	var (
		b   Backend
		err error
	)

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Default(), nil
	case "cpu", "serial":
		return NewCPUBackend(), nil
	case "parallel":
		return NewParallelBackend(workers), nil
	case "cuda":
		b, err = newCUDABackend()
	case "opencl":
		b, err = newOpenCLBackend()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if !b.Available() {
		return nil, fmt.Errorf("%s: %w", name, ErrBackendUnavailable)
	}

	return b, nil
}
