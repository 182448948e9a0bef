package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-phase/internal/cpu"
)

// CPUBackend executes every operation serially on the calling goroutine.
// It is the reference engine and the fallback when nothing else is usable.
type CPUBackend struct {
	device   DeviceInfo
	features cpu.Features
}

// NewCPUBackend returns a serial backend with a single host device.
func NewCPUBackend() *CPUBackend {
	f := cpu.DetectFeatures()
	return &CPUBackend{
		device:   hostDevice(f),
		features: f,
	}
}

func hostDevice(f cpu.Features) DeviceInfo {
	return DeviceInfo{
		Name:       "host",
		Vendor:     "go",
		Driver:     "native",
		ComputeCap: f.String(),
	}
}

func (b *CPUBackend) Info() BackendInfo {
	return BackendInfo{
		Name:        "cpu",
		Version:     "1",
		Description: "serial CPU engine",
		Features:    b.features.String(),
		Workers:     1,
	}
}

func (b *CPUBackend) Available() bool {
	return true
}

func (b *CPUBackend) Devices() ([]DeviceInfo, error) {
	return []DeviceInfo{b.device}, nil
}

func (b *CPUBackend) NewContext(deviceIndex int) (Context, error) {
	if deviceIndex != 0 {
		return nil, fmt.Errorf("cpu backend: device index %d out of range", deviceIndex)
	}
	return &cpuContext{device: b.device}, nil
}

type cpuContext struct {
	device DeviceInfo
	closed atomic.Bool
}

func (c *cpuContext) Device() DeviceInfo {
	return c.device
}

func (c *cpuContext) Broadcast(dst []float64, shape []int, axis int, src []float64) error {
	if c.closed.Load() {
		return ErrContextClosed
	}
	stride, err := validateBroadcast(dst, shape, axis, src)
	if err != nil {
		return err
	}
	broadcastRange(dst, shape[axis], stride, src, 0, len(dst))
	return nil
}

func (c *cpuContext) Combine(dst []float64, coeffs []float64, srcs ...[]float64) error {
	if c.closed.Load() {
		return ErrContextClosed
	}
	if err := validateCombine(dst, coeffs, srcs); err != nil {
		return err
	}
	combineRange(dst, coeffs, srcs, 0, len(dst))
	return nil
}

func (c *cpuContext) Exp(dst []complex128, angle []float64) error {
	if c.closed.Load() {
		return ErrContextClosed
	}
	if err := validateExp(dst, angle); err != nil {
		return err
	}
	expRange(dst, angle, 0, len(dst))
	return nil
}

func (c *cpuContext) Stack(dst []complex128, fields ...[]complex128) error {
	if c.closed.Load() {
		return ErrContextClosed
	}
	n, err := validateStack(dst, fields)
	if err != nil {
		return err
	}
	for k, f := range fields {
		copy(dst[k*n:(k+1)*n], f)
	}
	return nil
}

func (c *cpuContext) Close() error {
	c.closed.Store(true)
	return nil
}

var _ Backend = (*CPUBackend)(nil)
