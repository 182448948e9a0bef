package engine

// Backend is implemented by array engines (CPU, CUDA, OpenCL, ...).
// It is responsible for device discovery and context creation.
type Backend interface {
	Info() BackendInfo
	Available() bool
	Devices() ([]DeviceInfo, error)
	NewContext(deviceIndex int) (Context, error)
}

// Context executes array operations on one device.
//
// All operations write into caller-provided dst slices and never retain
// their arguments. A Context is safe for concurrent use as long as
// concurrent calls write to distinct dst slices.
type Context interface {
	Device() DeviceInfo

	// Broadcast fills dst, a dense row-major tensor of the given shape, with
	// src laid along axis and replicated along every other axis.
	// len(src) must equal shape[axis].
	Broadcast(dst []float64, shape []int, axis int, src []float64) error

	// Combine computes dst[i] = Σ_k coeffs[k]·srcs[k][i].
	Combine(dst []float64, coeffs []float64, srcs ...[]float64) error

	// Exp computes dst[i] = exp(i·angle[i]).
	Exp(dst []complex128, angle []float64) error

	// Stack concatenates equally sized fields along a new leading axis.
	Stack(dst []complex128, fields ...[]complex128) error

	Close() error
}
