//go:build opencl

package engine

// OpenCLBackend is a stub backend enabled with the "opencl" build tag.
// It does not provide a working implementation yet.
type OpenCLBackend struct{}

func (b *OpenCLBackend) Info() BackendInfo {
	return BackendInfo{
		Name:        "opencl",
		Version:     "stub",
		Description: "OpenCL engine stub (no implementation)",
	}
}

func (b *OpenCLBackend) Available() bool {
	return false
}

func (b *OpenCLBackend) Devices() ([]DeviceInfo, error) {
	return nil, ErrBackendUnavailable
}

func (b *OpenCLBackend) NewContext(_ int) (Context, error) {
	return nil, ErrBackendUnavailable
}

func newOpenCLBackend() (Backend, error) {
	return &OpenCLBackend{}, nil
}
