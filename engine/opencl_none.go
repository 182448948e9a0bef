//go:build !opencl

package engine

func newOpenCLBackend() (Backend, error) {
	return nil, ErrBackendUnavailable
}
