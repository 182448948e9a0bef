//go:build !cuda

package engine

func newCUDABackend() (Backend, error) {
	return nil, ErrBackendUnavailable
}
