package engine

// DeviceInfo describes an execution device.
type DeviceInfo struct {
	Name       string
	Vendor     string
	Driver     string
	MemoryMB   int
	ComputeCap string
}

// BackendInfo describes a backend implementation.
type BackendInfo struct {
	Name        string
	Version     string
	Description string
	// Features lists the host SIMD features, e.g. "amd64+avx2+fma".
	Features string
	// Workers is the maximum number of goroutines one operation may use.
	Workers int
}
