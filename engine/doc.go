// Package engine provides the array engines that evaluate phase fields.
//
// An engine is chosen explicitly by the caller and handed to the phase
// cache at construction. There is no process-wide engine registry. The
// package offers a serial CPU engine, a parallel CPU engine that fans
// contiguous chunks out over goroutines, and build-tagged device stubs
// (cuda, opencl) that report themselves unavailable until a device
// implementation lands.
package engine
