package cpu

import "time"

// epoch anchors the monotonic clock reading so counts stay small.
var epoch = time.Now()

// ReadCycleCounter returns a monotonic tick count in nanoseconds.
// Ticks are only meaningful as differences.
func ReadCycleCounter() int64 {
	return int64(time.Since(epoch))
}

// CyclesSince returns the number of ticks elapsed since start.
func CyclesSince(start int64) int64 {
	return ReadCycleCounter() - start
}

// CyclesToNanoseconds converts a tick count to nanoseconds.
func CyclesToNanoseconds(cycles int64) int64 {
	return cycles
}

// CyclesToDuration converts a tick count to a time.Duration.
func CyclesToDuration(cycles int64) time.Duration {
	return time.Duration(CyclesToNanoseconds(cycles))
}
