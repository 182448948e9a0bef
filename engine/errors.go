package engine

import "errors"

var (
	// ErrBackendUnavailable is returned when the backend is known but cannot
	// run on the current system (e.g., no device, driver missing, build tag off).
	ErrBackendUnavailable = errors.New("algophase/engine: backend unavailable")

	// ErrUnknownBackend is returned by ByName for names it does not recognise.
	ErrUnknownBackend = errors.New("algophase/engine: unknown backend")

	// ErrInvalidShape is returned for empty or non-positive tensor shapes, or
	// an axis outside the shape.
	ErrInvalidShape = errors.New("algophase/engine: invalid shape")

	// ErrNilSlice is returned when dst or a source is nil.
	ErrNilSlice = errors.New("algophase/engine: nil slice")

	// ErrLengthMismatch is returned when slice lengths disagree with each
	// other or with the requested shape.
	ErrLengthMismatch = errors.New("algophase/engine: length mismatch")

	// ErrContextClosed is returned by operations on a closed Context.
	ErrContextClosed = errors.New("algophase/engine: context closed")
)
