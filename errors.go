package fftcheck

import "errors"

// Sentinel errors returned by harness operations. A failed validation is not
// an error: it is reported as a false verdict.
var (
	// ErrNilContext is returned when a lifecycle operation receives a nil Context.
	ErrNilContext = errors.New("fftcheck: nil context")

	// ErrContextDestroyed is returned when a Context is used or destroyed
	// after Destroy.
	ErrContextDestroyed = errors.New("fftcheck: context already destroyed")

	// ErrNilKernel is returned when a driver is created without a candidate
	// or baseline kernel.
	ErrNilKernel = errors.New("fftcheck: nil kernel")

	// ErrNilCommunicator is returned when a driver is created without a
	// communicator.
	ErrNilCommunicator = errors.New("fftcheck: nil communicator")

	// ErrUnknownKernel is returned for kernel names that are not registered.
	ErrUnknownKernel = errors.New("fftcheck: unknown kernel")

	// ErrInvalidConfig is returned when a configuration fails validation.
	ErrInvalidConfig = errors.New("fftcheck: invalid configuration")
)
