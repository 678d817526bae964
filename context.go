package fftcheck

import (
	"runtime"

	m "github.com/cwbudde/fftcheck/internal/math"
)

// Context is the steady-state working set of one rank: the primary buffer the
// kernels transform in place and the real and imaginary scratch it is built
// from. After every Reset, X[i] == complex(Real[i], Imag[i]).
//
// A Context is owned by the goroutine driving its rank and must not be
// mutated concurrently with a lifecycle operation.
type Context[T Complex] struct {
	X    []T
	Real []float64
	Imag []float64

	observed  T
	destroyed bool
}

func newContext[T Complex](n int) *Context[T] {
	return &Context[T]{
		X:    make([]T, n),
		Real: make([]float64, n),
		Imag: make([]float64, n),
	}
}

// Len returns the configured problem size.
func (c *Context[T]) Len() int {
	return len(c.X)
}

// Observed returns the last sample published by Compute or Best.
func (c *Context[T]) Observed() T {
	return c.observed
}

// rebuild restores the primary buffer from the scratch sequences.
func (c *Context[T]) rebuild() {
	for i := range c.X {
		c.X[i] = m.ComplexFromFloat64[T](c.Real[i], c.Imag[i])
	}
}

// publish makes the transformed buffer an observable result of the call, so
// the transform cannot be treated as dead code.
func (c *Context[T]) publish() {
	if n := len(c.X); n > 0 {
		c.observed = c.X[n-1]
	}

	runtime.KeepAlive(c.X)
}

func (c *Context[T]) check() error {
	if c == nil {
		return ErrNilContext
	}

	if c.destroyed {
		return ErrContextDestroyed
	}

	return nil
}

func (c *Context[T]) release() {
	c.X, c.Real, c.Imag = nil, nil, nil
	c.destroyed = true
}
