package fft

import (
	"golang.org/x/sync/errgroup"

	m "github.com/cwbudde/fftcheck/internal/math"
)

// parallelMinSize is the length below which splitting across goroutines
// costs more than it saves.
const parallelMinSize = 256

// ParallelForward computes the forward FFT of x in place, splitting the
// even/odd sub-transforms across up to workers goroutines. It reports false,
// leaving x untouched, when len(x) is not a power of two.
func ParallelForward[T Complex](x []T, workers int) bool {
	n := len(x)
	if n != 0 && !m.IsPowerOf2(n) {
		return false
	}

	parallelForward(x, workers, m.ComputeTwiddleFactors[T](n), 1)

	return true
}

// parallelForward transforms x, a power-of-two slice. twiddle holds the roots
// of unity for len(x)*stride points, so twiddle[k*stride] is W_len(x)^k.
func parallelForward[T Complex](x []T, workers int, twiddle []T, stride int) {
	n := len(x)
	if workers <= 1 || n < parallelMinSize {
		DITForward(x)
		return
	}

	half := n / 2
	even := make([]T, half)
	odd := make([]T, half)

	for i := range half {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}

	var g errgroup.Group

	g.Go(func() error {
		parallelForward(even, workers/2, twiddle, stride*2)
		return nil
	})
	g.Go(func() error {
		parallelForward(odd, workers-workers/2, twiddle, stride*2)
		return nil
	})

	_ = g.Wait()

	for k := range half {
		t := twiddle[k*stride] * odd[k]
		x[k] = even[k] + t
		x[k+half] = even[k] - t
	}
}
