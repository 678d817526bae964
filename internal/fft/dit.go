package fft

import m "github.com/cwbudde/fftcheck/internal/math"

// DITForward computes the forward FFT of x in place using iterative radix-2
// decimation in time. It reports false, leaving x untouched, when len(x) is
// not a power of two. An empty slice is handled trivially.
func DITForward[T Complex](x []T) bool {
	n := len(x)
	if n == 0 {
		return true
	}

	if !m.IsPowerOf2(n) {
		return false
	}

	if n == 1 {
		return true
	}

	for i, j := range m.ComputeBitReversalIndices(n) {
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}

	twiddle := m.ComputeTwiddleFactors[T](n)

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		step := n / size

		for start := 0; start < n; start += size {
			for k := range half {
				w := twiddle[k*step]
				a := x[start+k]
				b := w * x[start+k+half]
				x[start+k] = a + b
				x[start+k+half] = a - b
			}
		}
	}

	return true
}
