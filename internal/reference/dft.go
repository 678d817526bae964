// Package reference holds the direct O(n^2) discrete Fourier transform used as
// ground truth by the faster kernels and their tests.
package reference

import (
	"github.com/cwbudde/fftcheck/internal/fftypes"
	m "github.com/cwbudde/fftcheck/internal/math"
)

// NaiveDFT returns the forward DFT of src without modifying it:
// X[k] = sum_j src[j] * exp(-2*pi*i*j*k/n). It accepts any length.
// Sums are accumulated in complex128 regardless of T.
func NaiveDFT[T fftypes.Complex](src []T) []T {
	n := len(src)
	if n == 0 {
		return nil
	}

	twiddle := m.ComputeTwiddleFactors[complex128](n)
	dst := make([]T, n)

	for k := range n {
		var sum complex128

		for j := range n {
			sum += m.ToComplex128(src[j]) * twiddle[(j*k)%n]
		}

		dst[k] = m.ComplexFromFloat64[T](real(sum), imag(sum))
	}

	return dst
}

// NaiveDFTInPlace overwrites x with its forward DFT.
func NaiveDFTInPlace[T fftypes.Complex](x []T) {
	copy(x, NaiveDFT(x))
}
