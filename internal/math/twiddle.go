package math

import (
	"math"

	"github.com/cwbudde/fftcheck/internal/fftypes"
)

// ComputeTwiddleFactors returns the roots of unity for a size-n forward
// transform: W_n^k = exp(-2*pi*i*k/n) for k = 0..n-1.
func ComputeTwiddleFactors[T fftypes.Complex](n int) []T {
	if n <= 0 {
		return nil
	}

	twiddle := make([]T, n)
	for k := range n {
		angle := -TwoPi * float64(k) / float64(n)
		twiddle[k] = ComplexFromFloat64[T](math.Cos(angle), math.Sin(angle))
	}

	return twiddle
}

// ComplexFromFloat64 creates a complex number of type T from float64 components.
func ComplexFromFloat64[T fftypes.Complex](re, im float64) T {
	return T(complex(re, im))
}

// ToComplex128 widens v to complex128.
func ToComplex128[T fftypes.Complex](v T) complex128 {
	return complex128(v)
}

// Conj returns the complex conjugate of v.
func Conj[T fftypes.Complex](v T) T {
	c := ToComplex128(v)
	return ComplexFromFloat64[T](real(c), -imag(c))
}
