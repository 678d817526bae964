package fftypes

// Complex is a type constraint for complex number types supported by the kernels.
type Complex interface {
	~complex64 | ~complex128
}

// Float is a type constraint for the real scalar types used to synthesize inputs.
type Float interface {
	~float32 | ~float64
}

// TransformFunc transforms x in place.
// Implementations must accept any length, including zero.
type TransformFunc[T Complex] func(x []T)
