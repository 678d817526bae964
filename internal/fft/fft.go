// Package fft implements the in-place forward transform kernels: an iterative
// radix-2 DIT kernel, a parallel radix-2 kernel and a strategy dispatcher that
// falls back to the direct DFT for lengths that are not powers of two.
package fft

import "github.com/cwbudde/fftcheck/internal/fftypes"

// Complex is a type alias for the complex number constraint.
// The canonical definition is in internal/fftypes.
type Complex = fftypes.Complex

// KernelStrategy is re-exported from internal/fftypes.
type KernelStrategy = fftypes.KernelStrategy

// Re-export strategy constants.
const (
	KernelAuto     = fftypes.KernelAuto
	KernelNaive    = fftypes.KernelNaive
	KernelDIT      = fftypes.KernelDIT
	KernelParallel = fftypes.KernelParallel
)
