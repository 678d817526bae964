package fft

import (
	"github.com/cwbudde/fftcheck/internal/fftypes"
	"github.com/cwbudde/fftcheck/internal/reference"
)

// Forward computes the forward FFT of x in place for any length: radix-2 DIT
// for powers of two, the direct DFT otherwise.
func Forward[T Complex](x []T) {
	if !DITForward(x) {
		reference.NaiveDFTInPlace(x)
	}
}

// SelectKernel returns an in-place forward transform for the strategy.
// Every returned function accepts any length; the radix-2 strategies fall
// back to the direct DFT when the length is not a power of two. workers is
// only used by KernelParallel.
func SelectKernel[T Complex](strategy KernelStrategy, workers int) fftypes.TransformFunc[T] {
	switch strategy {
	case KernelNaive:
		return reference.NaiveDFTInPlace[T]
	case KernelDIT:
		return Forward[T]
	case KernelParallel:
		return func(x []T) {
			if !ParallelForward(x, workers) {
				reference.NaiveDFTInPlace(x)
			}
		}
	default:
		return Forward[T]
	}
}
