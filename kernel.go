package fftcheck

import (
	"fmt"
	"sort"

	"github.com/cwbudde/fftcheck/internal/fft"
	m "github.com/cwbudde/fftcheck/internal/math"
)

// Kernel is an in-place forward transform. The harness drives exactly two of
// them: the baseline it trusts and the candidate under test. Implementations
// must accept any length.
type Kernel[T Complex] interface {
	Transform(x []T)
}

// KernelFunc adapts a function to Kernel.
type KernelFunc[T Complex] func(x []T)

// Transform calls f(x).
func (f KernelFunc[T]) Transform(x []T) { f(x) }

// namedKernel attaches a registry name for reports.
type namedKernel[T Complex] struct {
	KernelFunc[T]

	name string
}

func (k namedKernel[T]) String() string { return k.name }

// Registered kernel names.
const (
	KernelReference = "reference"
	KernelDIT       = "dit"
	KernelNaive     = "naive"
	KernelParallel  = "parallel"
	KernelConjugate = "conjugate"
)

var kernelDescriptions = map[string]string{
	KernelReference: "trusted baseline: radix-2 DIT, direct DFT for other sizes",
	KernelDIT:       "iterative radix-2 decimation in time",
	KernelNaive:     "direct O(n^2) DFT",
	KernelParallel:  "radix-2 split across the rank's worker pool",
	KernelConjugate: "conjugated spectrum; never matches the baseline",
}

// KernelNames returns the registered kernel names in sorted order.
func KernelNames() []string {
	names := make([]string, 0, len(kernelDescriptions))
	for name := range kernelDescriptions {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// KernelDescription returns the one-line description of a registered kernel.
func KernelDescription(name string) string {
	return kernelDescriptions[name]
}

// ReferenceKernel returns the trusted baseline kernel.
func ReferenceKernel[T Complex]() Kernel[T] {
	return namedKernel[T]{KernelFunc: fft.Forward[T], name: KernelReference}
}

// LookupKernel returns the registered kernel called name. workers sizes the
// pool of the parallel kernel and is ignored by the others.
func LookupKernel[T Complex](name string, workers int) (Kernel[T], error) {
	var f KernelFunc[T]

	switch name {
	case KernelReference:
		return ReferenceKernel[T](), nil
	case KernelDIT:
		f = KernelFunc[T](fft.SelectKernel[T](fft.KernelDIT, workers))
	case KernelNaive:
		f = KernelFunc[T](fft.SelectKernel[T](fft.KernelNaive, workers))
	case KernelParallel:
		f = KernelFunc[T](fft.SelectKernel[T](fft.KernelParallel, workers))
	case KernelConjugate:
		f = func(x []T) {
			fft.Forward(x)

			for i, v := range x {
				x[i] = m.Conj(v)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
	}

	return namedKernel[T]{KernelFunc: f, name: name}, nil
}

// kernelName returns the registry name of k, or its Go type.
func kernelName[T Complex](k Kernel[T]) string {
	if s, ok := k.(fmt.Stringer); ok {
		return s.String()
	}

	return fmt.Sprintf("%T", k)
}
