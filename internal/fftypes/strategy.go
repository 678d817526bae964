package fftypes

// KernelStrategy selects the algorithm a transform kernel runs.
type KernelStrategy uint32

const (
	KernelAuto     KernelStrategy = iota
	KernelNaive                   // O(n^2) direct DFT, any size
	KernelDIT                     // iterative radix-2 decimation in time
	KernelParallel                // radix-2 even/odd split fanned out over workers
)

// String returns a human-readable name for the strategy.
func (s KernelStrategy) String() string {
	switch s {
	case KernelAuto:
		return "auto"
	case KernelNaive:
		return "naive"
	case KernelDIT:
		return "dit"
	case KernelParallel:
		return "parallel"
	default:
		return "unknown"
	}
}
