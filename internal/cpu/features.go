// Package cpu reports the host CPU features that transform kernels and run
// reports care about.
package cpu

import (
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sys/cpu"
)

// Features describes CPU capabilities relevant to kernel selection.
type Features struct {
	HasSSE2      bool
	HasAVX2      bool
	HasAVX512    bool
	HasNEON      bool
	ForceGeneric bool
	Architecture string
	LogicalCPUs  int
}

// DetectFeatures reports the available CPU features for the current process.
//
// golang.org/x/sys/cpu exposes the X86 and ARM64 flag sets on every platform;
// the flags of the foreign architecture are simply false.
func DetectFeatures() Features {
	return Features{
		HasSSE2:      cpu.X86.HasSSE2,
		HasAVX2:      cpu.X86.HasAVX2,
		HasAVX512:    cpu.X86.HasAVX512,
		HasNEON:      cpu.ARM64.HasASIMD,
		Architecture: runtime.GOARCH,
		LogicalCPUs:  runtime.NumCPU(),
	}
}

// SIMD returns the widest SIMD extension in f, or "generic".
func (f Features) SIMD() string {
	switch {
	case f.ForceGeneric:
		return "generic"
	case f.HasAVX512:
		return "avx512"
	case f.HasAVX2:
		return "avx2"
	case f.HasNEON:
		return "neon"
	case f.HasSSE2:
		return "sse2"
	default:
		return "generic"
	}
}

// String formats f as "arch/simd/Ncpu", e.g. "amd64/avx2/8cpu".
func (f Features) String() string {
	var b strings.Builder

	arch := f.Architecture
	if arch == "" {
		arch = "unknown"
	}

	b.WriteString(arch)
	b.WriteByte('/')
	b.WriteString(f.SIMD())
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(f.LogicalCPUs))
	b.WriteString("cpu")

	return b.String()
}
