package comm

import (
	"fmt"
	"runtime"
)

// CoordinatorRank is the rank that draws authoritative inputs and decides
// verdicts.
const CoordinatorRank = 0

// Kind names the element type of a broadcast buffer.
type Kind uint8

const (
	KindFloat64 Kind = iota
	KindComplex128
	KindComplex64
	KindBool
	KindInt
)

// String returns the element type name.
func (k Kind) String() string {
	switch k {
	case KindFloat64:
		return "float64"
	case KindComplex128:
		return "complex128"
	case KindComplex64:
		return "complex64"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	default:
		return "unknown"
	}
}

// Communicator is the capability set shared by every execution model.
//
// Broadcast and Barrier are collectives: every rank of the group must call
// them in the same order and the same number of times, with matching buffer
// lengths and kinds. Broadcast copies the coordinator's buffer into every
// other rank's buffer and returns only after all ranks have entered it.
type Communicator interface {
	Rank() int
	Size() int
	IsCoordinator(rank int) bool
	Broadcast(buf any, kind Kind) error
	Barrier() error
}

// Parallel is implemented by communicators whose ranks may fan work out to a
// pool of worker goroutines.
type Parallel interface {
	Workers() int
}

// WorkersOf returns the per-rank worker count of c, or 1 when c is not
// Parallel.
func WorkersOf(c Communicator) int {
	if p, ok := c.(Parallel); ok && p.Workers() > 0 {
		return p.Workers()
	}

	return 1
}

// BroadcastFloat64s broadcasts buf from the coordinator.
func BroadcastFloat64s(c Communicator, buf []float64) error {
	return c.Broadcast(buf, KindFloat64)
}

// BroadcastBool broadcasts a single flag from the coordinator.
func BroadcastBool(c Communicator, v *bool) error {
	buf := []bool{*v}
	if err := c.Broadcast(buf, KindBool); err != nil {
		return err
	}

	*v = buf[0]

	return nil
}

// bufferLen returns the length of buf after checking it against kind.
func bufferLen(buf any, kind Kind) (int, error) {
	var n int

	switch kind {
	case KindFloat64:
		b, ok := buf.([]float64)
		if !ok {
			return 0, kindError(buf, kind)
		}

		n = len(b)
	case KindComplex128:
		b, ok := buf.([]complex128)
		if !ok {
			return 0, kindError(buf, kind)
		}

		n = len(b)
	case KindComplex64:
		b, ok := buf.([]complex64)
		if !ok {
			return 0, kindError(buf, kind)
		}

		n = len(b)
	case KindBool:
		b, ok := buf.([]bool)
		if !ok {
			return 0, kindError(buf, kind)
		}

		n = len(b)
	case KindInt:
		b, ok := buf.([]int)
		if !ok {
			return 0, kindError(buf, kind)
		}

		n = len(b)
	default:
		return 0, kindError(buf, kind)
	}

	return n, nil
}

func kindError(buf any, kind Kind) error {
	return fmt.Errorf("%w: %T is not []%s", ErrKindMismatch, buf, kind)
}

// copyBuffer copies src into dst. Both must already have passed bufferLen
// with the same kind and length.
func copyBuffer(dst, src any) {
	switch d := dst.(type) {
	case []float64:
		copy(d, src.([]float64))
	case []complex128:
		copy(d, src.([]complex128))
	case []complex64:
		copy(d, src.([]complex64))
	case []bool:
		copy(d, src.([]bool))
	case []int:
		copy(d, src.([]int))
	}
}

func defaultWorkers(n int) int {
	if n > 0 {
		return n
	}

	return runtime.GOMAXPROCS(0)
}
