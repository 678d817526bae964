package fftcheck

import (
	"encoding/json"
	"fmt"
	"math"

	m "github.com/cwbudde/fftcheck/internal/math"
)

// DefaultTolerance is the absolute error bound applied to each component.
const DefaultTolerance = 1e-3

// Tolerance bounds the absolute difference allowed between a baseline and a
// candidate sample, independently for the real and imaginary parts.
type Tolerance struct {
	Abs float64
}

// Within reports whether got matches want. The bound is inclusive: a
// difference of exactly Abs passes. A NaN or infinite difference never passes.
func Within[T Complex](want, got T, tol Tolerance) bool {
	w, g := m.ToComplex128(want), m.ToComplex128(got)

	return componentWithin(real(w), real(g), tol.Abs) && componentWithin(imag(w), imag(g), tol.Abs)
}

func componentWithin(want, got, tol float64) bool {
	return math.Abs(want-got) <= tol
}

// Mismatch locates the first sample that exceeded the tolerance.
type Mismatch struct {
	Index int
	Want  complex128
	Got   complex128
}

// String formats the mismatch for logs.
func (mm Mismatch) String() string {
	return fmt.Sprintf("index %d: got %v want %v", mm.Index, mm.Got, mm.Want)
}

// MarshalJSON renders the samples as strings; JSON has no complex or NaN numbers.
func (mm Mismatch) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Index int    `json:"index"`
		Want  string `json:"want"`
		Got   string `json:"got"`
	}{mm.Index, fmt.Sprint(mm.Want), fmt.Sprint(mm.Got)})
}

// FirstMismatch scans want and got in order and returns the first sample
// outside tol. Scanning stops at the first mismatch. A length difference is
// a mismatch at the first index past the shorter slice.
func FirstMismatch[T Complex](want, got []T, tol Tolerance) (Mismatch, bool) {
	n := min(len(want), len(got))

	for i := range n {
		if !Within(want[i], got[i], tol) {
			return Mismatch{Index: i, Want: m.ToComplex128(want[i]), Got: m.ToComplex128(got[i])}, true
		}
	}

	if len(want) != len(got) {
		return Mismatch{Index: n}, true
	}

	return Mismatch{}, false
}
