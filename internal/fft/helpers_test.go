package fft

import (
	"math/cmplx"
	"math/rand/v2"
	"testing"
)

const (
	testTol64  = 1e-4
	testTol128 = 1e-9
)

func randomComplex64(n int, seed uint64) []complex64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x5DEECE66D))
	out := make([]complex64, n)

	for i := range out {
		out[i] = complex(float32(rng.Float64()*2-1), float32(rng.Float64()*2-1))
	}

	return out
}

func randomComplex128(n int, seed uint64) []complex128 {
	rng := rand.New(rand.NewPCG(seed, seed^0x5DEECE66D))
	out := make([]complex128, n)

	for i := range out {
		out[i] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
	}

	return out
}

func assertComplex64SliceClose(t *testing.T, got, want []complex64, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}

	for i := range got {
		if diff := cmplx.Abs(complex128(got[i] - want[i])); diff > tol {
			t.Fatalf("index %d: got %v want %v (diff=%v)", i, got[i], want[i], diff)
		}
	}
}

func assertComplex128SliceClose(t *testing.T, got, want []complex128, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}

	for i := range got {
		if diff := cmplx.Abs(got[i] - want[i]); diff > tol {
			t.Fatalf("index %d: got %v want %v (diff=%v)", i, got[i], want[i], diff)
		}
	}
}
