package fft

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/cwbudde/fftcheck/internal/reference"
)

func TestDITForwardMatchesReference(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 4, 8, 16, 64, 256, 1024} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			t.Parallel()

			src := randomComplex128(n, uint64(n))
			want := reference.NaiveDFT(src)

			got := append([]complex128(nil), src...)
			if !DITForward(got) {
				t.Fatalf("DITForward rejected power-of-two length %d", n)
			}

			assertComplex128SliceClose(t, got, want, testTol128*float64(n))

			src64 := randomComplex64(n, uint64(n)+1)
			want64 := reference.NaiveDFT(src64)

			got64 := append([]complex64(nil), src64...)
			DITForward(got64)
			assertComplex64SliceClose(t, got64, want64, testTol64*float64(n))
		})
	}
}

func TestDITForwardRejectsNonPowerOfTwo(t *testing.T) {
	t.Parallel()

	x := []complex128{1, 2, 3}
	if DITForward(x) {
		t.Fatal("DITForward accepted length 3")
	}

	if x[0] != 1 || x[1] != 2 || x[2] != 3 {
		t.Fatalf("rejected input was modified: %v", x)
	}

	if !DITForward[complex128](nil) {
		t.Fatal("DITForward rejected empty input")
	}
}

func TestParallelForwardMatchesDIT(t *testing.T) {
	t.Parallel()

	for _, n := range []int{256, 1024, 4096} {
		for _, workers := range []int{1, 2, 3, 8} {
			t.Run(fmt.Sprintf("n=%d/workers=%d", n, workers), func(t *testing.T) {
				t.Parallel()

				src := randomComplex128(n, 99)

				want := append([]complex128(nil), src...)
				DITForward(want)

				got := append([]complex128(nil), src...)
				if !ParallelForward(got, workers) {
					t.Fatalf("ParallelForward rejected length %d", n)
				}

				assertComplex128SliceClose(t, got, want, 1e-9)
			})
		}
	}

	if ParallelForward([]complex128{1, 2, 3, 4, 5, 6}, 4) {
		t.Fatal("ParallelForward accepted length 6")
	}
}

func TestSelectKernelAnySize(t *testing.T) {
	t.Parallel()

	strategies := []KernelStrategy{KernelAuto, KernelNaive, KernelDIT, KernelParallel}

	for _, strategy := range strategies {
		for _, n := range []int{0, 1, 6, 15, 64, 512} {
			t.Run(fmt.Sprintf("%v/n=%d", strategy, n), func(t *testing.T) {
				t.Parallel()

				src := randomComplex128(n, 7)
				want := reference.NaiveDFT(src)

				got := append([]complex128(nil), src...)
				SelectKernel[complex128](strategy, 4)(got)

				if n == 0 {
					if len(got) != 0 {
						t.Fatalf("empty input grew to %d", len(got))
					}

					return
				}

				assertComplex128SliceClose(t, got, want, 1e-8)
			})
		}
	}
}

// TestForwardLinearity verifies FFT(a*x + b*y) = a*FFT(x) + b*FFT(y).
func TestForwardLinearity(t *testing.T) {
	t.Parallel()

	for _, n := range []int{8, 12, 64, 1024} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			t.Parallel()

			x := randomComplex128(n, 12345)
			y := randomComplex128(n, 67890)
			a := complex(2.5, 1.3)
			b := complex(-1.7, 0.8)

			combined := make([]complex128, n)
			for i := range n {
				combined[i] = a*x[i] + b*y[i]
			}

			Forward(combined)
			Forward(x)
			Forward(y)

			expected := make([]complex128, n)
			for i := range n {
				expected[i] = a*x[i] + b*y[i]
			}

			assertComplex128SliceClose(t, combined, expected, 1e-8)
		})
	}
}

// TestForwardScenarioGolden pins the spectrum of the eight-sample step input
// [1,1,1,1,0,0,0,0].
func TestForwardScenarioGolden(t *testing.T) {
	t.Parallel()

	x := []complex128{1, 1, 1, 1, 0, 0, 0, 0}
	Forward(x)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "scenario_8", []byte(formatSpectrum(x)))
}

// formatSpectrum prints one "k re im" line per bin rounded to four decimals,
// with negative zero normalized so rounding noise does not leak into fixtures.
func formatSpectrum(x []complex128) string {
	var b strings.Builder

	for k, v := range x {
		fmt.Fprintf(&b, "%d\t%.4f\t%.4f\n", k, round4(real(v)), round4(imag(v)))
	}

	return b.String()
}

func round4(v float64) float64 {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		return 0
	}

	return r
}
