package fftcheck

import "math/rand/v2"

// FillRand fills buf with independent uniform values between lo and hi,
// excluding hi unless lo == hi, in which case every value is lo. An inverted
// interval is treated as [hi, lo).
func FillRand[F Float](rng *rand.Rand, buf []F, lo, hi F) {
	if hi < lo {
		lo, hi = hi, lo
	}

	if lo == hi {
		for i := range buf {
			buf[i] = lo
		}

		return
	}

	span := float64(hi) - float64(lo)

	for i := range buf {
		v := F(float64(lo) + rng.Float64()*span)
		// Narrow types can round up onto hi.
		for v >= hi {
			v = F(float64(lo) + rng.Float64()*span)
		}

		buf[i] = v
	}
}

// newRankRNG seeds a generator for one rank. Ranks draw different streams;
// only the coordinator's draws survive the broadcast that follows each fill.
func newRankRNG(seed uint64, rank int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(rank)+0x9E3779B97F4A7C15))
}
