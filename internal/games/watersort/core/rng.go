package core

import "math/bits"

// LCG is the 64-bit linear congruential generator that drives level shuffles.
// The same seed always produces the same stream on every platform.
type LCG struct {
	state uint64
}

const (
	lcgMultiplier uint64 = 2862933555777941757
	lcgIncrement  uint64 = 3037000493
)

// NewLCG creates a generator seeded with the bit pattern of seed.
func NewLCG(seed int64) *LCG {
	return &LCG{state: uint64(seed)}
}

// Next advances the generator and returns the new state.
func (r *LCG) Next() uint64 {
	r.state = r.state*lcgMultiplier + lcgIncrement
	return r.state
}

// Intn returns an unbiased int in [0, n) using multiply-high with rejection.
func (r *LCG) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	bound := uint64(n)
	hi, lo := bits.Mul64(r.Next(), bound)
	if lo < bound {
		threshold := -bound % bound
		for lo < threshold {
			hi, lo = bits.Mul64(r.Next(), bound)
		}
	}
	return int(hi)
}

// Shuffle permutes colors in place, walking forward and swapping each
// position with a uniformly chosen position at or after it.
func (r *LCG) Shuffle(colors []Color) {
	for i, remaining := 0, len(colors); remaining > 1; i, remaining = i+1, remaining-1 {
		j := i + r.Intn(remaining)
		colors[i], colors[j] = colors[j], colors[i]
	}
}
