// Package rng provides the deterministic seed source for level generation.
//
// Platform random sources are deliberately not used: levels must be
// bit-reproducible from a seed across platforms, and math/rand gives no such
// guarantee across versions.
package rng

import "github.com/depp/intern-apocalypse-sub002/geom"

// Rand is a 32-bit xorshift generator. The all-zero state is unreachable, so
// Next is uniform over [1, 2^32-1].
type Rand struct {
	state uint32
}

// New returns a generator for the given seed. A zero seed is coerced to 1.
func New(seed uint32) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{state: seed}
}

// Next returns the next value, uniform over [1, 2^32-1].
func (r *Rand) Next() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Range returns a float64 uniformly distributed in [min, max).
func (r *Rand) Range(min, max float64) float64 {
	return min + (max-min)*float64(r.Next()-1)/(1<<32)
}

// Intn returns an int in [0, n). n <= 0 returns 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(uint64(r.Next()) * uint64(n) >> 32)
}

// Vec returns a point with both coordinates drawn from [min, max).
func (r *Rand) Vec(min, max float64) geom.Vec2 {
	x := r.Range(min, max)
	y := r.Range(min, max)
	return geom.Vec2{X: x, Y: y}
}
