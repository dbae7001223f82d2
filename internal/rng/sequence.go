// Package rng provides the seeded number stream used by dungeon generation.
//
// Every random decision made while generating a dungeon is drawn from a
// Sequence so that the same seed always produces the same dungeon.
package rng

import (
	"math/rand/v2"
)

// Source is the narrow interface generation code consumes.
type Source interface {
	// Next returns the next value of the stream in [0,1).
	Next() float64
}

// Sequence is a reproducible stream of floats in [0,1) backed by PCG.
type Sequence struct {
	seed int64
	r    *rand.Rand
}

// New creates a sequence for the given seed.
// Two sequences created with the same seed yield identical streams.
func New(seed int64) *Sequence {
	s1 := splitMix64(uint64(seed))
	s2 := splitMix64(s1)
	return &Sequence{
		seed: seed,
		r:    rand.New(rand.NewPCG(s1, s2)),
	}
}

// Seed returns the seed the sequence was created with.
func (s *Sequence) Seed() int64 {
	return s.seed
}

// Next returns the next value in [0,1).
func (s *Sequence) Next() float64 {
	return s.r.Float64()
}

// splitMix64 scrambles a seed so that nearby seeds start far apart in PCG state.
func splitMix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Intn returns a uniform int in [0,n). Returns 0 when n <= 0.
func Intn(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(src.Next() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Range returns a uniform int in [min,max], inclusive on both ends.
func Range(src Source, min, max int) int {
	if max <= min {
		return min
	}
	return min + Intn(src, max-min+1)
}

// Chance returns true with probability p.
func Chance(src Source, p float64) bool {
	return src.Next() < p
}

// Shuffle permutes n elements with Fisher-Yates, calling swap for each exchange.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := Intn(src, i+1)
		swap(i, j)
	}
}
