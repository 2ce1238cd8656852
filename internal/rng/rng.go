// Package rng provides the seeded, deterministic pseudo-random stream that
// every other generation component draws from.
//
// Determinism note (spec.md §4.1, §9): reproducing a reference
// implementation's Mersenne-Twister byte-for-byte is only possible if that
// exact algorithm is ported. This implementation instead fixes one engine —
// Go's standard math/rand/v2 PCG — and only promises determinism across runs
// of *this* implementation for a given seed, which is the contract spec.md
// explicitly allows an implementer to choose. No third-party RNG library in
// the retrieval pack implements a seeded, splittable stream any better than
// the standard library's own PCG source, so this is a deliberate stdlib
// choice rather than an oversight.
package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
)

// pcgIncrement is the fixed second PCG seed half. PCG takes two 64-bit seed
// words; fixing one and deriving the other from the caller's seed keeps the
// stream fully determined by a single integer, matching with_seed's contract.
const pcgIncrement = 0xDA3E39CB94B95BDB

// Rng is a derivable, seeded random stream.
type Rng struct {
	seed uint64
	r    *rand.Rand
}

// WithSeed constructs a stream reproducible from seed alone.
func WithSeed(seed int64) *Rng {
	s := uint64(seed)
	return &Rng{
		seed: s,
		r:    rand.New(rand.NewPCG(s, pcgIncrement)),
	}
}

// Derive yields an independent child stream whose seed is the leading 64
// bits of SHA-256("{parent_seed}:{salt}"). The parent stream is untouched.
func (g *Rng) Derive(salt string) *Rng {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%s", g.seed, salt)))
	childSeed := binary.BigEndian.Uint64(sum[:8])
	return &Rng{
		seed: childSeed,
		r:    rand.New(rand.NewPCG(childSeed, pcgIncrement)),
	}
}

// Seed returns the seed this stream was constructed with (post-derivation,
// if derived). Exposed for metadata reporting.
func (g *Rng) Seed() int64 {
	return int64(g.seed)
}

// Float64 returns a pseudo-random float in [0, 1).
func (g *Rng) Float64() float64 {
	return g.r.Float64()
}

// IntRange returns a uniform pseudo-random integer in the inclusive [a, b].
// If b < a the arguments are swapped so the range is never empty.
func (g *Rng) IntRange(a, b int64) int64 {
	if b < a {
		a, b = b, a
	}
	span := uint64(b-a) + 1
	return a + int64(g.r.Uint64N(span))
}

// Float64Range returns a uniform pseudo-random float in [a, b).
func (g *Rng) Float64Range(a, b float64) float64 {
	if b < a {
		a, b = b, a
	}
	return a + (b-a)*g.r.Float64()
}

// Gauss returns a sample from a normal distribution with mean mu and
// standard deviation sigma.
func (g *Rng) Gauss(mu, sigma float64) float64 {
	return mu + sigma*g.r.NormFloat64()
}

// LogNormal returns a sample from a log-normal distribution parameterized by
// the underlying normal's mu and sigma.
func (g *Rng) LogNormal(mu, sigma float64) float64 {
	return math.Exp(mu + sigma*g.r.NormFloat64())
}

// Bool returns a fair coin flip.
func (g *Rng) Bool() bool {
	return g.Float64() < 0.5
}

// Choice returns a uniformly chosen element from a non-empty slice.
func Choice[T any](g *Rng, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	idx := g.r.IntN(len(items))
	return items[idx]
}

// WeightedChoice returns an element of values chosen with probability
// proportional to the matching entry in weights. weights must be the same
// length as values and is assumed non-negative; if the total weight is zero
// the first value is returned.
func WeightedChoice(g *Rng, values []string, weights []float64) string {
	if len(values) == 0 {
		return ""
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return values[0]
	}
	target := g.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return values[i]
		}
	}
	return values[len(values)-1]
}

// Bits128 returns 128 pseudo-random bits as a big-endian byte array, used to
// format canonical UUIDs.
func (g *Rng) Bits128() [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], g.r.Uint64())
	binary.BigEndian.PutUint64(b[8:], g.r.Uint64())
	return b
}
