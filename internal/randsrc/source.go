// Package randsrc provides the random source shared by the tissue model and
// the PCR engine. A single seedable generator backs every draw so that a
// non-zero seed reproduces a run.
package randsrc

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source is the set of draws the simulation needs.
type Source interface {
	Uniform() float64
	IntN(n int) int
	Binomial(n uint64, p float64) uint64
	Normal(mean, sd float64) float64
	Bernoulli(p float64) bool
}

// streamSalt separates the PCG stream word from the seed.
const streamSalt = 0x9e3779b97f4a7c15

// Rand is a PCG-backed Source. Distribution draws go through gonum distuv
// using the same underlying PCG state.
type Rand struct {
	src  *rand.PCG
	rnd  *rand.Rand
	seed uint64
}

// New returns a Rand seeded with seed. Seed 0 picks a random seed, which is
// reported by Seed so the run can be replayed.
func New(seed uint64) *Rand {
	for seed == 0 {
		seed = rand.Uint64()
	}
	pcg := rand.NewPCG(seed, seed^streamSalt)
	return &Rand{src: pcg, rnd: rand.New(pcg), seed: seed}
}

// Seed is the effective seed of the generator.
func (r *Rand) Seed() uint64 { return r.seed }

func (r *Rand) Uniform() float64 { return r.rnd.Float64() }

func (r *Rand) IntN(n int) int { return r.rnd.IntN(n) }

// Binomial draws the number of successes in n trials with probability p.
// p outside [0,1] is clamped.
func (r *Rand) Binomial(n uint64, p float64) uint64 {
	switch {
	case n == 0 || p <= 0 || math.IsNaN(p):
		return 0
	case p >= 1:
		return n
	}
	k := distuv.Binomial{N: float64(n), P: p, Src: r.src}.Rand()
	if k <= 0 {
		return 0
	}
	return uint64(math.Round(k))
}

// Normal draws from N(mean, sd). sd <= 0 returns mean.
func (r *Rand) Normal(mean, sd float64) float64 {
	if sd <= 0 {
		return mean
	}
	return distuv.Normal{Mu: mean, Sigma: sd, Src: r.src}.Rand()
}

// Bernoulli reports success with probability p, clamped to [0,1].
func (r *Rand) Bernoulli(p float64) bool {
	switch {
	case p <= 0 || math.IsNaN(p):
		return false
	case p >= 1:
		return true
	}
	return distuv.Bernoulli{P: p, Src: r.src}.Rand() == 1
}
