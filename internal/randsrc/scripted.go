// internal/randsrc/scripted.go
package randsrc

// BinomialCall records the arguments of one Binomial draw.
type BinomialCall struct {
	N uint64
	P float64
}

// Scripted is a Source that replays fixed values, for tests that need an
// exact path through a stochastic step. When a queue runs dry it falls back
// to: IntN 0, Binomial 0, Normal mean, Bernoulli p >= 1, Uniform 0.
type Scripted struct {
	Ints       []int
	Binomials  []uint64
	Normals    []float64
	Bernoullis []bool
	Uniforms   []float64

	BinomialCalls  []BinomialCall
	BernoulliCalls []float64
}

func (s *Scripted) Uniform() float64 {
	if len(s.Uniforms) == 0 {
		return 0
	}
	v := s.Uniforms[0]
	s.Uniforms = s.Uniforms[1:]
	return v
}

func (s *Scripted) IntN(n int) int {
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	return v % n
}

func (s *Scripted) Binomial(n uint64, p float64) uint64 {
	s.BinomialCalls = append(s.BinomialCalls, BinomialCall{N: n, P: p})
	if len(s.Binomials) == 0 {
		return 0
	}
	v := s.Binomials[0]
	s.Binomials = s.Binomials[1:]
	return v
}

func (s *Scripted) Normal(mean, sd float64) float64 {
	if len(s.Normals) == 0 {
		return mean
	}
	v := s.Normals[0]
	s.Normals = s.Normals[1:]
	return v
}

func (s *Scripted) Bernoulli(p float64) bool {
	s.BernoulliCalls = append(s.BernoulliCalls, p)
	if len(s.Bernoullis) == 0 {
		return p >= 1
	}
	v := s.Bernoullis[0]
	s.Bernoullis = s.Bernoullis[1:]
	return v
}
