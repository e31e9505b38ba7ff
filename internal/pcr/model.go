// internal/pcr/model.go
package pcr

import (
	"math"

	"clonesim/internal/template"
)

// MutationRateModel gives the per-molecule probability that a copy of seq
// carries a point mutation in one cycle.
type MutationRateModel interface {
	Probability(seq string) float64
}

// PerMolecule applies Rate to every molecule regardless of length.
type PerMolecule struct{ Rate float64 }

func (m PerMolecule) Probability(string) float64 { return m.Rate }

// LengthScaled applies Rate per base, capped at 1.
type LengthScaled struct{ Rate float64 }

func (m LengthScaled) Probability(seq string) float64 {
	return math.Min(1, m.Rate*float64(len(seq)))
}

// Model pairs a mutation-rate rule with an efficiency rule.
type Model struct {
	Mutation   MutationRateModel
	Efficiency template.EfficiencyModel
}

// Variant names the model for logs and summaries.
func (m Model) Variant() string {
	if _, ok := m.Efficiency.(template.SampledEfficiency); ok {
		return "variable-efficiency"
	}
	return "fixed-efficiency"
}

// NewModel selects the fixed-efficiency model when effSD is zero: per-molecule
// mutation rate and one global efficiency. Otherwise mutation is scaled by
// sequence length and each sequence carries its own sampled efficiency.
func NewModel(mutationRate, effMean, effSD float64) Model {
	if effSD == 0 {
		return Model{
			Mutation:   PerMolecule{Rate: mutationRate},
			Efficiency: template.FixedEfficiency{E: effMean},
		}
	}
	return Model{
		Mutation:   LengthScaled{Rate: mutationRate},
		Efficiency: template.SampledEfficiency{Mean: effMean, SD: effSD},
	}
}
