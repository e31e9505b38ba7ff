// internal/template/efficiency.go
package template

import (
	"math"

	"clonesim/internal/randsrc"
)

// EfficiencyModel assigns amplification efficiencies to new entries and
// gives the success probability used for an entry's doubling trial.
type EfficiencyModel interface {
	// Assign returns the efficiency stored on a newly created entry.
	Assign(rng randsrc.Source) float64
	// TrialProbability is the Bernoulli parameter for e's doubling trial.
	TrialProbability(e *Entry) float64
}

// ClampEfficiency folds x into [0,1] by absolute value and min with 1.
func ClampEfficiency(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Min(math.Abs(x), 1)
}

// FixedEfficiency uses one global constant for every entry and every trial.
type FixedEfficiency struct{ E float64 }

func (f FixedEfficiency) Assign(randsrc.Source) float64 { return ClampEfficiency(f.E) }

func (f FixedEfficiency) TrialProbability(*Entry) float64 { return ClampEfficiency(f.E) }

// SampledEfficiency draws |N(Mean, SD)| capped at 1 once per new sequence and
// uses each entry's own value for its trials.
type SampledEfficiency struct {
	Mean float64
	SD   float64
}

func (s SampledEfficiency) Assign(rng randsrc.Source) float64 {
	return ClampEfficiency(rng.Normal(s.Mean, s.SD))
}

func (s SampledEfficiency) TrialProbability(e *Entry) float64 { return e.Efficiency }

// NewEfficiencyModel picks the fixed model when sd is zero and the sampled
// model otherwise.
func NewEfficiencyModel(mean, sd float64) EfficiencyModel {
	if sd == 0 {
		return FixedEfficiency{E: mean}
	}
	return SampledEfficiency{Mean: mean, SD: sd}
}
