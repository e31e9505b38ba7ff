// internal/pcr/engine.go
package pcr

import (
	"math"

	"clonesim/internal/barcode"
	"clonesim/internal/randsrc"
	"clonesim/internal/template"
)

// CycleStats summarizes one cycle.
type CycleStats struct {
	Cycle        int // 1-based
	Sequences    int // distinct sequences after the merge
	NewSequences int
	Molecules    uint64
	Mutations    uint64
	Failed       int // entries whose doubling trial failed
}

// Observer is called after every cycle. A non-nil error stops the run and is
// returned by Run.
type Observer func(CycleStats) error

type Engine struct {
	model Model
	rng   randsrc.Source
}

func New(model Model, rng randsrc.Source) *Engine {
	return &Engine{model: model, rng: rng}
}

func (e *Engine) Model() Model { return e.model }

// Cycle runs one PCR cycle on t in place.
func (e *Engine) Cycle(t *template.Template) (CycleStats, error) {
	var (
		st      CycleStats
		mutants []string
	)
	n := t.Len()
	for i := 0; i < n; i++ {
		ent := t.At(i)
		c := ent.Count
		m := e.rng.Binomial(c, e.model.Mutation.Probability(ent.Seq))
		if m > c {
			return st, &InvariantError{Seq: ent.Seq, Count: c, Mutations: m, Reason: "mutations exceed copy count"}
		}
		for k := uint64(0); k < m; k++ {
			mutants = append(mutants, barcode.Mutate(ent.Seq, e.rng))
		}
		st.Mutations += m

		if !e.rng.Bernoulli(e.model.Efficiency.TrialProbability(ent)) {
			st.Failed++
			continue
		}
		if c > math.MaxUint64/2 {
			return st, &InvariantError{Seq: ent.Seq, Count: c, Mutations: m, Reason: "doubled count overflows"}
		}
		ent.Count = 2*c - m
	}

	assign := func() float64 { return e.model.Efficiency.Assign(e.rng) }
	for _, s := range mutants {
		t.Add(s, 1, assign)
	}
	st.Sequences = t.Len()
	st.NewSequences = t.Len() - n
	st.Molecules = t.Molecules()
	return st, nil
}

// Run applies cycles PCR cycles to t, reporting each to observe (may be nil).
func (e *Engine) Run(t *template.Template, cycles int, observe Observer) error {
	for i := 1; i <= cycles; i++ {
		st, err := e.Cycle(t)
		if err != nil {
			return err
		}
		st.Cycle = i
		if observe != nil {
			if err := observe(st); err != nil {
				return err
			}
		}
	}
	return nil
}

// RunCycles builds the model selected by effSD and runs cycles on t.
func RunCycles(t *template.Template, cycles int, mutationRate, effMean, effSD float64, rng randsrc.Source, observe Observer) error {
	return New(NewModel(mutationRate, effMean, effSD), rng).Run(t, cycles, observe)
}
