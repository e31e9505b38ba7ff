// Package metrics records a run's counters in a private Prometheus registry
// that is written once, as a node-exporter textfile, when the run ends.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"clonesim/internal/pcr"
	"clonesim/internal/tissue"
)

const namespace = "clonesim"

// Tissue stages.
const (
	StageInduced = "induced"
	StageSample  = "sample"
)

type Recorder struct {
	reg *prometheus.Registry

	cells       *prometheus.GaugeVec
	generations prometheus.Gauge
	cycles      prometheus.Counter
	mutations   prometheus.Counter
	failed      prometheus.Counter
	newSeqs     prometheus.Counter
	sequences   prometheus.Gauge
	molecules   prometheus.Gauge
}

// New returns a recorder whose series all carry run_id.
func New(runID string) *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"run_id": runID}, reg))
	return &Recorder{
		reg: reg,
		cells: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "cells",
			Help: "Cells per potency state at a tissue stage.",
		}, []string{"stage", "cell_type"}),
		generations: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "generations",
			Help: "Cell generations grown after induction.",
		}),
		cycles: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "pcr_cycles_total",
			Help: "PCR cycles completed.",
		}),
		mutations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "pcr_mutations_total",
			Help: "Mutant molecules produced during amplification.",
		}),
		failed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "pcr_failed_trials_total",
			Help: "Template entries whose doubling trial failed.",
		}),
		newSeqs: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "pcr_new_sequences_total",
			Help: "Distinct sequences first created by mutation.",
		}),
		sequences: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "template_sequences",
			Help: "Distinct sequences in the template.",
		}),
		molecules: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "template_molecules",
			Help: "Total molecules in the template.",
		}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

func (r *Recorder) ObserveTissue(stage string, c tissue.Census) {
	r.cells.WithLabelValues(stage, tissue.BiPotent.Label()).Set(float64(c.BiPotent))
	r.cells.WithLabelValues(stage, tissue.UnipotentLuminal.Label()).Set(float64(c.Luminal))
	r.cells.WithLabelValues(stage, tissue.UnipotentBasal.Label()).Set(float64(c.Basal))
}

func (r *Recorder) SetGenerations(n int) { r.generations.Set(float64(n)) }

// ObserveTemplate sets the template gauges, e.g. before the first cycle.
func (r *Recorder) ObserveTemplate(sequences int, molecules uint64) {
	r.sequences.Set(float64(sequences))
	r.molecules.Set(float64(molecules))
}

// ObserveCycle is shaped to sit inside a pcr.Observer.
func (r *Recorder) ObserveCycle(s pcr.CycleStats) {
	r.cycles.Inc()
	r.mutations.Add(float64(s.Mutations))
	r.failed.Add(float64(s.Failed))
	r.newSeqs.Add(float64(s.NewSequences))
	r.ObserveTemplate(s.Sequences, s.Molecules)
}

// WriteTextfile writes every series to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
