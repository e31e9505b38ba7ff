// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"io"

	"clonesim/internal/barcode"
	"clonesim/internal/config"
	"clonesim/internal/logging"
	"clonesim/internal/metrics"
	"clonesim/internal/output"
	"clonesim/internal/pcr"
	"clonesim/internal/randsrc"
	"clonesim/internal/seqio"
	"clonesim/internal/template"
	"clonesim/internal/tissue"
	"clonesim/internal/writers"
	"clonesim/pkg/api"
)

// Options carries a validated configuration and the run's collaborators.
type Options struct {
	Config *config.Config
	RunID  string
	Stdout io.Writer

	// Log and Metrics default to no-op implementations when nil.
	Log     *logging.Logger
	Metrics *metrics.Recorder
	// RNG overrides the seeded generator built from Config.Seed.
	RNG randsrc.Source
}

type run struct {
	cfg     *config.Config
	stdout  io.Writer
	log     *logging.Logger
	metrics *metrics.Recorder
	rng     randsrc.Source
	sum     api.RunSummaryV1
}

func newRun(command string, o Options) *run {
	r := &run{cfg: o.Config, stdout: o.Stdout, log: o.Log, metrics: o.Metrics, rng: o.RNG}
	if r.stdout == nil {
		r.stdout = io.Discard
	}
	if r.log == nil {
		r.log = logging.Nop()
	}
	if r.metrics == nil {
		r.metrics = metrics.New(o.RunID)
	}
	seed := r.cfg.Seed
	if r.rng == nil {
		src := randsrc.New(seed)
		seed = src.Seed()
		r.rng = src
	}
	p := r.cfg.PCR
	r.sum = api.RunSummaryV1{
		RunID:   o.RunID,
		Command: command,
		Seed:    seed,
		Model:   pcr.NewModel(p.MutationRate, p.EfficiencyMean, p.EfficiencySD).Variant(),
		Cycles:  p.Cycles,
	}
	return r
}

// Simulate induces the founder tissue from the barcode pool, grows it,
// extracts its DNA and amplifies it.
func Simulate(ctx context.Context, o Options) (api.RunSummaryV1, error) {
	r := newRun(config.CommandSimulate, o)
	cfg := r.cfg

	seqs, err := seqio.ReadPool(cfg.Pool)
	if err != nil {
		return r.sum, &IOError{Op: "read", Path: cfg.Pool, Err: err}
	}
	pool, err := barcode.NewPool(seqs)
	if err != nil {
		return r.sum, err
	}
	if d := pool.Duplicates(); d > 0 {
		r.log.Warn("duplicate barcodes ignored", "pool", cfg.Pool, "duplicates", d)
	}
	r.sum.PoolSize = pool.Len()
	r.log.Info("barcode pool loaded", "path", cfg.Pool, "barcodes", pool.Len())

	founders, err := tissue.Init(cfg.Tissue, pool, r.rng)
	if err != nil {
		return r.sum, err
	}
	r.sum.FounderCells = len(founders)
	r.metrics.ObserveTissue(metrics.StageInduced, founders.Census())
	if err := r.writeTissue(cfg.Output.Induced, founders, pool); err != nil {
		return r.sum, err
	}
	if err := ctx.Err(); err != nil {
		return r.sum, err
	}

	sample := tissue.GrowN(founders, cfg.Generations)
	census := sample.Census()
	r.sum.Generations = cfg.Generations
	r.sum.SampleCells = len(sample)
	r.sum.BiPotentCells = census.BiPotent
	r.sum.LuminalCells = census.Luminal
	r.sum.BasalCells = census.Basal
	r.metrics.SetGenerations(cfg.Generations)
	r.metrics.ObserveTissue(metrics.StageSample, census)
	r.log.Info("tissue grown",
		"generations", cfg.Generations, "cells", len(sample),
		"bipotent", census.BiPotent, "luminal", census.Luminal, "basal", census.Basal)
	if err := r.writeTissue(cfg.Output.Sample, sample, pool); err != nil {
		return r.sum, err
	}

	var keep template.Predicate
	if p, ok, err := cfg.ExtractFilter(); err != nil {
		return r.sum, err
	} else if ok {
		keep = template.OfPotency(p)
	}
	model := template.NewEfficiencyModel(cfg.PCR.EfficiencyMean, cfg.PCR.EfficiencySD)
	tmpl := template.Extract(sample, pool, keep, model, r.rng)
	r.log.Info("DNA extracted", "extract", cfg.Extract, "sequences", tmpl.Len(), "molecules", tmpl.Molecules())

	if err := r.amplify(ctx, tmpl); err != nil {
		return r.sum, err
	}
	return r.sum, nil
}

// Amplify runs the PCR stage alone on a template read from a file.
func Amplify(ctx context.Context, o Options) (api.RunSummaryV1, error) {
	r := newRun(config.CommandAmplify, o)
	cfg := r.cfg

	reads, err := seqio.ReadTemplate(cfg.Template)
	if err != nil {
		return r.sum, &IOError{Op: "read", Path: cfg.Template, Err: err}
	}
	model := template.NewEfficiencyModel(cfg.PCR.EfficiencyMean, cfg.PCR.EfficiencySD)
	tmpl := template.FromReads(reads, model, r.rng)
	r.log.Info("template loaded", "path", cfg.Template, "sequences", tmpl.Len(), "molecules", tmpl.Molecules())

	if err := r.amplify(ctx, tmpl); err != nil {
		return r.sum, err
	}
	return r.sum, nil
}

func (r *run) amplify(ctx context.Context, tmpl *template.Template) error {
	p := r.cfg.PCR
	r.sum.InitialSequences = tmpl.Len()
	r.sum.InitialMolecules = tmpl.Molecules()
	r.metrics.ObserveTemplate(tmpl.Len(), tmpl.Molecules())

	eng := pcr.New(pcr.NewModel(p.MutationRate, p.EfficiencyMean, p.EfficiencySD), r.rng)
	r.log.Debug("PCR model", "model", r.sum.Model, "mutation_rate", p.MutationRate,
		"efficiency_mean", p.EfficiencyMean, "efficiency_sd", p.EfficiencySD)

	err := eng.Run(tmpl, p.Cycles, func(s pcr.CycleStats) error {
		r.sum.Mutations += s.Mutations
		r.sum.FailedTrials += s.Failed
		r.metrics.ObserveCycle(s)
		r.log.Info("PCR cycle",
			"cycle", s.Cycle, "of", p.Cycles, "sequences", s.Sequences,
			"new_sequences", s.NewSequences, "molecules", s.Molecules,
			"mutations", s.Mutations, "failed", s.Failed)
		return ctx.Err()
	})
	r.sum.Sequences = tmpl.Len()
	r.sum.Molecules = tmpl.Molecules()
	if err != nil {
		return err
	}
	r.log.Info("PCR finished", "products", tmpl.Len(), "molecules", tmpl.Molecules())

	out := r.cfg.Output
	if out.Result == "" {
		return nil
	}
	if err := writers.WriteTemplateFile(out.Result, r.stdout, out.Format, tmpl.Rows(out.Sort), r.outputOptions()); err != nil {
		return &IOError{Op: "write", Path: out.Result, Err: err}
	}
	return nil
}

func (r *run) writeTissue(path string, t tissue.Tissue, pool *barcode.Pool) error {
	if path == "" {
		return nil
	}
	rows := t.Rows(pool)
	if err := writers.WriteTissueFile(path, r.stdout, r.cfg.Output.Format, rows, r.outputOptions()); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	r.log.Debug("tissue table written", "path", path, "rows", len(rows))
	return nil
}

func (r *run) outputOptions() output.Options {
	return output.Options{Header: r.cfg.Output.Header}
}
