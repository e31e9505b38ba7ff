// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"clonesim/internal/cli"
	"clonesim/internal/config"
	"clonesim/internal/logging"
	"clonesim/internal/metrics"
	"clonesim/internal/output"
	"clonesim/internal/pipeline"
	"clonesim/internal/version"
	"clonesim/internal/writers"
	"clonesim/pkg/api"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2 // bad command line or configuration
	ExitRuntime  = 3 // empty pool, I/O failure, invariant violation
	ExitCanceled = 130
)

// RunContext runs one command line. Logs go to stderr; tables written to
// "-" and the JSON summary go to stdout.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	inv, err := cli.Parse(argv, outw)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "clonesim: %v\n", err)
		_, _ = fmt.Fprintln(stderr, "Run 'clonesim --help' for usage.")
		return ExitUsage
	}
	if inv == nil {
		return flush(outw, stderr, ExitOK)
	}
	if inv.Command == cli.CommandVersion {
		_, _ = fmt.Fprintf(outw, "clonesim version %s\n", version.Version)
		return flush(outw, stderr, ExitOK)
	}

	cfg := inv.Config
	runID := uuid.NewString()
	log, err := logging.New(stderr, logging.Options{Level: cfg.Logging.Level, Quiet: cfg.Logging.Quiet, JSON: inv.LogJSON})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "clonesim: %v\n", err)
		return ExitUsage
	}
	defer log.Sync()
	log = log.With("run_id", runID)
	if inv.ConfigFile != "" {
		log.Debug("config file loaded", "path", inv.ConfigFile)
	}

	rec := metrics.New(runID)
	opts := pipeline.Options{Config: cfg, RunID: runID, Stdout: outw, Log: log, Metrics: rec}

	var sum api.RunSummaryV1
	switch inv.Command {
	case config.CommandSimulate:
		sum, err = pipeline.Simulate(parent, opts)
	case config.CommandAmplify:
		sum, err = pipeline.Amplify(parent, opts)
	}
	log.Debug("run finished", "seed", sum.Seed, "model", sum.Model)

	if err == nil && cfg.Output.Metrics != "" {
		if e := rec.WriteTextfile(cfg.Output.Metrics); e != nil {
			err = &pipeline.IOError{Op: "write", Path: cfg.Output.Metrics, Err: e}
		}
	}
	if err == nil && cfg.Output.Summary {
		if e := output.WriteSummary(outw, sum); e != nil {
			err = &pipeline.IOError{Op: "write", Path: "-", Err: e}
		}
	}
	if err != nil {
		code := ExitCode(err)
		if code != ExitOK && code != ExitCanceled {
			log.Error("run failed", "error", err, "seed", sum.Seed)
		}
		if code == ExitCanceled {
			log.Warn("run canceled")
		}
		_ = outw.Flush()
		return code
	}
	return flush(outw, stderr, ExitOK)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// ExitCode maps a run error onto the process exit status. A closed stdout
// pipe is not a failure. Empty pools (barcode.ErrEmptyPool), I/O failures
// (*pipeline.IOError) and invariant violations (*pcr.InvariantError) all
// exit with ExitRuntime.
func ExitCode(err error) int {
	var (
		ce *config.Error
		ue *cli.UsageError
	)
	switch {
	case err == nil, writers.IsBrokenPipe(err):
		return ExitOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitCanceled
	case errors.As(err, &ce), errors.As(err, &ue):
		return ExitUsage
	}
	return ExitRuntime
}

func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return ExitOK
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitRuntime
	}
	return code
}
