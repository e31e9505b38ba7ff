// internal/cli/cli.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"clonesim/internal/config"
	"clonesim/internal/output"
	"clonesim/internal/version"
)

// Invocation is a parsed and validated command line.
type Invocation struct {
	Command    string // config.CommandSimulate | config.CommandAmplify | CommandVersion
	Config     *config.Config
	ConfigFile string
	LogJSON    bool
}

const CommandVersion = "version"

// UsageError is a malformed command line: unknown command or flag, bad flag
// value, or a missing argument.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// Parse parses argv. Help and --version text is written to stdout and Parse
// returns (nil, nil). Errors are *UsageError or *config.Error.
func Parse(argv []string, stdout io.Writer) (*Invocation, error) {
	var inv *Invocation
	root := newRootCmd(func(i *Invocation) { inv = i })
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(io.Discard)

	if err := root.Execute(); err != nil {
		var ce *config.Error
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, &UsageError{Err: err}
	}
	return inv, nil
}

func newRootCmd(done func(*Invocation)) *cobra.Command {
	root := &cobra.Command{
		Use:   "clonesim",
		Short: "Clonal lineage tracing simulator",
		Long: `clonesim simulates a clonal lineage tracing experiment: founder cells are
labelled with DNA barcodes drawn from a pool, the tissue grows for a number
of generations, its DNA is extracted and amplified by PCR with copy errors.
Every stage can be written as a table.`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetVersionTemplate("clonesim version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return &UsageError{Err: err} })
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newSimulateCmd(done),
		newAmplifyCmd(done),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				done(&Invocation{Command: CommandVersion})
				return nil
			},
		},
	)
	return root
}

func newSimulateCmd(done func(*Invocation)) *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Induce, grow, extract and amplify a barcoded tissue",
		Example: `  clonesim simulate --pool barcodes.csv --tissue 10:10:10 -g 10 -c 15 \
      --induced-out induced.tsv --sample-out sample.tsv -o result.tsv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inv, err := f.invocation(cmd, config.CommandSimulate)
			if err != nil {
				return err
			}
			done(inv)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&f.pool, "pool", "p", "", "barcode pool: ';'-separated table (last field) or FASTA/FASTQ [required]")
	fs.StringVarP(&f.tissue, "tissue", "t", "10:10:10", "founder cells as bipotent:basal:luminal")
	fs.IntVarP(&f.generations, "generations", "g", 10, "cell generations to grow")
	fs.StringVar(&f.extract, "extract", config.ExtractAll, "extract DNA from: all | bipotent | luminal | basal")
	fs.StringVar(&f.induced, "induced-out", "", "write the induced tissue table here")
	fs.StringVar(&f.sample, "sample-out", "", "write the grown tissue table here")
	f.register(cmd)
	return cmd
}

func newAmplifyCmd(done func(*Invocation)) *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "amplify",
		Short: "Amplify a template read from a file",
		Example: `  clonesim amplify --template reads.fa.gz -c 20 --eff-mean 0.9 --eff-sd 0.05 -o -`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inv, err := f.invocation(cmd, config.CommandAmplify)
			if err != nil {
				return err
			}
			done(inv)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.template, "template", "", "template molecules: one per line after a header, or FASTA/FASTQ [required]")
	f.register(cmd)
	return cmd
}

// flags holds raw flag values. Only flags set on the command line override
// the config file.
type flags struct {
	configFile string

	pool        string
	template    string
	tissue      string
	generations int
	extract     string

	cycles       int
	mutationRate float64
	effMean      float64
	effSD        float64
	seed         uint64

	induced, sample, result, metrics string

	format   string
	noHeader bool
	sort     bool
	summary  bool

	logLevel string
	quiet    bool
	logJSON  bool
}

// register adds the flags shared by every run command.
func (f *flags) register(cmd *cobra.Command) {
	d := config.Default()
	fs := cmd.Flags()
	fs.StringVar(&f.configFile, "config", "", "YAML run file; command-line flags override it")
	fs.IntVarP(&f.cycles, "cycles", "c", d.PCR.Cycles, "PCR cycles")
	fs.Float64VarP(&f.mutationRate, "mutation-rate", "m", d.PCR.MutationRate, "PCR mutation rate in [0,1]")
	fs.Float64Var(&f.effMean, "eff-mean", d.PCR.EfficiencyMean, "PCR efficiency (mean when --eff-sd > 0)")
	fs.Float64Var(&f.effSD, "eff-sd", d.PCR.EfficiencySD, "efficiency standard deviation; > 0 selects per-sequence efficiencies")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed (0 = random, reported in the summary)")
	fs.StringVarP(&f.result, "result-out", "o", d.Output.Result, "write the PCR result table here ('-' = stdout)")
	fs.StringVar(&f.metrics, "metrics-out", "", "write run metrics in Prometheus text format here")
	fs.StringVarP(&f.format, "format", "f", d.Output.Format, "table format: "+strings.Join(output.Formats, " | "))
	fs.BoolVar(&f.noHeader, "no-header", false, "omit the TSV header line")
	fs.BoolVar(&f.sort, "sort", false, "sort result rows by barcode")
	fs.BoolVar(&f.summary, "summary", false, "print a JSON run summary to stdout")
	fs.StringVar(&f.logLevel, "log-level", d.Logging.Level, "log level: debug | info | warn | error")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only log warnings and errors")
	fs.BoolVar(&f.logJSON, "log-json", false, "log JSON lines instead of text")
}

func (f *flags) invocation(cmd *cobra.Command, command string) (*Invocation, error) {
	cfg := config.Default()
	if f.configFile != "" {
		if err := cfg.MergeFile(f.configFile); err != nil {
			return nil, err
		}
	}
	changed := cmd.Flags().Changed

	if changed("pool") {
		cfg.Pool = f.pool
	}
	if changed("template") {
		cfg.Template = f.template
	}
	if changed("tissue") {
		counts, err := config.ParseTissue(f.tissue)
		if err != nil {
			return nil, err
		}
		cfg.Tissue = counts
	}
	if changed("generations") {
		cfg.Generations = f.generations
	}
	if changed("extract") {
		cfg.Extract = f.extract
	}
	if changed("cycles") {
		cfg.PCR.Cycles = f.cycles
	}
	if changed("mutation-rate") {
		cfg.PCR.MutationRate = f.mutationRate
	}
	if changed("eff-mean") {
		cfg.PCR.EfficiencyMean = f.effMean
	}
	if changed("eff-sd") {
		cfg.PCR.EfficiencySD = f.effSD
	}
	if changed("seed") {
		cfg.Seed = f.seed
	}
	if changed("induced-out") {
		cfg.Output.Induced = f.induced
	}
	if changed("sample-out") {
		cfg.Output.Sample = f.sample
	}
	if changed("result-out") {
		cfg.Output.Result = f.result
	}
	if changed("metrics-out") {
		cfg.Output.Metrics = f.metrics
	}
	if changed("format") {
		cfg.Output.Format = strings.ToLower(f.format)
	}
	if changed("no-header") {
		cfg.Output.Header = !f.noHeader
	}
	if changed("sort") {
		cfg.Output.Sort = f.sort
	}
	if changed("summary") {
		cfg.Output.Summary = f.summary
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if changed("quiet") {
		cfg.Logging.Quiet = f.quiet
	}

	if err := cfg.Validate(command); err != nil {
		return nil, err
	}
	if err := checkStdout(cfg); err != nil {
		return nil, err
	}
	return &Invocation{Command: command, Config: cfg, ConfigFile: f.configFile, LogJSON: f.logJSON}, nil
}

// checkStdout rejects two outputs sharing stdout: at most one table, and no
// table at all when the JSON summary is printed.
func checkStdout(cfg *config.Config) error {
	n := 0
	for _, p := range []string{cfg.Output.Induced, cfg.Output.Sample, cfg.Output.Result} {
		if p == "-" {
			n++
		}
	}
	if n > 1 {
		return &config.Error{Field: "output", Reason: fmt.Sprintf("%d tables written to stdout; at most one may use '-'", n)}
	}
	if n == 1 && cfg.Output.Summary {
		return &config.Error{Field: "output.summary", Reason: "the summary is printed to stdout; write tables to files (-o PATH) to use it"}
	}
	return nil
}
