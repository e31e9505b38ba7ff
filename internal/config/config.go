// Package config holds the parameters of a simulation run. Values are
// layered: Default, then an optional YAML file, then command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"clonesim/internal/output"
	"clonesim/internal/tissue"
)

// Commands a configuration can be validated for.
const (
	CommandSimulate = "simulate"
	CommandAmplify  = "amplify"
)

// MaxCells bounds the grown tissue, founders × 2^generations. Cells are held
// in memory, 16 bytes each.
const MaxCells = 1 << 27

// Extraction filters.
const (
	ExtractAll = "all"
)

// Config is one run's parameters.
type Config struct {
	// Pool is the barcode pool file (simulate).
	Pool string `yaml:"pool"`
	// Template is the read file seeding the PCR template (amplify).
	Template string `yaml:"template"`

	Tissue      tissue.InitCounts `yaml:"tissue"`
	Generations int               `yaml:"generations"`
	// Extract restricts DNA extraction to one cell type: all, bipotent, luminal or basal.
	Extract string `yaml:"extract"`

	PCR PCRConfig `yaml:"pcr"`

	// Seed makes a run reproducible; 0 picks a random seed.
	Seed uint64 `yaml:"seed"`

	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// PCRConfig configures amplification. A zero EfficiencySD selects the
// fixed-efficiency model.
type PCRConfig struct {
	Cycles         int     `yaml:"cycles"`
	MutationRate   float64 `yaml:"mutation_rate"`
	EfficiencyMean float64 `yaml:"efficiency_mean"`
	EfficiencySD   float64 `yaml:"efficiency_sd"`
}

// OutputConfig names the output tables. Empty paths are skipped; "-" is stdout.
type OutputConfig struct {
	Induced string `yaml:"induced"`
	Sample  string `yaml:"sample"`
	Result  string `yaml:"result"`
	Metrics string `yaml:"metrics"`

	Format  string `yaml:"format"`
	Header  bool   `yaml:"header"`
	Sort    bool   `yaml:"sort"`
	Summary bool   `yaml:"summary"`
}

// LoggingConfig configures the stderr logger.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`
	Quiet bool   `yaml:"quiet"`
}

// Default returns the parameters of the original lineage-tracing runs.
func Default() *Config {
	return &Config{
		Tissue:      tissue.InitCounts{BiPotent: 10, Luminal: 10, Basal: 10},
		Generations: 10,
		Extract:     ExtractAll,
		PCR: PCRConfig{
			Cycles:         15,
			MutationRate:   1e-5,
			EfficiencyMean: 1.0,
			EfficiencySD:   0,
		},
		Output: OutputConfig{
			Result: "-",
			Format: output.FormatTSV,
			Header: true,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadFromFile overlays the YAML file at path onto Default.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.MergeFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MergeFile overlays the YAML file at path onto c. Unknown keys are rejected.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return &Error{Field: "config", Reason: fmt.Sprintf("%s: %v", path, err)}
	}
	return nil
}

// ParseTissue parses "B:Bas:Lum" founder counts: bipotent, basal, luminal.
func ParseTissue(s string) (tissue.InitCounts, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return tissue.InitCounts{}, &Error{Field: "tissue", Reason: fmt.Sprintf("%q: want bipotent:basal:luminal", s)}
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 {
			return tissue.InitCounts{}, &Error{Field: "tissue", Reason: fmt.Sprintf("%q: illegal cell number %q", s, p)}
		}
		n[i] = v
	}
	return tissue.InitCounts{BiPotent: n[0], Basal: n[1], Luminal: n[2]}, nil
}

// FormatTissue is the inverse of ParseTissue.
func FormatTissue(c tissue.InitCounts) string {
	return fmt.Sprintf("%d:%d:%d", c.BiPotent, c.Basal, c.Luminal)
}

// Validate checks c for the given command. Failures are *Error.
func (c *Config) Validate(command string) error {
	switch command {
	case CommandSimulate:
		if c.Pool == "" {
			return &Error{Field: "pool", Reason: "a barcode pool file is required"}
		}
		if c.Tissue.BiPotent < 0 || c.Tissue.Luminal < 0 || c.Tissue.Basal < 0 {
			return &Error{Field: "tissue", Reason: "cell numbers must be ≥ 0"}
		}
		if c.Generations < 0 {
			return &Error{Field: "generations", Reason: "must be ≥ 0"}
		}
		if n := c.Tissue.Total(); n > 0 && n > MaxCells>>uint(c.Generations) {
			return &Error{Field: "generations", Reason: fmt.Sprintf("%d founders × 2^%d exceeds %d cells", n, c.Generations, MaxCells)}
		}
		if _, _, err := c.ExtractFilter(); err != nil {
			return err
		}
	case CommandAmplify:
		if c.Template == "" {
			return &Error{Field: "template", Reason: "a template file is required"}
		}
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	p := c.PCR
	if p.Cycles < 0 {
		return &Error{Field: "pcr.cycles", Reason: "must be ≥ 0"}
	}
	if math.IsNaN(p.MutationRate) || p.MutationRate < 0 || p.MutationRate > 1 {
		return &Error{Field: "pcr.mutation_rate", Reason: fmt.Sprintf("%v not in [0,1]", p.MutationRate)}
	}
	if math.IsNaN(p.EfficiencySD) || math.IsInf(p.EfficiencySD, 0) || p.EfficiencySD < 0 {
		return &Error{Field: "pcr.efficiency_sd", Reason: fmt.Sprintf("%v must be finite and ≥ 0", p.EfficiencySD)}
	}
	if math.IsNaN(p.EfficiencyMean) || math.IsInf(p.EfficiencyMean, 0) {
		return &Error{Field: "pcr.efficiency_mean", Reason: "must be finite"}
	}
	if p.EfficiencySD == 0 && (p.EfficiencyMean < 0 || p.EfficiencyMean > 1) {
		return &Error{Field: "pcr.efficiency_mean", Reason: fmt.Sprintf("%v not in [0,1] with efficiency_sd 0", p.EfficiencyMean)}
	}

	if !knownFormat(c.Output.Format) {
		return &Error{Field: "output.format", Reason: fmt.Sprintf("%q (want %s)", c.Output.Format, strings.Join(output.Formats, " | "))}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return &Error{Field: "logging.level", Reason: fmt.Sprintf("%q (want debug | info | warn | error)", c.Logging.Level)}
	}
	return nil
}

// ExtractFilter resolves Extract. ok is false for "all".
func (c *Config) ExtractFilter() (p tissue.Potency, ok bool, err error) {
	if c.Extract == "" || c.Extract == ExtractAll {
		return 0, false, nil
	}
	p, err = tissue.ParsePotency(c.Extract)
	if err != nil {
		return 0, false, &Error{Field: "extract", Reason: err.Error()}
	}
	return p, true, nil
}

func knownFormat(f string) bool {
	for _, k := range output.Formats {
		if f == k {
			return true
		}
	}
	return false
}
