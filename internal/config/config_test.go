package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"clonesim/internal/tissue"
)

func validSimulate() *Config {
	c := Default()
	c.Pool = "pool.txt"
	return c
}

func TestDefaultIsValidForSimulate(t *testing.T) {
	if err := validSimulate().Validate(CommandSimulate); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
	c := Default()
	if c.Generations != 10 || c.PCR.Cycles != 15 || c.PCR.MutationRate != 1e-5 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Tissue != (tissue.InitCounts{BiPotent: 10, Luminal: 10, Basal: 10}) {
		t.Fatalf("tissue defaults = %+v", c.Tissue)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(*Config)
		field string
	}{
		{"no pool", func(c *Config) { c.Pool = "" }, "pool"},
		{"negative cells", func(c *Config) { c.Tissue.Basal = -1 }, "tissue"},
		{"negative generations", func(c *Config) { c.Generations = -2 }, "generations"},
		{"tissue too large", func(c *Config) { c.Generations = 40 }, "generations"},
		{"shift past word size", func(c *Config) { c.Generations = 200 }, "generations"},
		{"negative cycles", func(c *Config) { c.PCR.Cycles = -1 }, "pcr.cycles"},
		{"mu above one", func(c *Config) { c.PCR.MutationRate = 1.5 }, "pcr.mutation_rate"},
		{"mu negative", func(c *Config) { c.PCR.MutationRate = -0.1 }, "pcr.mutation_rate"},
		{"negative sd", func(c *Config) { c.PCR.EfficiencySD = -0.1 }, "pcr.efficiency_sd"},
		{"fixed mean above one", func(c *Config) { c.PCR.EfficiencyMean = 1.2 }, "pcr.efficiency_mean"},
		{"bad extract", func(c *Config) { c.Extract = "stem" }, "extract"},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validSimulate()
			tc.mut(c)
			err := c.Validate(CommandSimulate)
			var ce *Error
			if !errors.As(err, &ce) {
				t.Fatalf("want *Error, got %v", err)
			}
			if ce.Field != tc.field {
				t.Fatalf("field = %q, want %q", ce.Field, tc.field)
			}
		})
	}
}

func TestValidateSampledMeanMayExceedOne(t *testing.T) {
	c := validSimulate()
	c.PCR.EfficiencyMean = 1.3
	c.PCR.EfficiencySD = 0.2
	if err := c.Validate(CommandSimulate); err != nil {
		t.Fatalf("sampled efficiency should clamp, not reject: %v", err)
	}
}

func TestValidateAmplifyNeedsTemplate(t *testing.T) {
	c := Default()
	var ce *Error
	if err := c.Validate(CommandAmplify); !errors.As(err, &ce) || ce.Field != "template" {
		t.Fatalf("want template error, got %v", err)
	}
	c.Template = "reads.fa"
	if err := c.Validate(CommandAmplify); err != nil {
		t.Fatal(err)
	}
}

func TestParseTissue(t *testing.T) {
	got, err := ParseTissue("3:2:1")
	if err != nil {
		t.Fatal(err)
	}
	want := tissue.InitCounts{BiPotent: 3, Basal: 2, Luminal: 1}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if s := FormatTissue(got); s != "3:2:1" {
		t.Fatalf("FormatTissue = %q", s)
	}
	for _, bad := range []string{"", "1:2", "1:2:3:4", "a:1:1", "1:-1:1"} {
		if _, err := ParseTissue(bad); err == nil {
			t.Errorf("ParseTissue(%q) accepted", bad)
		}
	}
}

func TestExtractFilter(t *testing.T) {
	c := Default()
	if _, ok, err := c.ExtractFilter(); err != nil || ok {
		t.Fatalf("all: ok=%v err=%v", ok, err)
	}
	c.Extract = "luminal"
	p, ok, err := c.ExtractFilter()
	if err != nil || !ok || p != tissue.UnipotentLuminal {
		t.Fatalf("luminal: p=%v ok=%v err=%v", p, ok, err)
	}
}

func TestLoadFromFileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	body := `pool: barcodes.txt
tissue:
  bipotent: 4
  luminal: 0
  basal: 2
pcr:
  cycles: 3
  efficiency_sd: 0.1
seed: 42
output:
  result: out.tsv
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Pool != "barcodes.txt" || c.Seed != 42 || c.PCR.Cycles != 3 || c.PCR.EfficiencySD != 0.1 {
		t.Fatalf("file values not applied: %+v", c)
	}
	if c.Tissue != (tissue.InitCounts{BiPotent: 4, Basal: 2}) {
		t.Fatalf("tissue = %+v", c.Tissue)
	}
	// untouched keys keep their defaults
	if c.Generations != 10 || c.PCR.MutationRate != 1e-5 || !c.Output.Header || c.Output.Format != "tsv" {
		t.Fatalf("defaults lost: %+v", c)
	}
}

func TestLoadFromFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("cyclez: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var ce *Error
	if _, err := LoadFromFile(path); !errors.As(err, &ce) {
		t.Fatalf("want *Error, got %v", err)
	}
}

func TestLoadFromFileEmptyAndMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err != nil {
		t.Fatalf("empty file: %v", err)
	}
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestValidateGenerationsCap(t *testing.T) {
	c := validSimulate()
	c.Tissue = tissue.InitCounts{BiPotent: 1}
	c.Generations = 27
	if err := c.Validate(CommandSimulate); err != nil {
		t.Fatalf("1 × 2^27 cells rejected: %v", err)
	}
	c.Generations = 28
	if err := c.Validate(CommandSimulate); err == nil {
		t.Fatal("1 × 2^28 cells accepted")
	}
	c.Tissue = tissue.InitCounts{}
	c.Generations = 100
	if err := c.Validate(CommandSimulate); err != nil {
		t.Fatalf("empty tissue rejected: %v", err)
	}
}
