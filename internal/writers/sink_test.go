package writers

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"clonesim/internal/output"
	"clonesim/internal/template"
	"clonesim/internal/tissue"
)

func TestWriteTemplateFileAtomic(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "result.tsv")
	rows := []template.Row{{Barcode: "ACGT", Count: 4}}
	if err := WriteTemplateFile(fn, nil, output.FormatTSV, rows, output.Options{Header: true}); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "barcode\tcount\nACGT\t4\n" {
		t.Fatalf("content %q", got)
	}
	ents, _ := os.ReadDir(dir)
	if len(ents) != 1 {
		t.Fatalf("temporary files left behind: %v", ents)
	}
}

func TestWriteTissueFileGzip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "tissue.tsv.gz")
	rows := []tissue.Row{{Barcode: "AAAA", CellType: "BiPotent"}}
	if err := WriteTissueFile(fn, nil, output.FormatTSV, rows, output.Options{Header: true}); err != nil {
		t.Fatal(err)
	}
	fh, err := os.Open(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	gz, err := gzip.NewReader(fh)
	if err != nil {
		t.Fatalf("not gzipped: %v", err)
	}
	body, _ := io.ReadAll(gz)
	if string(body) != "barcode\tcell_type\nAAAA\tBiPotent\n" {
		t.Fatalf("content %q", body)
	}
}

func TestWriteToStdout(t *testing.T) {
	var b bytes.Buffer
	if err := WriteTemplateFile("-", &b, output.FormatJSONL, []template.Row{{Barcode: "A", Count: 1}}, output.Options{}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(b.String()) != `{"barcode":"A","count":1}` {
		t.Fatalf("stdout %q", b.String())
	}
}

func TestFailedWriteLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "out.tsv")
	boom := errors.New("boom")
	RegisterTemplate("boom", func(io.Writer, []template.Row, output.Options) error { return boom })
	defer delete(TemplateWriters, "boom")

	err := WriteTemplateFile(fn, nil, "boom", nil, output.Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
	ents, _ := os.ReadDir(dir)
	if len(ents) != 0 {
		t.Fatalf("files left behind: %v", ents)
	}
}

func TestUnknownFormatError(t *testing.T) {
	var b bytes.Buffer
	err := WriteTissue("nope-format", &b, nil, output.Options{})
	if err == nil || !strings.Contains(err.Error(), "unknown tissue format") {
		t.Fatalf("want 'unknown tissue format' error, got: %v", err)
	}
	err = WriteTemplate("???", &b, nil, output.Options{})
	if err == nil || !strings.Contains(err.Error(), "unknown template format") {
		t.Fatalf("want 'unknown template format' error, got: %v", err)
	}
}

func TestEveryFormatRegistered(t *testing.T) {
	for _, f := range output.Formats {
		if TissueWriters[f] == nil || TemplateWriters[f] == nil {
			t.Errorf("format %q not registered", f)
		}
	}
}

func TestIsBrokenPipe(t *testing.T) {
	if IsBrokenPipe(nil) || !IsBrokenPipe(io.ErrClosedPipe) {
		t.Fatal("IsBrokenPipe misclassifies")
	}
}

func TestCommittedFileIsWorldReadable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	fn := filepath.Join(t.TempDir(), "sample.tsv")
	rows := []tissue.Row{{Barcode: "ACGT", CellType: "Basal"}}
	if err := WriteTissueFile(fn, nil, output.FormatTSV, rows, output.Options{Header: true}); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(fn)
	if err != nil {
		t.Fatal(err)
	}
	if got := fi.Mode().Perm(); got != 0o644 {
		t.Fatalf("mode %o, want 644", got)
	}
}
