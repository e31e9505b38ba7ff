// internal/writers/sink.go
package writers

import (
	"io"
	"os"
	"path/filepath"

	"github.com/shenwei356/xopen"

	"clonesim/internal/output"
	"clonesim/internal/template"
	"clonesim/internal/tissue"
)

// Sink is an output destination. File sinks write to a temporary file next
// to the target and only rename it into place on Commit, so a failed run
// never leaves a partial table behind. Paths ending in .gz are gzipped.
type Sink struct {
	w      io.Writer
	commit func() error
	abort  func()
}

// outputPerm is the mode of committed output files.
const outputPerm = 0o644

// Open returns a sink for path. "-" writes to stdout unbuffered by the sink.
func Open(path string, stdout io.Writer) (*Sink, error) {
	if path == "-" {
		return &Sink{w: stdout, commit: func() error { return nil }, abort: func() {}}, nil
	}
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*-"+base)
	if err != nil {
		return nil, err
	}
	tmpName := tmp.Name()
	// CreateTemp uses 0600; tables are shared like any os.Create'd file.
	err = tmp.Chmod(outputPerm)
	_ = tmp.Close()
	if err != nil {
		_ = os.Remove(tmpName)
		return nil, err
	}

	xw, err := xopen.Wopen(tmpName)
	if err != nil {
		_ = os.Remove(tmpName)
		return nil, err
	}
	return &Sink{
		w: xw,
		commit: func() error {
			if err := xw.Close(); err != nil {
				_ = os.Remove(tmpName)
				return err
			}
			if err := os.Rename(tmpName, path); err != nil {
				_ = os.Remove(tmpName)
				return err
			}
			return nil
		},
		abort: func() {
			_ = xw.Close()
			_ = os.Remove(tmpName)
		},
	}, nil
}

func (s *Sink) Write(p []byte) (int, error) { return s.w.Write(p) }

// Commit finalizes the output.
func (s *Sink) Commit() error { return s.commit() }

// Abort discards the output.
func (s *Sink) Abort() { s.abort() }

// WriteTissueFile renders rows in format to path.
func WriteTissueFile(path string, stdout io.Writer, format string, rows []tissue.Row, o output.Options) error {
	return withSink(path, stdout, func(w io.Writer) error { return WriteTissue(format, w, rows, o) })
}

// WriteTemplateFile renders rows in format to path.
func WriteTemplateFile(path string, stdout io.Writer, format string, rows []template.Row, o output.Options) error {
	return withSink(path, stdout, func(w io.Writer) error { return WriteTemplate(format, w, rows, o) })
}

func withSink(path string, stdout io.Writer, write func(io.Writer) error) error {
	s, err := Open(path, stdout)
	if err != nil {
		return err
	}
	if err := write(s); err != nil {
		s.Abort()
		return err
	}
	return s.Commit()
}
