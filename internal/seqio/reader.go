// internal/seqio/reader.go
package seqio

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/xopen"

	"clonesim/internal/barcode"
	"clonesim/internal/template"
)

// ReadPool reads barcode pool sequences from path. FASTA/FASTQ files yield
// one sequence per record. Any other file is a semicolon-delimited table
// whose first line is a header and whose last field is the sequence.
// '-' reads stdin; '.gz' files are decompressed.
func ReadPool(path string) ([]string, error) {
	if IsFastx(path) {
		var out []string
		err := readFastx(path, func(seq, _ string) error {
			out = append(out, seq)
			return nil
		})
		return out, err
	}
	var out []string
	err := readLines(path, func(line string) error {
		if i := strings.LastIndexByte(line, ';'); i >= 0 {
			line = line[i+1:]
		}
		s, err := barcode.Validate(line)
		if err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	return out, err
}

// ReadTemplate reads template records from path. FASTA/FASTQ records count
// one molecule unless the header carries a count=N token, as written by the
// fasta output format. Other files hold one sequence per line after a header
// line, optionally followed by a tab and a count, as in a result table.
func ReadTemplate(path string) ([]template.Read, error) {
	var out []template.Read
	if IsFastx(path) {
		err := readFastx(path, func(seq, header string) error {
			n, err := headerCount(header)
			if err != nil {
				return err
			}
			out = append(out, template.Read{Seq: seq, Count: n})
			return nil
		})
		return out, err
	}
	err := readLines(path, func(line string) error {
		field, count, hasCount := strings.Cut(line, "\t")
		s, err := barcode.Validate(field)
		if err != nil {
			return err
		}
		n := uint64(1)
		if hasCount {
			if n, err = parseCount(strings.TrimSpace(count)); err != nil {
				return err
			}
		}
		out = append(out, template.Read{Seq: s, Count: n})
		return nil
	})
	return out, err
}

// headerCount finds a count=N token in a FASTA/FASTQ header; absent means 1.
func headerCount(header string) (uint64, error) {
	for _, tok := range strings.Fields(header) {
		if v, ok := strings.CutPrefix(tok, "count="); ok {
			return parseCount(v)
		}
	}
	return 1, nil
}

func parseCount(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCount, s)
	}
	return n, nil
}

// ErrInvalidCount is returned for a copy count that is not a positive integer.
var ErrInvalidCount = errors.New("invalid copy count")

// readLines calls fn for every non-blank line after the header.
func readLines(path string, fn func(line string) error) error {
	fh, err := xopen.Ropen(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()

	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 64<<10), 16<<20)
	ln := 0
	for sc.Scan() {
		ln++
		if ln == 1 {
			continue // header
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := fn(line); err != nil {
			return fmt.Errorf("%s:%d: %w", path, ln, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// readFastx calls fn with every record's validated sequence and full header.
func readFastx(path string, fn func(seq, header string) error) error {
	rd, err := fastx.NewDefaultReader(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer rd.Close()

	n := 0
	for chunk := range rd.ChunkChan(4, 1000) {
		if chunk.Err != nil {
			return fmt.Errorf("read %s: %w", path, chunk.Err)
		}
		for _, rec := range chunk.Data {
			n++
			header := string(rec.Name)
			s, err := barcode.Validate(string(rec.Seq.Seq))
			if err == nil {
				err = fn(s, header)
			}
			if err != nil {
				return fmt.Errorf("%s: record %d (%s): %w", path, n, header, err)
			}
		}
	}
	return nil
}
