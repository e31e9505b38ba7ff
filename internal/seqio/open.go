// internal/seqio/open.go
package seqio

import (
	"path/filepath"
	"strings"
)

// IsFastx reports whether path names a FASTA/FASTQ file, optionally gzipped.
func IsFastx(path string) bool {
	p := strings.ToLower(strings.TrimSuffix(strings.ToLower(path), ".gz"))
	switch filepath.Ext(p) {
	case ".fa", ".fasta", ".fna", ".fq", ".fastq":
		return true
	}
	return false
}
