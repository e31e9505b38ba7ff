// internal/barcode/sequence.go
package barcode

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Nucleotides is the substitution alphabet, in the order mutations draw from.
var Nucleotides = [4]byte{'A', 'T', 'C', 'G'}

// ErrInvalidSequence is returned for empty sequences or characters outside A/T/C/G.
var ErrInvalidSequence = errors.New("invalid barcode sequence")

// Normalize removes whitespace and quotes and uppercases bases.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Validate returns the normalized sequence, or an error wrapping
// ErrInvalidSequence if it is empty or contains a non-ATCG base.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidSequence)
	}
	for i := 0; i < len(s); i++ {
		if !isNucleotide(s[i]) {
			return "", fmt.Errorf("%w: base %q at %d; allowed: A T C G", ErrInvalidSequence, s[i], i+1)
		}
	}
	return s, nil
}

func isNucleotide(b byte) bool {
	switch b {
	case 'A', 'T', 'C', 'G':
		return true
	}
	return false
}
