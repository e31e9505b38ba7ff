// internal/barcode/mutate.go
package barcode

// Picker is the slice of a random source needed to draw point mutations.
type Picker interface {
	IntN(n int) int
}

// Mutate returns a copy of seq with one uniformly chosen position redrawn
// uniformly from Nucleotides. The redraw may select the original base.
// seq must be non-empty; it is never modified.
func Mutate(seq string, rng Picker) string {
	b := []byte(seq)
	pos := rng.IntN(len(b))
	b[pos] = Nucleotides[rng.IntN(len(Nucleotides))]
	return string(b)
}
