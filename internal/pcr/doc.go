// Package pcr simulates PCR amplification of a template. It only depends on
// the template, barcode and randsrc packages; keep it free of I/O.
//
// Each cycle visits the entries present at the start of the cycle. For every
// entry it draws the number of mutating molecules from a Binomial, draws one
// point mutant per mutating molecule, and runs a single Bernoulli doubling
// trial for the whole entry. Mutants are merged only after the pass, so they
// are never revisited within the cycle that produced them.
//
// The doubling trial is per distinct sequence, not per molecule. Whether the
// biology calls for per-molecule trials is unresolved; changing it alters
// aggregate growth substantially.
package pcr
