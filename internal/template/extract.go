// internal/template/extract.go
package template

import (
	"clonesim/internal/barcode"
	"clonesim/internal/randsrc"
	"clonesim/internal/tissue"
)

// Predicate selects cells for extraction. A nil Predicate keeps every cell.
type Predicate func(tissue.Cell) bool

// OfPotency keeps cells in state p.
func OfPotency(p tissue.Potency) Predicate {
	return func(c tissue.Cell) bool { return c.Potency == p }
}

// Extract counts one molecule per selected cell under its barcode. Each
// distinct barcode gets its efficiency from model when first seen.
func Extract(t tissue.Tissue, pool *barcode.Pool, keep Predicate, model EfficiencyModel, rng randsrc.Source) *Template {
	tpl := New()
	assign := func() float64 { return model.Assign(rng) }
	for _, c := range t {
		if keep != nil && !keep(c) {
			continue
		}
		tpl.Add(pool.Seq(c.Barcode), 1, assign)
	}
	return tpl
}

// Read is one input record: a sequence and the molecules it stands for.
type Read struct {
	Seq   string
	Count uint64
}

// FromReads builds a template from input records. Repeated sequences add up;
// efficiencies are assigned at first occurrence.
func FromReads(reads []Read, model EfficiencyModel, rng randsrc.Source) *Template {
	tpl := New()
	assign := func() float64 { return model.Assign(rng) }
	for _, r := range reads {
		tpl.Add(r.Seq, r.Count, assign)
	}
	return tpl
}

// FromSequences builds a template from raw reads, one molecule per read.
func FromSequences(seqs []string, model EfficiencyModel, rng randsrc.Source) *Template {
	reads := make([]Read, len(seqs))
	for i, s := range seqs {
		reads[i] = Read{Seq: s, Count: 1}
	}
	return FromReads(reads, model, rng)
}
