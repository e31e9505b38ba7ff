// Package template holds the PCR reaction pool: copy counts and
// amplification efficiencies keyed by barcode sequence.
package template

import (
	"math"
	"sort"
)

// Entry is one distinct sequence in the reaction.
type Entry struct {
	Seq        string
	Count      uint64
	Efficiency float64
}

// Template maps sequences to entries. Entries keep insertion order so that a
// seeded run visits them identically every time.
type Template struct {
	index   map[string]int
	entries []Entry
}

func New() *Template {
	return &Template{index: make(map[string]int)}
}

// Len is the number of distinct sequences.
func (t *Template) Len() int { return len(t.entries) }

// At returns the i-th entry in insertion order. The pointer is valid until
// the next insertion.
func (t *Template) At(i int) *Entry { return &t.entries[i] }

// Get looks up seq.
func (t *Template) Get(seq string) (Entry, bool) {
	i, ok := t.index[seq]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Add increments seq by n, saturating at math.MaxUint64. A missing sequence
// is created with the efficiency returned by eff, which is only called in
// that case.
func (t *Template) Add(seq string, n uint64, eff func() float64) {
	if i, ok := t.index[seq]; ok {
		t.entries[i].Count = saturatingAdd(t.entries[i].Count, n)
		return
	}
	t.index[seq] = len(t.entries)
	t.entries = append(t.entries, Entry{Seq: seq, Count: n, Efficiency: eff()})
}

// Molecules is the total copy count, saturating at math.MaxUint64.
func (t *Template) Molecules() uint64 {
	var n uint64
	for i := range t.entries {
		n = saturatingAdd(n, t.entries[i].Count)
	}
	return n
}

func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// Counts returns a sequence -> count map, mainly for comparisons.
func (t *Template) Counts() map[string]uint64 {
	out := make(map[string]uint64, len(t.entries))
	for _, e := range t.entries {
		out[e.Seq] = e.Count
	}
	return out
}

// Row is one line of a template table. Efficiencies are not exported.
type Row struct {
	Barcode string
	Count   uint64
}

// Rows lists entries in insertion order, or by barcode when sorted is set.
func (t *Template) Rows(sorted bool) []Row {
	out := make([]Row, len(t.entries))
	for i, e := range t.entries {
		out[i] = Row{Barcode: e.Seq, Count: e.Count}
	}
	if sorted {
		sort.Slice(out, func(i, j int) bool { return out[i].Barcode < out[j].Barcode })
	}
	return out
}
