// internal/tissue/tissue.go
package tissue

import (
	"fmt"

	"clonesim/internal/barcode"
	"clonesim/internal/randsrc"
)

// InitCounts is the founder population per potency state.
type InitCounts struct {
	BiPotent int `yaml:"bipotent"`
	Luminal  int `yaml:"luminal"`
	Basal    int `yaml:"basal"`
}

// Total is the number of founder cells.
func (c InitCounts) Total() int { return c.BiPotent + c.Luminal + c.Basal }

// Tissue is one generation's population.
type Tissue []Cell

// Init builds the founder tissue: all bipotent cells, then luminal, then
// basal, each tagged with a barcode drawn uniformly with replacement.
func Init(counts InitCounts, pool *barcode.Pool, rng randsrc.Source) (Tissue, error) {
	if counts.BiPotent < 0 || counts.Luminal < 0 || counts.Basal < 0 {
		return nil, fmt.Errorf("negative founder count %+v", counts)
	}
	t := make(Tissue, 0, counts.Total())
	for _, grp := range []struct {
		p Potency
		n int
	}{
		{BiPotent, counts.BiPotent},
		{UnipotentLuminal, counts.Luminal},
		{UnipotentBasal, counts.Basal},
	} {
		for i := 0; i < grp.n; i++ {
			idx, err := pool.Pick(rng)
			if err != nil {
				return nil, err
			}
			t = append(t, Cell{Potency: grp.p, Barcode: idx})
		}
	}
	return t, nil
}

// Grow returns the next generation. Every cell divides once, so the result
// is exactly twice as large and keeps parent order.
func Grow(t Tissue) Tissue {
	next := make(Tissue, 0, 2*len(t))
	for _, c := range t {
		d := c.Divide()
		next = append(next, d[0], d[1])
	}
	return next
}

// GrowN applies Grow n times.
func GrowN(t Tissue, n int) Tissue {
	for i := 0; i < n; i++ {
		t = Grow(t)
	}
	return t
}

// Census counts cells per potency state.
type Census struct {
	BiPotent int
	Luminal  int
	Basal    int
}

func (t Tissue) Census() Census {
	var c Census
	for _, cell := range t {
		switch cell.Potency {
		case BiPotent:
			c.BiPotent++
		case UnipotentLuminal:
			c.Luminal++
		case UnipotentBasal:
			c.Basal++
		}
	}
	return c
}

// Row is one line of a tissue table.
type Row struct {
	Barcode  string
	CellType string
}

// Rows resolves barcodes against pool, preserving tissue order.
func (t Tissue) Rows(pool *barcode.Pool) []Row {
	out := make([]Row, len(t))
	for i, c := range t {
		out[i] = Row{Barcode: pool.Seq(c.Barcode), CellType: c.Potency.Label()}
	}
	return out
}
