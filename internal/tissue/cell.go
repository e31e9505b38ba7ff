// internal/tissue/cell.go
package tissue

import "fmt"

// Potency is a cell's differentiation state.
type Potency uint8

const (
	BiPotent Potency = iota
	UnipotentLuminal
	UnipotentBasal
)

// Label is the cell-type column used in tissue tables.
func (p Potency) Label() string {
	switch p {
	case BiPotent:
		return "BiPotent"
	case UnipotentLuminal:
		return "Luminal"
	case UnipotentBasal:
		return "Basal"
	}
	return fmt.Sprintf("Potency(%d)", uint8(p))
}

func (p Potency) String() string { return p.Label() }

// Unipotent reports whether p can only self-duplicate.
func (p Potency) Unipotent() bool { return p == UnipotentLuminal || p == UnipotentBasal }

// ParsePotency accepts the table labels and the lower-case filter names
// bipotent, luminal and basal.
func ParsePotency(s string) (Potency, error) {
	switch s {
	case "BiPotent", "bipotent":
		return BiPotent, nil
	case "Luminal", "luminal":
		return UnipotentLuminal, nil
	case "Basal", "basal":
		return UnipotentBasal, nil
	}
	return 0, fmt.Errorf("unknown cell type %q (want bipotent|luminal|basal)", s)
}

// Cell carries a potency state and the pool index of its barcode. The
// barcode is fixed at induction and inherited by every descendant.
type Cell struct {
	Potency Potency
	Barcode int
}

// Divide returns the two daughters of c. A bipotent cell yields one luminal
// and one basal daughter; a unipotent cell yields two copies of itself.
func (c Cell) Divide() [2]Cell {
	if c.Potency == BiPotent {
		return [2]Cell{
			{Potency: UnipotentLuminal, Barcode: c.Barcode},
			{Potency: UnipotentBasal, Barcode: c.Barcode},
		}
	}
	return [2]Cell{c, c}
}
