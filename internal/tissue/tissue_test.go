package tissue

import (
	"errors"
	"testing"

	"clonesim/internal/barcode"
	"clonesim/internal/randsrc"
)

func TestInitSingleBipotent(t *testing.T) {
	pool := barcode.MustPool("AAAA")
	got, err := Init(InitCounts{BiPotent: 1}, pool, randsrc.New(1))
	if err != nil {
		t.Fatal(err)
	}
	rows := got.Rows(pool)
	if len(rows) != 1 || rows[0] != (Row{Barcode: "AAAA", CellType: "BiPotent"}) {
		t.Fatalf("got %+v", rows)
	}
}

func TestInitOrderAndSampling(t *testing.T) {
	pool := barcode.MustPool("AAAA", "CCCC", "GGGG")
	rng := &randsrc.Scripted{Ints: []int{2, 0, 1, 1, 2, 0}}
	got, err := Init(InitCounts{BiPotent: 2, Luminal: 1, Basal: 3}, pool, rng)
	if err != nil {
		t.Fatal(err)
	}
	want := Tissue{
		{BiPotent, 2}, {BiPotent, 0},
		{UnipotentLuminal, 1},
		{UnipotentBasal, 1}, {UnipotentBasal, 2}, {UnipotentBasal, 0},
	}
	if len(got) != len(want) {
		t.Fatalf("len %d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d = %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestInitRejectsNegative(t *testing.T) {
	if _, err := Init(InitCounts{Luminal: -1}, barcode.MustPool("A"), randsrc.New(1)); err == nil {
		t.Fatal("expected error")
	}
}

func TestInitEmptyPool(t *testing.T) {
	var pool *barcode.Pool
	_, err := Init(InitCounts{BiPotent: 1}, pool, randsrc.New(1))
	if !errors.Is(err, barcode.ErrEmptyPool) {
		t.Fatalf("want ErrEmptyPool, got %v", err)
	}
}

func TestInitZeroCellsEmptyPoolOK(t *testing.T) {
	var pool *barcode.Pool
	got, err := Init(InitCounts{}, pool, randsrc.New(1))
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestGrowBipotentDifferentiates(t *testing.T) {
	pool := barcode.MustPool("AAAA")
	next := Grow(Tissue{{BiPotent, 0}})
	rows := next.Rows(pool)
	want := []Row{{"AAAA", "Luminal"}, {"AAAA", "Basal"}}
	if len(rows) != 2 || rows[0] != want[0] || rows[1] != want[1] {
		t.Fatalf("got %+v want %+v", rows, want)
	}
}

func TestGrowUnipotentSelfDuplicates(t *testing.T) {
	for _, p := range []Potency{UnipotentLuminal, UnipotentBasal} {
		next := Grow(Tissue{{p, 3}})
		if len(next) != 2 || next[0] != (Cell{p, 3}) || next[1] != (Cell{p, 3}) {
			t.Errorf("%v: got %+v", p, next)
		}
	}
}

func TestGrowDoublesPopulation(t *testing.T) {
	pool := barcode.MustPool("ATCA", "TTCAG")
	tis, err := Init(InitCounts{BiPotent: 10, Luminal: 10, Basal: 10}, pool, randsrc.New(11))
	if err != nil {
		t.Fatal(err)
	}
	n := len(tis)
	for g := 1; g <= 5; g++ {
		tis = Grow(tis)
		n *= 2
		if len(tis) != n {
			t.Fatalf("generation %d: size %d want %d", g, len(tis), n)
		}
	}
	if n != 960 {
		t.Fatalf("final size %d want 960", n)
	}
}

func TestGrowPreservesBarcodeMultiset(t *testing.T) {
	pool := barcode.MustPool("AAAA", "CCCC", "GGGG", "TTTT")
	founders, err := Init(InitCounts{BiPotent: 5, Luminal: 4, Basal: 3}, pool, randsrc.New(21))
	if err != nil {
		t.Fatal(err)
	}
	before := map[int]int{}
	for _, c := range founders {
		before[c.Barcode]++
	}
	const gens = 4
	grown := GrowN(founders, gens)
	after := map[int]int{}
	for _, c := range grown {
		after[c.Barcode]++
	}
	for bc, n := range before {
		if after[bc] != n<<gens {
			t.Errorf("barcode %d: %d cells want %d", bc, after[bc], n<<gens)
		}
	}
	if len(after) != len(before) {
		t.Errorf("barcode set changed: %v vs %v", after, before)
	}
}

func TestNoBipotentAfterFirstDivision(t *testing.T) {
	tis := Tissue{{BiPotent, 0}, {UnipotentLuminal, 0}, {UnipotentBasal, 0}}
	for g := 0; g < 6; g++ {
		tis = Grow(tis)
		if c := tis.Census(); c.BiPotent != 0 {
			t.Fatalf("generation %d has %d bipotent cells", g+1, c.BiPotent)
		}
	}
}

func TestUnipotentLineageStaysUnipotent(t *testing.T) {
	// Tracks each founder's subtree through Divide directly.
	for _, p := range []Potency{UnipotentLuminal, UnipotentBasal} {
		cells := []Cell{{p, 0}}
		for g := 0; g < 5; g++ {
			var next []Cell
			for _, c := range cells {
				d := c.Divide()
				next = append(next, d[0], d[1])
			}
			cells = next
		}
		for _, c := range cells {
			if c.Potency != p {
				t.Fatalf("%v lineage produced %v", p, c.Potency)
			}
		}
	}
}

func TestCensus(t *testing.T) {
	c := GrowN(Tissue{{BiPotent, 0}, {UnipotentBasal, 0}}, 2).Census()
	if c != (Census{BiPotent: 0, Luminal: 2, Basal: 6}) {
		t.Fatalf("census %+v", c)
	}
}

func TestParsePotency(t *testing.T) {
	for in, want := range map[string]Potency{"bipotent": BiPotent, "Luminal": UnipotentLuminal, "basal": UnipotentBasal} {
		got, err := ParsePotency(in)
		if err != nil || got != want {
			t.Errorf("ParsePotency(%q)=%v,%v", in, got, err)
		}
	}
	if _, err := ParsePotency("stem"); err == nil {
		t.Error("expected error")
	}
}
