package randsrc

import (
	"math"
	"testing"
)

func TestSeedReproducible(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Binomial(1000, 0.3), b.Binomial(1000, 0.3); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
		if x, y := a.Normal(0.8, 0.1), b.Normal(0.8, 0.1); x != y {
			t.Fatalf("draw %d: %v != %v", i, x, y)
		}
		if x, y := a.IntN(4), b.IntN(4); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

func TestZeroSeedIsReported(t *testing.T) {
	if New(0).Seed() == 0 {
		t.Fatal("random seed should be non-zero")
	}
	if got := New(7).Seed(); got != 7 {
		t.Fatalf("Seed=%d want 7", got)
	}
}

func TestBinomialBounds(t *testing.T) {
	r := New(1)
	if got := r.Binomial(0, 0.5); got != 0 {
		t.Fatalf("n=0 -> %d", got)
	}
	if got := r.Binomial(100, 0); got != 0 {
		t.Fatalf("p=0 -> %d", got)
	}
	if got := r.Binomial(100, 1); got != 100 {
		t.Fatalf("p=1 -> %d", got)
	}
	if got := r.Binomial(100, 3.5); got != 100 {
		t.Fatalf("p>1 -> %d", got)
	}
	for _, n := range []uint64{1, 10, 24, 25, 1000, 1 << 30} {
		for i := 0; i < 200; i++ {
			if k := r.Binomial(n, 0.01); k > n {
				t.Fatalf("Binomial(%d) = %d exceeds n", n, k)
			}
		}
	}
}

func TestBinomialMean(t *testing.T) {
	r := New(99)
	const n, p, draws = 10000, 0.02, 2000
	var sum float64
	for i := 0; i < draws; i++ {
		sum += float64(r.Binomial(n, p))
	}
	mean := sum / draws
	if math.Abs(mean-n*p) > 2 {
		t.Fatalf("mean %v too far from %v", mean, n*p)
	}
}

func TestNormalZeroSD(t *testing.T) {
	if got := New(3).Normal(0.9, 0); got != 0.9 {
		t.Fatalf("Normal(0.9,0)=%v", got)
	}
}

func TestBernoulliEdges(t *testing.T) {
	r := New(5)
	for i := 0; i < 100; i++ {
		if r.Bernoulli(0) {
			t.Fatal("p=0 succeeded")
		}
		if !r.Bernoulli(1) {
			t.Fatal("p=1 failed")
		}
	}
}

func TestScriptedFallbacks(t *testing.T) {
	s := &Scripted{Binomials: []uint64{3}, Bernoullis: []bool{false}}
	if got := s.Binomial(10, 0.1); got != 3 {
		t.Fatalf("first Binomial=%d", got)
	}
	if got := s.Binomial(10, 0.1); got != 0 {
		t.Fatalf("fallback Binomial=%d", got)
	}
	if s.Bernoulli(1) {
		t.Fatal("scripted Bernoulli should be false")
	}
	if !s.Bernoulli(1) {
		t.Fatal("fallback Bernoulli(1) should be true")
	}
	if len(s.BinomialCalls) != 2 || s.BinomialCalls[0].N != 10 {
		t.Fatalf("calls not recorded: %+v", s.BinomialCalls)
	}
}
