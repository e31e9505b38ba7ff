// internal/barcode/pool.go
package barcode

import (
	"errors"
	"fmt"
)

// ErrEmptyPool is returned when a pool with no sequences is built or sampled.
var ErrEmptyPool = errors.New("barcode pool is empty")

// Pool is an ordered, read-only collection of distinct barcode sequences.
// Cells refer to pool entries by index.
type Pool struct {
	seqs       []string
	duplicates int
}

// NewPool validates and normalizes seqs. Repeated sequences keep their first
// position; the number dropped is reported by Duplicates.
func NewPool(seqs []string) (*Pool, error) {
	p := &Pool{seqs: make([]string, 0, len(seqs))}
	seen := make(map[string]struct{}, len(seqs))
	for i, raw := range seqs {
		s, err := Validate(raw)
		if err != nil {
			return nil, fmt.Errorf("pool entry %d: %w", i+1, err)
		}
		if _, dup := seen[s]; dup {
			p.duplicates++
			continue
		}
		seen[s] = struct{}{}
		p.seqs = append(p.seqs, s)
	}
	if len(p.seqs) == 0 {
		return nil, ErrEmptyPool
	}
	return p, nil
}

// MustPool is NewPool for literals in tests and examples.
func MustPool(seqs ...string) *Pool {
	p, err := NewPool(seqs)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pool) Len() int { return len(p.seqs) }

// Duplicates is the number of repeated input sequences dropped by NewPool.
func (p *Pool) Duplicates() int { return p.duplicates }

// Seq returns the sequence at index i.
func (p *Pool) Seq(i int) string { return p.seqs[i] }

// Pick draws a pool index uniformly at random.
func (p *Pool) Pick(rng Picker) (int, error) {
	if p == nil || len(p.seqs) == 0 {
		return 0, ErrEmptyPool
	}
	return rng.IntN(len(p.seqs)), nil
}
