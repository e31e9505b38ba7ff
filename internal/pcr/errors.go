// internal/pcr/errors.go
package pcr

import "fmt"

// InvariantError reports a count update that would leave an entry's copy
// number out of range. It indicates a sampling bug, never bad input.
type InvariantError struct {
	Seq       string
	Count     uint64
	Mutations uint64
	Reason    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("pcr invariant violated for %s: %s (count=%d, mutations=%d)",
		e.Seq, e.Reason, e.Count, e.Mutations)
}
