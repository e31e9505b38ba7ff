package pipeline

import "fmt"

// IOError is a failure to read an input file or write an output table.
type IOError struct {
	Op   string // "read" | "write"
	Path string
	Err  error
}

// Error leaves the path out of read errors; the readers report it with the
// offending line or record.
func (e *IOError) Error() string {
	if e.Op == "read" || e.Path == "" || e.Path == "-" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
