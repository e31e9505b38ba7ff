package config

import "fmt"

// Error is a configuration error: a malformed or out-of-range parameter,
// rejected before any simulation state is built.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string { return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason) }
