package store

import "fmt"

// DuplicateLabelError reports a label that collides with one already
// reserved by a symbol, an assertion, or a named hypothesis.
type DuplicateLabelError struct {
	Label string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("duplicate label: %s", e.Label)
}
