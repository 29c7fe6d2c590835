package db

import "fmt"

// UnexpectedTokenError reports a token that does not fit the grammar
// production the reader was in the middle of when it was read.
type UnexpectedTokenError struct {
	Context string
	Got     string
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token in %s: %q", e.Context, e.Got)
}
