// Package cliutil holds small diagnostic-output helpers shared by the
// command-line entrypoint.
package cliutil

import (
	"fmt"
	"io"

	"github.com/robertkrimen/isatty"
)

// PrintError writes err to w as a single diagnostic line, with a red
// "err:" prefix when fd is a TTY and a plain one otherwise. Uses "%+v" so
// an errors.Wrap cause chain prints in full.
func PrintError(w io.Writer, fd uintptr, err error) {
	prefix := "err: "
	if isatty.Check(fd) {
		prefix = "\x1b[31merr:\x1b[0m "
	}
	fmt.Fprintf(w, "%s%+v\n", prefix, err)
}
