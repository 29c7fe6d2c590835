// Command mmdb reads a Metamath database and rewrites it with canonical
// labels and compressed proofs.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/robertkrimen/isatty"
	"github.com/vilterp/gometamath/internal/cliutil"
	"github.com/vilterp/gometamath/internal/db"
	"github.com/vilterp/gometamath/internal/metrics"
	"github.com/vilterp/gometamath/internal/store"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: mmdb <input.mm> <output.mm>")
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2]); err != nil {
		cliutil.PrintError(os.Stderr, os.Stderr.Fd(), err)
		os.Exit(1)
	}
}

func run(inPath, outPath string) error {
	m := metrics.New()

	in, err := os.Open(inPath)
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	defer in.Close()

	parseStart := time.Now()
	st, err := db.Read(in)
	if err != nil {
		return errors.Wrap(err, "reading database")
	}
	m.ObserveParseLatency(time.Since(parseStart))
	recordMetrics(m, st)

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	defer out.Close()

	encodeStart := time.Now()
	if err := db.Write(out, st); err != nil {
		return errors.Wrap(err, "writing database")
	}
	m.ObserveEncodeLatency(time.Since(encodeStart))

	if isatty.Check(os.Stdout.Fd()) {
		fmt.Println(m.Summary())
	}
	return nil
}

func recordMetrics(m *metrics.Metrics, st *store.Store) {
	for range st.Constants() {
		m.AddSymbol()
	}
	for range st.Variables() {
		m.AddSymbol()
	}
	for _, a := range st.Assertions() {
		m.AddAssertion()
		if a.Proof != nil {
			m.AddProofSteps(len(a.Proof.Steps))
		}
	}
}
