// Package metrics tracks parse/encode volume and latency for a single run
// of mmdb, the same registry-of-collectors shape pkg/metrics.go builds for
// the teacher's connection/query counters.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics registers its counters as prometheus collectors but, since this
// binary is a one-shot CLI transform with no server to scrape it, exposes
// them again as a one-line Summary string instead of over HTTP.
type Metrics struct {
	registry *prometheus.Registry

	symbolsDeclared    int64
	assertionsDeclared int64
	proofStepsDecoded  int64

	parseLatency  prometheus.Summary
	encodeLatency prometheus.Summary
}

// New builds and registers a fresh set of collectors.
func New() *Metrics {
	m := &Metrics{}

	symbols := prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "symbols_declared",
			Help: "number of constants and variables declared",
		},
		func() float64 { return float64(m.symbolsDeclared) },
	)
	assertions := prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "assertions_declared",
			Help: "number of axioms and theorems declared",
		},
		func() float64 { return float64(m.assertionsDeclared) },
	)
	steps := prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "proof_steps_decoded",
			Help: "number of proof steps decoded across all theorems",
		},
		func() float64 { return float64(m.proofStepsDecoded) },
	)

	m.parseLatency = prometheus.NewSummary(prometheus.SummaryOpts{
		Name: "parse_latency_ns",
		Help: "latency to parse the whole input file",
	})
	m.encodeLatency = prometheus.NewSummary(prometheus.SummaryOpts{
		Name: "encode_latency_ns",
		Help: "latency to re-encode and write the output file",
	})

	m.registry = prometheus.NewPedanticRegistry()
	m.registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	m.registry.MustRegister(prometheus.NewGoCollector())
	m.registry.MustRegister(symbols)
	m.registry.MustRegister(assertions)
	m.registry.MustRegister(steps)
	m.registry.MustRegister(m.parseLatency)
	m.registry.MustRegister(m.encodeLatency)

	return m
}

// AddSymbol records one newly declared constant or variable.
func (m *Metrics) AddSymbol() { m.symbolsDeclared++ }

// AddAssertion records one newly declared axiom or theorem.
func (m *Metrics) AddAssertion() { m.assertionsDeclared++ }

// AddProofSteps records n freshly decoded proof steps.
func (m *Metrics) AddProofSteps(n int) { m.proofStepsDecoded += int64(n) }

// ObserveParseLatency records the duration of a full input-file parse.
func (m *Metrics) ObserveParseLatency(d time.Duration) {
	m.parseLatency.Observe(float64(d.Nanoseconds()))
}

// ObserveEncodeLatency records the duration of a full output-file write.
func (m *Metrics) ObserveEncodeLatency(d time.Duration) {
	m.encodeLatency.Observe(float64(d.Nanoseconds()))
}

// Summary renders a one-line diagnostic for the CLI to print on exit.
func (m *Metrics) Summary() string {
	return fmt.Sprintf(
		"symbols=%d assertions=%d proof_steps=%d",
		m.symbolsDeclared, m.assertionsDeclared, m.proofStepsDecoded,
	)
}
