package proof

import (
	"github.com/vilterp/gometamath/internal/scope"
	"github.com/vilterp/gometamath/internal/store"
)

// decoder accumulates the extra (non-mandatory) floating hypotheses a
// theorem's proof discovers as it resolves step labels, shared by both
// the uncompressed and compressed decode paths.
type decoder struct {
	st    *store.Store
	sc    *scope.Scope
	frame Frame

	extraFloats   []store.FloatingHypothesis
	extraFloatIdx map[string]int
}

func newDecoder(st *store.Store, sc *scope.Scope, frame Frame) *decoder {
	return &decoder{
		st:            st,
		sc:            sc,
		frame:         frame,
		extraFloatIdx: map[string]int{},
	}
}

// resolveLabel implements §4.3.3's first-match-wins order for a single
// proof-step label, shared by uncompressed decoding and the compressed
// reference-array phase.
func (d *decoder) resolveLabel(name string) (store.Step, error) {
	if ref, ok := d.st.FindAssertion(name); ok {
		assertion := d.st.GetAssertion(ref)
		return store.Step{
			Kind:             store.AssertionRefStep,
			Index:            ref.Index(),
			AssumptionsCount: assertion.LegacyFrameLen(),
		}, nil
	}

	for i, h := range d.frame.Essentials {
		if h.Label == name {
			return store.Step{Kind: store.EssentialHypStep, Index: i}, nil
		}
	}

	for i, f := range d.frame.MandatoryFloats {
		if f.Label == name {
			return store.Step{Kind: store.FloatingHypStep, Index: i}, nil
		}
	}

	if i, ok := d.extraFloatIdx[name]; ok {
		return store.Step{Kind: store.FloatingHypStep, Index: len(d.frame.MandatoryFloats) + i}, nil
	}

	if i, ok := d.sc.FindFloatingHypothesis(name); ok {
		f := d.sc.FloatingHypotheses()[i]
		idx := len(d.extraFloats)
		d.extraFloats = append(d.extraFloats, f)
		d.extraFloatIdx[name] = idx
		return store.Step{Kind: store.FloatingHypStep, Index: len(d.frame.MandatoryFloats) + idx}, nil
	}

	return store.Step{}, &UnrecognisedStepError{Label: name}
}

// DecodeUncompressed implements §4.3.3: a space-separated token sequence,
// each token a label (or "?"), read until "$.".
func DecodeUncompressed(tokens []string, st *store.Store, sc *scope.Scope, frame Frame) (*store.Proof, error) {
	d := newDecoder(st, sc, frame)

	steps := make([]store.Step, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "?" {
			steps = append(steps, store.Step{Kind: store.UnknownStep})
			continue
		}
		step, err := d.resolveLabel(tok)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	if err := validateArity(steps); err != nil {
		return nil, err
	}

	return &store.Proof{
		ExtraFloatingHypotheses: d.extraFloats,
		Steps:                   steps,
	}, nil
}

// DecodeCompressed implements §4.3.4: a reference-array label list
// followed by a base-5/20 numeric code, with Z-tagged back-references.
func DecodeCompressed(labels []string, code []byte, st *store.Store, sc *scope.Scope, frame Frame) (*store.Proof, error) {
	d := newDecoder(st, sc, frame)

	// Label-list phase: each label resolves to an assertion template or an
	// extra floating hypothesis. "?" is not permitted here.
	refArray := make([]store.Step, 0, len(labels))
	for _, name := range labels {
		step, err := d.resolveLabel(name)
		if err != nil {
			return nil, err
		}
		if step.Kind != store.AssertionRefStep && step.Kind != store.FloatingHypStep {
			return nil, &CompressedProofSyntaxError{Detail: "reference-array label must be an assertion or floating hypothesis"}
		}
		refArray = append(refArray, step)
	}

	m1 := len(frame.Legacy)
	m2 := m1 + len(refArray)

	var steps []store.Step
	var taggedSteps []int // step index recorded at each Z tag, in order seen
	pos := 0
	for pos < len(code) {
		if code[pos] == '?' {
			steps = append(steps, store.Step{Kind: store.UnknownStep})
			pos++
		} else {
			n, next, err := DecodeNumber(code, pos)
			if err != nil {
				return nil, err
			}
			pos = next

			m3 := m2 + len(taggedSteps)
			k := n - 1
			var step store.Step
			switch {
			case k < m1:
				entry := frame.Legacy[k]
				switch entry.Kind {
				case store.FloatingHypStep:
					step = store.Step{Kind: store.FloatingHypStep, Index: entry.Index}
				case store.EssentialHypStep:
					step = store.Step{Kind: store.EssentialHypStep, Index: entry.Index}
				default:
					return nil, &CompressedProofSyntaxError{Detail: "legacy frame entry must be a float or essential"}
				}
			case k < m2:
				step = refArray[k-m1]
			case k < m3:
				step = store.Step{Kind: store.RecallStep, Index: taggedSteps[k-m2]}
			default:
				return nil, &NumberOutOfRangeError{Number: n, Max: m3}
			}
			steps = append(steps, step)
		}

		if pos < len(code) && code[pos] == 'Z' {
			pos++
			taggedSteps = append(taggedSteps, len(steps)-1)
		}
	}

	if err := validateArity(steps); err != nil {
		return nil, err
	}

	var extraDVRs []store.DisjointVariableRestriction
	return &store.Proof{
		ExtraFloatingHypotheses:           d.extraFloats,
		ExtraDisjointVariableRestrictions: extraDVRs,
		Steps:                             steps,
	}, nil
}

// stepArity returns how many stack entries a step consumes.
func stepArity(s store.Step) int {
	if s.Kind == store.AssertionRefStep {
		return s.AssumptionsCount
	}
	return 0
}

// validateArity simulates the post-order stack evaluation of §4.3.2:
// every step pops its arity and pushes one; the proof is well-formed iff
// exactly one entry survives.
func validateArity(steps []store.Step) error {
	depth := 0
	for _, s := range steps {
		arity := stepArity(s)
		if arity > depth {
			return &ArityViolationError{Detail: "stack underflow"}
		}
		depth -= arity
		depth++
	}
	if depth != 1 {
		return &ArityViolationError{Detail: "proof does not leave exactly one result"}
	}
	return nil
}
