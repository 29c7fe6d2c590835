package proof

import "github.com/vilterp/gometamath/internal/store"

// EncodedProof is a compressed proof ready to be written out: the
// reference-array label list plus the numeric code string.
type EncodedProof struct {
	Labels []string
	Code   string
}

// EncodeCompressed implements §4.3.6: builds the reference array (extra
// floats, then distinct cited assertions in order of first appearance)
// and encodes each step as a compressed-proof number. The writer never
// emits a Z back-reference tag — an acknowledged limitation carried over
// from the source this engine was grounded on (see DESIGN.md) — so a
// recall step's tag-ordinal is assigned for the encoding formula but
// never actually registered for a reading decoder to resolve.
func EncodeCompressed(p *store.Proof, frame Frame, st *store.Store) EncodedProof {
	m1 := len(frame.Legacy)

	labels := make([]string, 0, len(p.ExtraFloatingHypotheses))
	for _, f := range p.ExtraFloatingHypotheses {
		labels = append(labels, f.Label)
	}

	var assertionOrder []store.AssertionRef
	seenAssertion := map[int]int{} // raw index -> position in assertionOrder
	for _, s := range p.Steps {
		if s.Kind != store.AssertionRefStep {
			continue
		}
		ref := s.AssertionIndex()
		if _, ok := seenAssertion[ref.Index()]; !ok {
			seenAssertion[ref.Index()] = len(assertionOrder)
			assertionOrder = append(assertionOrder, ref)
		}
	}
	for _, ref := range assertionOrder {
		labels = append(labels, st.GetAssertion(ref).Label)
	}

	countExtras := len(p.ExtraFloatingHypotheses)
	refArrayLen := countExtras + len(assertionOrder)

	tagOrdinal := map[int]int{} // target step index -> tag ordinal

	code := make([]byte, 0, len(p.Steps)*2)
	for _, s := range p.Steps {
		switch s.Kind {
		case store.UnknownStep:
			code = append(code, '?')
			continue
		case store.FloatingHypStep:
			var n int
			if s.Index < len(frame.MandatoryFloats) {
				n = s.Index + 1
			} else {
				localExtra := s.Index - len(frame.MandatoryFloats)
				n = m1 + localExtra + 1
			}
			code = append(code, EncodeNumber(n)...)
		case store.EssentialHypStep:
			n := s.Index + len(frame.MandatoryFloats) + 1
			code = append(code, EncodeNumber(n)...)
		case store.AssertionRefStep:
			pos := seenAssertion[s.AssertionIndex().Index()]
			n := m1 + countExtras + pos + 1
			code = append(code, EncodeNumber(n)...)
		case store.RecallStep:
			ordinal, ok := tagOrdinal[s.Index]
			if !ok {
				ordinal = len(tagOrdinal)
				tagOrdinal[s.Index] = ordinal
			}
			n := m1 + refArrayLen + ordinal + 1
			code = append(code, EncodeNumber(n)...)
		}
	}

	return EncodedProof{Labels: labels, Code: string(code)}
}
