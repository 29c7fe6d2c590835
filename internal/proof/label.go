package proof

import (
	"fmt"
	"strings"

	"github.com/vilterp/gometamath/internal/store"
)

// CanonicalLabels holds the collision-free names §4.3.7 assigns to a
// theorem before it is inserted into the store: one for the assertion
// itself, and one for each of its hypotheses (mandatory floats,
// essentials, and the proof's extra floats), in that order.
type CanonicalLabels struct {
	Assertion string
	Floats    []string
	Essential []string
	Extras    []string
}

// CanonicalizeLabels rewrites origLabel and every hypothesis label into
// collision-free names, per §4.3.7: dots become underscores, hypothesis
// labels are namespaced under the assertion's own (canonicalised) label,
// and any remaining collision is broken by appending _0, _1, ….
func CanonicalizeLabels(st *store.Store, origLabel string, floats []store.FloatingHypothesis, essentials []store.EssentialHypothesis, extras []store.FloatingHypothesis) CanonicalLabels {
	taken := map[string]struct{}{}
	isFree := func(label string) bool {
		if st.LabelTaken(label) {
			return false
		}
		_, used := taken[label]
		return !used
	}
	claim := func(base string) string {
		name := freeName(base, isFree)
		taken[name] = struct{}{}
		return name
	}

	assertionLabel := claim(strings.ReplaceAll(origLabel, ".", "_"))

	namespaced := func(label string) string {
		prefix := assertionLabel + "."
		suffix := label
		if strings.HasPrefix(label, prefix) {
			suffix = strings.TrimPrefix(label, prefix)
		}
		return claim(assertionLabel + "." + strings.ReplaceAll(suffix, ".", "_"))
	}

	out := CanonicalLabels{Assertion: assertionLabel}
	for _, f := range floats {
		out.Floats = append(out.Floats, namespaced(f.Label))
	}
	for _, e := range essentials {
		out.Essential = append(out.Essential, namespaced(e.Label))
	}
	for _, f := range extras {
		out.Extras = append(out.Extras, namespaced(f.Label))
	}
	return out
}

// freeName returns base if isFree(base), otherwise the first
// base_0, base_1, … that is.
func freeName(base string, isFree func(string) bool) string {
	if isFree(base) {
		return base
	}
	for i := 0; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if isFree(candidate) {
			return candidate
		}
	}
}
