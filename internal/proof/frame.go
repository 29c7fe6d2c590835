// Package proof implements the frame/compression engine: mandatory-frame
// construction from a scope, decoding of both proof formats, canonical
// reordering, and compressed re-encoding.
package proof

import (
	"github.com/vilterp/gometamath/internal/scope"
	"github.com/vilterp/gometamath/internal/store"
)

// Frame is the mandatory frame an assertion head and its hypotheses
// imply: the inputs a caller must supply, in legacy order, to cite this
// assertion from another proof.
type Frame struct {
	MandatoryVariables []store.SymbolRef
	MandatoryFloats    []store.FloatingHypothesis
	Essentials         []store.EssentialHypothesis
	MandatoryDVRs      []store.DisjointVariableRestriction
	Legacy             []store.LegacyFrameEntry
}

// BuildFrame computes the mandatory frame for a head expression in the
// given scope, per the first-occurrence-order variable scan followed by a
// single walk of the scope's spurious frame.
func BuildFrame(sc *scope.Scope, head store.Expression) Frame {
	essentials := sc.EssentialHypotheses()

	mandatoryVars := collectVariables(essentials, head)
	inFrame := make(map[store.SymbolRef]struct{}, len(mandatoryVars))
	for _, v := range mandatoryVars {
		inFrame[v] = struct{}{}
	}

	var floats []store.FloatingHypothesis
	var legacy []store.LegacyFrameEntry

	allFloats := sc.FloatingHypotheses()
	for _, entry := range sc.SpuriousFrame() {
		switch entry.Kind {
		case scope.FloatEntry:
			f := allFloats[entry.Index]
			if _, ok := inFrame[f.Variable]; ok {
				floats = append(floats, f)
				legacy = append(legacy, store.LegacyFrameEntry{
					Kind:  store.FloatingHypStep,
					Index: len(floats) - 1,
				})
			}
		case scope.EssEntry:
			legacy = append(legacy, store.LegacyFrameEntry{
				Kind:  store.EssentialHypStep,
				Index: entry.Index,
			})
		case scope.DVREntry:
			// DVRs never appear in the legacy frame; filtered separately below.
		}
	}

	var dvrs []store.DisjointVariableRestriction
	for _, d := range sc.DisjointVariableRestrictions() {
		_, v0 := inFrame[d.Var0]
		_, v1 := inFrame[d.Var1]
		if v0 && v1 {
			dvrs = append(dvrs, d)
		}
	}

	return Frame{
		MandatoryVariables: mandatoryVars,
		MandatoryFloats:    floats,
		Essentials:         essentials,
		MandatoryDVRs:      dvrs,
		Legacy:             legacy,
	}
}

// collectVariables scans essential hypotheses in declaration order, then
// the head expression, recording each variable the first time it appears.
func collectVariables(essentials []store.EssentialHypothesis, head store.Expression) []store.SymbolRef {
	seen := map[store.SymbolRef]struct{}{}
	var out []store.SymbolRef

	observe := func(ref store.SymbolRef) {
		if ref.Kind() != store.Variable {
			return
		}
		if _, ok := seen[ref]; ok {
			return
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}

	for _, h := range essentials {
		for _, ref := range h.Expression {
			observe(ref)
		}
	}
	for _, ref := range head {
		observe(ref)
	}
	return out
}
