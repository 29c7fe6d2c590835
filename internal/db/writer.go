package db

import (
	"fmt"
	"io"
	"strings"

	"github.com/vilterp/gometamath/internal/proof"
	"github.com/vilterp/gometamath/internal/store"
)

// Write serialises st's symbols and assertions in insertion order:
// constants then variables in single $c/$v blocks, followed by each
// assertion in a fresh ${ ... $} block carrying its own hypotheses and
// DVRs, with theorem proofs always written in compressed form.
func Write(w io.Writer, st *store.Store) error {
	var b strings.Builder
	writeSymbols(&b, st)
	for _, ref := range st.AssertionRefs() {
		writeAssertion(&b, st, st.GetAssertion(ref))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSymbols(b *strings.Builder, st *store.Store) {
	if consts := st.Constants(); len(consts) > 0 {
		writeSymbolBlock(b, "$c", consts)
	}
	if vars := st.Variables(); len(vars) > 0 {
		writeSymbolBlock(b, "$v", vars)
	}
}

func writeSymbolBlock(b *strings.Builder, keyword string, symbols []store.Symbol) {
	b.WriteString(keyword)
	b.WriteString(" ")
	for _, s := range symbols {
		b.WriteString(s.Label)
		b.WriteString(" ")
	}
	b.WriteString("$.\n")
}

func writeAssertion(b *strings.Builder, st *store.Store, a *store.Assertion) {
	b.WriteString("${\n")

	for _, h := range a.FloatingHypotheses {
		writeFloatingHypothesis(b, st, h)
	}
	for _, h := range a.EssentialHypotheses {
		writeEssentialHypothesis(b, st, h)
	}
	for _, d := range a.DisjointVariableRestrictions {
		writeDisjointVariableRestriction(b, st, d)
	}

	var encoded proof.EncodedProof
	if a.Kind == store.Theorem {
		for _, h := range a.Proof.ExtraFloatingHypotheses {
			writeFloatingHypothesis(b, st, h)
		}
		for _, d := range a.Proof.ExtraDisjointVariableRestrictions {
			writeDisjointVariableRestriction(b, st, d)
		}
		frame := proof.Frame{
			MandatoryFloats: a.FloatingHypotheses,
			Essentials:      a.EssentialHypotheses,
			Legacy:          a.LegacyFrame,
		}
		encoded = proof.EncodeCompressed(a.Proof, frame, st)
	}

	b.WriteString("    ")
	b.WriteString(a.Label)
	if a.Kind == store.Axiom {
		b.WriteString(" $a ")
	} else {
		b.WriteString(" $p ")
	}
	writeExpression(b, st, a.Expression)

	if a.Kind == store.Theorem {
		b.WriteString("\n    $= ( ")
		for _, l := range encoded.Labels {
			b.WriteString(l)
			b.WriteString(" ")
		}
		b.WriteString(") ")
		b.WriteString(encoded.Code)
	}

	b.WriteString(" $.\n")
	b.WriteString("$}\n")
}

func writeFloatingHypothesis(b *strings.Builder, st *store.Store, h store.FloatingHypothesis) {
	fmt.Fprintf(b, "    %s $f %s %s $.\n", h.Label, st.Symbol(h.Type).Label, st.Symbol(h.Variable).Label)
}

func writeEssentialHypothesis(b *strings.Builder, st *store.Store, h store.EssentialHypothesis) {
	b.WriteString("    ")
	b.WriteString(h.Label)
	b.WriteString(" $e ")
	writeExpression(b, st, h.Expression)
	b.WriteString(" $.\n")
}

func writeDisjointVariableRestriction(b *strings.Builder, st *store.Store, d store.DisjointVariableRestriction) {
	fmt.Fprintf(b, "    $d %s %s $.\n", st.Symbol(d.Var0).Label, st.Symbol(d.Var1).Label)
}

// writeExpression writes expr as its space-separated symbol labels, the
// form used both by essential hypotheses and an assertion's own head.
func writeExpression(b *strings.Builder, st *store.Store, expr store.Expression) {
	for i, ref := range expr {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(st.Symbol(ref).Label)
	}
}
