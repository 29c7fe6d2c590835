// Package db implements the top-level Metamath database reader and
// writer: a recursive-descent statement dispatcher on top of
// internal/token, wired to internal/scope, internal/proof, and
// internal/store.
package db

import (
	"io"
	"strings"

	"github.com/vilterp/gometamath/internal/proof"
	"github.com/vilterp/gometamath/internal/scope"
	"github.com/vilterp/gometamath/internal/store"
	"github.com/vilterp/gometamath/internal/token"
)

// Read parses a whole Metamath database from r into a fresh store.
func Read(r io.Reader) (*store.Store, error) {
	tok, err := token.New(r)
	if err != nil {
		return nil, err
	}
	rd := &reader{tok: tok, st: store.New()}
	sc := scope.New()
	for {
		_, ok, err := tok.Peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := rd.readStatement(sc); err != nil {
			return nil, err
		}
	}
	return rd.st, nil
}

type reader struct {
	tok *token.Tokenizer
	st  *store.Store
}

// readStatement reads a label (if the next token doesn't start with "$")
// then dispatches on the following keyword.
func (r *reader) readStatement(sc *scope.Scope) error {
	tk, ok, err := r.tok.Peek()
	if err != nil {
		return err
	}
	if !ok {
		return &UnexpectedTokenError{Context: "statement", Got: "<eof>"}
	}

	var label string
	if !strings.HasPrefix(tk, "$") {
		label, _, _ = r.tok.Next()
		tk, ok, err = r.tok.Peek()
		if err != nil {
			return err
		}
		if !ok {
			return &UnexpectedTokenError{Context: "after label " + label, Got: "<eof>"}
		}
	}

	switch tk {
	case "$a", "$p":
		return r.readAssertion(sc, label)
	case "$v":
		return r.readVariables()
	case "${":
		if label != "" {
			return &proof.BadScopeBoundaryError{Detail: "scope with label"}
		}
		return r.readScope(sc)
	case "$c":
		return r.readConstants()
	case "$f":
		return r.readFloatingHypothesis(sc, label)
	case "$e":
		return r.readEssentialHypothesis(sc, label)
	case "$d":
		return r.readDisjointVariableRestriction(sc)
	case "$}":
		return &proof.BadScopeBoundaryError{Detail: "unmatched $}"}
	default:
		return &UnexpectedTokenError{Context: "statement", Got: tk}
	}
}

func (r *reader) readScope(sc *scope.Scope) error {
	r.tok.Next() // consume "${"
	child := sc.Push()
	for {
		tk, ok, err := r.tok.Peek()
		if err != nil {
			return err
		}
		if !ok {
			return &proof.BadScopeBoundaryError{Detail: "unexpected end of input inside scope"}
		}
		if tk == "$}" {
			break
		}
		if err := r.readStatement(child); err != nil {
			return err
		}
	}
	r.tok.Next() // consume "$}"
	return nil
}

func (r *reader) readConstants() error {
	r.tok.Next() // consume "$c"
	for {
		tk, ok, err := r.tok.Peek()
		if err != nil {
			return err
		}
		if !ok {
			return &UnexpectedTokenError{Context: "$c block", Got: "<eof>"}
		}
		if tk == "$." {
			r.tok.Next()
			return nil
		}
		name, _, _ := r.tok.Next()
		if _, err := r.st.AddConstant(name); err != nil {
			return err
		}
	}
}

func (r *reader) readVariables() error {
	r.tok.Next() // consume "$v"
	for {
		tk, ok, err := r.tok.Peek()
		if err != nil {
			return err
		}
		if !ok {
			return &UnexpectedTokenError{Context: "$v block", Got: "<eof>"}
		}
		if tk == "$." {
			r.tok.Next()
			return nil
		}
		name, _, _ := r.tok.Next()
		if _, err := r.st.AddVariable(name); err != nil {
			return err
		}
	}
}

func (r *reader) readFloatingHypothesis(sc *scope.Scope, label string) error {
	r.tok.Next() // consume "$f"
	expr, err := r.readExpression("$.")
	if err != nil {
		return err
	}
	if len(expr) != 2 || expr[0].Kind() != store.Constant || expr[1].Kind() != store.Variable {
		return &proof.MalformedFloatingHypothesisError{Label: label}
	}
	sc.AddFloatingHypothesis(store.FloatingHypothesis{Label: label, Type: expr[0], Variable: expr[1]})
	return r.expect("$.")
}

func (r *reader) readEssentialHypothesis(sc *scope.Scope, label string) error {
	r.tok.Next() // consume "$e"
	expr, err := r.readExpression("$.")
	if err != nil {
		return err
	}
	sc.AddEssentialHypothesis(store.EssentialHypothesis{Label: label, Expression: expr})
	return r.expect("$.")
}

func (r *reader) readDisjointVariableRestriction(sc *scope.Scope) error {
	r.tok.Next() // consume "$d"
	name0, ok, err := r.tok.Next()
	if err != nil {
		return err
	}
	if !ok {
		return &UnexpectedTokenError{Context: "$d", Got: "<eof>"}
	}
	name1, ok, err := r.tok.Next()
	if err != nil {
		return err
	}
	if !ok {
		return &UnexpectedTokenError{Context: "$d", Got: "<eof>"}
	}
	ref0, ok := r.st.FindSymbol(name0)
	if !ok {
		return &proof.UnknownSymbolError{Label: name0}
	}
	ref1, ok := r.st.FindSymbol(name1)
	if !ok {
		return &proof.UnknownSymbolError{Label: name1}
	}
	sc.AddDisjointVariableRestriction(store.DisjointVariableRestriction{Var0: ref0, Var1: ref1})
	return r.expect("$.")
}

// readExpression reads symbol tokens up to (not including) terminator.
func (r *reader) readExpression(terminator string) (store.Expression, error) {
	var expr store.Expression
	for {
		tk, ok, err := r.tok.Peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &UnexpectedTokenError{Context: "expression", Got: "<eof>"}
		}
		if tk == terminator {
			return expr, nil
		}
		name, _, _ := r.tok.Next()
		ref, ok := r.st.FindSymbol(name)
		if !ok {
			return nil, &proof.UnknownSymbolError{Label: name}
		}
		expr = append(expr, ref)
	}
}

func (r *reader) readAssertion(sc *scope.Scope, label string) error {
	keyword, _, _ := r.tok.Next() // "$a" or "$p"

	terminator := "$."
	kind := store.Axiom
	if keyword == "$p" {
		terminator = "$="
		kind = store.Theorem
	}

	head, err := r.readExpression(terminator)
	if err != nil {
		return err
	}

	frame := proof.BuildFrame(sc, head)
	base := store.Assertion{
		Label:                        label,
		Kind:                         kind,
		DisjointVariableRestrictions: frame.MandatoryDVRs,
		FloatingHypotheses:           append([]store.FloatingHypothesis(nil), frame.MandatoryFloats...),
		EssentialHypotheses:          append([]store.EssentialHypothesis(nil), frame.Essentials...),
		LegacyFrame:                  frame.Legacy,
		Expression:                   head,
	}

	if kind == store.Axiom {
		canon := proof.CanonicalizeLabels(r.st, label, frame.MandatoryFloats, frame.Essentials, nil)
		applyCanonicalLabels(&base, canon)
		if _, err := r.st.AddAssertion(base); err != nil {
			return err
		}
		return r.expect("$.")
	}

	if err := r.expect("$="); err != nil {
		return err
	}

	tk, ok, err := r.tok.Peek()
	if err != nil {
		return err
	}
	if !ok {
		return &UnexpectedTokenError{Context: "proof", Got: "<eof>"}
	}

	var decoded *store.Proof
	if tk == "(" {
		decoded, err = r.readCompressedProof(sc, frame)
	} else {
		decoded, err = r.readUncompressedProof(sc, frame)
	}
	if err != nil {
		return err
	}

	decoded.Steps = proof.Canonicalize(decoded.Steps, r.st)

	canon := proof.CanonicalizeLabels(r.st, label, frame.MandatoryFloats, frame.Essentials, decoded.ExtraFloatingHypotheses)
	applyCanonicalLabels(&base, canon)
	for i := range decoded.ExtraFloatingHypotheses {
		decoded.ExtraFloatingHypotheses[i].Label = canon.Extras[i]
	}
	base.Proof = decoded

	if _, err := r.st.AddAssertion(base); err != nil {
		return err
	}
	return r.expect("$.")
}

func applyCanonicalLabels(a *store.Assertion, canon proof.CanonicalLabels) {
	a.Label = canon.Assertion
	for i := range a.FloatingHypotheses {
		a.FloatingHypotheses[i].Label = canon.Floats[i]
	}
	for i := range a.EssentialHypotheses {
		a.EssentialHypotheses[i].Label = canon.Essential[i]
	}
}

func (r *reader) readUncompressedProof(sc *scope.Scope, frame proof.Frame) (*store.Proof, error) {
	var tokens []string
	for {
		tk, ok, err := r.tok.Peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &UnexpectedTokenError{Context: "uncompressed proof", Got: "<eof>"}
		}
		if tk == "$." {
			break
		}
		tok, _, _ := r.tok.Next()
		tokens = append(tokens, tok)
	}
	return proof.DecodeUncompressed(tokens, r.st, sc, frame)
}

func (r *reader) readCompressedProof(sc *scope.Scope, frame proof.Frame) (*store.Proof, error) {
	if err := r.expect("("); err != nil {
		return nil, err
	}
	var labels []string
	for {
		tk, ok, err := r.tok.Peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &UnexpectedTokenError{Context: "compressed proof reference list", Got: "<eof>"}
		}
		if tk == ")" {
			r.tok.Next()
			break
		}
		if tk == "(" || tk == "$." {
			return nil, &proof.CompressedProofSyntaxError{Detail: "mis-nested parentheses in reference list"}
		}
		name, _, _ := r.tok.Next()
		labels = append(labels, name)
	}

	var code strings.Builder
	for {
		tk, ok, err := r.tok.Peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &UnexpectedTokenError{Context: "compressed proof code", Got: "<eof>"}
		}
		if tk == "$." {
			break
		}
		tok, _, _ := r.tok.Next()
		code.WriteString(tok)
	}

	return proof.DecodeCompressed(labels, []byte(code.String()), r.st, sc, frame)
}

func (r *reader) expect(want string) error {
	got, ok, err := r.tok.Next()
	if err != nil {
		return err
	}
	if !ok || got != want {
		return &UnexpectedTokenError{Context: "expected " + want, Got: got}
	}
	return nil
}
