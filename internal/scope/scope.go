// Package scope implements the lexical scope stack Metamath declarations
// are read into: each `${ ... $}` block snapshots its parent's hypotheses
// and DVRs by value, so closing the block discards exactly what was
// declared inside it.
package scope

import "github.com/vilterp/gometamath/internal/store"

// FrameEntryKind tags one entry of a scope's spurious frame.
type FrameEntryKind int

const (
	FloatEntry FrameEntryKind = iota
	EssEntry
	DVREntry
)

// FrameEntry records that the entry-th declaration in this scope was of
// the given kind, at the given index into that kind's own slice.
type FrameEntry struct {
	Kind  FrameEntryKind
	Index int
}

// Scope holds everything declared inside one `${ ... $}` block (or the
// top level), plus a spurious frame recording the interleaved declaration
// order of all three kinds — the order a caller must preserve when later
// computing a legacy frame (see internal/proof).
type Scope struct {
	floats    []store.FloatingHypothesis
	essential []store.EssentialHypothesis
	dvrs      []store.DisjointVariableRestriction
	spurious  []FrameEntry
}

// New returns an empty top-level scope.
func New() *Scope {
	return &Scope{}
}

// Push opens a nested scope that starts out as a value copy of s — further
// additions to the child never affect the parent, and popping the child
// (simply discarding it) leaves s exactly as it was.
func (s *Scope) Push() *Scope {
	child := &Scope{
		floats:    append([]store.FloatingHypothesis{}, s.floats...),
		essential: append([]store.EssentialHypothesis{}, s.essential...),
		dvrs:      append([]store.DisjointVariableRestriction{}, s.dvrs...),
		spurious:  append([]FrameEntry{}, s.spurious...),
	}
	return child
}

// AddFloatingHypothesis appends a floating hypothesis and logs it in the
// spurious frame.
func (s *Scope) AddFloatingHypothesis(h store.FloatingHypothesis) {
	s.floats = append(s.floats, h)
	s.spurious = append(s.spurious, FrameEntry{Kind: FloatEntry, Index: len(s.floats) - 1})
}

// AddEssentialHypothesis appends an essential hypothesis and logs it in
// the spurious frame.
func (s *Scope) AddEssentialHypothesis(h store.EssentialHypothesis) {
	s.essential = append(s.essential, h)
	s.spurious = append(s.spurious, FrameEntry{Kind: EssEntry, Index: len(s.essential) - 1})
}

// AddDisjointVariableRestriction appends a DVR and logs it in the spurious
// frame.
func (s *Scope) AddDisjointVariableRestriction(d store.DisjointVariableRestriction) {
	s.dvrs = append(s.dvrs, d)
	s.spurious = append(s.spurious, FrameEntry{Kind: DVREntry, Index: len(s.dvrs) - 1})
}

// FloatingHypotheses returns every floating hypothesis visible at this
// point, in declaration order (outer scopes first).
func (s *Scope) FloatingHypotheses() []store.FloatingHypothesis { return s.floats }

// EssentialHypotheses returns every essential hypothesis visible at this
// point, in declaration order.
func (s *Scope) EssentialHypotheses() []store.EssentialHypothesis { return s.essential }

// DisjointVariableRestrictions returns every DVR visible at this point.
func (s *Scope) DisjointVariableRestrictions() []store.DisjointVariableRestriction {
	return s.dvrs
}

// SpuriousFrame returns the interleaved declaration order of every float,
// essential hypothesis, and DVR visible at this point.
func (s *Scope) SpuriousFrame() []FrameEntry { return s.spurious }

// FindEssentialHypothesis looks up an essential hypothesis visible at this
// point by label.
func (s *Scope) FindEssentialHypothesis(label string) (int, bool) {
	for i, h := range s.essential {
		if h.Label == label {
			return i, true
		}
	}
	return 0, false
}

// FindFloatingHypothesis looks up a floating hypothesis visible at this
// point by label.
func (s *Scope) FindFloatingHypothesis(label string) (int, bool) {
	for i, h := range s.floats {
		if h.Label == label {
			return i, true
		}
	}
	return 0, false
}
