package proof

import "github.com/vilterp/gometamath/internal/store"

// dependencyCounts returns, for each step, the size of its sub-tree (the
// step itself plus every step its arguments transitively consume) under
// post-order stack simulation.
func dependencyCounts(steps []store.Step) []int {
	counts := make([]int, len(steps))
	var stack []int // sizes of sub-trees currently on the simulated stack
	for i, s := range steps {
		arity := stepArity(s)
		size := 1
		if arity > 0 {
			start := len(stack) - arity
			for _, childSize := range stack[start:] {
				size += childSize
			}
			stack = stack[:start]
		}
		counts[i] = size
		stack = append(stack, size)
	}
	return counts
}

// Canonicalize reorders a decoded proof's steps into canonical form: each
// assertion_ref's sibling sub-trees are regrouped as mandatory floats
// first, then essentials, in the cited assertion's own slice order
// (rather than the legacy spurious-frame interleaving they were decoded
// in), and forward-pointing recall targets created by that regrouping are
// relocated ahead of their referencing step.
func Canonicalize(steps []store.Step, st *store.Store) []store.Step {
	steps = append([]store.Step(nil), steps...)
	counts := dependencyCounts(steps)

	// Indexed by position, re-read from the live (mutated) slices each
	// iteration: a splice only ever rearranges the region strictly before
	// the assertion_ref it targets, so positions at or after i are
	// untouched by earlier iterations and len(steps) never changes.
	for i := 0; i < len(steps); i++ {
		s := steps[i]
		if s.Kind != store.AssertionRefStep {
			continue
		}
		assertion := st.GetAssertion(s.AssertionIndex())
		perm := siblingPermutation(assertion.LegacyFrame)
		if perm == nil {
			continue
		}

		// Collect sibling sub-tree spans by walking backward from i.
		spans := siblingSpans(counts, i, len(perm))
		reordered := make([]int, len(spans))
		for newPos, oldPos := range perm {
			reordered[newPos] = oldPos
		}

		newSteps, newCounts := spliceSiblings(steps, counts, spans, reordered)
		steps, counts = newSteps, newCounts
	}

	return fixForwardRecalls(steps, counts)
}

// siblingPermutation computes, for an assertion with the given legacy
// frame, the canonical sibling order (mandatory floats first, then
// essentials, each in their own slice order) as a slice indexed by
// canonical sibling position whose values are legacy sibling positions.
// Returns nil if the legacy order is already
// canonical (floats-then-essentials already, e.g. when produced by this
// implementation's own writer).
func siblingPermutation(legacy []store.LegacyFrameEntry) []int {
	canonicalOrder := make([]int, 0, len(legacy))
	for i, e := range legacy {
		if e.Kind == store.FloatingHypStep {
			canonicalOrder = append(canonicalOrder, i)
		}
	}
	for i, e := range legacy {
		if e.Kind == store.EssentialHypStep {
			canonicalOrder = append(canonicalOrder, i)
		}
	}

	identity := true
	for i, legacyPos := range canonicalOrder {
		if i != legacyPos {
			identity = false
			break
		}
	}
	if identity {
		return nil
	}
	return canonicalOrder
}

// siblingSpans returns the [start, end) index ranges, in legacy
// left-to-right order, of the n sibling sub-trees feeding the
// assertion_ref step at position parentIdx.
func siblingSpans(counts []int, parentIdx int, n int) [][2]int {
	spans := make([][2]int, n)
	end := parentIdx
	for i := n - 1; i >= 0; i-- {
		size := counts[end-1]
		start := end - size
		spans[i] = [2]int{start, end}
		end = start
	}
	return spans
}

// spliceSiblings rebuilds steps and counts with the sibling sub-trees at
// spans (in legacy order) rearranged into the order given by reordered
// (a list of indices into spans).
func spliceSiblings(steps []store.Step, counts []int, spans [][2]int, reordered []int) ([]store.Step, []int) {
	if len(spans) == 0 {
		return steps, counts
	}
	blockStart := spans[0][0]
	blockEnd := spans[len(spans)-1][1]

	remap := make(map[int]int, blockEnd-blockStart)
	newSteps := append([]store.Step(nil), steps[:blockStart]...)
	cursor := blockStart
	for _, spanIdx := range reordered {
		span := spans[spanIdx]
		for old := span[0]; old < span[1]; old++ {
			remap[old] = cursor + (old - span[0])
		}
		newSteps = append(newSteps, steps[span[0]:span[1]]...)
		cursor += span[1] - span[0]
	}
	newSteps = append(newSteps, steps[blockEnd:]...)

	newCounts := make([]int, len(counts))
	copy(newCounts, counts)
	// Recompute dependency counts for the affected region only: a splice
	// only ever moves whole sub-trees (their own internal counts are
	// unchanged) and leaves the counts before blockStart and from blockEnd
	// on as they were, so a recompute over [blockStart, blockEnd) in the
	// new order suffices.
	reorderedSteps := newSteps[blockStart:blockEnd]
	reorderedCounts := dependencyCounts(append([]store.Step(nil), reorderedSteps...))
	for i, c := range reorderedCounts {
		newCounts[blockStart+i] = c
	}

	for i := range newSteps {
		if newSteps[i].Kind == store.RecallStep {
			if mapped, ok := remap[newSteps[i].Index]; ok {
				newSteps[i].Index = mapped
			}
		}
	}

	return newSteps, newCounts
}

// fixForwardRecalls implements the recall forward-reference fixup: after
// the primary permutation pass, a recall step's target may now sit at or
// after the recall itself, which cannot execute in a single left-to-right
// pass. Relocate the target sub-tree to immediately precede the recall,
// and remap every other recall index through the same transform. Repeat
// until no recall is forward-pointing.
func fixForwardRecalls(steps []store.Step, counts []int) []store.Step {
	for {
		i, k, found := firstForwardRecall(steps)
		if !found {
			break
		}

		// k >= i and a recall never targets itself or an ancestor, so the
		// whole target subtree [lo, hi] lies strictly after i: relocating
		// it to sit immediately before i shifts the untouched segment
		// [i, lo) right by L to make room, and leaves everything after hi
		// where it was.
		lo := k - counts[k] + 1
		hi := k
		l := hi - lo + 1

		relocated := make([]store.Step, 0, len(steps))
		relocated = append(relocated, steps[:i]...)
		relocated = append(relocated, steps[lo:hi+1]...)
		relocated = append(relocated, steps[i:lo]...)
		relocated = append(relocated, steps[hi+1:]...)

		for idx := range relocated {
			if relocated[idx].Kind != store.RecallStep {
				continue
			}
			relocated[idx].Index = remapRecallTarget(relocated[idx].Index, lo, hi, i, l)
		}

		steps = relocated
		counts = dependencyCounts(steps)
	}
	return steps
}

// remapRecallTarget applies the index transform for relocating the
// sub-tree [lo, hi] to sit immediately before position i (i < lo <= hi):
// the block moves to start at i, the previously-intervening segment
// [i, lo) shifts right by L to make room, and both endpoints outside
// [i, hi] are untouched.
func remapRecallTarget(old, lo, hi, i, l int) int {
	switch {
	case old < i:
		return old
	case old < lo:
		return old + l
	case old <= hi:
		return i + (old - lo)
	default:
		return old
	}
}

// firstForwardRecall finds the first recall step whose target is at or
// after its own position.
func firstForwardRecall(steps []store.Step) (i int, k int, found bool) {
	for idx, s := range steps {
		if s.Kind == store.RecallStep && s.Index >= idx {
			return idx, s.Index, true
		}
	}
	return 0, 0, false
}
