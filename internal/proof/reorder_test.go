package proof

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vilterp/gometamath/internal/store"
)

// a leaf step (float or essential) always has dependency count 1.
func leaf(kind store.StepKind, index int) store.Step {
	return store.Step{Kind: kind, Index: index}
}

func TestDependencyCountsLeafAndAssertion(t *testing.T) {
	steps := []store.Step{
		leaf(store.FloatingHypStep, 0),
		leaf(store.FloatingHypStep, 1),
		{Kind: store.AssertionRefStep, Index: 0, AssumptionsCount: 2},
	}
	counts := dependencyCounts(steps)
	require.Equal(t, []int{1, 1, 3}, counts)
}

func TestCanonicalizeReordersLegacySiblings(t *testing.T) {
	// An assertion declared as [float, ess, float] (legacy, spurious-frame
	// order) must regroup its cited sub-trees to [float, float, ess] —
	// mandatory floats first, then essentials, each in their own order.
	st := store.New()
	legacy := []store.LegacyFrameEntry{
		{Kind: store.FloatingHypStep, Index: 0},
		{Kind: store.EssentialHypStep, Index: 0},
		{Kind: store.FloatingHypStep, Index: 1},
	}
	ref, err := st.AddAssertion(store.Assertion{
		Label:       "th1",
		Kind:        store.Theorem,
		LegacyFrame: legacy,
		Proof:       &store.Proof{},
	})
	require.NoError(t, err)

	// sub-trees F0, E0, F1 (each a single leaf step) followed by the
	// assertion_ref citing th1.
	steps := []store.Step{
		leaf(store.FloatingHypStep, 0), // F0
		leaf(store.EssentialHypStep, 0), // E0
		leaf(store.FloatingHypStep, 1), // F1
		{Kind: store.AssertionRefStep, Index: ref.Index(), AssumptionsCount: 3},
	}

	got := Canonicalize(steps, st)
	require.Equal(t, []store.Step{
		leaf(store.FloatingHypStep, 0), // F0
		leaf(store.FloatingHypStep, 1), // F1
		leaf(store.EssentialHypStep, 0), // E0
		{Kind: store.AssertionRefStep, Index: ref.Index(), AssumptionsCount: 3},
	}, got)
}

func TestCanonicalizeIsNoOpWhenAlreadyCanonical(t *testing.T) {
	st := store.New()
	legacy := []store.LegacyFrameEntry{
		{Kind: store.FloatingHypStep, Index: 0},
		{Kind: store.FloatingHypStep, Index: 1},
		{Kind: store.EssentialHypStep, Index: 0},
	}
	ref, err := st.AddAssertion(store.Assertion{
		Label:       "th2",
		Kind:        store.Theorem,
		LegacyFrame: legacy,
		Proof:       &store.Proof{},
	})
	require.NoError(t, err)

	steps := []store.Step{
		leaf(store.FloatingHypStep, 0),
		leaf(store.FloatingHypStep, 1),
		leaf(store.EssentialHypStep, 0),
		{Kind: store.AssertionRefStep, Index: ref.Index(), AssumptionsCount: 3},
	}

	got := Canonicalize(steps, st)
	require.Equal(t, steps, got)
}

func TestFixForwardRecallsRelocatesTargetBlock(t *testing.T) {
	// A 10-step sequence where a recall at position 2 targets position 7,
	// whose sub-tree spans [5,7] (size 3, counts[7]=3). Hand-verified
	// relocation: the block [5,7] moves to sit immediately before
	// position 2, shifting [2,5) right by 3.
	steps := make([]store.Step, 10)
	for i := range steps {
		steps[i] = leaf(store.FloatingHypStep, i)
	}
	steps[2] = store.Step{Kind: store.RecallStep, Index: 7}

	counts := make([]int, 10)
	for i := range counts {
		counts[i] = 1
	}
	counts[7] = 3 // sub-tree [5,7]

	got := fixForwardRecalls(steps, counts)
	require.Len(t, got, 10)

	// original positions 5,6,7 (the target block) now occupy 2,3,4; the
	// recall itself (originally at 2) now sits at 5, and must point at
	// the relocated block's new home for its old target index (7), which
	// per the formula i+(old-lo) = 2+(7-5) = 4; the rest of the
	// previously-intervening segment (orig 3,4) now occupies 6,7;
	// everything from orig 8 on is untouched.
	require.Equal(t, leaf(store.FloatingHypStep, 5), got[2])
	require.Equal(t, leaf(store.FloatingHypStep, 6), got[3])
	require.Equal(t, leaf(store.FloatingHypStep, 7), got[4])
	require.Equal(t, store.RecallStep, got[5].Kind)
	require.Equal(t, 4, got[5].Index)
	require.Equal(t, leaf(store.FloatingHypStep, 3), got[6])
	require.Equal(t, leaf(store.FloatingHypStep, 4), got[7])
	require.Equal(t, leaf(store.FloatingHypStep, 8), got[8])
	require.Equal(t, leaf(store.FloatingHypStep, 9), got[9])
}

func TestRemapRecallTargetAllFourBranches(t *testing.T) {
	// lo=5, hi=7, i=2, L=3
	require.Equal(t, 1, remapRecallTarget(1, 5, 7, 2, 3), "before i: unchanged")
	require.Equal(t, 6, remapRecallTarget(3, 5, 7, 2, 3), "in the shifted gap [i,lo): old+L")
	require.Equal(t, 3, remapRecallTarget(6, 5, 7, 2, 3), "inside the relocated block: i+(old-lo)")
	require.Equal(t, 4, remapRecallTarget(7, 5, 7, 2, 3), "inside the relocated block, at hi: i+(old-lo)")
	require.Equal(t, 9, remapRecallTarget(9, 5, 7, 2, 3), "after hi: unchanged")
}
