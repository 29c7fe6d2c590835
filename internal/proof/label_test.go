package proof

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vilterp/gometamath/internal/store"
)

func TestCanonicalizeLabelsReplacesDots(t *testing.T) {
	st := store.New()
	out := CanonicalizeLabels(st, "ax.1", nil, nil, nil)
	require.Equal(t, "ax_1", out.Assertion)
}

func TestCanonicalizeLabelsNamespacesHypotheses(t *testing.T) {
	st := store.New()
	floats := []store.FloatingHypothesis{{Label: "wp"}, {Label: "wq"}}
	essentials := []store.EssentialHypothesis{{Label: "min"}}
	extras := []store.FloatingHypothesis{{Label: "wr"}}

	out := CanonicalizeLabels(st, "th1", floats, essentials, extras)
	require.Equal(t, "th1", out.Assertion)
	require.Equal(t, []string{"th1.wp", "th1.wq"}, out.Floats)
	require.Equal(t, []string{"th1.min"}, out.Essential)
	require.Equal(t, []string{"th1.wr"}, out.Extras)
}

func TestCanonicalizeLabelsAvoidsDoubleNamespacing(t *testing.T) {
	st := store.New()
	floats := []store.FloatingHypothesis{{Label: "th1.wp"}}

	out := CanonicalizeLabels(st, "th1", floats, nil, nil)
	require.Equal(t, []string{"th1.wp"}, out.Floats, "already-namespaced label must not become th1.th1.wp")
}

func TestCanonicalizeLabelsBreaksCollisionsWithSuffix(t *testing.T) {
	st := store.New()
	_, err := st.AddConstant("th1")
	require.NoError(t, err)

	out := CanonicalizeLabels(st, "th1", nil, nil, nil)
	require.Equal(t, "th1_0", out.Assertion, "th1 is already reserved by a symbol, so the first free suffix wins")
}

func TestCanonicalizeLabelsAssignsDistinctSuffixesWithinOneCall(t *testing.T) {
	st := store.New()
	_, err := st.AddConstant("dup")
	require.NoError(t, err)
	_, err = st.AddConstant("dup_0")
	require.NoError(t, err)

	floats := []store.FloatingHypothesis{{Label: "x"}, {Label: "x"}}
	out := CanonicalizeLabels(st, "dup", floats, nil, nil)
	require.Equal(t, "dup_1", out.Assertion)
	require.Equal(t, []string{"dup_1.x", "dup_1.x_0"}, out.Floats, "two hypotheses sharing a raw label must still get distinct canonical names")
}
