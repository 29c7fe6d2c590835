package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const minimalAxiomSource = `
$c ( ) -> wff $.
$v p q $.
wp $f wff p $.
wq $f wff q $.
ax-1 $a wff ( p -> q ) $.
`

func TestReadMinimalAxiom(t *testing.T) {
	st, err := Read(strings.NewReader(minimalAxiomSource))
	require.NoError(t, err)

	ref, ok := st.FindAssertion("ax-1")
	require.True(t, ok)
	a := st.GetAssertion(ref)

	require.Len(t, a.FloatingHypotheses, 2)
	require.Equal(t, "ax-1.wp", a.FloatingHypotheses[0].Label)
	require.Equal(t, "ax-1.wq", a.FloatingHypotheses[1].Label)
	require.Empty(t, a.EssentialHypotheses)
	require.Empty(t, a.DisjointVariableRestrictions)
	require.Nil(t, a.Proof)
}

func TestWriteMinimalAxiomRoundTrips(t *testing.T) {
	st, err := Read(strings.NewReader(minimalAxiomSource))
	require.NoError(t, err)

	var out1 strings.Builder
	require.NoError(t, Write(&out1, st))

	reread, err := Read(strings.NewReader(out1.String()))
	require.NoError(t, err)

	var out2 strings.Builder
	require.NoError(t, Write(&out2, reread))

	require.Equal(t, out1.String(), out2.String())
}

const identityTheoremSource = minimalAxiomSource + `
${
    min $e wff p $.
    t1 $p wff p $= min $.
$}
`

func TestReadIdentityTheoremUncompressedProof(t *testing.T) {
	st, err := Read(strings.NewReader(identityTheoremSource))
	require.NoError(t, err)

	ref, ok := st.FindAssertion("t1")
	require.True(t, ok)
	a := st.GetAssertion(ref)

	require.NotNil(t, a.Proof)
	require.Len(t, a.Proof.Steps, 1)
	require.Equal(t, 0, a.Proof.Steps[0].Index)
}

func TestWriteIdentityTheoremEmitsCompressedProof(t *testing.T) {
	st, err := Read(strings.NewReader(identityTheoremSource))
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, Write(&out, st))

	require.Contains(t, out.String(), "$= ( ) B $.")
}

func TestWriteReadWriteIsIdempotent(t *testing.T) {
	st, err := Read(strings.NewReader(identityTheoremSource))
	require.NoError(t, err)

	var out1 strings.Builder
	require.NoError(t, Write(&out1, st))

	reread, err := Read(strings.NewReader(out1.String()))
	require.NoError(t, err)

	var out2 strings.Builder
	require.NoError(t, Write(&out2, reread))

	require.Equal(t, out1.String(), out2.String())
}

func TestReadRejectsDuplicateConstant(t *testing.T) {
	_, err := Read(strings.NewReader("$c a $. $c a $."))
	require.Error(t, err)
}

func TestReadRejectsUnmatchedScopeClose(t *testing.T) {
	_, err := Read(strings.NewReader("$}"))
	require.Error(t, err)
}

func TestReadRejectsScopeWithLabel(t *testing.T) {
	_, err := Read(strings.NewReader("foo ${ $}"))
	require.Error(t, err)
}

func TestReadNestedScopesDoNotLeakFloatingHypotheses(t *testing.T) {
	src := `
$c wff wff2 $.
$v p q $.
${
    v $f wff p $.
    a1 $a wff p $.
$}
${
    v $f wff2 q $.
    a2 $a wff2 q $.
$}
`
	st, err := Read(strings.NewReader(src))
	require.NoError(t, err)

	ref1, ok := st.FindAssertion("a1")
	require.True(t, ok)
	a1 := st.GetAssertion(ref1)
	require.Len(t, a1.FloatingHypotheses, 1)
	require.Equal(t, "a1.v", a1.FloatingHypotheses[0].Label)
	require.Equal(t, "wff", st.Symbol(a1.FloatingHypotheses[0].Type).Label)

	ref2, ok := st.FindAssertion("a2")
	require.True(t, ok)
	a2 := st.GetAssertion(ref2)
	require.Len(t, a2.FloatingHypotheses, 1)
	require.Equal(t, "a2.v", a2.FloatingHypotheses[0].Label)
	require.Equal(t, "wff2", st.Symbol(a2.FloatingHypotheses[0].Type).Label)
}
