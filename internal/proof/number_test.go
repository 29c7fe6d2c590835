package proof

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeNumberKnownValues(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "A"},
		{20, "T"},
		{21, "UA"},
		{25, "UE"},
		{26, "UF"},
		{125, "UUE"},
		{126, "UUF"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, EncodeNumber(c.n), "n=%d", c.n)
	}
}

func TestNumberBijection(t *testing.T) {
	for n := 1; n <= 500; n++ {
		encoded := EncodeNumber(n)
		got, next, err := DecodeNumber([]byte(encoded), 0)
		require.NoError(t, err)
		require.Equal(t, len(encoded), next)
		require.Equal(t, n, got)
	}
}

func TestDecodeNumberRejectsZMidDigit(t *testing.T) {
	_, _, err := DecodeNumber([]byte("UZ"), 0)
	require.Error(t, err)
	require.IsType(t, &CompressedProofSyntaxError{}, err)
}

func TestDecodeNumberRejectsInvalidCharacter(t *testing.T) {
	_, _, err := DecodeNumber([]byte("#"), 0)
	require.Error(t, err)
}
