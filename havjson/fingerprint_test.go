package havjson

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintStableAndPrefixed(t *testing.T) {
	v := Object(Field("a", Int32(1)))
	fp1, err := Fingerprint(v)
	require.NoError(t, err)
	fp2, err := Fingerprint(v)
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2)
	assert.True(t, strings.HasPrefix(fp1, "blake3:"))
}

func TestFingerprintNarrowingInvariant(t *testing.T) {
	a := Object(Field("n", UInt32(9)))
	b := Object(Field("n", Int32(9)))
	fpA, err := Fingerprint(a)
	require.NoError(t, err)
	fpB, err := Fingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, fpA, fpB, "narrowed-equivalent values share a fingerprint")
}

func TestFingerprintDiffersOnContent(t *testing.T) {
	a := Object(Field("n", Int32(1)))
	b := Object(Field("n", Int32(2)))
	fpA, err := Fingerprint(a)
	require.NoError(t, err)
	fpB, err := Fingerprint(b)
	require.NoError(t, err)
	assert.NotEqual(t, fpA, fpB)
}
