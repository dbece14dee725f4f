package havjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCBORRoundTrip(t *testing.T) {
	v := Object(
		Field("s", String("hi")),
		Field("n", Int32(-7)),
		Field("u", UInt64(1000000)),
		Field("arr", Array(Bool(false), Null())),
	)
	data, err := ValueToCBOR(v)
	require.NoError(t, err)

	back, err := ValueFromCBOR(data)
	require.NoError(t, err)

	s, err := back.Get("s").AsString()
	require.NoError(t, err)
	assert.Equal(t, "hi", s)

	n, err := back.Get("n").AsInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-7), n)
}

func TestCBOREncodingIsDeterministic(t *testing.T) {
	v := Object(Field("b", Int32(2)), Field("a", Int32(1)))
	first, err := ValueToCBOR(v)
	require.NoError(t, err)
	second, err := ValueToCBOR(v)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
