package havjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTrip(t *testing.T) {
	v := Object(
		Field("s", String("hi")),
		Field("n", Int32(42)),
		Field("f", Double(1.5)),
		Field("b", Bool(true)),
		Field("z", Null()),
		Field("arr", Array(Int32(1), Int32(2))),
	)
	data, err := ValueToJSON(v)
	require.NoError(t, err)

	back, err := ValueFromJSON(data)
	require.NoError(t, err)

	n, err := back.Get("n").AsInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	s, err := back.Get("s").AsString()
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
}

func TestNumberToValueNarrowing(t *testing.T) {
	assert.Equal(t, KindInt32, numberToValue(5).Kind())
	assert.Equal(t, KindInt64, numberToValue(1<<40).Kind())
	assert.Equal(t, KindDouble, numberToValue(1.5).Kind())
}
