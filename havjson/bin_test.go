package havjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helloWorldBin is the literal BIN byte fixture for Object{hello: "world"}:
// int32 totalLength(0x16) | tag 0x02 "hello\x00" int32(6) "world\x00" | 0x00
var helloWorldBin = []byte{
	0x16, 0x00, 0x00, 0x00,
	0x02, 'h', 'e', 'l', 'l', 'o', 0x00,
	0x06, 0x00, 0x00, 0x00, 'w', 'o', 'r', 'l', 'd', 0x00,
	0x00,
}

func TestBinDecodeFixture(t *testing.T) {
	v, err := Parse(helloWorldBin, KindBin)
	require.NoError(t, err)
	s, err := v.Get("hello").AsString()
	require.NoError(t, err)
	assert.Equal(t, "world", s)
}

func TestBinEncodeFixture(t *testing.T) {
	v := Object(Field("hello", String("world")))
	out, err := ToBinary(v)
	require.NoError(t, err)
	assert.Equal(t, helloWorldBin, out)
}

func TestBinRoundTripArbitraryTree(t *testing.T) {
	v := Object(
		Field("n", Int32(-5)),
		Field("u", UInt64(9999999999)),
		Field("d", Double(2.5)),
		Field("arr", Array(Int32(1), String("two"), Bool(true), Null())),
		Field("nested", Object(Field("deep", Object(Field("x", Int32(1)))))),
	)
	bin, err := ToBinary(v)
	require.NoError(t, err)

	back, err := Parse(bin, KindBin)
	require.NoError(t, err)
	assert.True(t, EqualNarrowed(v, back))
}

func TestBinNarrowingRewriteEquivalence(t *testing.T) {
	// UInt32 narrows to signed-32 tag on the wire; IntWide/Int64 collapse
	// to int64. Both should still round-trip to an EqualNarrowed value.
	v := Object(Field("u", UInt32(42)), Field("w", IntWide(-1)))
	bin, err := ToBinary(v)
	require.NoError(t, err)
	back, err := Parse(bin, KindBin)
	require.NoError(t, err)
	assert.True(t, EqualNarrowed(v, back))
}

func TestBinEncodeRequiresObjectRoot(t *testing.T) {
	_, err := ToBinary(Array(Int32(1)))
	require.Error(t, err)
	var he *Error
	require.ErrorAs(t, err, &he)
	assert.Equal(t, ErrBadRootKind, he.Kind)
}

func TestBinDecodeUnsupportedTag(t *testing.T) {
	bad := []byte{
		0x08, 0x00, 0x00, 0x00,
		0xFF, 'k', 0x00,
		0x00,
	}
	_, err := Parse(bad, KindBin)
	require.Error(t, err)
	var he *Error
	require.ErrorAs(t, err, &he)
	assert.Equal(t, ErrUnsupportedBinType, he.Kind)
}

func TestBinDecodeTruncatedLength(t *testing.T) {
	_, err := Parse([]byte{0x10, 0x00, 0x00}, KindBin)
	require.Error(t, err)
	var he *Error
	require.ErrorAs(t, err, &he)
	assert.Equal(t, ErrUnexpectedEOF, he.Kind)
}
