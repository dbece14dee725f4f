package havjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueConstructorsAndAccessors(t *testing.T) {
	b, err := Bool(true).AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	n, err := Int32(42).AsInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	u, err := UInt64(7).AsUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), u)

	f, err := Double(3.5).AsDouble()
	require.NoError(t, err)
	assert.Equal(t, 3.5, f)

	s, err := String("hi").AsString()
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
}

func TestValueKindMismatch(t *testing.T) {
	_, err := Bool(true).AsString()
	require.Error(t, err)
	var he *Error
	require.ErrorAs(t, err, &he)
	assert.Equal(t, ErrKindMismatch, he.Kind)
}

func TestObjectKeysLexicographicAndUnique(t *testing.T) {
	obj := Object(Field("b", Int32(2)), Field("a", Int32(1)), Field("a", Int32(99)))
	entries, err := obj.AsObject()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Key)
	assert.Equal(t, "b", entries[1].Key)
	v, _ := entries[0].Value.AsInt64()
	assert.Equal(t, int64(99), v, "duplicate key keeps the last occurrence")
}

func TestValueGetReturnsLiveHandle(t *testing.T) {
	child := Int32(1)
	obj := Object(Field("x", child))
	got := obj.Get("x")
	require.NotNil(t, got)

	// Mutating through Set on the parent replaces the slot; mutating
	// a container child in place is visible through the same pointer.
	inner := Object()
	obj.Set("y", inner)
	inner.Set("z", Bool(true))
	assert.Equal(t, true, func() bool {
		b, _ := obj.Get("y").Get("z").AsBool()
		return b
	}())
}

func TestArrayAppendAndIndex(t *testing.T) {
	arr := Array(Int32(1), Int32(2))
	arr.Append(Int32(3))
	assert.Equal(t, 3, arr.Len())
	v, err := arr.Index(2)
	require.NoError(t, err)
	n, _ := v.AsInt64()
	assert.Equal(t, int64(3), n)

	_, err = arr.Index(10)
	require.Error(t, err)
}

func TestEqualAndEqualNarrowed(t *testing.T) {
	a := Object(Field("n", UInt32(5)))
	b := Object(Field("n", Int32(5)))
	assert.False(t, Equal(a, b))
	assert.True(t, EqualNarrowed(a, b))
}
