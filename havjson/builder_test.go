package havjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseText(t *testing.T, src string) *Value {
	t.Helper()
	v, err := Parse([]byte(src), KindText)
	require.NoError(t, err)
	return v
}

func TestBuilderObjectScenario(t *testing.T) {
	v := parseText(t, `{"hello":"world"}`)
	s, err := v.Get("hello").AsString()
	require.NoError(t, err)
	assert.Equal(t, "world", s)
}

func TestBuilderNestedArrayAndObject(t *testing.T) {
	v := parseText(t, `{"a":[1,2,{"b":true}]}`)
	arr, err := v.Get("a").AsArray()
	require.NoError(t, err)
	require.Len(t, arr, 3)
	b, err := arr[2].Get("b").AsBool()
	require.NoError(t, err)
	assert.True(t, b)
}

func TestBuilderEmptyContainers(t *testing.T) {
	v := parseText(t, `{}`)
	entries, err := v.AsObject()
	require.NoError(t, err)
	assert.Len(t, entries, 0)

	v2 := parseText(t, `[]`)
	elems, err := v2.AsArray()
	require.NoError(t, err)
	assert.Len(t, elems, 0)
}

func TestBuilderRootMustBeContainer(t *testing.T) {
	_, err := Parse([]byte(`42`), KindText)
	require.Error(t, err)
	var he *Error
	require.ErrorAs(t, err, &he)
	assert.Equal(t, ErrStructuralError, he.Kind)
}

func TestBuilderTrailingGarbage(t *testing.T) {
	_, err := Parse([]byte(`{} {}`), KindText)
	require.Error(t, err)
	var he *Error
	require.ErrorAs(t, err, &he)
	assert.Equal(t, ErrStructuralError, he.Kind)
}

func TestBuilderMissingColon(t *testing.T) {
	_, err := Parse([]byte(`{"a" 1}`), KindText)
	require.Error(t, err)
	var he *Error
	require.ErrorAs(t, err, &he)
	assert.Equal(t, ErrStructuralError, he.Kind)
}

func TestBuilderMissingCommaBetweenElements(t *testing.T) {
	_, err := Parse([]byte(`[1 2]`), KindText)
	require.Error(t, err)
	var he *Error
	require.ErrorAs(t, err, &he)
	assert.Equal(t, ErrStructuralError, he.Kind)
}

func TestBuilderUnterminatedObject(t *testing.T) {
	_, err := Parse([]byte(`{"a":1`), KindText)
	require.Error(t, err)
	var he *Error
	require.ErrorAs(t, err, &he)
	assert.Equal(t, ErrUnexpectedEOF, he.Kind)
}

func TestBuilderDeeplyNested(t *testing.T) {
	v := parseText(t, `{"a":{"b":{"c":[1,2,3]}}}`)
	arr, err := v.Get("a").Get("b").Get("c").AsArray()
	require.NoError(t, err)
	assert.Len(t, arr, 3)
}
