package havjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearizeObjectOrdersByStoredKeyOrder(t *testing.T) {
	v := Object(Field("b", Int32(2)), Field("a", Int32(1)))
	toks := Linearize(v)
	require := []TokenKind{TokLBrace, TokKey, TokColon, TokInt32, TokComma, TokKey, TokColon, TokInt32, TokRBrace}
	kinds := make([]TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, require, kinds)
	assert.Equal(t, "a", toks[1].Str)
	assert.Equal(t, "b", toks[5].Str)
}

func TestLinearizeEmptyArray(t *testing.T) {
	toks := Linearize(Array())
	assert.Equal(t, []TokenKind{TokLBracket, TokRBracket}, []TokenKind{toks[0].Kind, toks[1].Kind})
}
