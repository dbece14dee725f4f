package havjson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesByKind(t *testing.T) {
	err := newErr(ErrBadNumber, "bad number", 3)
	assert.True(t, errors.Is(err, KindSentinel(ErrBadNumber)))
	assert.False(t, errors.Is(err, KindSentinel(ErrBadEscape)))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := newIOErr("/tmp/x", cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestErrorKindStrings(t *testing.T) {
	assert.Equal(t, "BadNumber", ErrBadNumber.String())
	assert.Equal(t, "IoError", ErrIoError.String())
}
