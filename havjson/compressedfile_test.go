package havjson

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressedFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.hjson.zst")
	v := Object(
		Field("name", String("archive")),
		Field("items", Array(Int32(1), Int32(2), Int32(3))),
	)

	require.NoError(t, WriteFileCompressed(path, v))
	back, err := ReadFileCompressed(path)
	require.NoError(t, err)
	assert.True(t, EqualNarrowed(v, back))
}

func TestReadFileCompressedRejectsPlainBin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.bhjson")
	v := Object(Field("a", Int32(1)))
	require.NoError(t, WriteFile(path, v, KindBin, false))

	_, err := ReadFileCompressed(path)
	require.Error(t, err)
}
