package havjson

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRoundTripText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.hjson")
	v := Object(Field("hello", String("world")))

	require.NoError(t, WriteFile(path, v, KindText, true))
	back, err := ParseFile(path, KindText)
	require.NoError(t, err)
	assert.True(t, EqualNarrowed(v, back))
}

func TestFileRoundTripBin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.bhjson")
	v := Object(Field("n", Int32(7)))

	require.NoError(t, WriteFile(path, v, KindBin, false))
	back, err := ParseFile(path, KindBin)
	require.NoError(t, err)
	assert.True(t, EqualNarrowed(v, back))
}

func TestSniffEncodingBOMTable(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want encodingSniff
		skip int
	}{
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, '{', '}'}, sniffUTF8, 3},
		{"utf16le bom", []byte{0xFF, 0xFE, '{', 0x00}, sniffUTF16LE, 2},
		{"utf16be bom", []byte{0xFE, 0xFF, 0x00, '{'}, sniffUTF16BE, 2},
		{"utf32le bom", []byte{0xFF, 0xFE, 0x00, 0x00, '{', 0, 0, 0}, sniffUTF32LE, 4},
		{"utf32be bom", []byte{0x00, 0x00, 0xFE, 0xFF, 0, 0, 0, '{'}, sniffUTF32BE, 4},
		{"no bom ascii", []byte(`{"a":1}`), sniffUTF8, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, skip := sniffEncoding(c.data)
			assert.Equal(t, c.want, got)
			assert.Equal(t, c.skip, skip)
		})
	}
}

func TestParseFileMissingPath(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.hjson"), KindText)
	require.Error(t, err)
	var he *Error
	require.ErrorAs(t, err, &he)
	assert.Equal(t, ErrIoError, he.Kind)
}
