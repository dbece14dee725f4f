package havjson

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint returns a content-addressed identifier for v, computed
// over v's canonical BIN encoding. Values that differ only by the
// encoder's narrowing rewrites (UInt32 vs Int32, IntWide vs Int64,
// UIntWide vs UInt64) produce the same fingerprint; other width
// differences, such as Int32 vs Int64, change the wire tag and so the
// fingerprint, even where EqualNarrowed reports equality. Grounded on the teacher's own
// ComputeCID(content []byte) string in glyph/blob.go, re-keyed from
// SHA-256 to blake3 (see DESIGN.md).
func Fingerprint(v *Value) (string, error) {
	bin, err := ToBinary(v)
	if err != nil {
		return "", err
	}
	hasher := blake3.New()
	hasher.Write(bin)
	sum := hasher.Sum(nil)
	return "blake3:" + hex.EncodeToString(sum), nil
}
