package havjson

import (
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
)

// zstdEncoder and zstdDecoder are reused across calls rather than
// constructed per-call. Both are safe for concurrent use. Grounded on
// bureau-foundation-bureau/lib/artifactstore/compress.go's identical
// package-level pattern.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("havjson: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("havjson: zstd decoder initialization failed: " + err.Error())
	}
}

// WriteFileCompressed serializes v to BIN and writes it to path
// zstd-compressed. Only BIN output is supported — TEXT is already
// compact relative to BIN's field overhead, and no SPEC_FULL.md
// component calls for compressing it.
func WriteFileCompressed(path string, v *Value) error {
	bin, err := ToBinary(v)
	if err != nil {
		return wrapPathErr(path, err)
	}
	compressed := zstdEncoder.EncodeAll(bin, nil)
	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		return newIOErr(path, err)
	}
	return nil
}

// ReadFileCompressed reads a file written by WriteFileCompressed and
// returns the decoded Value.
func ReadFileCompressed(path string) (*Value, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, newIOErr(path, err)
	}
	bin, err := zstdDecoder.DecodeAll(raw, nil)
	if err != nil {
		return nil, wrapPathErr(path, fmt.Errorf("zstd decompress: %w", err))
	}
	v, err := Parse(bin, KindBin)
	if err != nil {
		return nil, wrapPathErr(path, err)
	}
	return v, nil
}
