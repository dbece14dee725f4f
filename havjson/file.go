package havjson

import (
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// encodingSniff classifies a file's byte encoding from its leading
// bytes, per §6's BOM table (both explicit BOM patterns and the
// no-BOM heuristics for narrow/wide-null patterns).
type encodingSniff uint8

const (
	sniffUTF8 encodingSniff = iota
	sniffUTF16LE
	sniffUTF16BE
	sniffUTF32LE
	sniffUTF32BE
)

// sniffEncoding inspects up to the first four bytes of data and
// returns the declared/inferred encoding plus the number of leading
// BOM bytes to skip (0 if no BOM was present).
func sniffEncoding(data []byte) (encodingSniff, int) {
	switch {
	case len(data) >= 4 && data[0] == 0xFF && data[1] == 0xFE && data[2] == 0x00 && data[3] == 0x00:
		return sniffUTF32LE, 4
	case len(data) >= 4 && data[0] == 0x00 && data[1] == 0x00 && data[2] == 0xFE && data[3] == 0xFF:
		return sniffUTF32BE, 4
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return sniffUTF16LE, 2
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return sniffUTF16BE, 2
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return sniffUTF8, 3
	}

	if len(data) >= 4 {
		switch {
		case data[1] == 0x00 && data[2] == 0x00 && data[3] == 0x00:
			return sniffUTF32LE, 0
		case data[0] == 0x00 && data[1] == 0x00 && data[2] == 0x00:
			return sniffUTF32BE, 0
		case data[1] == 0x00 && data[3] == 0x00:
			return sniffUTF16LE, 0
		case data[0] == 0x00 && data[2] == 0x00:
			return sniffUTF16BE, 0
		}
	}
	return sniffUTF8, 0
}

// decodeToUTF8 transcodes data (already stripped of any BOM) from the
// sniffed encoding to UTF-8, using golang.org/x/text — no repository
// in the retrieved example pack performs wide-encoding transcoding, so
// this is the one dependency in the module drawn from the wider
// ecosystem rather than grounded in a pack example; see DESIGN.md.
func decodeToUTF8(data []byte, enc encodingSniff) ([]byte, error) {
	var decoder interface {
		Bytes([]byte) ([]byte, error)
	}
	switch enc {
	case sniffUTF8:
		return data, nil
	case sniffUTF16LE:
		decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	case sniffUTF16BE:
		decoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case sniffUTF32LE:
		decoder = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewDecoder()
	case sniffUTF32BE:
		decoder = utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM).NewDecoder()
	default:
		return data, nil
	}
	out, err := decoder.Bytes(data)
	if err != nil {
		return nil, newErrf(ErrIoError, 0, "transcoding to UTF-8: %v", err)
	}
	return out, nil
}

// ParseFile reads path, detects its byte-order-mark/encoding per §6,
// transcodes non-UTF-8 TEXT input to UTF-8, and parses it as kind.
// BIN files are read as raw bytes; no encoding sniffing applies to
// them.
func ParseFile(path string, kind FormatKind) (*Value, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, newIOErr(path, err)
	}

	if kind == KindBin {
		v, err := Parse(raw, KindBin)
		if err != nil {
			return nil, wrapPathErr(path, err)
		}
		return v, nil
	}

	enc, skip := sniffEncoding(raw)
	body := raw[skip:]
	utf8Bytes, err := decodeToUTF8(body, enc)
	if err != nil {
		return nil, wrapPathErr(path, err)
	}
	v, err := Parse(utf8Bytes, KindText)
	if err != nil {
		return nil, wrapPathErr(path, err)
	}
	return v, nil
}

// WriteFile serializes v as kind and writes it to path. TEXT output
// is always UTF-8 without a BOM.
func WriteFile(path string, v *Value, kind FormatKind, pretty bool) error {
	var out []byte
	switch kind {
	case KindBin:
		b, err := ToBinary(v)
		if err != nil {
			return wrapPathErr(path, err)
		}
		out = b
	default:
		out = ToText(v, pretty)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return newIOErr(path, err)
	}
	return nil
}

func wrapPathErr(path string, err error) error {
	if he, ok := err.(*Error); ok {
		he.Path = path
		return he
	}
	return newIOErr(path, err)
}
