package havjson

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"
)

// binCursor is a byte-cursor reader over a BIN document, grounded on
// the teacher's own manual byte-cursor style in parse_packed.go and on
// original_source's stack-of-open-container decoding.
type binCursor struct {
	data []byte
	pos  int
}

// DecodeBinToText converts one BIN root-object document into TEXT
// bytes, which the caller then feeds through the Lexer/Builder. This
// keeps a single structural validator (the Lexer/Builder pair) rather
// than a second one duplicated for binary input.
func DecodeBinToText(data []byte) (string, error) {
	cur := &binCursor{data: data}
	var sb strings.Builder
	if err := cur.decodeDocument(&sb, false); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (c *binCursor) need(n int) error {
	if c.pos+n > len(c.data) {
		return newErrf(ErrUnexpectedEOF, c.pos, "need %d more bytes, have %d", n, len(c.data)-c.pos)
	}
	return nil
}

func (c *binCursor) readInt32() (int32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := int32(binary.LittleEndian.Uint32(c.data[c.pos:]))
	c.pos += 4
	return v, nil
}

func (c *binCursor) readUint16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *binCursor) readByte() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

func (c *binCursor) readBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *binCursor) readInt64() (int64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := int64(binary.LittleEndian.Uint64(c.data[c.pos:]))
	c.pos += 8
	return v, nil
}

func (c *binCursor) readUint64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(c.data[c.pos:])
	c.pos += 8
	return v, nil
}

func (c *binCursor) readDouble() (float64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	bits := binary.LittleEndian.Uint64(c.data[c.pos:])
	c.pos += 8
	return math.Float64frombits(bits), nil
}

func (c *binCursor) readCString() (string, error) {
	start := c.pos
	for c.pos < len(c.data) {
		if c.data[c.pos] == 0x00 {
			s := string(c.data[start:c.pos])
			c.pos++
			return s, nil
		}
		c.pos++
	}
	return "", newErrf(ErrUnexpectedEOF, start, "unterminated C-string key")
}

// decodeDocument reads one BIN document (object or array framing is
// identical: int32 totalLength, elements, terminating 0x00) starting
// at the current position and writes its TEXT rendering to sb.
func (c *binCursor) decodeDocument(sb *strings.Builder, isArray bool) error {
	start := c.pos
	totalLen, err := c.readInt32()
	if err != nil {
		return err
	}
	if totalLen < 5 {
		return newErrf(ErrUnsupportedBinType, start, "declared length %d too small", totalLen)
	}
	end := start + int(totalLen)
	if end > len(c.data) {
		return newErrf(ErrUnexpectedEOF, start, "declared length %d exceeds available %d bytes", totalLen, len(c.data)-start)
	}

	if isArray {
		sb.WriteByte('[')
	} else {
		sb.WriteByte('{')
	}

	first := true
	for c.pos < end-1 {
		if !first {
			sb.WriteByte(',')
		}
		first = false

		tag, err := c.readByte()
		if err != nil {
			return err
		}

		if isArray {
			if _, err := c.readUint16(); err != nil {
				return err
			}
		} else {
			key, err := c.readCString()
			if err != nil {
				return err
			}
			writeQuotedString(sb, key)
			sb.WriteByte(':')
		}

		if err := c.decodeValue(sb, tag); err != nil {
			return err
		}
	}

	if c.pos != end-1 {
		return newErrf(ErrStructuralError, c.pos, "element bookkeeping mismatch: at %d, expected terminator at %d", c.pos, end-1)
	}
	term, err := c.readByte()
	if err != nil {
		return err
	}
	if term != 0x00 {
		return newErrf(ErrStructuralError, c.pos-1, "expected terminating 0x00, got 0x%02X", term)
	}

	if isArray {
		sb.WriteByte(']')
	} else {
		sb.WriteByte('}')
	}
	return nil
}

func (c *binCursor) decodeValue(sb *strings.Builder, tag byte) error {
	switch tag {
	case 0x01:
		f, err := c.readDouble()
		if err != nil {
			return err
		}
		sb.WriteString(formatDoubleForRoundTrip(f))
		return nil

	case 0x02, 0x0D:
		length, err := c.readInt32()
		if err != nil {
			return err
		}
		if length < 1 {
			return newErrf(ErrUnsupportedBinType, c.pos, "string length %d invalid", length)
		}
		raw, err := c.readBytes(int(length))
		if err != nil {
			return err
		}
		if raw[len(raw)-1] != 0x00 {
			return newErrf(ErrStructuralError, c.pos-int(length), "string payload missing trailing NUL")
		}
		writeQuotedString(sb, string(raw[:len(raw)-1]))
		return nil

	case 0x03:
		return c.decodeDocument(sb, false)

	case 0x04:
		return c.decodeDocument(sb, true)

	case 0x05:
		length, err := c.readInt32()
		if err != nil {
			return err
		}
		subtype, err := c.readByte()
		if err != nil {
			return err
		}
		if subtype != 0x00 && subtype != 0x02 {
			return newErrf(ErrUnsupportedBinType, c.pos-1, "binary subtype 0x%02X not supported", subtype)
		}
		raw, err := c.readBytes(int(length))
		if err != nil {
			return err
		}
		sb.WriteByte('[')
		for i, b := range raw {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(int(b)))
		}
		sb.WriteByte(']')
		return nil

	case 0x08:
		b, err := c.readByte()
		if err != nil {
			return err
		}
		switch b {
		case 0x00:
			sb.WriteString("false")
		case 0x01:
			sb.WriteString("true")
		default:
			return newErrf(ErrUnsupportedBinType, c.pos-1, "boolean byte 0x%02X invalid", b)
		}
		return nil

	case 0x09:
		n, err := c.readInt64()
		if err != nil {
			return err
		}
		sb.WriteString(strconv.FormatInt(n, 10))
		return nil

	case 0x0A:
		sb.WriteString("null")
		return nil

	case 0x10:
		n, err := c.readInt32()
		if err != nil {
			return err
		}
		sb.WriteString(strconv.FormatInt(int64(n), 10))
		return nil

	case 0x11:
		n, err := c.readUint64()
		if err != nil {
			return err
		}
		sb.WriteString(strconv.FormatUint(n, 10))
		return nil

	case 0x12:
		n, err := c.readInt64()
		if err != nil {
			return err
		}
		sb.WriteString(strconv.FormatInt(n, 10))
		return nil

	default:
		return newErrf(ErrUnsupportedBinType, c.pos-1, "unsupported BIN type tag 0x%02X", tag)
	}
}

// formatDoubleForRoundTrip renders f so the Lexer will classify it as
// a Double token (i.e. the text always contains '.' or 'e'), rather
// than accidentally being read back as an integer literal.
func formatDoubleForRoundTrip(f float64) string {
	s := formatDouble(f)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
