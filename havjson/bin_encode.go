package havjson

import (
	"bytes"
	"encoding/binary"
	"math"
)

// EncodeBin converts v, which must be an Object, to BIN bytes. It
// operates on v's linearized token stream (the same one the Text
// Writer consumes), applying the narrowing rewrites of §4.6 before
// choosing a wire tag for each numeric token.
func EncodeBin(v *Value) ([]byte, error) {
	if v.Kind() != KindObject {
		return nil, newErr(ErrBadRootKind, "BIN encoder requires an object root", 0)
	}
	toks := Linearize(v)
	enc := &binEncoder{toks: toks}
	buf, err := enc.encodeDocument(false)
	if err != nil {
		return nil, err
	}
	if enc.pos != len(enc.toks) {
		return nil, newErr(ErrStructuralError, "trailing tokens after root document", 0)
	}
	return buf, nil
}

type binEncoder struct {
	toks []Token
	pos  int
}

func (e *binEncoder) next() (Token, bool) {
	if e.pos >= len(e.toks) {
		return Token{}, false
	}
	t := e.toks[e.pos]
	e.pos++
	return t, true
}

func (e *binEncoder) peekKind() (TokenKind, bool) {
	if e.pos >= len(e.toks) {
		return 0, false
	}
	return e.toks[e.pos].Kind, true
}

// encodeDocument encodes one container (object or array) as a BIN
// document: int32 totalLength, elements, terminating 0x00. The total
// length is always derived from the actual body buffer's length, per
// the resolution of §9's open byte-counting question — never from
// manually tracked offsets.
func (e *binEncoder) encodeDocument(isArray bool) ([]byte, error) {
	open, ok := e.next()
	if !ok {
		return nil, newErr(ErrUnexpectedEOF, "expected container opener", 0)
	}
	if isArray && open.Kind != TokLBracket {
		return nil, newErrf(ErrStructuralError, open.Pos, "expected '['")
	}
	if !isArray && open.Kind != TokLBrace {
		return nil, newErrf(ErrStructuralError, open.Pos, "expected '{'")
	}

	closeKind := TokRBrace
	if isArray {
		closeKind = TokRBracket
	}

	var body bytes.Buffer
	index := uint16(0)
	first := true
	for {
		k, ok := e.peekKind()
		if !ok {
			return nil, newErr(ErrUnexpectedEOF, "unterminated container", 0)
		}
		if k == closeKind {
			e.pos++
			break
		}
		if !first {
			if k != TokComma {
				return nil, newErrf(ErrStructuralError, e.toks[e.pos].Pos, "expected ','")
			}
			e.pos++
		}
		first = false

		var key []byte
		if isArray {
			key = arrayIndexKey(index)
			index++
		} else {
			keyTok, ok := e.next()
			if !ok || keyTok.Kind != TokKey {
				return nil, newErr(ErrStructuralError, "expected object key", 0)
			}
			colon, ok := e.next()
			if !ok || colon.Kind != TokColon {
				return nil, newErr(ErrStructuralError, "expected ':'", 0)
			}
			key = cStringKey(keyTok.Str)
		}

		tag, payload, err := e.encodeValue()
		if err != nil {
			return nil, err
		}
		body.WriteByte(tag)
		body.Write(key)
		body.Write(payload)
	}
	body.WriteByte(0x00)

	total := 4 + body.Len()
	out := make([]byte, 4, total)
	binary.LittleEndian.PutUint32(out, uint32(total))
	out = append(out, body.Bytes()...)
	return out, nil
}

func cStringKey(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	b[len(s)] = 0x00
	return b
}

// arrayIndexKey encodes an array position as a two-byte little-endian
// integer index, per §4.5's decoder contract (kept symmetric with the
// encoder so ParseBin(ToBinary(V)) round-trips; see DESIGN.md for the
// discrepancy this resolves against §4.6's literal wording).
func arrayIndexKey(i uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, i)
	return b
}

// encodeValue consumes one value-position token (possibly a nested
// container) and returns its wire tag and payload bytes.
func (e *binEncoder) encodeValue() (byte, []byte, error) {
	tok, ok := e.next()
	if !ok {
		return 0, nil, newErr(ErrUnexpectedEOF, "expected a value", 0)
	}
	switch tok.Kind {
	case TokNull:
		return 0x0A, nil, nil
	case TokBool:
		if tok.Bool {
			return 0x08, []byte{0x01}, nil
		}
		return 0x08, []byte{0x00}, nil
	case TokInt32:
		return 0x10, leInt32(int32(tok.Signed)), nil
	case TokIntWide, TokInt64:
		// narrowing rewrite: wide-signed becomes int64.
		return 0x12, leInt64(tok.Signed), nil
	case TokUInt32:
		// narrowing rewrite: unsigned 32-bit becomes signed 32-bit.
		return 0x10, leInt32(int32(tok.Unsigned)), nil
	case TokUIntWide, TokUInt64:
		// narrowing rewrite: wide-unsigned becomes uint64.
		return 0x11, leUint64(tok.Unsigned), nil
	case TokDouble:
		bits := math.Float64bits(tok.Double)
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, bits)
		return 0x01, b, nil
	case TokStr:
		payload := make([]byte, 0, len(tok.Str)+5)
		strBytes := append([]byte(tok.Str), 0x00)
		lenBuf := make([]byte, 4)
		binary.LittleEndian.PutUint32(lenBuf, uint32(len(strBytes)))
		payload = append(payload, lenBuf...)
		payload = append(payload, strBytes...)
		return 0x02, payload, nil
	case TokLBracket:
		e.pos--
		doc, err := e.encodeDocument(true)
		if err != nil {
			return 0, nil, err
		}
		return 0x04, doc, nil
	case TokLBrace:
		e.pos--
		doc, err := e.encodeDocument(false)
		if err != nil {
			return 0, nil, err
		}
		// Nested objects use the embedded-document tag. The supported
		// tag table in §4.5 only names 0x04 (array) explicitly for
		// containers; 0x03 (embedded document) is required for
		// general trees to satisfy the BIN round-trip property and is
		// accepted symmetrically by the decoder.
		return 0x03, doc, nil
	default:
		return 0, nil, newErrf(ErrStructuralError, tok.Pos, "unsupported token in BIN value position")
	}
}

func leInt32(n int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(n))
	return b
}

func leInt64(n int64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(n))
	return b
}

func leUint64(n uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, n)
	return b
}
