package havjson

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Lexer turns a UTF-8 TEXT buffer into an ordered Token stream. It
// tracks container nesting itself (object vs array vs root) so it
// knows whether a string in value position is a key or a value,
// mirroring the builder's own container stack.
type Lexer struct {
	input string
	pos   int

	// containers tracks nesting: '{' for object, '[' for array.
	containers []byte
	// afterOpenOrComma is true immediately after '{', '[' or ',' — the
	// position where an object key (not a value string) is expected.
	afterOpenOrComma bool

	tokens []Token
}

// NewLexer creates a Lexer over input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, afterOpenOrComma: true}
}

func (l *Lexer) inObject() bool {
	return len(l.containers) > 0 && l.containers[len(l.containers)-1] == '{'
}

// Tokenize scans the entire input and returns the resulting Token
// stream, or the first error encountered.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		if !l.skipWhitespace() {
			break
		}
		if l.pos >= len(l.input) {
			break
		}
		if err := l.scanOne(); err != nil {
			return nil, err
		}
	}
	return l.tokens, nil
}

// skipWhitespace advances past inter-token whitespace, returning false
// only if there is nothing left worth looking at (redundant with the
// pos check in Tokenize, kept for clarity at call sites).
func (l *Lexer) skipWhitespace() bool {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r', '\n', '\v', '\f', '\b', '/', '\\':
			l.pos++
		default:
			return true
		}
	}
	return false
}

func (l *Lexer) emit(t Token) {
	l.tokens = append(l.tokens, t)
}

func (l *Lexer) scanOne() error {
	start := l.pos
	c := l.input[l.pos]

	switch c {
	case '{':
		l.pos++
		l.containers = append(l.containers, '{')
		l.afterOpenOrComma = true
		l.emit(Token{Kind: TokLBrace, Pos: start})
		return nil
	case '[':
		l.pos++
		l.containers = append(l.containers, '[')
		l.afterOpenOrComma = true
		l.emit(Token{Kind: TokLBracket, Pos: start})
		return nil
	case '}':
		l.pos++
		if len(l.containers) > 0 {
			l.containers = l.containers[:len(l.containers)-1]
		}
		l.afterOpenOrComma = false
		l.emit(Token{Kind: TokRBrace, Pos: start})
		return nil
	case ']':
		l.pos++
		if len(l.containers) > 0 {
			l.containers = l.containers[:len(l.containers)-1]
		}
		l.afterOpenOrComma = false
		l.emit(Token{Kind: TokRBracket, Pos: start})
		return nil
	case ':':
		l.pos++
		l.emit(Token{Kind: TokColon, Pos: start})
		return nil
	case ',':
		l.pos++
		l.afterOpenOrComma = true
		l.emit(Token{Kind: TokComma, Pos: start})
		return nil
	case '"':
		s, err := l.scanString()
		if err != nil {
			return err
		}
		isKey := l.inObject() && l.afterOpenOrComma
		l.afterOpenOrComma = false
		if isKey {
			l.emit(Token{Kind: TokKey, Pos: start, Str: s})
		} else {
			l.emit(Token{Kind: TokStr, Pos: start, Str: s})
		}
		return nil
	case 't', 'f', 'n':
		l.afterOpenOrComma = false
		return l.scanLiteral(start)
	default:
		if c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9') {
			l.afterOpenOrComma = false
			return l.scanNumber(start)
		}
		return newErrf(ErrBadLiteral, start, "unexpected character %q", c)
	}
}

func (l *Lexer) scanLiteral(start int) error {
	match := func(lit string, kind TokenKind) (bool, error) {
		if !strings.HasPrefix(l.input[l.pos:], lit) {
			return false, nil
		}
		l.pos += len(lit)
		if kind == TokBool {
			l.emit(Token{Kind: TokBool, Pos: start, Bool: lit == "true"})
		} else {
			l.emit(Token{Kind: TokNull, Pos: start})
		}
		return true, nil
	}
	if ok, err := match("true", TokBool); ok || err != nil {
		return err
	}
	if ok, err := match("false", TokBool); ok || err != nil {
		return err
	}
	if ok, err := match("null", TokNull); ok || err != nil {
		return err
	}
	return newErrf(ErrBadLiteral, start, "expected true, false or null")
}

func (l *Lexer) scanString() (string, error) {
	start := l.pos
	l.pos++ // consume opening quote
	var sb strings.Builder
	for {
		if l.pos >= len(l.input) {
			return "", newErrf(ErrUnexpectedEOF, start, "unterminated string")
		}
		c := l.input[l.pos]
		if c == '"' {
			l.pos++
			return sb.String(), nil
		}
		if c == '\\' {
			if err := l.scanEscape(&sb, start); err != nil {
				return "", err
			}
			continue
		}
		sb.WriteByte(c)
		l.pos++
	}
}

func (l *Lexer) scanEscape(sb *strings.Builder, strStart int) error {
	escStart := l.pos
	l.pos++ // consume backslash
	if l.pos >= len(l.input) {
		return newErrf(ErrUnexpectedEOF, strStart, "unterminated escape")
	}
	c := l.input[l.pos]
	switch c {
	case '"':
		sb.WriteByte('"')
		l.pos++
	case '\\':
		sb.WriteByte('\\')
		l.pos++
	case '/':
		sb.WriteByte('/')
		l.pos++
	case 'b':
		sb.WriteByte('\b')
		l.pos++
	case 'f':
		sb.WriteByte('\f')
		l.pos++
	case 'n':
		sb.WriteByte('\n')
		l.pos++
	case 'r':
		sb.WriteByte('\r')
		l.pos++
	case 't':
		sb.WriteByte('\t')
		l.pos++
	case 'v':
		sb.WriteByte('\v')
		l.pos++
	case 'u':
		l.pos++
		cp, err := l.scanHex4(escStart)
		if err != nil {
			return err
		}
		if cp >= 0xD800 && cp <= 0xDBFF {
			// possible surrogate pair
			if l.pos+1 < len(l.input) && l.input[l.pos] == '\\' && l.input[l.pos+1] == 'u' {
				save := l.pos
				l.pos += 2
				low, err := l.scanHex4(escStart)
				if err != nil {
					l.pos = save
					sb.WriteRune(rune(cp))
					return nil
				}
				if low >= 0xDC00 && low <= 0xDFFF {
					combined := 0x10000 + (cp-0xD800)*0x400 + (low - 0xDC00)
					sb.WriteRune(rune(combined))
					return nil
				}
				l.pos = save
			}
		}
		sb.WriteRune(rune(cp))
	default:
		return newErrf(ErrBadEscape, escStart, "invalid escape \\%c", c)
	}
	return nil
}

func (l *Lexer) scanHex4(escStart int) (uint32, error) {
	if l.pos+4 > len(l.input) {
		return 0, newErrf(ErrUnexpectedEOF, escStart, "truncated \\u escape")
	}
	hex := l.input[l.pos : l.pos+4]
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, newErrf(ErrBadUnicode, escStart, "invalid \\u escape %q", hex)
	}
	l.pos += 4
	return uint32(v), nil
}

// scanNumber reads a run of number characters and classifies it as
// double or as the narrowest fitting signed/unsigned integer width.
func (l *Lexer) scanNumber(start int) error {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == ',' || isWhitespaceOrDelim(c) {
			break
		}
		l.pos++
	}
	lit := l.input[start:l.pos]
	if lit == "" {
		return newErrf(ErrBadNumber, start, "empty number literal")
	}

	if strings.ContainsAny(lit, ".eE") {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return newErrf(ErrBadNumber, start, "invalid number %q", lit)
		}
		l.emit(Token{Kind: TokDouble, Pos: start, Double: f})
		return nil
	}

	if strings.HasPrefix(lit, "-") {
		n, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return newErrf(ErrBadNumber, start, "invalid integer %q", lit)
		}
		if n >= int64(minInt32) && n <= int64(maxInt32) {
			l.emit(Token{Kind: TokInt32, Pos: start, Signed: n})
		} else {
			l.emit(Token{Kind: TokInt64, Pos: start, Signed: n})
		}
		return nil
	}

	n, err := strconv.ParseUint(lit, 10, 64)
	if err != nil {
		return newErrf(ErrBadNumber, start, "invalid integer %q", lit)
	}
	if n <= uint64(maxUint32) {
		l.emit(Token{Kind: TokUInt32, Pos: start, Unsigned: n})
	} else {
		l.emit(Token{Kind: TokUInt64, Pos: start, Unsigned: n})
	}
	return nil
}

const (
	minInt32  = -2147483648
	maxInt32  = 2147483647
	maxUint32 = 4294967295
)

func isWhitespaceOrDelim(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f', '\b', '/', '\\', '{', '}', '[', ']', ':':
		return true
	default:
		return false
	}
}

// decodeRune decodes the UTF-8 code point starting at byte i of s. The
// Text Writer's outgoing escaping (writeQuotedString) uses it.
func decodeRune(s string, i int) (rune, int) {
	return utf8.DecodeRuneInString(s[i:])
}
