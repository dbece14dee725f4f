package havjson

// builder container-frame states, per the spec's lexer/builder state
// machine (§4.7).
type frameState uint8

const (
	stateObjExpectKey frameState = iota
	stateObjExpectColon
	stateObjExpectValue
	stateObjExpectCommaOrEnd
	stateArrExpectValueOrEnd
	stateArrExpectCommaOrEnd
)

type frame struct {
	isObject bool
	state    frameState
	pendKey  string
	entries  []Entry
	elems    []*Value
}

// Builder consumes a Token stream in order and assembles a Value tree,
// validating structural well-formedness as it goes.
type Builder struct {
	tokens []Token
	pos    int
	stack  []*frame
}

// NewBuilder creates a Builder over tokens.
func NewBuilder(tokens []Token) *Builder {
	return &Builder{tokens: tokens}
}

// Build consumes the entire token stream and returns the resulting
// root Value.
func Build(tokens []Token) (*Value, error) {
	return NewBuilder(tokens).Build()
}

func (b *Builder) top() *frame {
	return b.stack[len(b.stack)-1]
}

func (b *Builder) peek() (Token, bool) {
	if b.pos >= len(b.tokens) {
		return Token{}, false
	}
	return b.tokens[b.pos], true
}

func (b *Builder) next() (Token, bool) {
	t, ok := b.peek()
	if ok {
		b.pos++
	}
	return t, ok
}

// Build runs the full parse.
func (b *Builder) Build() (*Value, error) {
	first, ok := b.next()
	if !ok {
		return nil, newErr(ErrUnexpectedEOF, "empty input", 0)
	}

	var root *Value
	switch first.Kind {
	case TokLBrace:
		b.stack = append(b.stack, &frame{isObject: true, state: stateObjExpectKey})
	case TokLBracket:
		b.stack = append(b.stack, &frame{isObject: false, state: stateArrExpectValueOrEnd})
	default:
		return nil, newErrf(ErrStructuralError, first.Pos, "root must begin with { or [")
	}

	for len(b.stack) > 0 {
		closed, err := b.step()
		if err != nil {
			return nil, err
		}
		if closed != nil {
			root = closed
		}
	}

	if b.pos != len(b.tokens) {
		extra, _ := b.peek()
		return nil, newErrf(ErrStructuralError, extra.Pos, "unexpected trailing token after root value")
	}
	return root, nil
}

// step consumes exactly one token's worth of grammar action. It
// returns a non-nil Value only when that action closes the root
// frame.
func (b *Builder) step() (*Value, error) {
	f := b.top()
	if f.isObject {
		return b.stepObject(f)
	}
	return b.stepArray(f)
}

func (b *Builder) stepObject(f *frame) (*Value, error) {
	switch f.state {
	case stateObjExpectKey:
		tok, ok := b.next()
		if !ok {
			return nil, newErr(ErrUnexpectedEOF, "expected object key or }", 0)
		}
		if tok.Kind == TokRBrace {
			return b.closeContainer(Object(f.entries...))
		}
		if tok.Kind != TokKey {
			return nil, newErrf(ErrStructuralError, tok.Pos, "expected object key")
		}
		f.pendKey = tok.Str
		f.state = stateObjExpectColon
		return nil, nil

	case stateObjExpectColon:
		tok, ok := b.next()
		if !ok || tok.Kind != TokColon {
			pos := 0
			if ok {
				pos = tok.Pos
			}
			return nil, newErrf(ErrStructuralError, pos, "expected ':'")
		}
		f.state = stateObjExpectValue
		return nil, nil

	case stateObjExpectValue:
		return b.consumeValue(func(v *Value) {
			f.entries = append(f.entries, Entry{Key: f.pendKey, Value: v})
			f.state = stateObjExpectCommaOrEnd
		})

	case stateObjExpectCommaOrEnd:
		tok, ok := b.next()
		if !ok {
			return nil, newErr(ErrUnexpectedEOF, "expected ',' or '}'", 0)
		}
		switch tok.Kind {
		case TokComma:
			f.state = stateObjExpectKey
			return nil, nil
		case TokRBrace:
			return b.closeContainer(Object(f.entries...))
		default:
			return nil, newErrf(ErrStructuralError, tok.Pos, "expected ',' or '}'")
		}
	}
	panic("unreachable object state")
}

func (b *Builder) stepArray(f *frame) (*Value, error) {
	switch f.state {
	case stateArrExpectValueOrEnd:
		tok, ok := b.peek()
		if ok && tok.Kind == TokRBracket {
			b.pos++
			return b.closeContainer(Array(f.elems...))
		}
		return b.consumeValue(func(v *Value) {
			f.elems = append(f.elems, v)
			f.state = stateArrExpectCommaOrEnd
		})

	case stateArrExpectCommaOrEnd:
		tok, ok := b.next()
		if !ok {
			return nil, newErr(ErrUnexpectedEOF, "expected ',' or ']'", 0)
		}
		switch tok.Kind {
		case TokComma:
			f.state = stateArrExpectValueOrEnd
			return nil, nil
		case TokRBracket:
			return b.closeContainer(Array(f.elems...))
		default:
			return nil, newErrf(ErrStructuralError, tok.Pos, "expected ',' or ']'")
		}
	}
	panic("unreachable array state")
}

// closeContainer pops the current frame. If the stack becomes empty,
// this was the root: return it. Otherwise attach it to the new top's
// pending value slot.
func (b *Builder) closeContainer(v *Value) (*Value, error) {
	b.stack = b.stack[:len(b.stack)-1]
	if len(b.stack) == 0 {
		return v, nil
	}
	parent := b.top()
	if parent.isObject {
		parent.entries = append(parent.entries, Entry{Key: parent.pendKey, Value: v})
		parent.state = stateObjExpectCommaOrEnd
	} else {
		parent.elems = append(parent.elems, v)
		parent.state = stateArrExpectCommaOrEnd
	}
	return nil, nil
}

// consumeValue handles a value-position token: either a literal
// (converted to a Value and reported via onLiteral), or an opener
// that pushes a new frame.
func (b *Builder) consumeValue(onLiteral func(*Value)) (*Value, error) {
	tok, ok := b.next()
	if !ok {
		return nil, newErr(ErrUnexpectedEOF, "expected a value", 0)
	}
	switch tok.Kind {
	case TokLBrace:
		b.stack = append(b.stack, &frame{isObject: true, state: stateObjExpectKey})
		return nil, nil
	case TokLBracket:
		b.stack = append(b.stack, &frame{isObject: false, state: stateArrExpectValueOrEnd})
		return nil, nil
	case TokNull:
		onLiteral(Null())
	case TokBool:
		onLiteral(Bool(tok.Bool))
	case TokInt32:
		onLiteral(Int32(int32(tok.Signed)))
	case TokIntWide:
		onLiteral(IntWide(tok.Signed))
	case TokInt64:
		onLiteral(Int64(tok.Signed))
	case TokUInt32:
		onLiteral(UInt32(uint32(tok.Unsigned)))
	case TokUIntWide:
		onLiteral(UIntWide(tok.Unsigned))
	case TokUInt64:
		onLiteral(UInt64(tok.Unsigned))
	case TokDouble:
		onLiteral(Double(tok.Double))
	case TokStr:
		onLiteral(String(tok.Str))
	default:
		return nil, newErrf(ErrStructuralError, tok.Pos, "unexpected token in value position")
	}
	return nil, nil
}
