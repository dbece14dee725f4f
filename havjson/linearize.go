package havjson

// Linearize walks v depth-first and emits the Token sequence a
// well-formed TEXT serialization of v would produce: the inverse of
// Builder. Object entries are emitted in their stored (lexicographic)
// order.
func Linearize(v *Value) []Token {
	var toks []Token
	linearizeInto(&toks, v)
	return toks
}

func linearizeInto(toks *[]Token, v *Value) {
	switch v.Kind() {
	case KindNull:
		*toks = append(*toks, Token{Kind: TokNull})
	case KindBool:
		b, _ := v.AsBool()
		*toks = append(*toks, Token{Kind: TokBool, Bool: b})
	case KindInt32:
		n, _ := v.AsInt64()
		*toks = append(*toks, Token{Kind: TokInt32, Signed: n})
	case KindIntWide:
		n, _ := v.AsInt64()
		*toks = append(*toks, Token{Kind: TokIntWide, Signed: n})
	case KindInt64:
		n, _ := v.AsInt64()
		*toks = append(*toks, Token{Kind: TokInt64, Signed: n})
	case KindUInt32:
		n, _ := v.AsUint64()
		*toks = append(*toks, Token{Kind: TokUInt32, Unsigned: n})
	case KindUIntWide:
		n, _ := v.AsUint64()
		*toks = append(*toks, Token{Kind: TokUIntWide, Unsigned: n})
	case KindUInt64:
		n, _ := v.AsUint64()
		*toks = append(*toks, Token{Kind: TokUInt64, Unsigned: n})
	case KindDouble:
		f, _ := v.AsDouble()
		*toks = append(*toks, Token{Kind: TokDouble, Double: f})
	case KindString:
		s, _ := v.AsString()
		*toks = append(*toks, Token{Kind: TokStr, Str: s})
	case KindArray:
		elems, _ := v.AsArray()
		*toks = append(*toks, Token{Kind: TokLBracket})
		for i, e := range elems {
			if i > 0 {
				*toks = append(*toks, Token{Kind: TokComma})
			}
			linearizeInto(toks, e)
		}
		*toks = append(*toks, Token{Kind: TokRBracket})
	case KindObject:
		entries, _ := v.AsObject()
		*toks = append(*toks, Token{Kind: TokLBrace})
		for i, e := range entries {
			if i > 0 {
				*toks = append(*toks, Token{Kind: TokComma})
			}
			*toks = append(*toks, Token{Kind: TokKey, Str: e.Key})
			*toks = append(*toks, Token{Kind: TokColon})
			linearizeInto(toks, e.Value)
		}
		*toks = append(*toks, Token{Kind: TokRBrace})
	}
}
