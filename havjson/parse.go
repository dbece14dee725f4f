package havjson

// FormatKind selects which on-the-wire format Parse/ParseFile/WriteFile
// operate on.
type FormatKind uint8

const (
	KindText FormatKind = iota
	KindBin
)

// ParseOptions configures Parse. The zero value is the default
// (strict, no extensions).
type ParseOptions struct{}

// Parse decodes bytes as either TEXT or BIN, per kind, and returns the
// resulting Value tree.
func Parse(data []byte, kind FormatKind) (*Value, error) {
	return ParseWithOptions(data, kind, ParseOptions{})
}

// ParseWithOptions is Parse with explicit options.
func ParseWithOptions(data []byte, kind FormatKind, _ ParseOptions) (*Value, error) {
	var text string
	switch kind {
	case KindBin:
		t, err := DecodeBinToText(data)
		if err != nil {
			return nil, err
		}
		text = t
	default:
		text = string(data)
	}

	toks, err := NewLexer(text).Tokenize()
	if err != nil {
		return nil, err
	}
	return Build(toks)
}

// ToBinary serializes v (which must have an Object root) to BIN bytes.
func ToBinary(v *Value) ([]byte, error) {
	return EncodeBin(v)
}
