package havjson

// TokenKind identifies a lexeme produced by the Lexer and consumed by
// the Builder, Linearizer, and Text Writer.
type TokenKind uint8

const (
	TokLBrace   TokenKind = iota // {
	TokRBrace                    // }
	TokLBracket                  // [
	TokRBracket                  // ]
	TokColon                     // :
	TokComma                     // ,
	TokKey                       // object-key string (name position)
	TokStr                       // value-position string
	TokNull
	TokBool
	TokInt32
	TokIntWide
	TokInt64
	TokUInt32
	TokUIntWide
	TokUInt64
	TokDouble
)

// Token is one lexeme: a tag plus whichever payload field applies to
// that tag.
type Token struct {
	Kind   TokenKind
	Pos    int // byte offset in the source buffer where the token began
	Str    string
	Bool   bool
	Signed int64
	Unsigned uint64
	Double float64
}
