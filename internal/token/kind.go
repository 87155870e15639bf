package token

import "fmt"

// Kind represents the category of a token.
type Kind uint8

const (
	// Unknown is an unrecognized character; the lexer reports it and moves on.
	Unknown Kind = iota
	// EOF marks the end of a token or output stream.
	EOF

	Number        // 12, 1.5e-3f, 3r
	Atom          // synthetic count literal emitted by the engine
	Word          // identifier
	Infinity      // ∞
	OpQuote       // (+), (< >), ⊕
	String        // "a ""b"""
	Character     // 'x
	PatternString // r`...`

	Operator      // binary operator
	UnaryOperator // operator reclassified as prefix

	ParenOpen  // (
	ParenClose // )
	RangeOpen  // [ or ]
	RangeClose // [ or ]
	// AssignRange is a RangeOpen token rewritten once its close is seen.
	AssignRange

	BlockOpen  // {
	BlockClose // }
	BlockSplit // :

	Comma     // ,
	Separator // ;

	Blank   // whitespace run
	Comment // # ... or ### ... ###

	// CallFunc is a synthetic call marker; Count holds the argument count.
	CallFunc
	// MakeBlock heads a block literal node in the AST.
	MakeBlock

	kindCount
)

var kindNames = [...]string{
	Unknown:       "unknown",
	EOF:           "eof",
	Number:        "number",
	Atom:          "atom",
	Word:          "word",
	Infinity:      "infinity",
	OpQuote:       "op_quote",
	String:        "string",
	Character:     "character",
	PatternString: "pattern_string",
	Operator:      "operator",
	UnaryOperator: "unary_operator",
	ParenOpen:     "paren_open",
	ParenClose:    "paren_close",
	RangeOpen:     "range_open",
	RangeClose:    "range_close",
	AssignRange:   "assign_range",
	BlockOpen:     "block_open",
	BlockClose:    "block_close",
	BlockSplit:    "block_split",
	Comma:         "comma",
	Separator:     "separator",
	Blank:         "blank",
	Comment:       "comment",
	CallFunc:      "call_func",
	MakeBlock:     "make_block",
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Unknown; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalText encodes the kind by name so JSON/YAML output stays readable.
func (k Kind) MarshalText() ([]byte, error) {
	if k >= kindCount {
		return nil, fmt.Errorf("token: invalid kind %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText is the inverse of MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("token: unknown kind %q", text)
	}
	*k = kind
	return nil
}

// ParseKind looks a kind up by its snake_case name.
func ParseKind(name string) (Kind, bool) {
	for k := Unknown; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return Unknown, false
}

// IsData reports literal-like kinds that stand for a value by themselves.
func (k Kind) IsData() bool {
	switch k {
	case Number, Atom, Word, Infinity, OpQuote, String, Character, PatternString:
		return true
	case Unknown, EOF, Operator, UnaryOperator,
		ParenOpen, ParenClose, RangeOpen, RangeClose, AssignRange,
		BlockOpen, BlockClose, BlockSplit, Comma, Separator,
		Blank, Comment, CallFunc, MakeBlock:
		return false
	default:
		panic(fmt.Sprintf("token: IsData: unhandled kind %v", k))
	}
}

// IsDataLike reports kinds that can be the left operand of an infix operator
// or the callee of a following '(': data plus closing delimiters.
func (k Kind) IsDataLike() bool {
	switch k {
	case ParenClose, RangeClose, BlockClose:
		return true
	default:
		return k.IsData()
	}
}

// IsOperator reports binary and unary operators.
func (k Kind) IsOperator() bool {
	return k == Operator || k == UnaryOperator
}

// IsSignificant is false for trivia that the engine ignores.
func (k Kind) IsSignificant() bool {
	return k != Blank && k != Comment && k != EOF
}

// IsOpenMarker reports grouping openers that bound operator flushes.
func (k Kind) IsOpenMarker() bool {
	return k == ParenOpen || k == RangeOpen || k == BlockOpen
}

// IsCloseMarker reports grouping closers.
func (k Kind) IsCloseMarker() bool {
	return k == ParenClose || k == RangeClose || k == BlockClose
}
