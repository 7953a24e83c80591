package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Name represents a bare atom token.
	Name
	// String represents a quoted string literal token.
	String
	// Int32 represents an integer literal with the i32 suffix.
	Int32
	// Float32 represents a float literal with the f32 suffix.
	Float32

	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
)

// String returns a stable lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "eof"
	case Name:
		return "name"
	case String:
		return "string"
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	case LParen:
		return "lparen"
	case RParen:
		return "rparen"
	default:
		return "unknown"
	}
}
