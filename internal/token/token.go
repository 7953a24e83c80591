package token

import (
	"vlisp/internal/source"
)

// Token represents a single source token. Tokens do not own text: the span
// slices the owning file's content, with delimiters excluded for String
// tokens. Exactly one of the numeric fields is meaningful, and only for the
// matching numeric kind.
type Token struct {
	Kind    Kind
	Span    source.Span
	Int32   int32
	Float32 float32
}

// IsAtom reports whether the token is a leaf form (name or literal), as
// opposed to a parenthesis delimiter.
func (t Token) IsAtom() bool {
	switch t.Kind {
	case Name, String, Int32, Float32:
		return true
	default:
		return false
	}
}

// IsParen reports whether the token is a parenthesis delimiter.
func (t Token) IsParen() bool {
	return t.Kind == LParen || t.Kind == RParen
}

// IsEOF reports whether the token marks the end of input.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// Text returns the token's source text from its owning file. Parenthesis
// tokens yield their single delimiter character, String tokens the content
// between the quotes.
func (t Token) Text(f *source.File) string {
	return f.Text(t.Span)
}
