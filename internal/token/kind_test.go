package token_test

import (
	"testing"

	"vlisp/internal/source"
	"vlisp/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsAtom(t *testing.T) {
	atoms := []token.Kind{
		token.Name, token.String, token.Int32, token.Float32,
	}
	for _, k := range atoms {
		if !tok(k).IsAtom() {
			t.Errorf("expected %v to be an atom", k)
		}
	}

	others := []token.Kind{
		token.Invalid, token.EOF, token.LParen, token.RParen,
	}
	for _, k := range others {
		if tok(k).IsAtom() {
			t.Errorf("expected %v not to be an atom", k)
		}
	}
}

func TestIsParen(t *testing.T) {
	if !tok(token.LParen).IsParen() || !tok(token.RParen).IsParen() {
		t.Error("expected parens to be parens")
	}
	if tok(token.Name).IsParen() {
		t.Error("expected name not to be a paren")
	}
}

func TestKindString(t *testing.T) {
	cases := []struct {
		kind token.Kind
		want string
	}{
		{token.Invalid, "invalid"},
		{token.EOF, "eof"},
		{token.Name, "name"},
		{token.String, "string"},
		{token.Int32, "int32"},
		{token.Float32, "float32"},
		{token.LParen, "lparen"},
		{token.RParen, "rparen"},
		{token.Kind(200), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String(): expected %q, got %q", tc.kind, tc.want, got)
		}
	}
}

func TestTokenText(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.vl", []byte(`(foo "bar")`))
	f := fs.Get(id)

	name := token.Token{Kind: token.Name, Span: source.Span{File: id, Start: 1, End: 4}}
	if got := name.Text(f); got != "foo" {
		t.Errorf("expected name text 'foo', got %q", got)
	}

	// String spans exclude the quotes.
	str := token.Token{Kind: token.String, Span: source.Span{File: id, Start: 6, End: 9}}
	if got := str.Text(f); got != "bar" {
		t.Errorf("expected string text 'bar', got %q", got)
	}
}
