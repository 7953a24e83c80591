package lexer

import (
	"vlisp/internal/source"
	"vlisp/internal/token"
)

// Lexer scans one file. After the first reported defect it is done:
// Next returns EOF forever.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token
	failed bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next token. After EOF (or a defect) it always
// returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.failed {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	lx.skipWhitespace()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	switch ch := lx.cursor.Peek(); ch {
	case '(':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return token.Token{Kind: token.LParen, Span: lx.cursor.SpanFrom(start)}
	case ')':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return token.Token{Kind: token.RParen, Span: lx.cursor.SpanFrom(start)}
	case '"':
		return lx.scanString()
	default:
		return lx.scanAtom()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) skipWhitespace() {
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// isSpace matches the four whitespace delimiters. Anything else,
// including other control bytes, is atom content.
func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// isDelimiter reports whether b ends a pending atom.
func isDelimiter(b byte) bool {
	return isSpace(b) || b == '(' || b == ')' || b == '"'
}
