package lexer

import (
	"fmt"

	"vlisp/internal/diag"
	"vlisp/internal/source"
	"vlisp/internal/token"
)

// scanString is entered with the cursor on the opening quote. The
// token span covers the content only, quotes excluded. There are no
// escape sequences: every byte up to the next quote belongs to the
// string, newlines included.
func (lx *Lexer) scanString() token.Token {
	open := lx.cursor.Mark()
	lx.cursor.Bump()

	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '"' {
			sp := lx.cursor.SpanFrom(start)
			lx.cursor.Bump()
			return token.Token{Kind: token.String, Span: sp}
		}
		lx.cursor.Bump()
	}

	openSpan := source.Span{File: lx.file.ID, Start: uint32(open), End: uint32(open) + 1}
	eof := lx.emptySpan()
	lx.errLex(diag.LexUnterminatedString, openSpan,
		fmt.Sprintf("unterminated string literal %q", lx.file.Text(lx.cursor.SpanFrom(open))),
		diag.Fix{
			ID:            "insert-closing-quote",
			Title:         "insert closing '\"' at end of file",
			Applicability: diag.ApplicabilityManualReview,
			Edits:         []diag.FixEdit{{Span: eof, NewText: "\""}},
		})
	return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(open)}
}
