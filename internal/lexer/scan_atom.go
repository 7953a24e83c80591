package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"vlisp/internal/diag"
	"vlisp/internal/source"
	"vlisp/internal/token"
)

// scanAtom is entered with the cursor on the first byte of an atom.
// It consumes up to the next delimiter and classifies the result.
func (lx *Lexer) scanAtom() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && !isDelimiter(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.classifyAtom(lx.cursor.SpanFrom(start))
}

// classifyAtom decides between Name, Int32 and Float32. The "f32"
// suffix is checked before "i32"; a matching suffix commits the atom
// to that numeric kind, so a prefix that does not parse is a defect,
// not a name.
func (lx *Lexer) classifyAtom(sp source.Span) token.Token {
	text := lx.file.Text(sp)

	if strings.HasSuffix(text, "f32") {
		prefix := text[:len(text)-3]
		v, err := strconv.ParseFloat(prefix, 32)
		if err != nil {
			lx.errLex(diag.LexMalformedNumericSuffix, sp, numericErrMsg("f32", text, err))
			return token.Token{Kind: token.Invalid, Span: sp}
		}
		return token.Token{Kind: token.Float32, Span: sp, Float32: float32(v)}
	}

	if strings.HasSuffix(text, "i32") {
		prefix := text[:len(text)-3]
		v, err := strconv.ParseInt(prefix, 10, 32)
		if err != nil {
			lx.errLex(diag.LexMalformedNumericSuffix, sp, numericErrMsg("i32", text, err))
			return token.Token{Kind: token.Invalid, Span: sp}
		}
		return token.Token{Kind: token.Int32, Span: sp, Int32: int32(v)}
	}

	return token.Token{Kind: token.Name, Span: sp}
}

func numericErrMsg(kind, text string, err error) string {
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Sprintf("%s literal %q is out of range", kind, text)
	}
	return fmt.Sprintf("%q is not a valid %s literal", text, kind)
}
