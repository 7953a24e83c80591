package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vlisp/internal/source"
	"vlisp/internal/token"
)

// tokenTag renders the classic bracket tag for one token: [LP], [RP],
// [NAME x], [STRING "x"], [I32 42], [F32 3.5].
func tokenTag(file *source.File, tok token.Token) string {
	switch tok.Kind {
	case token.LParen:
		return "[LP]"
	case token.RParen:
		return "[RP]"
	case token.Name:
		return "[NAME " + tok.Text(file) + "]"
	case token.String:
		return "[STRING \"" + tok.Text(file) + "\"]"
	case token.Int32:
		return "[I32 " + strconv.FormatInt(int64(tok.Int32), 10) + "]"
	case token.Float32:
		return "[F32 " + strconv.FormatFloat(float64(tok.Float32), 'g', -1, 32) + "]"
	default:
		return "[" + strings.ToUpper(tok.Kind.String()) + "]"
	}
}

// TokensClassic writes the whole sequence as bracket tags joined by
// single spaces, one line.
func TokensClassic(w io.Writer, file *source.File, tokens []token.Token) error {
	tags := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tags = append(tags, tokenTag(file, tok))
	}
	_, err := fmt.Fprintln(w, strings.Join(tags, " "))
	return err
}

// TokensPretty writes an aligned human-readable token table.
func TokensPretty(w io.Writer, file *source.File, tokens []token.Token, opts TokenOpts) error {
	for i, tok := range tokens {
		fmt.Fprintf(w, "%3d: %-8s", i+1, tok.Kind.String())
		if tok.IsAtom() {
			fmt.Fprintf(w, " %q", tok.Text(file))
		}
		if opts.Offsets {
			fmt.Fprintf(w, " at %d-%d", tok.Span.Start, tok.Span.End)
		} else {
			start := file.LineCol(tok.Span.Start)
			end := file.LineCol(tok.Span.End)
			fmt.Fprintf(w, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// TokenOutput is one token in JSON form. Numeric tokens carry their
// decoded value next to the source text.
type TokenOutput struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text,omitempty"`
	Value any         `json:"value,omitempty"`
	Span  source.Span `json:"span"`
}

// TokensJSON writes the sequence as an indented JSON array.
func TokensJSON(w io.Writer, file *source.File, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind: tok.Kind.String(),
			Span: tok.Span,
		}
		if tok.IsAtom() {
			out.Text = tok.Text(file)
		}
		switch tok.Kind {
		case token.Int32:
			out.Value = tok.Int32
		case token.Float32:
			out.Value = tok.Float32
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
