package lexer

import (
	"vlisp/internal/diag"
	"vlisp/internal/source"
)

// Options configures a Lexer. A nil Reporter silently discards
// diagnostics; the lexer still stops at the first defect.
type Options struct {
	Reporter diag.Reporter
}

// errLex reports a lexical defect and puts the lexer into its terminal
// state: every later Next returns EOF.
func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string, fixes ...diag.Fix) {
	lx.failed = true
	if lx.opts.Reporter == nil {
		return
	}
	b := diag.ReportError(lx.opts.Reporter, code, sp, msg)
	for _, fix := range fixes {
		b.WithFixSuggestion(fix)
	}
	b.Emit()
}
