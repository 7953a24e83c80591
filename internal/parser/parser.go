package parser

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"vlisp/internal/ast"
	"vlisp/internal/diag"
	"vlisp/internal/source"
	"vlisp/internal/token"
)

type Options struct {
	Reporter diag.Reporter
	Hints    ast.Hints
}

// frame is one unclosed list: the node under construction plus the
// span of the paren that opened it.
type frame struct {
	id   ast.NodeID
	open source.Span
}

// Build folds a token sequence into a tree. The walk is a single loop
// over the tokens with an explicit frame stack, so input depth never
// turns into call depth.
//
// tokens must be a materialized sequence without EOF or Invalid
// entries, the way driver.Tokenize returns it. On the first structural
// defect Build reports and returns nil: there are no partial trees.
func Build(file *source.File, tokens []token.Token, opts Options) *ast.Tree {
	b := ast.NewBuilder(file.ID, opts.Hints)

	limit, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	rootSpan := source.Span{File: file.ID, Start: 0, End: limit}
	root := b.NewList(rootSpan)
	stack := []frame{{id: root, open: source.Span{File: file.ID}}}

	for _, tok := range tokens {
		switch tok.Kind {
		case token.LParen:
			id := b.NewList(tok.Span)
			stack = append(stack, frame{id: id, open: tok.Span})
		case token.RParen:
			if len(stack) == 1 {
				errStrayClose(tok, opts)
				return nil
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			b.SetSpan(top.id, top.open.Cover(tok.Span))
			b.PushChild(stack[len(stack)-1].id, top.id)
		case token.Name, token.String, token.Int32, token.Float32:
			b.PushChild(stack[len(stack)-1].id, b.NewAtom(tok))
		}
	}

	if len(stack) > 1 {
		errUnclosed(file, stack[1:], limit, opts)
		return nil
	}
	return b.Finish(root)
}

func errStrayClose(tok token.Token, opts Options) {
	if opts.Reporter == nil {
		return
	}
	diag.ReportError(opts.Reporter, diag.SynUnbalancedClose, tok.Span,
		"unmatched closing parenthesis ')'").
		WithFixSuggestion(diag.Fix{
			ID:            "delete-stray-close",
			Title:         "delete the stray ')'",
			Applicability: diag.ApplicabilitySafeWithHeuristics,
			IsPreferred:   true,
			Edits:         []diag.FixEdit{{Span: tok.Span, NewText: ""}},
		}).
		Emit()
}

func errUnclosed(file *source.File, unclosed []frame, limit uint32, opts Options) {
	if opts.Reporter == nil {
		return
	}
	msg := "unclosed parenthesis '('"
	if len(unclosed) > 1 {
		msg = fmt.Sprintf("%d unclosed parentheses", len(unclosed))
	}
	eof := source.Span{File: file.ID, Start: limit, End: limit}
	rb := diag.ReportError(opts.Reporter, diag.SynUnbalancedOpen, unclosed[0].open, msg)
	for _, fr := range unclosed[1:] {
		rb.WithNote(fr.open, "also opened here")
	}
	rb.WithFixSuggestion(diag.Fix{
		ID:            "insert-close-parens",
		Title:         fmt.Sprintf("insert %q at end of file", strings.Repeat(")", len(unclosed))),
		Applicability: diag.ApplicabilitySafeWithHeuristics,
		IsPreferred:   true,
		Edits:         []diag.FixEdit{{Span: eof, NewText: strings.Repeat(")", len(unclosed))}},
	}).Emit()
}
