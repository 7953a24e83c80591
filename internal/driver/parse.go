package driver

import (
	"context"
	"time"

	"vlisp/internal/ast"
	"vlisp/internal/diag"
	"vlisp/internal/parser"
	"vlisp/internal/source"
	"vlisp/internal/trace"
)

// Parse loads path and runs the full reader over it: scan, then build.
func Parse(ctx context.Context, fs *source.FileSet, path string, opts Options) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bag := diag.NewBag(opts.maxDiagnostics())
	file, ok := loadFile(fs, path, bag, opts)
	if !ok {
		return &ParseResult{Bag: bag}, nil
	}
	return parseFile(ctx, file, bag, opts), nil
}

// ParseSource runs the full reader over an in-memory buffer.
func ParseSource(ctx context.Context, fs *source.FileSet, name string, content []byte, opts Options) *ParseResult {
	file := fs.Get(fs.AddVirtual(name, content))
	bag := diag.NewBag(opts.maxDiagnostics())
	return parseFile(ctx, file, bag, opts)
}

func parseFile(ctx context.Context, file *source.File, bag *diag.Bag, opts Options) *ParseResult {
	scanned := tokenizeFile(ctx, file, bag, opts)
	if bag.HasErrors() {
		return &ParseResult{File: file, Bag: bag}
	}

	end := trace.Begin(ctx, trace.ScopePass, "build", file.Path)
	observePhase(opts.Observer, PhaseEvent{Path: file.Path, Phase: "build", Status: PhaseStart})
	start := time.Now()
	tree := parser.Build(file, scanned.Tokens, parser.Options{
		Reporter: &diag.BagReporter{Bag: bag},
		Hints:    ast.Hints{Nodes: uint(len(scanned.Tokens)) + 1},
	})
	dur := time.Since(start)
	recordPhase(opts.Timer, "build", dur, "")
	observePhase(opts.Observer, PhaseEvent{Path: file.Path, Phase: "build", Status: PhaseEnd, Elapsed: dur, Failed: tree == nil})

	if tree == nil {
		end(len(scanned.Tokens), 0, "defect")
		return &ParseResult{File: file, Tokens: scanned.Tokens, Bag: bag}
	}
	end(len(scanned.Tokens), int(tree.Len()), "")
	return &ParseResult{File: file, Tokens: scanned.Tokens, Tree: tree, Bag: bag}
}
