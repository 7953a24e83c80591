package driver

import (
	"context"
	"time"

	"vlisp/internal/diag"
	"vlisp/internal/source"
	"vlisp/internal/trace"
)

// Tokenize loads path into fs and scans it.
func Tokenize(ctx context.Context, fs *source.FileSet, path string, opts Options) (*TokenizeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bag := diag.NewBag(opts.maxDiagnostics())
	file, ok := loadFile(fs, path, bag, opts)
	if !ok {
		return &TokenizeResult{Bag: bag}, nil
	}
	return tokenizeFile(ctx, file, bag, opts), nil
}

// TokenizeSource scans an in-memory buffer registered in fs under name.
// Virtual inputs cannot fail to load, so every outcome is in the result.
func TokenizeSource(ctx context.Context, fs *source.FileSet, name string, content []byte, opts Options) *TokenizeResult {
	file := fs.Get(fs.AddVirtual(name, content))
	bag := diag.NewBag(opts.maxDiagnostics())
	return tokenizeFile(ctx, file, bag, opts)
}

// tokenizeFile scans one loaded file. The cache is consulted first; a hit
// skips the scanner entirely. Only clean scans are cached, so a hit never
// has diagnostics to replay.
func tokenizeFile(ctx context.Context, file *source.File, bag *diag.Bag, opts Options) *TokenizeResult {
	end := trace.Begin(ctx, trace.ScopePass, "scan", file.Path)
	observePhase(opts.Observer, PhaseEvent{Path: file.Path, Phase: "scan", Status: PhaseStart})
	start := time.Now()

	if toks, ok := opts.Cache.Get(file); ok {
		dur := time.Since(start)
		recordPhase(opts.Timer, "scan", dur, "cache hit")
		observePhase(opts.Observer, PhaseEvent{Path: file.Path, Phase: "scan", Status: PhaseEnd, Elapsed: dur})
		end(len(toks), 0, "cache hit")
		return &TokenizeResult{File: file, Tokens: toks, Bag: bag}
	}

	toks := scan(file, bag)
	dur := time.Since(start)
	recordPhase(opts.Timer, "scan", dur, "")
	if bag.HasErrors() {
		observePhase(opts.Observer, PhaseEvent{Path: file.Path, Phase: "scan", Status: PhaseEnd, Elapsed: dur, Failed: true})
		end(0, 0, "defect")
		return &TokenizeResult{File: file, Bag: bag}
	}

	if err := opts.Cache.Put(file, toks); err != nil {
		trace.Point(ctx, trace.ScopeFile, "cache-write-failed", file.Path, err.Error())
	}
	observePhase(opts.Observer, PhaseEvent{Path: file.Path, Phase: "scan", Status: PhaseEnd, Elapsed: dur})
	end(len(toks), 0, "")
	return &TokenizeResult{File: file, Tokens: toks, Bag: bag}
}
