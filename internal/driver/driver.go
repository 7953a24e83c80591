// Package driver wires the reader together: it loads sources, scans them
// into materialized token sequences, builds syntax trees, and collects
// diagnostics into per-file bags. Commands talk to the driver; the driver
// talks to the phases.
package driver

import (
	"fmt"
	"time"

	"vlisp/internal/ast"
	"vlisp/internal/diag"
	"vlisp/internal/lexer"
	"vlisp/internal/observ"
	"vlisp/internal/source"
	"vlisp/internal/token"
)

// DefaultMaxDiagnostics bounds a file's diagnostic bag when the caller
// does not pick a limit.
const DefaultMaxDiagnostics = 64

// Options configures a driver run. The zero value scans without a cache
// or a timer and with the default diagnostic limit.
type Options struct {
	// MaxDiagnostics caps the per-file diagnostic bag. Values <= 0 fall
	// back to DefaultMaxDiagnostics.
	MaxDiagnostics int
	// Cache holds scanned token sequences between runs. Nil disables
	// caching.
	Cache *DiskCache
	// Timer records phase durations when non-nil. The directory walks
	// keep per-file timers and merge them into this one after the walk.
	Timer *observ.Timer
	// Jobs bounds worker count in TokenizeDir and ParseDir. Values <= 0
	// mean one worker per CPU.
	Jobs int
	// Observer, when non-nil, receives per-file phase boundaries.
	Observer PhaseObserver
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// TokenizeResult carries one file's scan output. Tokens is nil whenever
// Bag holds an error: there are no partial sequences.
type TokenizeResult struct {
	File   *source.File
	Tokens []token.Token
	Bag    *diag.Bag
}

// ParseResult carries one file's full reader output. Tree is nil whenever
// Bag holds an error; Tokens survives a build defect when the scan itself
// was clean.
type ParseResult struct {
	File   *source.File
	Tokens []token.Token
	Tree   *ast.Tree
	Bag    *diag.Bag
}

// loadFile registers path in fs. Read failures become IOLoadFileError
// diagnostics rather than process failures, so one unreadable file cannot
// take down a directory walk.
func loadFile(fs *source.FileSet, path string, bag *diag.Bag, opts Options) (*source.File, bool) {
	observePhase(opts.Observer, PhaseEvent{Path: path, Phase: "load", Status: PhaseStart})
	start := time.Now()
	id, err := fs.Load(path)
	dur := time.Since(start)
	recordPhase(opts.Timer, "load", dur, "")
	if err != nil {
		failLoad(path, err, bag, opts, dur)
		return nil, false
	}
	observePhase(opts.Observer, PhaseEvent{Path: path, Phase: "load", Status: PhaseEnd, Elapsed: dur})
	return fs.Get(id), true
}

func failLoad(path string, err error, bag *diag.Bag, opts Options, dur time.Duration) {
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
		fmt.Sprintf("failed to read %q: %v", path, err)))
	observePhase(opts.Observer, PhaseEvent{Path: path, Phase: "load", Status: PhaseEnd, Elapsed: dur, Failed: true})
}

// scan drains the scanner into a materialized sequence. EOF and Invalid
// never enter it; a defect leaves its trace in the bag instead.
func scan(file *source.File, bag *diag.Bag) []token.Token {
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	var toks []token.Token
	for {
		tok := lx.Next()
		switch tok.Kind {
		case token.EOF:
			return toks
		case token.Invalid:
		default:
			toks = append(toks, tok)
		}
	}
}

func recordPhase(tm *observ.Timer, name string, dur time.Duration, note string) {
	if tm != nil {
		tm.Add(name, dur, note)
	}
}
