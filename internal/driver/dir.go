package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"vlisp/internal/ast"
	"vlisp/internal/diag"
	"vlisp/internal/observ"
	"vlisp/internal/project"
	"vlisp/internal/source"
	"vlisp/internal/token"
	"vlisp/internal/trace"
)

// TokenizeDirResult is one walked file's scan outcome. Slices returned by
// TokenizeDir follow sorted path order regardless of completion order.
type TokenizeDirResult struct {
	Path   string
	File   *source.File
	Tokens []token.Token
	Bag    *diag.Bag
}

// ParseDirResult is one walked file's full reader outcome.
type ParseDirResult struct {
	Path   string
	File   *source.File
	Tokens []token.Token
	Tree   *ast.Tree
	Bag    *diag.Bag
}

// TokenizeDir scans every .vl file under root in parallel.
func TokenizeDir(ctx context.Context, fs *source.FileSet, root string, opts Options) ([]TokenizeDirResult, error) {
	files, err := project.ListSourceFiles(root)
	if err != nil {
		return nil, err
	}
	results := make([]TokenizeDirResult, len(files))
	err = walkFiles(ctx, fs, files, "tokenize-dir", opts,
		func(ctx context.Context, i int, path string, file *source.File, bag *diag.Bag, fileOpts Options) {
			if file == nil {
				results[i] = TokenizeDirResult{Path: path, Bag: bag}
				return
			}
			r := tokenizeFile(ctx, file, bag, fileOpts)
			results[i] = TokenizeDirResult{Path: path, File: file, Tokens: r.Tokens, Bag: bag}
		})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ParseDir runs the full reader over every .vl file under root in parallel.
func ParseDir(ctx context.Context, fs *source.FileSet, root string, opts Options) ([]ParseDirResult, error) {
	files, err := project.ListSourceFiles(root)
	if err != nil {
		return nil, err
	}
	return ParseFiles(ctx, fs, files, opts)
}

// ParseFiles runs the full reader over an explicit file list in parallel.
// Results line up with the input order.
func ParseFiles(ctx context.Context, fs *source.FileSet, files []string, opts Options) ([]ParseDirResult, error) {
	results := make([]ParseDirResult, len(files))
	err := walkFiles(ctx, fs, files, "parse-dir", opts,
		func(ctx context.Context, i int, path string, file *source.File, bag *diag.Bag, fileOpts Options) {
			if file == nil {
				results[i] = ParseDirResult{Path: path, Bag: bag}
				return
			}
			r := parseFile(ctx, file, bag, fileOpts)
			results[i] = ParseDirResult{Path: path, File: file, Tokens: r.Tokens, Tree: r.Tree, Bag: bag}
		})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// walkFiles preloads every path into fs, then fans per-file work out
// across an errgroup. FileSet.Load is not goroutine-safe, so loading
// stays sequential and workers only read. Result slots are addressed by
// index, so workers never contend. Each worker records into its own
// timer; the timers are merged into opts.Timer in path order once the
// group settles.
func walkFiles(ctx context.Context, fs *source.FileSet, files []string, name string, opts Options,
	work func(ctx context.Context, i int, path string, file *source.File, bag *diag.Bag, fileOpts Options),
) error {
	if len(files) == 0 {
		return nil
	}
	endWalk := trace.Begin(ctx, trace.ScopeDriver, name, "")
	defer endWalk(0, 0, fmt.Sprintf("%d files", len(files)))

	loadStart := time.Now()
	loaded := make([]*source.File, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		id, err := fs.Load(path)
		if err != nil {
			loadErrs[i] = err
			continue
		}
		loaded[i] = fs.Get(id)
	}
	recordPhase(opts.Timer, "load", time.Since(loadStart), "")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	timers := make([]*observ.Timer, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			bag := diag.NewBag(opts.maxDiagnostics())
			fileOpts := opts
			fileOpts.Timer = nil
			if opts.Timer != nil {
				timers[i] = observ.NewTimer()
				fileOpts.Timer = timers[i]
			}
			if loadErrs[i] != nil {
				failLoad(path, loadErrs[i], bag, fileOpts, 0)
				work(gctx, i, path, nil, bag, fileOpts)
				return nil
			}
			work(gctx, i, path, loaded[i], bag, fileOpts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if opts.Timer != nil {
		for _, tm := range timers {
			opts.Timer.Merge(tm)
		}
	}
	return nil
}
