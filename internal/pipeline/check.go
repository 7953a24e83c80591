package pipeline

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"vlisp/internal/ast"
	"vlisp/internal/diag"
	"vlisp/internal/driver"
	"vlisp/internal/format"
	"vlisp/internal/observ"
	"vlisp/internal/project"
	"vlisp/internal/source"
	"vlisp/internal/token"
)

// CheckRequest configures a Check run.
type CheckRequest struct {
	// Paths lists files or directories; directories expand to their .vl
	// files.
	Paths          []string
	MaxDiagnostics int
	Jobs           int
	// RoundTrip re-reads the canonical form of every clean tree and
	// compares the result against the original.
	RoundTrip bool
	Cache     *driver.DiskCache
	Progress  ProgressSink
}

// FileCheck is one file's outcome. Tree is nil when Bag holds an error;
// VerifyMsg is non-empty when round-trip verification failed.
type FileCheck struct {
	Path      string
	File      *source.File
	Tokens    []token.Token
	Tree      *ast.Tree
	Bag       *diag.Bag
	VerifyMsg string
}

// Failed reports whether the file ended with a defect.
func (fc *FileCheck) Failed() bool {
	return fc.Bag.HasErrors() || fc.VerifyMsg != ""
}

// CheckResult aggregates one run.
type CheckResult struct {
	FileSet *source.FileSet
	Files   []FileCheck
	Timer   *observ.Timer
	Timings Timings
}

// Failed counts files that ended with a defect.
func (r *CheckResult) Failed() int {
	n := 0
	for i := range r.Files {
		if r.Files[i].Failed() {
			n++
		}
	}
	return n
}

// Check expands req.Paths into source files and runs the reader over each
// in parallel: scan, build, and optionally round-trip verification.
// Events flow to req.Progress as stages move; per-file defects live in
// the per-file bags, not in the returned error.
func Check(ctx context.Context, req CheckRequest) (*CheckResult, error) {
	files, err := project.ListSources(req.Paths)
	if err != nil {
		return nil, err
	}
	emitQueued(req.Progress, files)

	fs := source.NewFileSet()
	tm := observ.NewTimer()
	results, err := driver.ParseFiles(ctx, fs, files, driver.Options{
		MaxDiagnostics: req.MaxDiagnostics,
		Cache:          req.Cache,
		Timer:          tm,
		Jobs:           req.Jobs,
		Observer:       phaseSink(req.Progress),
	})
	if err != nil {
		return nil, err
	}

	out := &CheckResult{
		FileSet: fs,
		Files:   make([]FileCheck, len(results)),
		Timer:   tm,
	}
	for i, r := range results {
		out.Files[i] = FileCheck{Path: r.Path, File: r.File, Tokens: r.Tokens, Tree: r.Tree, Bag: r.Bag}
	}

	if req.RoundTrip {
		if err := verify(ctx, req, out); err != nil {
			return nil, err
		}
	}

	doneStage := StageBuild
	if req.RoundTrip {
		doneStage = StageVerify
	}
	for i := range out.Files {
		if !out.Files[i].Failed() {
			emitFile(req.Progress, out.Files[i].Path, doneStage, StatusDone, nil, 0)
		}
	}

	for _, ph := range tm.Report().Phases {
		stage := Stage(ph.Name)
		if ph.Name == "load" {
			stage = StageScan
		}
		out.Timings.Set(stage, out.Timings.Duration(stage)+durationFromMillis(ph.DurationMS))
	}
	return out, nil
}

// verify re-reads every clean tree's canonical form in parallel. A
// mismatch marks the file failed without touching its diagnostic bag:
// round-trip breakage is a reader defect, not a source defect.
func verify(ctx context.Context, req CheckRequest, res *CheckResult) error {
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(res.Files), 1)))
	for i := range res.Files {
		fc := &res.Files[i]
		if fc.Tree == nil {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			emitFile(req.Progress, fc.Path, StageVerify, StatusWorking, nil, 0)
			vstart := time.Now()
			ok, msg := format.CheckRoundTrip(fc.File, fc.Tree)
			if !ok {
				fc.VerifyMsg = msg
				emitFile(req.Progress, fc.Path, StageVerify, StatusError, errors.New(msg), time.Since(vstart))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	res.Timer.Add("verify", time.Since(start), "wall")
	return nil
}

// phaseSink converts driver phase boundaries into progress events.
func phaseSink(sink ProgressSink) driver.PhaseObserver {
	if sink == nil {
		return nil
	}
	return func(ev driver.PhaseEvent) {
		stage := StageScan
		if ev.Phase == "build" {
			stage = StageBuild
		}
		switch {
		case ev.Status == driver.PhaseStart:
			sink.OnEvent(Event{File: ev.Path, Stage: stage, Status: StatusWorking})
		case ev.Failed:
			sink.OnEvent(Event{File: ev.Path, Stage: stage, Status: StatusError, Err: stageError(stage), Elapsed: ev.Elapsed})
		}
	}
}

func stageError(stage Stage) error {
	return errors.New(string(stage) + " failed")
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageScan, Status: StatusQueued})
	}
}

func emitFile(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

func durationFromMillis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
