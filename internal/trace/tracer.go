package trace

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// Tracer emits trace events. Implementations must be goroutine-safe.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// Config holds tracer configuration.
type Config struct {
	Level Level
	// Output takes precedence over OutputPath when set.
	Output     io.Writer
	OutputPath string // "-" or "" means stderr
}

// New creates a Tracer: Nop when the level is off, otherwise a stream
// tracer writing JSON lines.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	return NewStreamTracer(w, cfg.Level), nil
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		// The wrapper hides the Closer: Close must leave stderr open.
		return struct{ io.Writer }{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	return f, nil
}

// EndFunc closes a span opened by Begin, recording the duration plus
// optional token/node counts and detail.
type EndFunc func(tokens, nodes int, detail string)

// Begin emits a begin event and returns the matching end emitter.
// With tracing disabled both sides are free.
func Begin(ctx context.Context, scope Scope, name, file string) EndFunc {
	tr := FromContext(ctx)
	if !tr.Enabled() || !tr.Level().ShouldEmit(scope) {
		return func(int, int, string) {}
	}
	tr.Emit(&Event{
		Time:  time.Now(),
		Kind:  KindBegin,
		Scope: scope,
		Name:  name,
		File:  file,
	})
	start := time.Now()
	return func(tokens, nodes int, detail string) {
		tr.Emit(&Event{
			Time:   time.Now(),
			Kind:   KindEnd,
			Scope:  scope,
			Name:   name,
			File:   file,
			Detail: detail,
			DurMS:  float64(time.Since(start)) / float64(time.Millisecond),
			Tokens: tokens,
			Nodes:  nodes,
		})
	}
}

// Point emits an instant event.
func Point(ctx context.Context, scope Scope, name, file, detail string) {
	tr := FromContext(ctx)
	if !tr.Enabled() || !tr.Level().ShouldEmit(scope) {
		return
	}
	tr.Emit(&Event{
		Time:   time.Now(),
		Kind:   KindPoint,
		Scope:  scope,
		Name:   name,
		File:   file,
		Detail: detail,
	})
}
