package trace

import (
	"encoding/json"
	"io"
	"sync"
)

// StreamTracer writes one JSON line per event, immediately.
type StreamTracer struct {
	mu    sync.Mutex
	enc   *json.Encoder
	w     io.Writer
	level Level
}

func NewStreamTracer(w io.Writer, level Level) *StreamTracer {
	return &StreamTracer{
		enc:   json.NewEncoder(w),
		w:     w,
		level: level,
	}
}

// Emit writes the event. Write errors are swallowed: tracing must never
// fail the run it observes.
func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.Seq = NextSeq()

	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.enc.Encode(ev)
}

func (t *StreamTracer) Flush() error {
	if flusher, ok := t.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if closer, ok := t.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
