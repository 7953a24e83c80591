package trace

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindBegin marks the start of a logical operation.
	KindBegin Kind = iota + 1
	// KindEnd marks the end of a logical operation.
	KindEnd
	// KindPoint is an instant event.
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Scope indicates event granularity; lower values are coarser.
type Scope uint8

const (
	// ScopeDriver covers whole-command operations.
	ScopeDriver Scope = iota + 1
	// ScopePass covers reader phases (load, scan, build, verify).
	ScopePass
	// ScopeFile covers per-file events inside a phase.
	ScopeFile
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeFile:
		return "file"
	default:
		return "unknown"
	}
}

func (s Scope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Event is a single trace record, one JSON line on the wire.
type Event struct {
	Time   time.Time `json:"ts"`
	Seq    uint64    `json:"seq"`
	Kind   Kind      `json:"kind"`
	Scope  Scope     `json:"scope"`
	Name   string    `json:"name"`
	File   string    `json:"file,omitempty"`
	Detail string    `json:"detail,omitempty"`
	DurMS  float64   `json:"dur_ms,omitempty"`
	Tokens int       `json:"tokens,omitempty"`
	Nodes  int       `json:"nodes,omitempty"`
}

var seqCounter atomic.Uint64

// NextSeq returns the next global event sequence number.
func NextSeq() uint64 {
	return seqCounter.Add(1)
}
