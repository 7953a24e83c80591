package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart marks the beginning of a per-file phase.
	PhaseStart PhaseStatus = iota
	// PhaseEnd marks its completion.
	PhaseEnd
)

// PhaseEvent describes a phase boundary for one file. Phase is one of
// "load", "scan", or "build".
type PhaseEvent struct {
	Path    string
	Phase   string
	Status  PhaseStatus
	Elapsed time.Duration
	// Failed is set on PhaseEnd when the phase left errors behind.
	Failed bool
}

// PhaseObserver receives phase boundaries as they happen. Directory walks
// invoke it from parallel workers, so implementations must be safe for
// concurrent use.
type PhaseObserver func(PhaseEvent)

func observePhase(obs PhaseObserver, ev PhaseEvent) {
	if obs != nil {
		obs(ev)
	}
}
