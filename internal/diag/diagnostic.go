package diag

import (
	"vlisp/internal/source"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is one text edit: replace the span's current text with NewText.
// Insertions use an empty span, deletions an empty NewText.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// FixApplicability states how much confidence the producer has in a fix.
type FixApplicability uint8

const (
	// ApplicabilityAlwaysSafe marks fixes that preserve meaning.
	ApplicabilityAlwaysSafe FixApplicability = iota
	// ApplicabilitySafeWithHeuristics marks fixes that are usually right.
	ApplicabilitySafeWithHeuristics
	// ApplicabilityManualReview marks guesses a human must confirm.
	ApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case ApplicabilityAlwaysSafe:
		return "always-safe"
	case ApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case ApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

// Fix represents a possible automated correction, data-only. The fix
// engine selects and applies edits; producers never touch files.
type Fix struct {
	ID            string
	Title         string
	Applicability FixApplicability
	IsPreferred   bool
	Edits         []FixEdit
}

// Diagnostic is the central record produced by the lexer, the list
// builder, and the driver.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
