// Package diag defines the diagnostic model shared by the reader's phases.
//
// Diagnostic is the central record: severity, a stable numeric Code, a
// message, the primary source.Span, optional Notes for secondary context,
// and optional Fixes describing automated corrections as concrete text
// edits.
//
// Phases emit through the Reporter interface so emission stays decoupled
// from storage. BagReporter aggregates into a Bag, which supports sorting,
// deduplication and a capacity limit; DedupReporter filters exact repeats
// on the way in. ReportBuilder chains notes and fixes before a single
// Emit.
//
// The package performs no formatting and no I/O. Rendering lives in
// internal/diagfmt, fix application in internal/fix, and per-file
// orchestration in internal/driver.
package diag
