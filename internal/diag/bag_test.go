package diag

import (
	"testing"

	"vlisp/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)

	if !b.Add(NewError(SynUnbalancedClose, source.Span{}, "one")) {
		t.Error("expected first Add to succeed")
	}
	if !b.Add(NewError(SynUnbalancedClose, source.Span{}, "two")) {
		t.Error("expected second Add to succeed")
	}
	if b.Add(NewError(SynUnbalancedClose, source.Span{}, "three")) {
		t.Error("expected third Add to be rejected at the limit")
	}
	if b.Len() != 2 {
		t.Errorf("expected 2 items, got %d", b.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(8)
	if b.HasErrors() {
		t.Error("empty bag must not have errors")
	}

	b.Add(New(SevWarning, UnknownCode, source.Span{}, "warn"))
	if b.HasErrors() {
		t.Error("warning-only bag must not have errors")
	}
	if !b.HasWarnings() {
		t.Error("expected HasWarnings to be true")
	}

	b.Add(NewError(LexUnterminatedString, source.Span{}, "oops"))
	if !b.HasErrors() {
		t.Error("expected HasErrors after adding an error")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(8)
	b.Add(NewError(SynUnbalancedClose, source.Span{File: 0, Start: 9, End: 10}, "late"))
	b.Add(NewError(LexUnterminatedString, source.Span{File: 0, Start: 2, End: 3}, "early"))
	b.Add(New(SevWarning, UnknownCode, source.Span{File: 0, Start: 2, End: 3}, "same span, lower severity"))

	b.Sort()
	items := b.Items()

	if items[0].Message != "early" {
		t.Errorf("expected error at offset 2 first, got %q", items[0].Message)
	}
	if items[1].Severity != SevWarning {
		t.Errorf("expected warning second (same span, severity desc puts error first), got %v", items[1].Severity)
	}
	if items[2].Message != "late" {
		t.Errorf("expected offset 9 last, got %q", items[2].Message)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(8)
	span := source.Span{File: 0, Start: 1, End: 2}
	b.Add(NewError(SynUnbalancedClose, span, "dup"))
	b.Add(NewError(SynUnbalancedClose, span, "dup"))
	b.Add(NewError(SynUnbalancedOpen, span, "other code survives"))

	b.Dedup()
	if b.Len() != 2 {
		t.Errorf("expected 2 items after dedup, got %d", b.Len())
	}
}

func TestBagMerge(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(LexUnterminatedString, source.Span{}, "a"))

	b := NewBag(2)
	b.Add(NewError(SynUnbalancedClose, source.Span{}, "b1"))
	b.Add(NewError(SynUnbalancedOpen, source.Span{}, "b2"))

	a.Merge(b)
	if a.Len() != 3 {
		t.Errorf("expected merged length 3, got %d", a.Len())
	}
	// The limit grows so nothing merged is silently dropped.
	if a.Cap() < 3 {
		t.Errorf("expected cap >= 3 after merge, got %d", a.Cap())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag})

	span := source.Span{File: 0, Start: 4, End: 5}
	r.Report(SynUnbalancedClose, SevError, span, "dup", nil, nil)
	r.Report(SynUnbalancedClose, SevError, span, "dup", nil, nil)
	r.Report(SynUnbalancedClose, SevError, span, "different message", nil, nil)

	if bag.Len() != 2 {
		t.Errorf("expected 2 unique diagnostics, got %d", bag.Len())
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(8)
	b := ReportError(BagReporter{Bag: bag}, SynUnbalancedOpen, source.Span{Start: 1, End: 2}, "unclosed").
		WithNote(source.Span{Start: 0, End: 1}, "opened here").
		WithFix("insert close paren", FixEdit{Span: source.Span{Start: 2, End: 2}, NewText: ")"})

	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 {
		t.Errorf("expected 1 note and 1 fix, got %d and %d", len(d.Notes), len(d.Fixes))
	}
	if d.Fixes[0].Applicability != ApplicabilitySafeWithHeuristics {
		t.Errorf("expected default applicability, got %v", d.Fixes[0].Applicability)
	}
}

func TestReportWarningSeverity(t *testing.T) {
	bag := NewBag(8)
	b := ReportWarning(BagReporter{Bag: bag}, UnknownCode, source.Span{Start: 0, End: 1}, "suspicious")
	if got := b.Diagnostic(); got.Severity != SevWarning || got.Message != "suspicious" {
		t.Errorf("builder snapshot wrong: %+v", got)
	}
	b.Emit()

	if !bag.HasWarnings() || bag.HasErrors() {
		t.Errorf("expected a warning-only bag, got errors=%v warnings=%v", bag.HasErrors(), bag.HasWarnings())
	}
}

func TestCodeIDs(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{LexUnterminatedString, "LEX1001"},
		{LexMalformedNumericSuffix, "LEX1002"},
		{SynUnbalancedClose, "SYN2001"},
		{SynUnbalancedOpen, "SYN2002"},
		{IOLoadFileError, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Errorf("Code(%d).ID(): expected %q, got %q", tc.code, tc.want, got)
		}
	}
}
