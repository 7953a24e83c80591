package diag

import (
	"testing"

	"vlisp/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("testdata/sample.vl", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     SynUnbalancedClose,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     UnknownCode,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
	}

	expected := "error SYN2001 testdata/sample.vl:1:1 first line second\n" +
		"note SYN2001 testdata/sample.vl:2:1 note line\n" +
		"warning E0000 testdata/sample.vl:2:1 another"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortDiagnosticsWithoutNotes(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("x.vl", []byte("abc"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     LexUnterminatedString,
			Message:  "unterminated",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes:    []Note{{Span: source.Span{File: file, Start: 1, End: 2}, Msg: "hidden"}},
		},
	}

	got := FormatShortDiagnostics(diags, fs, false)
	want := "error LEX1001 x.vl:1:1 unterminated"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatShortDiagnosticsEmpty(t *testing.T) {
	fs := source.NewFileSet()
	if got := FormatShortDiagnostics(nil, fs, true); got != "" {
		t.Errorf("expected empty output for no diagnostics, got %q", got)
	}
}
