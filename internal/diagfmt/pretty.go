package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"vlisp/internal/diag"
	"vlisp/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgBlue, color.Bold)
)

func severityLabel(sev diag.Severity, colored bool) string {
	label := sev.String()
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(label)
	case diag.SevWarning:
		return warningColor.Sprint(label)
	default:
		return infoColor.Sprint(label)
	}
}

// Pretty renders every diagnostic in the bag. Call bag.Sort() first
// when stable output matters.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		PrettyDiagnostic(w, d, fs, opts)
	}
}

// PrettyDiagnostic renders one diagnostic as
//
//	path:line:col: SEVERITY CODE: message
//	  offending source line
//	  ^~~~ underline
//
// followed by its notes in the same shape and its fix suggestions.
func PrettyDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	if file == nil {
		// Driver-level diagnostics (unreadable file) carry no span.
		fmt.Fprintf(w, "%s %s: %s\n",
			severityLabel(d.Severity, opts.Color), d.Code.ID(), d.Message)
		return
	}
	start := file.LineCol(d.Primary.Start)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		file.Path, start.Line, start.Col,
		severityLabel(d.Severity, opts.Color), d.Code.ID(), d.Message)
	writeContext(w, file, d.Primary)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			noteFile := fs.Get(note.Span.File)
			if noteFile == nil {
				continue
			}
			nstart := noteFile.LineCol(note.Span.Start)
			label := "note"
			if opts.Color {
				label = noteColor.Sprint(label)
			}
			fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", noteFile.Path, nstart.Line, nstart.Col, label, note.Msg)
			writeContext(w, noteFile, note.Span)
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  fix: %s [%s, %s]\n", fix.Title, fix.ID, fix.Applicability)
		}
	}
}

// writeContext prints the source line holding the span start plus a
// ^~~~ underline clipped to that line.
func writeContext(w io.Writer, file *source.File, sp source.Span) {
	if len(file.Content) == 0 {
		return
	}
	start := file.LineCol(sp.Start)
	line := file.GetLine(start.Line)
	fmt.Fprintf(w, "  %s\n", line)

	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	width := int(sp.Len())
	if col+width > len(line) {
		width = len(line) - col
	}
	if width < 1 {
		width = 1
	}
	underline := "^"
	if width > 1 {
		underline += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", col), underline)
}
