package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"vlisp/internal/diag"
	"vlisp/internal/format"
	"vlisp/internal/observ"
	"vlisp/internal/project"
	"vlisp/internal/source"
)

// FormatOptions configures FormatPaths.
type FormatOptions struct {
	// Check computes Changed without rewriting anything.
	Check bool
	// Write rewrites changed files in place.
	Write          bool
	MaxDiagnostics int
	Timer          *observ.Timer
}

// FormatResult carries one file's canonical formatting outcome. A reader
// defect leaves Formatted nil with the details in Bag; Err is reserved
// for I/O failures.
type FormatResult struct {
	Path      string
	File      *source.File
	Bag       *diag.Bag
	Formatted []byte
	Changed   bool
	Err       error
}

// FormatPaths reads every .vl file under paths and renders its canonical
// form. With Write set, files whose canonical form differs from their
// content are rewritten in place.
func FormatPaths(ctx context.Context, fs *source.FileSet, paths []string, opts FormatOptions) ([]FormatResult, error) {
	files, err := project.ListSources(paths)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, formatOne(ctx, fs, path, opts))
	}
	recordPhase(opts.Timer, "format", time.Since(start), fmt.Sprintf("%d files", len(files)))
	return results, nil
}

func formatOne(ctx context.Context, fs *source.FileSet, path string, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}
	parsed, err := Parse(ctx, fs, path, Options{MaxDiagnostics: opts.MaxDiagnostics, Timer: opts.Timer})
	if err != nil {
		res.Err = err
		return res
	}
	res.File = parsed.File
	res.Bag = parsed.Bag
	if parsed.Tree == nil {
		return res
	}

	var buf bytes.Buffer
	if err := format.File(&buf, parsed.File, parsed.Tree); err != nil {
		res.Err = err
		return res
	}
	res.Formatted = buf.Bytes()
	res.Changed = !bytes.Equal(res.Formatted, parsed.File.Content)

	if opts.Write && !opts.Check && res.Changed {
		res.Err = writeFormatted(parsed.File, res.Formatted)
	}
	return res
}

// writeFormatted rewrites file on disk, restoring the byte order mark the
// loader stripped and keeping the existing permission bits.
func writeFormatted(file *source.File, formatted []byte) error {
	out := formatted
	if file.Flags&source.FileHadBOM != 0 {
		out = append([]byte{0xEF, 0xBB, 0xBF}, formatted...)
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(file.Path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(file.Path, out, mode); err != nil {
		return fmt.Errorf("write %s: %w", file.Path, err)
	}
	return nil
}
