package driver_test

import (
	"context"
	"os"
	"testing"

	"vlisp/internal/driver"
	"vlisp/internal/source"
)

func TestFormatPathsCanonicalizes(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "messy.vl", "(def   x\n   42i32)\n(puts \"hi\")")
	fs := source.NewFileSet()

	results, err := driver.FormatPaths(context.Background(), fs, []string{path}, driver.FormatOptions{})
	if err != nil {
		t.Fatalf("FormatPaths returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("result count = %d, want 1", len(results))
	}

	res := results[0]
	if res.Err != nil {
		t.Fatalf("unexpected result error: %v", res.Err)
	}
	if !res.Changed {
		t.Fatalf("expected Changed for non-canonical input")
	}
	want := "(def x 42i32)\n(puts \"hi\")\n"
	if string(res.Formatted) != want {
		t.Fatalf("Formatted = %q, want %q", res.Formatted, want)
	}

	// Without Write the file on disk stays untouched.
	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(onDisk) == want {
		t.Fatalf("file was rewritten without Write")
	}
}

func TestFormatPathsWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "messy.vl", "( a  b )")
	fs := source.NewFileSet()

	results, err := driver.FormatPaths(context.Background(), fs, []string{path}, driver.FormatOptions{Write: true})
	if err != nil {
		t.Fatalf("FormatPaths returned error: %v", err)
	}
	if results[0].Err != nil {
		t.Fatalf("write failed: %v", results[0].Err)
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(onDisk) != "(a b)\n" {
		t.Fatalf("on disk = %q, want %q", onDisk, "(a b)\n")
	}
}

func TestFormatPathsAlreadyCanonical(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "clean.vl", "(a b)\n")
	fs := source.NewFileSet()

	results, err := driver.FormatPaths(context.Background(), fs, []string{path}, driver.FormatOptions{Check: true})
	if err != nil {
		t.Fatalf("FormatPaths returned error: %v", err)
	}
	if results[0].Changed {
		t.Fatalf("canonical input flagged as changed")
	}
}

func TestFormatPathsKeepsBOM(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bom.vl", "\xEF\xBB\xBF( a )")
	fs := source.NewFileSet()

	results, err := driver.FormatPaths(context.Background(), fs, []string{path}, driver.FormatOptions{Write: true})
	if err != nil {
		t.Fatalf("FormatPaths returned error: %v", err)
	}
	if results[0].Err != nil {
		t.Fatalf("write failed: %v", results[0].Err)
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(onDisk) != "\xEF\xBB\xBF(a)\n" {
		t.Fatalf("on disk = %q, want BOM preserved", onDisk)
	}
}

func TestFormatPathsReportsDefects(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "broken.vl", "(a")
	fs := source.NewFileSet()

	results, err := driver.FormatPaths(context.Background(), fs, []string{path}, driver.FormatOptions{Write: true})
	if err != nil {
		t.Fatalf("FormatPaths returned error: %v", err)
	}

	res := results[0]
	if !res.Bag.HasErrors() {
		t.Fatalf("expected a build defect")
	}
	if res.Formatted != nil {
		t.Fatalf("defective file should not produce canonical output")
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(onDisk) != "(a" {
		t.Fatalf("defective file was rewritten: %q", onDisk)
	}
}
