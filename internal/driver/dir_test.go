package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vlisp/internal/diag"
	"vlisp/internal/driver"
	"vlisp/internal/observ"
	"vlisp/internal/source"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestTokenizeDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.vl":        "(ok)",
		"a.vl":        `(bad "unterminated`,
		"sub/c.vl":    "(nested (list))",
		"ignored.txt": "not a source",
	})

	results, err := driver.TokenizeDir(context.Background(), source.NewFileSet(), root, driver.Options{})
	if err != nil {
		t.Fatalf("TokenizeDir returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("result count = %d, want 3", len(results))
	}

	wantPaths := []string{
		filepath.Join(root, "a.vl"),
		filepath.Join(root, "b.vl"),
		filepath.Join(root, "sub", "c.vl"),
	}
	for i, want := range wantPaths {
		if results[i].Path != want {
			t.Errorf("results[%d].Path = %q, want %q", i, results[i].Path, want)
		}
	}

	if !results[0].Bag.HasErrors() || results[0].Tokens != nil {
		t.Errorf("expected a.vl to fail with nil tokens")
	}
	if results[1].Bag.HasErrors() || len(results[1].Tokens) != 3 {
		t.Errorf("expected b.vl to scan into 3 tokens, got %+v", results[1])
	}
	if results[2].Bag.HasErrors() || len(results[2].Tokens) != 6 {
		t.Errorf("expected sub/c.vl to scan into 6 tokens, got %+v", results[2])
	}
}

func TestParseDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"ok.vl":   "(a (b c))",
		"open.vl": "((never closed",
	})

	results, err := driver.ParseDir(context.Background(), source.NewFileSet(), root, driver.Options{Jobs: 1})
	if err != nil {
		t.Fatalf("ParseDir returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("result count = %d, want 2", len(results))
	}

	ok := results[0]
	if ok.Tree == nil || ok.Bag.HasErrors() {
		t.Fatalf("expected ok.vl to build, got %+v", ok.Bag.Items())
	}
	open := results[1]
	if open.Tree != nil {
		t.Fatalf("expected open.vl to fail")
	}
	items := open.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.SynUnbalancedOpen {
		t.Fatalf("expected SynUnbalancedOpen for open.vl, got %+v", items)
	}
}

func TestParseDirUnreadableFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"good.vl": "(fine)"})
	// A dangling symlink lists as a source file but cannot be read.
	if err := os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "broken.vl")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	results, err := driver.ParseDir(context.Background(), source.NewFileSet(), root, driver.Options{})
	if err != nil {
		t.Fatalf("ParseDir returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("result count = %d, want 2", len(results))
	}

	broken := results[0]
	items := broken.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOLoadFileError {
		t.Fatalf("expected IOLoadFileError for broken.vl, got %+v", items)
	}
	if broken.File != nil || broken.Tree != nil {
		t.Fatalf("expected no file and no tree for broken.vl")
	}
	if good := results[1]; good.Tree == nil {
		t.Fatalf("expected good.vl to build despite its neighbor")
	}
}

func TestTokenizeDirEmpty(t *testing.T) {
	results, err := driver.TokenizeDir(context.Background(), source.NewFileSet(), t.TempDir(), driver.Options{})
	if err != nil {
		t.Fatalf("TokenizeDir returned error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestParseDirMergesWorkerTimers(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.vl": "(a)",
		"b.vl": "(b)",
	})

	tm := observ.NewTimer()
	if _, err := driver.ParseDir(context.Background(), source.NewFileSet(), root, driver.Options{Timer: tm}); err != nil {
		t.Fatalf("ParseDir returned error: %v", err)
	}
	names := make(map[string]int)
	for _, ph := range tm.Report().Phases {
		names[ph.Name]++
	}
	// Merge folds same-name phases, so each appears once.
	if names["scan"] != 1 || names["build"] != 1 {
		t.Fatalf("expected folded scan and build phases, got %v", names)
	}
}
