package project

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	manifest := filepath.Join(root, ManifestName)
	writeFile(t, manifest, "[project]\nname = \"demo\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, ok, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected manifest to be found")
	}
	if got != manifest {
		t.Fatalf("FindManifest = %q, want %q", got, manifest)
	}

	gotRoot, ok, err := FindProjectRoot(nested)
	if err != nil || !ok {
		t.Fatalf("FindProjectRoot = (%v, %v), want ok", ok, err)
	}
	if gotRoot != root {
		t.Fatalf("FindProjectRoot = %q, want %q", gotRoot, root)
	}
}

func TestFindManifestMissing(t *testing.T) {
	_, ok, err := FindManifest(t.TempDir())
	if err != nil {
		t.Fatalf("FindManifest returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected no manifest above a fresh temp dir")
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, `
[project]
name = "demo"
entry = "main.vl"

[format]
width = 100

[cache]
disabled = true
dir = "/tmp/vlisp-cache"
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if m.Project.Name != "demo" || m.Project.Entry != "main.vl" {
		t.Fatalf("unexpected [project]: %+v", m.Project)
	}
	if m.Format.Width != 100 {
		t.Fatalf("Format.Width = %d, want 100", m.Format.Width)
	}
	if !m.Cache.Disabled || m.Cache.Dir != "/tmp/vlisp-cache" {
		t.Fatalf("unexpected [cache]: %+v", m.Cache)
	}
}

func TestLoadManifestPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[project]\nname = \"demo\"\n")

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if m.Project.Entry != "" || m.Format.Width != 0 || m.Cache.Disabled {
		t.Fatalf("expected zero values for omitted sections, got %+v", m)
	}
}

func TestLoadManifestBadSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[project\nname =")

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed TOML")
	}
}

func TestLoadNearest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[project]\nname = \"walker\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, path, ok, err := LoadNearest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadNearest = (%v, %v), want ok", ok, err)
	}
	if path != filepath.Join(root, ManifestName) {
		t.Fatalf("LoadNearest path = %q", path)
	}
	if m.Project.Name != "walker" {
		t.Fatalf("Project.Name = %q, want walker", m.Project.Name)
	}
}

func TestListSourceFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.vl"), "(b)")
	writeFile(t, filepath.Join(root, "a.vl"), "(a)")
	writeFile(t, filepath.Join(root, "notes.txt"), "skip")
	writeFile(t, filepath.Join(root, "sub", "c.vl"), "(c)")
	writeFile(t, filepath.Join(root, ".hidden", "d.vl"), "(d)")
	writeFile(t, filepath.Join(root, ".swap.vl"), "(e)")

	got, err := ListSourceFiles(root)
	if err != nil {
		t.Fatalf("ListSourceFiles returned error: %v", err)
	}
	want := []string{
		filepath.Join(root, "a.vl"),
		filepath.Join(root, "b.vl"),
		filepath.Join(root, "sub", "c.vl"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ListSourceFiles = %v, want %v", got, want)
	}
}

func TestListSourceFilesExplicitFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "input.scm")
	writeFile(t, path, "(x)")

	got, err := ListSourceFiles(path)
	if err != nil {
		t.Fatalf("ListSourceFiles returned error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{path}) {
		t.Fatalf("ListSourceFiles = %v, want just %q", got, path)
	}
}

func TestListSourceFilesMissingRoot(t *testing.T) {
	if _, err := ListSourceFiles(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing root")
	}
}

func TestListSourcesDeduplicates(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.vl")
	writeFile(t, a, "(a)")
	writeFile(t, filepath.Join(root, "b.vl"), "(b)")

	got, err := ListSources([]string{root, a})
	if err != nil {
		t.Fatalf("ListSources returned error: %v", err)
	}
	want := []string{a, filepath.Join(root, "b.vl")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ListSources = %v, want %v", got, want)
	}
}
