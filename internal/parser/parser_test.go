package parser_test

import (
	"strings"
	"testing"

	"vlisp/internal/ast"
	"vlisp/internal/diag"
	"vlisp/internal/lexer"
	"vlisp/internal/parser"
	"vlisp/internal/source"
	"vlisp/internal/testkit"
	"vlisp/internal/token"
)

func scanTokens(t *testing.T, input string) (*source.File, []token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.vl", []byte(input)))
	bag := diag.NewBag(16)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		if tok.Kind == token.Invalid {
			continue
		}
		tokens = append(tokens, tok)
	}
	return file, tokens, bag
}

// buildTree scans and builds input that is expected to be well-formed.
func buildTree(t *testing.T, input string) (*ast.Tree, *source.File) {
	t.Helper()
	file, tokens, bag := scanTokens(t, input)
	if bag.HasErrors() {
		t.Fatalf("input %q: unexpected scan errors: %v", input, bag.Items())
	}
	tree := parser.Build(file, tokens, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if tree == nil {
		t.Fatalf("input %q: unexpected build failure: %v", input, bag.Items())
	}
	if err := testkit.CheckTreeInvariants(tree); err != nil {
		t.Fatalf("input %q: %v", input, err)
	}
	return tree, file
}

// buildDefect scans and builds input whose structure is broken, and
// returns the single diagnostic.
func buildDefect(t *testing.T, input string) diag.Diagnostic {
	t.Helper()
	file, tokens, bag := scanTokens(t, input)
	if bag.HasErrors() {
		t.Fatalf("input %q: scan errors before build: %v", input, bag.Items())
	}
	tree := parser.Build(file, tokens, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if tree != nil {
		t.Fatalf("input %q: expected build failure, got tree with %d nodes", input, tree.Len())
	}
	if bag.Len() != 1 {
		t.Fatalf("input %q: expected 1 diagnostic, got %d: %v", input, bag.Len(), bag.Items())
	}
	return bag.Items()[0]
}

// shape renders the tree structure compactly for comparison, names
// only; e.g. "(a (b c) d)" → "[a [b c] d]".
func shape(tree *ast.Tree, file *source.File, id ast.NodeID) string {
	node := tree.Get(id)
	if node.Kind == ast.NodeAtom {
		return node.Tok.Text(file)
	}
	parts := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		parts = append(parts, shape(tree, file, child))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func TestEmptyInput(t *testing.T) {
	tree, _ := buildTree(t, "")
	root := tree.RootNode()
	if root == nil || root.Kind != ast.NodeList {
		t.Fatal("expected a list root for empty input")
	}
	if len(root.Children) != 0 {
		t.Errorf("expected no children, got %d", len(root.Children))
	}
	if tree.Len() != 1 {
		t.Errorf("expected 1 node, got %d", tree.Len())
	}
}

func TestFlatAtoms(t *testing.T) {
	tree, file := buildTree(t, "a b c")
	if got := shape(tree, file, tree.Root); got != "[a b c]" {
		t.Errorf("unexpected shape %s", got)
	}
}

func TestNestedShape(t *testing.T) {
	tree, file := buildTree(t, "(a (b c) d)")
	if got := shape(tree, file, tree.Root); got != "[[a [b c] d]]" {
		t.Errorf("unexpected shape %s", got)
	}

	// Root holds exactly the one top-level list.
	root := tree.RootNode()
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 top-level form, got %d", len(root.Children))
	}
	outer := tree.Get(root.Children[0])
	if len(outer.Children) != 3 {
		t.Fatalf("expected 3 children in outer list, got %d", len(outer.Children))
	}
	inner := tree.Get(outer.Children[1])
	if inner.Kind != ast.NodeList || len(inner.Children) != 2 {
		t.Errorf("expected inner list with 2 children, got %+v", inner)
	}
}

func TestMultipleTopLevelForms(t *testing.T) {
	tree, file := buildTree(t, "(a) b (c d)")
	if got := shape(tree, file, tree.Root); got != "[[a] b [c d]]" {
		t.Errorf("unexpected shape %s", got)
	}
}

func TestListSpans(t *testing.T) {
	input := "(a (b c) d)"
	tree, _ := buildTree(t, input)

	root := tree.RootNode()
	if root.Span.Start != 0 || root.Span.End != uint32(len(input)) {
		t.Errorf("root span should cover the file, got %v", root.Span)
	}
	outer := tree.Get(root.Children[0])
	if outer.Span.Start != 0 || outer.Span.End != 11 {
		t.Errorf("outer list span should cover both parens, got %v", outer.Span)
	}
	inner := tree.Get(outer.Children[1])
	if inner.Span.Start != 3 || inner.Span.End != 8 {
		t.Errorf("inner list span should be 3-8, got %v", inner.Span)
	}
}

func TestAtomPayloadSurvives(t *testing.T) {
	tree, _ := buildTree(t, `(42i32 3.5f32 "s")`)
	outer := tree.Get(tree.RootNode().Children[0])
	if len(outer.Children) != 3 {
		t.Fatalf("expected 3 atoms, got %d", len(outer.Children))
	}
	if n := tree.Get(outer.Children[0]); n.Tok.Kind != token.Int32 || n.Tok.Int32 != 42 {
		t.Errorf("int atom lost its value: %+v", n.Tok)
	}
	if n := tree.Get(outer.Children[1]); n.Tok.Kind != token.Float32 || n.Tok.Float32 != 3.5 {
		t.Errorf("float atom lost its value: %+v", n.Tok)
	}
	if n := tree.Get(outer.Children[2]); n.Tok.Kind != token.String {
		t.Errorf("expected string atom, got %+v", n.Tok)
	}
}

func TestStrayClose(t *testing.T) {
	d := buildDefect(t, "a b)")
	if d.Code != diag.SynUnbalancedClose {
		t.Fatalf("expected %s, got %s", diag.SynUnbalancedClose.ID(), d.Code.ID())
	}
	if d.Primary.Start != 3 || d.Primary.End != 4 {
		t.Errorf("expected span 3-4 at the stray ')', got %v", d.Primary)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].ID != "delete-stray-close" {
		t.Fatalf("expected delete-stray-close fix, got %v", d.Fixes)
	}
	edit := d.Fixes[0].Edits[0]
	if edit.NewText != "" || edit.Span != d.Primary {
		t.Errorf("fix should delete the stray paren, got %+v", edit)
	}
}

func TestStrayCloseAfterBalancedList(t *testing.T) {
	d := buildDefect(t, "(a)) (b)")
	if d.Code != diag.SynUnbalancedClose {
		t.Fatalf("expected %s, got %s", diag.SynUnbalancedClose.ID(), d.Code.ID())
	}
	if d.Primary.Start != 3 {
		t.Errorf("expected defect at offset 3, got %v", d.Primary)
	}
}

func TestUnclosedOpen(t *testing.T) {
	d := buildDefect(t, "(a b")
	if d.Code != diag.SynUnbalancedOpen {
		t.Fatalf("expected %s, got %s", diag.SynUnbalancedOpen.ID(), d.Code.ID())
	}
	if d.Primary.Start != 0 || d.Primary.End != 1 {
		t.Errorf("expected span 0-1 at the open paren, got %v", d.Primary)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].ID != "insert-close-parens" {
		t.Fatalf("expected insert-close-parens fix, got %v", d.Fixes)
	}
	edit := d.Fixes[0].Edits[0]
	if edit.NewText != ")" || edit.Span.Start != 4 || edit.Span.End != 4 {
		t.Errorf("fix should insert ')' at EOF, got %+v", edit)
	}
}

func TestUnclosedOpenNested(t *testing.T) {
	d := buildDefect(t, "(a (b")
	if d.Primary.Start != 0 {
		t.Errorf("primary should point at the outermost unclosed paren, got %v", d.Primary)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span.Start != 3 {
		t.Errorf("expected a note at the inner unclosed paren, got %v", d.Notes)
	}
	edit := d.Fixes[0].Edits[0]
	if edit.NewText != "))" {
		t.Errorf("fix should insert both missing parens, got %q", edit.NewText)
	}
}

// The two unbalanced shapes must stay distinguishable by code.
func TestUnbalancedCodesDiffer(t *testing.T) {
	open := buildDefect(t, "(a b")
	closed := buildDefect(t, "a b)")
	if open.Code == closed.Code {
		t.Errorf("expected distinct codes, both were %s", open.Code.ID())
	}
}

func TestDeepNesting(t *testing.T) {
	depth := 5000
	input := strings.Repeat("(", depth) + "x" + strings.Repeat(")", depth)
	tree, _ := buildTree(t, input)

	id := tree.RootNode().Children[0]
	for i := 0; i < depth-1; i++ {
		node := tree.Get(id)
		if node.Kind != ast.NodeList || len(node.Children) != 1 {
			t.Fatalf("depth %d: expected single-child list, got %+v", i, node)
		}
		id = node.Children[0]
	}
	last := tree.Get(id)
	if last.Kind != ast.NodeList || len(last.Children) != 1 {
		t.Fatalf("innermost list malformed: %+v", last)
	}
	if atom := tree.Get(last.Children[0]); atom.Kind != ast.NodeAtom {
		t.Fatalf("expected atom at the bottom, got %+v", atom)
	}
}

func TestNilReporterStillFails(t *testing.T) {
	file, tokens, _ := scanTokens(t, "(a")
	tree := parser.Build(file, tokens, parser.Options{})
	if tree != nil {
		t.Error("expected nil tree without a reporter")
	}
}
