package format

import (
	"bytes"
	"fmt"
	"math"

	"vlisp/internal/ast"
	"vlisp/internal/diag"
	"vlisp/internal/lexer"
	"vlisp/internal/parser"
	"vlisp/internal/source"
	"vlisp/internal/token"
)

// CheckRoundTrip formats the tree, re-reads the canonical output with a
// throwaway file, and compares the rebuilt tree against the original:
// same shape, same leaf kinds, same name and string text, same int
// values, float values equal by bit pattern.
func CheckRoundTrip(file *source.File, tree *ast.Tree) (ok bool, msg string) {
	var buf bytes.Buffer
	if err := File(&buf, file, tree); err != nil {
		return false, "round-trip: format failed: " + err.Error()
	}

	fs := source.NewFileSet()
	refile := fs.Get(fs.AddVirtual(file.Path, buf.Bytes()))
	bag := diag.NewBag(8)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(refile, lexer.Options{Reporter: reporter})
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
	if bag.HasErrors() {
		return false, "round-trip: canonical output does not re-scan"
	}

	rebuilt := parser.Build(refile, tokens, parser.Options{Reporter: reporter})
	if rebuilt == nil {
		return false, "round-trip: canonical output does not re-build"
	}
	return sameTree(file, tree, refile, rebuilt)
}

// nodeSig is one node flattened for comparison. A preorder sequence of
// (kind, child count, payload) determines the tree exactly.
type nodeSig struct {
	kind     ast.NodeKind
	children int
	tok      token.Kind
	text     string
	bits     uint32
}

func signatures(file *source.File, tree *ast.Tree) []nodeSig {
	sigs := make([]nodeSig, 0, tree.Len())
	tree.Walk(func(_ ast.NodeID, node *ast.Node, _ int) bool {
		sig := nodeSig{kind: node.Kind, children: len(node.Children)}
		if node.Kind == ast.NodeAtom {
			sig.tok = node.Tok.Kind
			switch node.Tok.Kind {
			case token.Int32:
				sig.bits = uint32(node.Tok.Int32)
			case token.Float32:
				sig.bits = math.Float32bits(node.Tok.Float32)
			default:
				sig.text = node.Tok.Text(file)
			}
		}
		sigs = append(sigs, sig)
		return true
	})
	return sigs
}

func sameTree(origFile *source.File, orig *ast.Tree, newFile *source.File, rebuilt *ast.Tree) (bool, string) {
	a := signatures(origFile, orig)
	b := signatures(newFile, rebuilt)
	if len(a) != len(b) {
		return false, fmt.Sprintf("round-trip: node count differs, %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return false, fmt.Sprintf("round-trip: node %d differs, %+v vs %+v", i, a[i], b[i])
		}
	}
	return true, "round-trip: OK"
}
