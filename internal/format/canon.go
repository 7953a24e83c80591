package format

import (
	"io"
	"strconv"

	"vlisp/internal/ast"
	"vlisp/internal/source"
	"vlisp/internal/token"
)

// writer folds the first write error and swallows the rest.
type writer struct {
	w   io.Writer
	err error
}

func (wr *writer) str(s string) {
	if wr.err == nil {
		_, wr.err = io.WriteString(wr.w, s)
	}
}

// File writes every top-level form of the tree on its own line.
// An empty tree produces no output.
func File(w io.Writer, file *source.File, tree *ast.Tree) error {
	wr := &writer{w: w}
	for _, child := range tree.RootNode().Children {
		writeNode(wr, file, tree, child)
		wr.str("\n")
	}
	return wr.err
}

// Node writes the canonical form of a single node.
func Node(w io.Writer, file *source.File, tree *ast.Tree, id ast.NodeID) error {
	wr := &writer{w: w}
	writeNode(wr, file, tree, id)
	return wr.err
}

// writeNode walks the subtree with an explicit frame stack; like the
// builder, it keeps tree depth out of the call stack.
func writeNode(wr *writer, file *source.File, tree *ast.Tree, id ast.NodeID) {
	type frame struct {
		id  ast.NodeID
		idx int
	}
	stack := []frame{{id: id}}
	for len(stack) > 0 && wr.err == nil {
		top := &stack[len(stack)-1]
		node := tree.Get(top.id)

		if node.Kind == ast.NodeAtom {
			wr.str(atomText(file, node))
			stack = stack[:len(stack)-1]
			continue
		}

		if top.idx == 0 {
			wr.str("(")
		}
		if top.idx == len(node.Children) {
			wr.str(")")
			stack = stack[:len(stack)-1]
			continue
		}
		if top.idx > 0 {
			wr.str(" ")
		}
		child := node.Children[top.idx]
		top.idx++
		stack = append(stack, frame{id: child})
	}
}

// atomText renders one atom. Strings are emitted verbatim between
// quotes; the language has no escapes, and a scanned string can never
// contain a quote.
func atomText(file *source.File, node *ast.Node) string {
	switch node.Tok.Kind {
	case token.String:
		return "\"" + node.Tok.Text(file) + "\""
	case token.Int32:
		return strconv.FormatInt(int64(node.Tok.Int32), 10) + "i32"
	case token.Float32:
		return strconv.FormatFloat(float64(node.Tok.Float32), 'g', -1, 32) + "f32"
	default:
		return node.Tok.Text(file)
	}
}
