package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vlisp/internal/ast"
	"vlisp/internal/source"
	"vlisp/internal/token"
)

// fileSpan renders a span as line:col positions within a single file.
func fileSpan(file *source.File, sp source.Span) string {
	start := file.LineCol(sp.Start)
	end := file.LineCol(sp.End)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

func atomLabel(file *source.File, tok token.Token) string {
	switch tok.Kind {
	case token.Int32:
		return "int32 " + strconv.FormatInt(int64(tok.Int32), 10)
	case token.Float32:
		return "float32 " + strconv.FormatFloat(float64(tok.Float32), 'g', -1, 32)
	default:
		return fmt.Sprintf("%s %q", tok.Kind, tok.Text(file))
	}
}

// TreeClassic writes the classic nested dump: a list is "( " followed
// by each child plus a trailing space and ")", an atom is "*" followed
// by its token tag.
func TreeClassic(w io.Writer, file *source.File, tree *ast.Tree) error {
	type frame struct {
		id  ast.NodeID
		idx int
	}
	var sb strings.Builder
	stack := []frame{{id: tree.Root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		node := tree.Get(top.id)

		if node.Kind == ast.NodeAtom {
			sb.WriteString("*" + tokenTag(file, node.Tok))
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				sb.WriteString(" ")
			}
			continue
		}

		if top.idx == 0 {
			sb.WriteString("( ")
		}
		if top.idx == len(node.Children) {
			sb.WriteString(")")
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				sb.WriteString(" ")
			}
			continue
		}
		child := node.Children[top.idx]
		top.idx++
		stack = append(stack, frame{id: child})
	}
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// TreePretty writes an indented tree view with box-drawing connectors,
// one node per line with its span.
func TreePretty(w io.Writer, file *source.File, tree *ast.Tree) error {
	root := tree.RootNode()
	fmt.Fprintf(w, "%s (span: %s)\n", file.Path, fileSpan(file, root.Span))

	type frame struct {
		id     ast.NodeID
		prefix string
		last   bool
	}
	var stack []frame
	for i := len(root.Children) - 1; i >= 0; i-- {
		stack = append(stack, frame{id: root.Children[i], last: i == len(root.Children)-1})
	}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := tree.Get(fr.id)

		connector, childPrefix := "├─ ", fr.prefix+"│  "
		if fr.last {
			connector, childPrefix = "└─ ", fr.prefix+"   "
		}

		label := "list"
		if node.Kind == ast.NodeAtom {
			label = atomLabel(file, node.Tok)
		}
		fmt.Fprintf(w, "%s%s%s (span: %s)\n", fr.prefix, connector, label, fileSpan(file, node.Span))

		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				id:     node.Children[i],
				prefix: childPrefix,
				last:   i == len(node.Children)-1,
			})
		}
	}
	return nil
}

// TreeNodeOutput is one node in JSON form.
type TreeNodeOutput struct {
	Kind     string           `json:"kind"`
	Span     source.Span      `json:"span"`
	Token    string           `json:"token,omitempty"`
	Text     string           `json:"text,omitempty"`
	Value    any              `json:"value,omitempty"`
	Children []TreeNodeOutput `json:"children,omitempty"`
}

// TreeJSON writes the tree as indented nested JSON, root object first.
func TreeJSON(w io.Writer, file *source.File, tree *ast.Tree) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildTreeOutput(file, tree, tree.Root))
}

func buildTreeOutput(file *source.File, tree *ast.Tree, id ast.NodeID) TreeNodeOutput {
	node := tree.Get(id)
	out := TreeNodeOutput{
		Kind: node.Kind.String(),
		Span: node.Span,
	}
	if node.Kind == ast.NodeAtom {
		out.Token = node.Tok.Kind.String()
		switch node.Tok.Kind {
		case token.Int32:
			out.Value = node.Tok.Int32
		case token.Float32:
			out.Value = node.Tok.Float32
		default:
			out.Text = node.Tok.Text(file)
		}
		return out
	}
	for _, child := range node.Children {
		out.Children = append(out.Children, buildTreeOutput(file, tree, child))
	}
	return out
}
