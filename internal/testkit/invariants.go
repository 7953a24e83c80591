// Package testkit holds invariant checkers shared by scanner, builder,
// and fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"vlisp/internal/ast"
	"vlisp/internal/source"
	"vlisp/internal/token"
)

// CheckTokenInvariants validates a materialized token sequence:
// 1) no EOF or Invalid entries
// 2) every span carries the file's ID and lies inside its content
// 3) spans advance monotonically and never overlap
// 4) string spans sit between their quotes, paren spans are one byte
func CheckTokenInvariants(file *source.File, tokens []token.Token) error {
	if file == nil {
		return fmt.Errorf("nil file")
	}
	limit, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fmt.Errorf("content length overflow: %w", err)
	}

	prevEnd := uint32(0)
	for i, tok := range tokens {
		sp := tok.Span
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			return fmt.Errorf("token %d: %s in materialized sequence", i, tok.Kind)
		}
		if sp.File != file.ID {
			return fmt.Errorf("token %d: span file %d, want %d", i, sp.File, file.ID)
		}
		if sp.Start > sp.End || sp.End > limit {
			return fmt.Errorf("token %d: span %s out of bounds (len %d)", i, sp, limit)
		}
		if sp.Empty() && tok.Kind != token.String {
			return fmt.Errorf("token %d: empty %s span", i, tok.Kind)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d: span %s overlaps previous end %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		switch tok.Kind {
		case token.String:
			if sp.Start == 0 || file.Content[sp.Start-1] != '"' ||
				sp.End >= limit || file.Content[sp.End] != '"' {
				return fmt.Errorf("token %d: string span %s is not quote-delimited", i, sp)
			}
			// The closing quote belongs to no span; skip past it.
			prevEnd = sp.End + 1
		case token.LParen, token.RParen:
			if sp.Len() != 1 {
				return fmt.Errorf("token %d: paren span %s is not one byte", i, sp)
			}
		}
	}
	return nil
}

// CheckBalancedParens verifies the pairing property of a clean sequence:
// every close has an earlier open, and nothing stays open at the end.
func CheckBalancedParens(tokens []token.Token) error {
	depth := 0
	for i, tok := range tokens {
		switch tok.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth < 0 {
				return fmt.Errorf("token %d: close without open", i)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%d parens left open", depth)
	}
	return nil
}

// CheckTreeInvariants validates structural well-formedness:
// 1) the root exists and is a list
// 2) atoms hold atom tokens, never children, and mirror their token span
// 3) list children are in source order, non-overlapping, inside the parent
func CheckTreeInvariants(tree *ast.Tree) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	root := tree.RootNode()
	if root == nil {
		return fmt.Errorf("missing root node")
	}
	if root.Kind != ast.NodeList {
		return fmt.Errorf("root is %s, want list", root.Kind)
	}

	var fail error
	tree.Walk(func(id ast.NodeID, node *ast.Node, _ int) bool {
		switch node.Kind {
		case ast.NodeAtom:
			if len(node.Children) != 0 {
				fail = fmt.Errorf("node %d: atom with %d children", id, len(node.Children))
			} else if !node.Tok.IsAtom() {
				fail = fmt.Errorf("node %d: atom wraps %s token", id, node.Tok.Kind)
			} else if node.Span != node.Tok.Span {
				fail = fmt.Errorf("node %d: atom span %s differs from token span %s", id, node.Span, node.Tok.Span)
			}
		case ast.NodeList:
			prevEnd := node.Span.Start
			for _, childID := range node.Children {
				child := tree.Get(childID)
				if child == nil {
					fail = fmt.Errorf("node %d: dangling child %d", id, childID)
					break
				}
				if child.Span.Start < node.Span.Start || child.Span.End > node.Span.End {
					fail = fmt.Errorf("node %d: child span %s outside parent %s", id, child.Span, node.Span)
					break
				}
				if child.Span.Start < prevEnd {
					fail = fmt.Errorf("node %d: child span %s overlaps sibling end %d", id, child.Span, prevEnd)
					break
				}
				prevEnd = child.Span.End
			}
		default:
			fail = fmt.Errorf("node %d: unknown kind %d", id, node.Kind)
		}
		return fail == nil
	})
	return fail
}
