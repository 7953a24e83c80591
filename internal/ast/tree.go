package ast

import "vlisp/internal/source"

// Tree is a finished syntax tree for one file. Root is always a list,
// even for an empty file.
type Tree struct {
	File  source.FileID
	Root  NodeID
	Nodes *Nodes
}

func (t *Tree) Get(id NodeID) *Node {
	return t.Nodes.Get(id)
}

func (t *Tree) RootNode() *Node {
	return t.Nodes.Get(t.Root)
}

func (t *Tree) Len() uint32 {
	return t.Nodes.Len()
}

// Walk visits nodes in preorder with their depth (root is depth 0).
// Returning false from fn stops the walk. The traversal keeps its own
// stack, so tree depth never translates into call depth.
func (t *Tree) Walk(fn func(id NodeID, node *Node, depth int) bool) {
	if !t.Root.IsValid() {
		return
	}
	type frame struct {
		id    NodeID
		depth int
	}
	stack := []frame{{t.Root, 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.Nodes.Get(top.id)
		if !fn(top.id, node, top.depth) {
			return
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node.Children[i], top.depth + 1})
		}
	}
}
