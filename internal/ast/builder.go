package ast

import (
	"vlisp/internal/source"
	"vlisp/internal/token"
)

type Hints struct{ Nodes uint }

// Builder accumulates nodes for one file's tree.
type Builder struct {
	Nodes *Nodes
	file  source.FileID
}

func NewBuilder(file source.FileID, hints Hints) *Builder {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 8
	}
	return &Builder{
		Nodes: NewNodes(hints.Nodes),
		file:  file,
	}
}

func (b *Builder) NewList(sp source.Span) NodeID {
	return b.Nodes.NewList(sp)
}

func (b *Builder) NewAtom(tok token.Token) NodeID {
	return b.Nodes.NewAtom(tok)
}

func (b *Builder) PushChild(parent, child NodeID) {
	node := b.Nodes.Get(parent)
	node.Children = append(node.Children, child)
}

// SetSpan finalizes a list's span once its closing paren is known.
func (b *Builder) SetSpan(id NodeID, sp source.Span) {
	b.Nodes.Get(id).Span = sp
}

func (b *Builder) Finish(root NodeID) *Tree {
	return &Tree{
		File:  b.file,
		Root:  root,
		Nodes: b.Nodes,
	}
}
