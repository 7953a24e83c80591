package ast

import (
	"vlisp/internal/source"
	"vlisp/internal/token"
)

type NodeKind uint8

const (
	NodeList NodeKind = iota
	NodeAtom
)

func (k NodeKind) String() string {
	switch k {
	case NodeList:
		return "list"
	case NodeAtom:
		return "atom"
	default:
		return "unknown"
	}
}

// Node is one tree cell. Lists own an ordered child slice; atoms wrap
// the token they were built from. A list's span runs from its opening
// paren through its closing paren; an atom's span is its token's span.
type Node struct {
	Kind     NodeKind
	Span     source.Span
	Tok      token.Token
	Children []NodeID
}

type Nodes struct {
	Arena *Arena[Node]
}

func NewNodes(capHint uint) *Nodes {
	return &Nodes{
		Arena: NewArena[Node](capHint),
	}
}

func (n *Nodes) NewList(sp source.Span) NodeID {
	return NodeID(n.Arena.Allocate(Node{
		Kind: NodeList,
		Span: sp,
	}))
}

func (n *Nodes) NewAtom(tok token.Token) NodeID {
	return NodeID(n.Arena.Allocate(Node{
		Kind: NodeAtom,
		Span: tok.Span,
		Tok:  tok,
	}))
}

func (n *Nodes) Get(id NodeID) *Node {
	return n.Arena.Get(uint32(id))
}

func (n *Nodes) Len() uint32 {
	return n.Arena.Len()
}
