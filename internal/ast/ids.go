package ast

// NodeID indexes a node inside a Tree's arena. 0 is reserved for "no node".
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
