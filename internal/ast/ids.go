package ast

// NodeID - индекс узла в Tree (1-based).
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
