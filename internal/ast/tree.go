package ast

import "slices"

// Tree owns the nodes of one or more declarations.
type Tree struct {
	Nodes *Arena[Node]
}

func NewTree(capHint uint) *Tree {
	if capHint == 0 {
		capHint = 1 << 5
	}
	return &Tree{Nodes: NewArena[Node](capHint)}
}

// Get returns the node for id, nil for NoNodeID.
func (t *Tree) Get(id NodeID) *Node {
	return t.Nodes.Get(uint32(id))
}

func (t *Tree) Len() uint32 { return t.Nodes.Len() }

// KindOf returns the kind a body variant belongs to.
func KindOf(b Body) Kind {
	switch b.(type) {
	case *Builtin:
		return KindBuiltin
	case *Enum:
		return KindEnum
	case *ClassStructUnion:
		return KindClassStructUnion
	case *NameOnly:
		return KindName
	case *Typedef:
		return KindTypedef
	case *Variadic:
		return KindVariadic
	case *Array:
		return KindArray
	case *Block:
		return KindBlock
	case *Function:
		return KindFunction
	case *Pointer:
		return KindPointer
	case *Operator:
		return KindOperator
	case *PointerToMember:
		return KindPointerToMember
	case *Reference:
		return KindReference
	case *RvalueReference:
		return KindRvalueReference
	case *Constructor:
		return KindConstructor
	case *Destructor:
		return KindDestructor
	case *UdefConv:
		return KindUdefConv
	case *UdefLit:
		return KindUdefLit
	case *Cast:
		return KindCast
	}
	return KindPlaceholder
}

// Add stores n, deriving its kind from the body, and makes it the parent of
// its "of" child and of its parameters. A typedef's definition and an
// alignas type stay orphans.
func (t *Tree) Add(n Node) NodeID {
	n.Kind = KindOf(n.Body)
	if n.Body == nil {
		n.Body = &Placeholder{}
	}
	id := NodeID(t.Nodes.Allocate(n))
	node := t.Get(id)
	if of := node.Of(); of.IsValid() {
		t.Get(of).Parent = id
	}
	for _, p := range node.Params() {
		if pn := t.Get(p); pn != nil {
			pn.Parent = id
		}
	}
	return id
}

// Walk visits id and then its "of" chain until fn returns true or the chain
// ends. It returns the node fn stopped at.
func (t *Tree) Walk(id NodeID, fn func(n *Node) bool) *Node {
	for n := t.Get(id); n != nil; {
		if fn(n) {
			return n
		}
		if !n.Is(AnyParent) {
			break
		}
		n = t.Get(n.Of())
	}
	return nil
}

// Import deep-copies the subtree of src rooted at id into t and returns the
// new root. Parents inside the copy are rewired; the root becomes an orphan.
func (t *Tree) Import(src *Tree, id NodeID) NodeID {
	if !id.IsValid() {
		return NoNodeID
	}
	n := *src.Get(id)
	n.Parent = NoNodeID
	n.Name = slices.Clone(n.Name)
	n.Body = t.cloneBody(src, n.Body)
	if n.Align.Kind == AlignType {
		n.Align.Type = t.Import(src, n.Align.Type)
	}
	return t.Add(n)
}

func (t *Tree) importFunc(src *Tree, f Func) Func {
	out := Func{Ret: t.Import(src, f.Ret), Member: f.Member}
	for _, p := range f.Params {
		out.Params = append(out.Params, t.Import(src, p))
	}
	return out
}

func (t *Tree) cloneBody(src *Tree, b Body) Body {
	switch b := b.(type) {
	case *Builtin:
		c := *b
		return &c
	case *Enum:
		return &Enum{Tag: slices.Clone(b.Tag), Of: t.Import(src, b.Of)}
	case *ClassStructUnion:
		return &ClassStructUnion{Tag: slices.Clone(b.Tag)}
	case *NameOnly:
		return &NameOnly{}
	case *Variadic:
		return &Variadic{}
	case *Typedef:
		return &Typedef{For: t.Import(src, b.For), Alias: slices.Clone(b.Alias)}
	case *Array:
		return &Array{Of: t.Import(src, b.Of), Size: b.Size}
	case *Pointer:
		return &Pointer{To: t.Import(src, b.To)}
	case *Reference:
		return &Reference{To: t.Import(src, b.To)}
	case *RvalueReference:
		return &RvalueReference{To: t.Import(src, b.To)}
	case *PointerToMember:
		return &PointerToMember{To: t.Import(src, b.To), Class: slices.Clone(b.Class)}
	case *Function:
		return &Function{Func: t.importFunc(src, b.Func)}
	case *Block:
		return &Block{Func: t.importFunc(src, b.Func)}
	case *Operator:
		return &Operator{Func: t.importFunc(src, b.Func), Op: b.Op}
	case *Constructor:
		return &Constructor{Func: t.importFunc(src, b.Func)}
	case *Destructor:
		return &Destructor{Func: t.importFunc(src, b.Func)}
	case *UdefConv:
		return &UdefConv{Func: t.importFunc(src, b.Func)}
	case *UdefLit:
		return &UdefLit{Func: t.importFunc(src, b.Func)}
	case *Cast:
		return &Cast{Kind: b.Kind, To: t.Import(src, b.To)}
	}
	return &Placeholder{}
}
