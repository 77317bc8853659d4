package ast

import (
	"cdecl/internal/ctype"
	"cdecl/internal/operator"
	"cdecl/internal/source"
)

// Node is one declaration node. Kind-specific data lives in Body; the
// variant always matches Kind.
type Node struct {
	Kind   Kind
	Type   ctype.Type
	Name   ScopedName
	Span   source.Span
	Parent NodeID
	Align  Align
	// BitWidth is the bit-field width of a builtin, enum or typedef; 0 if none.
	BitWidth uint
	Body     Body
}

// Body is the closed set of kind-specific payloads.
type Body interface{ isBody() }

type AlignKind uint8

const (
	AlignNone AlignKind = iota
	AlignBytes
	AlignType
)

// Align is an alignas specifier: either a byte count or a type.
type Align struct {
	Kind  AlignKind
	Bytes uint
	Type  NodeID
	Span  source.Span
}

type (
	Placeholder struct{}
	NameOnly    struct{}
	Variadic    struct{}

	Builtin struct {
		// BitIntWidth is N of _BitInt(N).
		BitIntWidth uint
	}

	Enum struct {
		Tag ScopedName
		// Of is the fixed underlying type, if any.
		Of NodeID
	}

	ClassStructUnion struct {
		Tag ScopedName
	}

	// Typedef refers to the alias Alias, defined as For.
	Typedef struct {
		For   NodeID
		Alias ScopedName
	}

	Array struct {
		Of   NodeID
		Size ArraySize
	}

	Pointer struct{ To NodeID }

	Reference struct{ To NodeID }

	RvalueReference struct{ To NodeID }

	PointerToMember struct {
		To    NodeID
		Class ScopedName
	}

	Function struct{ Func }
	Block    struct{ Func }

	Operator struct {
		Func
		Op operator.ID
	}

	Constructor struct{ Func }
	Destructor  struct{ Func }

	// UdefConv converts to Func.Ret.
	UdefConv struct{ Func }
	UdefLit  struct{ Func }

	Cast struct {
		Kind CastKind
		To   NodeID
	}
)

func (*Placeholder) isBody()      {}
func (*NameOnly) isBody()         {}
func (*Variadic) isBody()         {}
func (*Builtin) isBody()          {}
func (*Enum) isBody()             {}
func (*ClassStructUnion) isBody() {}
func (*Typedef) isBody()          {}
func (*Array) isBody()            {}
func (*Pointer) isBody()          {}
func (*Reference) isBody()        {}
func (*RvalueReference) isBody()  {}
func (*PointerToMember) isBody()  {}
func (*Function) isBody()         {}
func (*Block) isBody()            {}
func (*Operator) isBody()         {}
func (*Constructor) isBody()      {}
func (*Destructor) isBody()       {}
func (*UdefConv) isBody()         {}
func (*UdefLit) isBody()          {}
func (*Cast) isBody()             {}

type ArraySizeKind uint8

const (
	SizeEmpty ArraySizeKind = iota // []
	SizeInt                        // [N]
	SizeNamed                      // [n]
	SizeVLA                        // [*]
)

type ArraySize struct {
	Kind ArraySizeKind
	Int  uint
	Name string
}

// Member records whether a function-like was declared a member, a
// non-member, or neither.
type Member uint8

const (
	MemberUnspecified Member = 0
	MemberMember      Member = 1 << 0
	MemberNonMember   Member = 1 << 1
)

// Func is the part shared by every function-like kind.
type Func struct {
	Params []NodeID
	Ret    NodeID
	Member Member
}

type CastKind uint8

const (
	CastC CastKind = iota
	CastConst
	CastDynamic
	CastReinterpret
	CastStatic
)

func (k CastKind) String() string {
	switch k {
	case CastConst:
		return "const"
	case CastDynamic:
		return "dynamic"
	case CastReinterpret:
		return "reinterpret"
	case CastStatic:
		return "static"
	}
	return "C"
}

// FuncOf returns the function part of n, or nil if n is not function-like.
func (n *Node) FuncOf() *Func {
	switch b := n.Body.(type) {
	case *Function:
		return &b.Func
	case *Block:
		return &b.Func
	case *Operator:
		return &b.Func
	case *Constructor:
		return &b.Func
	case *Destructor:
		return &b.Func
	case *UdefConv:
		return &b.Func
	case *UdefLit:
		return &b.Func
	}
	return nil
}

// Of returns the child a downward walk continues with: array element,
// pointee, return type, enum underlying type or cast target.
func (n *Node) Of() NodeID {
	switch b := n.Body.(type) {
	case *Array:
		return b.Of
	case *Pointer:
		return b.To
	case *Reference:
		return b.To
	case *RvalueReference:
		return b.To
	case *PointerToMember:
		return b.To
	case *Enum:
		return b.Of
	case *Cast:
		return b.To
	}
	if f := n.FuncOf(); f != nil {
		return f.Ret
	}
	return NoNodeID
}

// Params returns the parameters of a function-like node.
func (n *Node) Params() []NodeID {
	if f := n.FuncOf(); f != nil {
		return f.Params
	}
	return nil
}

// OperatorID returns the operator of an operator node, operator.None otherwise.
func (n *Node) OperatorID() operator.ID {
	if b, ok := n.Body.(*Operator); ok {
		return b.Op
	}
	return operator.None
}

// Is reports whether n has one of the kinds in ks.
func (n *Node) Is(ks Kinds) bool { return n != nil && n.Kind.In(ks) }
