package ast

import "cdecl/internal/dialect"

// Kind is the structural category of a declaration node.
type Kind uint8

const (
	KindPlaceholder Kind = iota
	KindBuiltin
	KindEnum
	KindClassStructUnion
	KindName
	KindTypedef
	KindVariadic
	KindArray
	KindBlock
	KindFunction
	KindPointer
	KindOperator
	KindPointerToMember
	KindReference
	KindRvalueReference
	KindConstructor
	KindDestructor
	KindUdefConv
	KindUdefLit
	KindCast
	numKinds
)

// Kinds is a set of Kind.
type Kinds uint32

// Set returns the singleton set of k.
func (k Kind) Set() Kinds { return 1 << k }

// In reports whether k belongs to ks.
func (k Kind) In(ks Kinds) bool { return k.Set()&ks != 0 }

func kinds(ks ...Kind) Kinds {
	var out Kinds
	for _, k := range ks {
		out |= k.Set()
	}
	return out
}

var (
	AnyPointer   = kinds(KindPointer, KindPointerToMember)
	AnyReference = kinds(KindReference, KindRvalueReference)
	AnyECSU      = kinds(KindEnum, KindClassStructUnion)

	// Kinds that declare something with a parameter list.
	AnyFunctionLike = kinds(KindBlock, KindFunction, KindOperator,
		KindConstructor, KindDestructor, KindUdefConv, KindUdefLit)

	// Kinds that may have a bit-field width.
	AnyBitField = kinds(KindBuiltin, KindEnum, KindTypedef)

	// Kinds that denote objects (things that can be aligned or restricted).
	AnyObject = AnyPointer | AnyReference | AnyECSU |
		kinds(KindArray, KindBuiltin, KindTypedef)

	// Kinds whose "of" child is visited when walking down.
	AnyParent = AnyPointer | AnyReference | AnyFunctionLike |
		kinds(KindArray, KindEnum, KindCast)
)

var kindNames = [numKinds]string{
	KindPlaceholder:      "placeholder",
	KindBuiltin:          "built-in type",
	KindEnum:             "enum",
	KindClassStructUnion: "class, struct, or union",
	KindName:             "name",
	KindTypedef:          "typedef",
	KindVariadic:         "variadic",
	KindArray:            "array",
	KindBlock:            "block",
	KindFunction:         "function",
	KindPointer:          "pointer",
	KindOperator:         "operator",
	KindPointerToMember:  "pointer to member",
	KindReference:        "reference",
	KindRvalueReference:  "rvalue reference",
	KindConstructor:      "constructor",
	KindDestructor:       "destructor",
	KindUdefConv:         "user-defined conversion operator",
	KindUdefLit:          "user-defined literal",
	KindCast:             "cast",
}

// Name returns the human name of k; C has no classes, so there a
// class/struct/union is a "struct or union".
func (k Kind) Name(ctx *dialect.Context) string {
	if k == KindClassStructUnion && ctx != nil && ctx.IsC() {
		return "struct or union"
	}
	if k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

func (k Kind) String() string { return k.Name(nil) }
