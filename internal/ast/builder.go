package ast

import (
	"cdecl/internal/ctype"
	"cdecl/internal/operator"
	"cdecl/internal/source"
)

// Конструкторы узлов. Каждый возвращает NodeID нового узла; дети должны быть
// созданы раньше родителя.

func (t *Tree) NewBuiltin(sp source.Span, typ ctype.Type) NodeID {
	return t.Add(Node{Span: sp, Type: typ, Body: &Builtin{}})
}

func (t *Tree) NewBitInt(sp source.Span, typ ctype.Type, width uint) NodeID {
	return t.Add(Node{Span: sp, Type: typ.With(ctype.BaseBitInt), Body: &Builtin{BitIntWidth: width}})
}

func (t *Tree) NewName(sp source.Span, name ScopedName) NodeID {
	return t.Add(Node{Span: sp, Name: name, Body: &NameOnly{}})
}

func (t *Tree) NewVariadic(sp source.Span) NodeID {
	return t.Add(Node{Span: sp, Body: &Variadic{}})
}

func (t *Tree) NewEnum(sp source.Span, typ ctype.Type, tag ScopedName, of NodeID) NodeID {
	return t.Add(Node{Span: sp, Type: typ.With(ctype.BaseEnum), Body: &Enum{Tag: tag, Of: of}})
}

// NewClass creates a class, struct or union node; typ must carry the keyword.
func (t *Tree) NewClass(sp source.Span, typ ctype.Type, tag ScopedName) NodeID {
	return t.Add(Node{Span: sp, Type: typ, Body: &ClassStructUnion{Tag: tag}})
}

// NewTypedef creates a use of the alias named alias whose definition is def.
func (t *Tree) NewTypedef(sp source.Span, typ ctype.Type, alias ScopedName, def NodeID) NodeID {
	return t.Add(Node{Span: sp, Type: typ.With(ctype.BaseTypedef), Body: &Typedef{For: def, Alias: alias}})
}

func (t *Tree) NewArray(sp source.Span, typ ctype.Type, of NodeID, size ArraySize) NodeID {
	return t.Add(Node{Span: sp, Type: typ, Body: &Array{Of: of, Size: size}})
}

func (t *Tree) NewPointer(sp source.Span, typ ctype.Type, to NodeID) NodeID {
	return t.Add(Node{Span: sp, Type: typ, Body: &Pointer{To: to}})
}

func (t *Tree) NewReference(sp source.Span, typ ctype.Type, to NodeID) NodeID {
	return t.Add(Node{Span: sp, Type: typ, Body: &Reference{To: to}})
}

func (t *Tree) NewRvalueReference(sp source.Span, typ ctype.Type, to NodeID) NodeID {
	return t.Add(Node{Span: sp, Type: typ, Body: &RvalueReference{To: to}})
}

func (t *Tree) NewPointerToMember(sp source.Span, typ ctype.Type, class ScopedName, to NodeID) NodeID {
	return t.Add(Node{Span: sp, Type: typ, Body: &PointerToMember{To: to, Class: class}})
}

func (t *Tree) NewFunction(sp source.Span, typ ctype.Type, ret NodeID, params ...NodeID) NodeID {
	return t.Add(Node{Span: sp, Type: typ, Body: &Function{Func: Func{Ret: ret, Params: params}}})
}

func (t *Tree) NewBlock(sp source.Span, typ ctype.Type, ret NodeID, params ...NodeID) NodeID {
	return t.Add(Node{Span: sp, Type: typ, Body: &Block{Func: Func{Ret: ret, Params: params}}})
}

func (t *Tree) NewOperator(sp source.Span, typ ctype.Type, op operator.ID, member Member, ret NodeID, params ...NodeID) NodeID {
	return t.Add(Node{Span: sp, Type: typ, Body: &Operator{
		Func: Func{Ret: ret, Params: params, Member: member},
		Op:   op,
	}})
}

func (t *Tree) NewConstructor(sp source.Span, typ ctype.Type, params ...NodeID) NodeID {
	return t.Add(Node{Span: sp, Type: typ, Body: &Constructor{Func: Func{Params: params}}})
}

func (t *Tree) NewDestructor(sp source.Span, typ ctype.Type) NodeID {
	return t.Add(Node{Span: sp, Type: typ, Body: &Destructor{}})
}

func (t *Tree) NewUdefConv(sp source.Span, typ ctype.Type, to NodeID) NodeID {
	return t.Add(Node{Span: sp, Type: typ, Body: &UdefConv{Func: Func{Ret: to}}})
}

func (t *Tree) NewUdefLit(sp source.Span, typ ctype.Type, ret NodeID, params ...NodeID) NodeID {
	return t.Add(Node{Span: sp, Type: typ, Body: &UdefLit{Func: Func{Ret: ret, Params: params}}})
}

func (t *Tree) NewCast(sp source.Span, kind CastKind, to NodeID) NodeID {
	return t.Add(Node{Span: sp, Body: &Cast{Kind: kind, To: to}})
}

// SetName names a node.
func (t *Tree) SetName(id NodeID, name ScopedName) NodeID {
	t.Get(id).Name = name
	return id
}

// SetMember marks a function-like as (non-)member.
func (t *Tree) SetMember(id NodeID, m Member) NodeID {
	if f := t.Get(id).FuncOf(); f != nil {
		f.Member = m
	}
	return id
}
