package ast

import (
	"cdecl/internal/ctype"
)

// Untypedef follows typedefs down to the type they name.
func (t *Tree) Untypedef(n *Node) *Node {
	for n != nil && n.Kind == KindTypedef {
		n = t.Get(n.Body.(*Typedef).For)
	}
	return n
}

// UntypedefQual is Untypedef that also collects the qualifiers found on the
// way, including those of the final node.
func (t *Tree) UntypedefQual(n *Node) (*Node, ctype.Tid) {
	qual := ctype.StoreNone
	for n != nil {
		qual = qual.With(n.Type.Store & ctype.AnyQualifier)
		if n.Kind != KindTypedef {
			break
		}
		n = t.Get(n.Body.(*Typedef).For)
	}
	return n, qual
}

// IsBuiltinAny reports whether n is, through typedefs, a builtin with any of
// the base flags of base.
func (t *Tree) IsBuiltinAny(n *Node, base ctype.Tid) bool {
	raw := t.Untypedef(n)
	return raw != nil && raw.Kind == KindBuiltin && raw.Type.Base.Has(base)
}

// IsTidAny returns the untypedef'd n if it has any flag of tid. Qualifiers
// picked up from typedefs count.
func (t *Tree) IsTidAny(n *Node, tid ctype.Tid) *Node {
	raw, qual := t.UntypedefQual(n)
	if raw == nil {
		return nil
	}
	typ := raw.Type
	typ.Store = typ.Store.With(qual)
	if typ.Has(tid) {
		return raw
	}
	return nil
}

// UnPointer returns what n points to (untypedef'd), or nil.
func (t *Tree) UnPointer(n *Node) *Node {
	raw := t.Untypedef(n)
	if raw == nil || raw.Kind != KindPointer {
		return nil
	}
	return t.Untypedef(t.Get(raw.Of()))
}

// UnReference returns what an lvalue or rvalue reference n refers to.
func (t *Tree) UnReference(n *Node) *Node {
	raw := t.Untypedef(n)
	if !raw.Is(AnyReference) {
		return nil
	}
	return t.Untypedef(t.Get(raw.Of()))
}

func (t *Tree) IsPtrToKindAny(n *Node, ks Kinds) bool {
	to := t.UnPointer(n)
	return to != nil && to.Kind.In(ks)
}

func (t *Tree) IsRefToKindAny(n *Node, ks Kinds) bool {
	raw := t.Untypedef(n)
	if raw == nil || raw.Kind != KindReference {
		return false
	}
	to := t.Untypedef(t.Get(raw.Of()))
	return to != nil && to.Kind.In(ks)
}

// IsPtrToTidAny returns the pointee of n if it has any flag of tid.
func (t *Tree) IsPtrToTidAny(n *Node, tid ctype.Tid) *Node {
	raw := t.Untypedef(n)
	if raw == nil || raw.Kind != KindPointer {
		return nil
	}
	return t.IsTidAny(t.Get(raw.Of()), tid)
}

// IsRefToTidAny returns the referee of an lvalue reference n if it has any
// flag of tid.
func (t *Tree) IsRefToTidAny(n *Node, tid ctype.Tid) *Node {
	raw := t.Untypedef(n)
	if raw == nil || raw.Kind != KindReference {
		return nil
	}
	return t.IsTidAny(t.Get(raw.Of()), tid)
}

// IsRefToConstClass returns the class an lvalue reference to const class
// refers to.
func (t *Tree) IsRefToConstClass(n *Node) *Node {
	to := t.IsRefToTidAny(n, ctype.AnyClass)
	if to == nil || t.IsTidAny(t.Get(t.Untypedef(n).Of()), ctype.QualConst) == nil {
		return nil
	}
	return to
}

// IsPtrTo reports whether n is a pointer whose pointee satisfies want.
func (t *Tree) IsPtrTo(n *Node, want func(*Node) bool) bool {
	to := t.UnPointer(n)
	return to != nil && want(to)
}

// IsSizeT reports whether n is, through typedefs, "unsigned long".
func (t *Tree) IsSizeT(n *Node) bool {
	raw := t.Untypedef(n)
	if raw == nil || raw.Kind != KindBuiltin {
		return false
	}
	b := raw.Type.Base
	return b.Has(ctype.BaseUnsigned) && b.Has(ctype.BaseLong) &&
		!b.Has(ctype.BaseLongLong.With(ctype.BaseShort))
}

// IsIntegral reports whether n is, through typedefs, an integral builtin.
func (t *Tree) IsIntegral(n *Node) bool {
	return t.IsBuiltinAny(n, ctype.AnyIntegral)
}

// FindName returns the first non-empty name walking down from id.
func (t *Tree) FindName(id NodeID) ScopedName {
	if n := t.Walk(id, func(n *Node) bool { return !n.Name.Empty() }); n != nil {
		return n.Name
	}
	return nil
}

// Leaf returns the last node of the "of" chain starting at id.
func (t *Tree) Leaf(id NodeID) *Node {
	var last *Node
	t.Walk(id, func(n *Node) bool {
		last = n
		return false
	})
	return last
}

// FindType returns the first node walking down from id whose type has any
// flag of tid.
func (t *Tree) FindType(id NodeID, tid ctype.Tid) *Node {
	return t.Walk(id, func(n *Node) bool { return n.Type.Has(tid) })
}

// Contains reports whether target is reachable from id walking down.
func (t *Tree) Contains(id NodeID, target *Node) bool {
	return t.Walk(id, func(n *Node) bool { return n == target }) != nil
}

// ParentIs reports whether n's parent has kind k.
func (t *Tree) ParentIs(n *Node, k Kind) bool {
	p := t.Get(n.Parent)
	return p != nil && p.Kind == k
}

// Equal compares two declarations structurally. Types are compared with
// ctype.Type.Equivalent; the names of the roots are ignored.
func Equal(t1 *Tree, id1 NodeID, t2 *Tree, id2 NodeID) bool {
	return equal(t1, t1.Get(id1), t2, t2.Get(id2), true)
}

func equal(t1 *Tree, a *Node, t2 *Tree, b *Node, root bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind != b.Kind || !a.Type.Equivalent(b.Type) || a.BitWidth != b.BitWidth {
		return false
	}
	if !root && !a.Name.Equal(b.Name) {
		return false
	}
	if a.Align.Kind != b.Align.Kind || a.Align.Bytes != b.Align.Bytes {
		return false
	}
	sub := func(x, y NodeID) bool { return equal(t1, t1.Get(x), t2, t2.Get(y), false) }
	switch ab := a.Body.(type) {
	case *Builtin:
		return ab.BitIntWidth == b.Body.(*Builtin).BitIntWidth
	case *Enum:
		bb := b.Body.(*Enum)
		return ab.Tag.Equal(bb.Tag) && sub(ab.Of, bb.Of)
	case *ClassStructUnion:
		return ab.Tag.Equal(b.Body.(*ClassStructUnion).Tag)
	case *Typedef:
		bb := b.Body.(*Typedef)
		return ab.Alias.Equal(bb.Alias) && sub(ab.For, bb.For)
	case *Array:
		bb := b.Body.(*Array)
		return ab.Size == bb.Size && sub(ab.Of, bb.Of)
	case *PointerToMember:
		bb := b.Body.(*PointerToMember)
		return ab.Class.Equal(bb.Class) && sub(ab.To, bb.To)
	case *Operator:
		if ab.Op != b.Body.(*Operator).Op {
			return false
		}
	case *Cast:
		bb := b.Body.(*Cast)
		return ab.Kind == bb.Kind && sub(ab.To, bb.To)
	}
	if fa, fb := a.FuncOf(), b.FuncOf(); fa != nil {
		if len(fa.Params) != len(fb.Params) || fa.Member != fb.Member {
			return false
		}
		for i := range fa.Params {
			if !sub(fa.Params[i], fb.Params[i]) {
				return false
			}
		}
		return sub(fa.Ret, fb.Ret)
	}
	return sub(a.Of(), b.Of())
}
