package sema

import (
	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
)

func (c *checker) checkCast(n *ast.Node) bool {
	cast := n.Body.(*ast.Cast)
	to := c.get(cast.To)
	if to == nil {
		return true
	}

	if s := c.tree.FindType(cast.To, ctype.AnyStorage); s != nil {
		return c.fail(diag.SemCast, to.Span, "can not cast into %s", s.Type.Store.Only(ctype.AnyStorage).Name(c.ctx))
	}
	if leaf := c.tree.Leaf(cast.To); c.tree.IsTidAny(leaf, ctype.BaseAuto) != nil {
		return c.fail(diag.SemCast, leaf.Span, `can not cast into "%s"`, leaf.Type.ErrorName(c.ctx))
	}

	raw := c.tree.Untypedef(to)
	switch raw.Kind {
	case ast.KindArray:
		if !n.Name.Empty() {
			return c.fail(diag.SemCast, n.Span, "arithmetic or pointer type expected")
		}
	case ast.KindFunction:
		return c.failHint(diag.SemCast, to.Span, "cast into pointer to function", "can not cast into %s", c.kind(to))
	}

	switch cast.Kind {
	case ast.CastConst:
		if !raw.Is(ast.AnyPointer | ast.AnyReference) {
			refs := "or reference"
			if c.ctx.Is(dialect.RvalueReferences) {
				refs = "reference, or rvalue reference"
			}
			return c.fail(diag.SemCast, to.Span, "const_cast must be to a pointer, pointer-to-member, %s", refs)
		}
	case ast.CastDynamic:
		if !c.tree.IsPtrToKindAny(raw, ast.KindClassStructUnion.Set()) &&
			!c.tree.IsRefToKindAny(raw, ast.KindClassStructUnion.Set()) {
			return c.fail(diag.SemCast, to.Span, "dynamic_cast must be to a pointer or reference to a class, struct, or union")
		}
	case ast.CastReinterpret:
		if c.tree.IsBuiltinAny(to, ctype.BaseVoid) {
			return c.fail(diag.SemCast, to.Span, "reinterpret_cast can not be to void")
		}
	}
	return true
}
