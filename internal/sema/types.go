package sema

import (
	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
)

// visitType is the type-legality pass for one node: every flag and every
// pair of flags must be legal in the active dialect.
func (c *checker) visitType(n *ast.Node, st state) bool {
	if ok := n.Type.Check(c.ctx); ok != dialect.Any {
		if one := ok.IsOne(); one != dialect.None && !c.ctx.Is(one) {
			return c.fail(diag.LngIllegal, n.Span, `"%s" is illegal%s`, n.Type.ErrorName(c.ctx), c.ctx.Which(ok))
		}
		return c.fail(diag.LngIllegal, n.Span, `"%s" is illegal for %s%s`,
			n.Type.ErrorName(c.ctx), c.kind(n), c.ctx.Which(ok))
	}

	if n.Is(ast.AnyFunctionLike) {
		ret := c.get(n.Of())
		if n.Type.Has(ctype.StoreConstexpr) && !c.ctx.Is(dialect.ConstexprVoidFunc) &&
			c.tree.IsBuiltinAny(ret, ctype.BaseVoid) {
			return c.fail(diag.LngIllegal, spanOr(ret, n), "%s %s returning void is illegal%s",
				ctype.StoreConstexpr.Name(c.ctx), c.kind(n), c.ctx.Which(dialect.ConstexprVoidFunc))
		}
	} else {
		if n.Kind != ast.KindArray && n.Type.Has(ctype.QualNonEmpty) {
			return c.kindNotTid(diag.LngIllegal, n, ctype.QualNonEmpty, dialect.None)
		}
		if c.ctx.IsC() && n.Type.Has(ctype.StoreConstexpr) {
			if bad := n.Type.Store.Only(ctype.NotConstexprCOnly); !bad.Empty() {
				return c.fail(diag.LngIllegal, n.Span, `"%s %s" is illegal in C`,
					ctype.StoreConstexpr.Name(c.ctx), bad.Name(c.ctx))
			}
		}
		if bad := n.Type.Attr.Without(ctype.AttrObject); !bad.Empty() {
			return c.kindNotTid(diag.LngIllegal, n, bad, dialect.None)
		}
	}

	if raw := c.tree.IsTidAny(n, ctype.QualRestrict); raw != nil && !c.checkRestrict(n, raw) {
		return false
	}

	if n.Is(ast.AnyFunctionLike) {
		for _, id := range n.Params() {
			if !c.walk(id, state{fn: n}, c.visitType) {
				return false
			}
		}
	}
	return true
}

// checkRestrict: only pointers to objects may be restrict; a restrict member
// function or array parameter is fine.
func (c *checker) checkRestrict(n, raw *ast.Node) bool {
	switch raw.Kind {
	case ast.KindPointer:
		to := c.tree.Untypedef(c.get(raw.Of()))
		if to != nil && !to.Is(ast.AnyObject) {
			return c.fail(diag.LngIllegal, n.Span, "pointer to %s can not be %s",
				c.kind(to), ctype.QualRestrict.Name(c.ctx))
		}
	case ast.KindArray, ast.KindFunction, ast.KindOperator,
		ast.KindReference, ast.KindRvalueReference, ast.KindUdefConv:
	default:
		return c.kindNotTid(diag.LngIllegal, n, ctype.QualRestrict, dialect.None)
	}
	return true
}
