package sema

import (
	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
)

// visitError is the structural pass for one node.
func (c *checker) visitError(n *ast.Node, st state) bool {
	if !c.checkAlign(n) {
		return false
	}

	switch n.Kind {
	case ast.KindArray:
		if !c.checkArray(n, st) {
			return false
		}
	case ast.KindBuiltin:
		if !c.checkBuiltin(n, st) {
			return false
		}
	case ast.KindCast:
		if !c.checkCast(n) {
			return false
		}
	case ast.KindEnum:
		if !c.checkEnum(n) {
			return false
		}
	case ast.KindOperator, ast.KindBlock, ast.KindFunction,
		ast.KindConstructor, ast.KindDestructor:
		if !c.checkFunctionLike(n) {
			return false
		}
	case ast.KindPointerToMember:
		if !c.ctx.Is(dialect.PointersToMember) {
			return c.unsupportedKind(n, dialect.PointersToMember)
		}
		if !c.checkPointer(n) {
			return false
		}
	case ast.KindPointer:
		if !c.checkPointer(n) {
			return false
		}
	case ast.KindRvalueReference:
		if !c.ctx.Is(dialect.RvalueReferences) {
			return c.unsupportedKind(n, dialect.RvalueReferences)
		}
		if !c.checkReference(n) {
			return false
		}
	case ast.KindReference:
		if !c.ctx.Is(dialect.References) {
			return c.unsupportedKind(n, dialect.References)
		}
		if !c.checkReference(n) {
			return false
		}
	case ast.KindTypedef:
		// Определение алиаса не является "of"-ребёнком, поэтому проверяем его
		// отдельно, как будто квалификаторы стоят на нём самом.
		sub, pointee := c.subTypedef(n)
		if sub == nil {
			return true
		}
		return c.visitError(sub, state{pointee: pointee})
	case ast.KindUdefConv:
		if !c.checkUdefConv(n) {
			return false
		}
	case ast.KindUdefLit:
		if !(c.checkReturn(n) && c.checkFunc(n) && c.checkUdefLitParams(n)) {
			return false
		}
	case ast.KindClassStructUnion, ast.KindName, ast.KindVariadic, ast.KindPlaceholder:
	}

	if n.Kind != ast.KindFunction && n.Type.Has(ctype.StoreConsteval) {
		return c.fail(diag.SemStorage, n.Span, "only functions can be consteval")
	}
	return true
}

// subTypedef returns a copy of the definition behind a typedef use with the
// use's storage and qualifiers in place of its own "typedef".
func (c *checker) subTypedef(n *ast.Node) (*ast.Node, bool) {
	td, ok := n.Body.(*ast.Typedef)
	if !ok {
		return nil, false
	}
	def := c.get(td.For)
	if def == nil {
		return nil, false
	}
	sub := *def
	sub.Type.Store = sub.Type.Store.Without(ctype.StoreTypedef).With(n.Type.Store)
	sub.Parent = n.Parent
	return &sub, c.tree.ParentIs(n, ast.KindPointer)
}

func (c *checker) unsupportedKind(n *ast.Node, legal dialect.Set) bool {
	return c.fail(diag.LngUnsupportedKind, n.Span, "%s not supported%s", c.kind(n), c.ctx.Which(legal))
}

// kindNotTid reports "<kind> can not be <tid>".
func (c *checker) kindNotTid(code diag.Code, n *ast.Node, tid ctype.Tid, legal dialect.Set) bool {
	return c.fail(code, n.Span, "%s can not be %s%s", c.kind(n), tid.Name(c.ctx), c.ctx.Which(legal))
}

// checkFunctionLike covers operators, blocks, functions, constructors and
// destructors; each kind takes the checks of the kinds after it.
func (c *checker) checkFunctionLike(n *ast.Node) bool {
	switch n.Kind {
	case ast.KindOperator:
		if !c.checkOperator(n) {
			return false
		}
		fallthrough
	case ast.KindBlock, ast.KindFunction:
		if !c.checkReturn(n) {
			return false
		}
		fallthrough
	case ast.KindConstructor:
		if !(c.checkFunc(n) && c.checkParams(n)) {
			return false
		}
	}

	if n.Is(ast.KindConstructor.Set()|ast.KindDestructor.Set()) && !c.checkCtorDtor(n) {
		return false
	}

	ok := ctype.FuncLikeCPP
	if c.ctx.IsC() {
		ok = ctype.FuncC
	}
	if bad := n.Type.Store.Without(ok); !bad.Empty() {
		return c.kindNotTid(diag.SemStorage, n, bad, dialect.None)
	}

	if n.Type.Has(ctype.StoreThrow) && !c.ctx.Is(dialect.Throw) {
		return c.failHint(diag.LngUnsupported, n.Span, `"noexcept"`,
			`"throw" not supported%s`, c.ctx.Which(dialect.Throw))
	}
	return true
}
