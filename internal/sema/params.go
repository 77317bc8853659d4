package sema

import (
	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
	"cdecl/internal/operator"
)

func (c *checker) checkParams(n *ast.Node) bool {
	if !c.ctx.Is(dialect.Prototypes) {
		return c.checkParamsKNR(n)
	}

	var variadic, void *ast.Node
	params := n.Params()
	for i, id := range params {
		p := c.get(id)

		if i > 0 {
			if c.tree.IsTidAny(p, ctype.StoreThis) != nil {
				return c.fail(diag.SemParam, p.Span, `"this" can be only first parameter`)
			}
			if void != nil {
				return c.onlyVoid(void) // R f(void, T)
			}
		}
		if p.Name.Count() > 1 {
			return c.fail(diag.SemParam, p.Span, "parameter names can not be scoped")
		}

		raw := c.tree.Untypedef(p)
		if raw.Kind != ast.KindArray {
			if bad := p.Type.Store.Only(ctype.AnyStorage).Without(ctype.FuncLikeParam); !bad.Empty() {
				return c.fail(diag.SemParam, p.Span, "%s parameters can not be %s", c.kind(n), bad.Name(c.ctx))
			}
		}

		switch raw.Kind {
		case ast.KindBuiltin:
			if raw.Type.Has(ctype.BaseAuto) && !c.ctx.Is(dialect.AutoParameters) {
				return c.fail(diag.LngUnsupported, p.Span, `parameters can not be "auto"%s`, c.ctx.Which(dialect.AutoParameters))
			}
			if raw.Type.Has(ctype.BaseVoid) {
				// Единственный безымянный и неквалифицированный void - это f(void).
				if !p.Name.Empty() {
					return c.fail(diag.SemParam, p.Span, "void as parameter can not have a name")
				}
				if _, qual := c.tree.UntypedefQual(p); qual.Has(ctype.CV) {
					return c.fail(diag.SemParam, p.Span, "void as parameter can not be %s", qual.Only(ctype.CV).Name(c.ctx))
				}
				void = p
				if i > 0 {
					return c.onlyVoid(void) // R f(T, void)
				}
				continue
			}
			if p.BitWidth > 0 {
				return c.fail(diag.SemParam, p.Span, "parameters can not have bit-field widths")
			}
		case ast.KindName:
			// C23 запретил определения функций в стиле K&R.
			if !c.ctx.Is(dialect.KNRFuncDefs) {
				return c.fail(diag.LngIllegal, p.Span, "type specifier required%s", c.ctx.Which(dialect.KNRFuncDefs))
			}
		case ast.KindVariadic:
			if op := n.OperatorID(); n.Kind == ast.KindOperator && op != operator.Parens {
				return c.fail(diag.SemParam, p.Span, "operator %s can not have a variadic parameter", op)
			}
			if i != len(params)-1 {
				return c.fail(diag.SemParam, p.Span, "variadic specifier must be last")
			}
			variadic = p
			continue
		}

		if !c.checkErrors(id, state{fn: n}) {
			return false
		}
	}

	if variadic != nil && len(params) == 1 && !c.ctx.Is(dialect.VariadicOnly) {
		return c.fail(diag.LngUnsupported, variadic.Span, "variadic specifier can not be only parameter%s",
			c.ctx.Which(dialect.VariadicOnly))
	}
	return c.checkParamsRedef(n)
}

func (c *checker) onlyVoid(void *ast.Node) bool {
	return c.fail(diag.SemParam, void.Span, `"void" must be only parameter if specified`)
}

// checkParamsKNR: before prototypes a parameter list holds names only.
func (c *checker) checkParamsKNR(n *ast.Node) bool {
	for _, id := range n.Params() {
		p := c.get(id)
		switch p.Kind {
		case ast.KindName:
		case ast.KindVariadic:
			return c.fail(diag.LngUnsupported, p.Span, "ellipsis not supported%s", c.ctx.Which(dialect.Prototypes))
		default:
			return c.fail(diag.LngUnsupported, p.Span, "function prototypes not supported%s", c.ctx.Which(dialect.Prototypes))
		}
	}
	return c.checkParamsRedef(n)
}

func (c *checker) checkParamsRedef(n *ast.Node) bool {
	params := n.Params()
	for i, id := range params {
		p := c.get(id)
		if p.Name.Empty() {
			continue
		}
		for _, prev := range params[:i] {
			if c.get(prev).Name.Equal(p.Name) {
				return c.fail(diag.SemRedefinition, p.Span, `"%s": redefinition of parameter`, p.Name.Full())
			}
		}
	}
	return true
}
