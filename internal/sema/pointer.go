package sema

import (
	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
)

// checkPointer covers pointers and pointers to member.
func (c *checker) checkPointer(n *ast.Node) bool {
	to := c.get(n.Of())
	raw := c.tree.Untypedef(to)
	if raw == nil {
		return true
	}

	switch raw.Kind {
	case ast.KindReference, ast.KindRvalueReference:
		return c.failHint(diag.SemPointer, n.Span, c.refHint(raw, to),
			"%s to %s is illegal", c.kind(n), c.kind(raw))
	case ast.KindBuiltin:
		if raw.Type.Has(ctype.BaseAuto) && !c.ctx.Is(dialect.AutoPointerTypes) {
			return c.fail(diag.LngUnsupported, n.Span, `"auto" with pointer declarator not supported%s`,
				c.ctx.Which(dialect.AutoPointerTypes))
		}
	}

	// Соглашения о вызове MSVC пишутся внутри скобок указателя на функцию,
	// но допустимы только когда указатель действительно на функцию.
	if msc := n.Type.Attr.Only(ctype.AnyMSCCall); !msc.Empty() && raw.Kind != ast.KindFunction {
		return c.fail(diag.SemPointer, n.Span, `"%s": can be used only for functions and pointers to function`,
			msc.Name(c.ctx))
	}

	if to.Type.Has(ctype.StoreRegister) {
		return c.fail(diag.SemPointer, n.Span, "pointer to register is illegal")
	}
	return true
}

// checkReference covers lvalue and rvalue references.
func (c *checker) checkReference(n *ast.Node) bool {
	if n.Type.Has(ctype.CV) {
		qual := n.Type.Store.Only(ctype.CV).Name(c.ctx)
		return c.failHint(diag.SemReference, n.Span, "reference to "+qual,
			"reference can not be %s", qual)
	}

	to := c.get(n.Of())
	raw := c.tree.Untypedef(to)
	if raw == nil {
		return true
	}
	switch raw.Kind {
	case ast.KindReference, ast.KindRvalueReference:
		return c.failHint(diag.SemReference, n.Span, c.refHint(raw, to),
			"%s to %s is illegal", c.kind(n), c.kind(raw))
	case ast.KindBuiltin:
		if raw.Type.Has(ctype.BaseVoid) {
			return c.failHint(diag.SemReference, n.Span, "pointer to void", "reference to void is illegal")
		}
	}
	return true
}

// refHint suggests what the user probably meant by a pointer or reference to
// a reference: the reference turned inside out.
func (c *checker) refHint(ref, to *ast.Node) string {
	if ref != to {
		return ""
	}
	if c.input == FromEnglish {
		return c.kind(ref) + " to pointer"
	}
	if ref.Kind == ast.KindRvalueReference {
		return `"*&&"`
	}
	return `"*&"`
}
