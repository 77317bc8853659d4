package sema

import (
	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
)

// MaxBitIntWidth is the largest N accepted in _BitInt(N).
const MaxBitIntWidth = 128

func (c *checker) checkBuiltin(n *ast.Node, st state) bool {
	b := n.Body.(*ast.Builtin)

	if n.Type.Base.Empty() && !c.ctx.Is(dialect.ImplicitInt) && !c.tree.ParentIs(n, ast.KindUdefConv) {
		return c.fail(diag.LngIllegal, n.Span, `implicit "int" is illegal%s`, c.ctx.Which(dialect.ImplicitInt))
	}
	if n.Type.Has(ctype.StoreInline) && !c.ctx.Is(dialect.InlineVariables) {
		return c.fail(diag.LngUnsupported, n.Span, "inline variables not supported%s", c.ctx.Which(dialect.InlineVariables))
	}

	if n.Type.Has(ctype.BaseBitInt) {
		minBits := uint(2)
		if n.Type.Has(ctype.BaseUnsigned) {
			minBits = 1
		}
		if b.BitIntWidth < minBits {
			return c.fail(diag.SemBuiltin, n.Span, "%s must be at least %d bit%s",
				n.Type.ErrorName(c.ctx), minBits, plural(minBits))
		}
		if b.BitIntWidth > MaxBitIntWidth {
			return c.fail(diag.SemBuiltin, n.Span, "%s can be at most %d bits",
				n.Type.ErrorName(c.ctx), MaxBitIntWidth)
		}
	} else if n.BitWidth > 0 {
		switch {
		case n.Name.Count() > 1:
			return c.fail(diag.SemBitField, n.Span, "scoped names can not have bit-field widths")
		case n.Type.Has(ctype.AttrNoUniqueAddress):
			return c.fail(diag.SemBitField, n.Span, "[[no_unique_address]] %ss can not have bit-field widths", c.kind(n))
		case !n.Type.Store.Empty():
			return c.fail(diag.SemBitField, n.Span, "%s can not have bit-field widths", n.Type.Store.Name(c.ctx))
		}
	}

	// void допустим только как: int f(void), (void)x, typedef void V,
	// extern void v (в C) и V *p.
	if n.Type.Has(ctype.BaseVoid) &&
		!n.Parent.IsValid() &&
		!n.Type.Has(ctype.StoreTypedef) &&
		!(c.ctx.IsC() && n.Type.Has(ctype.StoreExtern)) &&
		!st.pointee {
		return c.failHint(diag.SemBuiltin, n.Span, "pointer to void", "variable of void")
	}

	return c.checkEMC(n) && c.checkUPC(n)
}

func (c *checker) checkEMC(n *ast.Node) bool {
	if n.Type.Has(ctype.BaseSat) && !n.Type.Has(ctype.AnyEMC) {
		return c.fail(diag.SemBuiltin, n.Span, `"_Sat" requires either "_Accum" or "_Fract"`)
	}
	return true
}

func (c *checker) checkUPC(n *ast.Node) bool {
	if n.Type.Has(ctype.QualRelaxed.With(ctype.QualStrict)) && !n.Type.Has(ctype.QualShared) {
		return c.fail(diag.SemBuiltin, n.Span, `"%s" requires "shared"`, n.Type.ErrorName(c.ctx))
	}
	return true
}

func (c *checker) checkEnum(n *ast.Node) bool {
	e := n.Body.(*ast.Enum)

	if c.input == FromNative && n.Type.Has(ctype.BaseStruct.With(ctype.BaseClass)) && !n.Type.Has(ctype.StoreTypedef) {
		return c.fail(diag.SemEnum, n.Span, `"%s": enum classes must just use "enum"`, n.Type.ErrorName(c.ctx))
	}
	if n.BitWidth > 0 && !c.ctx.Is(dialect.EnumBitFields) {
		return c.fail(diag.LngUnsupported, n.Span, "enum bit-fields not supported%s", c.ctx.Which(dialect.EnumBitFields))
	}

	of := c.get(e.Of)
	if of == nil {
		return true
	}
	if !c.ctx.Is(dialect.FixedTypeEnum) {
		return c.fail(diag.LngUnsupported, of.Span, "enum with underlying type not supported%s", c.ctx.Which(dialect.FixedTypeEnum))
	}
	if !c.tree.IsIntegral(of) {
		return c.fail(diag.SemEnum, of.Span, "enum underlying type must be integral")
	}
	return true
}
