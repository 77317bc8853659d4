package sema

import (
	"strings"

	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
)

// visitWarning is the warning pass for one node. Warnings never stop the
// walk.
func (c *checker) visitWarning(n *ast.Node) {
	switch n.Kind {
	case ast.KindArray, ast.KindBuiltin, ast.KindClassStructUnion, ast.KindEnum,
		ast.KindPointer, ast.KindPointerToMember, ast.KindReference,
		ast.KindRvalueReference, ast.KindTypedef:
		if n.Type.Has(ctype.StoreRegister) && c.ctx.Is(dialect.CPPMin(dialect.CPP11)) {
			c.warn(diag.NamDeprecatedRegister, n.Span, "", `"%s" is deprecated%s`,
				ctype.StoreRegister.Name(c.ctx), c.ctx.Which(dialect.CPPMax(dialect.CPP03)))
		}

	case ast.KindUdefLit, ast.KindBlock, ast.KindFunction, ast.KindOperator, ast.KindUdefConv,
		ast.KindConstructor, ast.KindDestructor:
		c.warnFunctionLike(n)

	case ast.KindName:
		if c.ctx.Is(dialect.Prototypes) {
			c.warn(diag.NamImplicitInt, n.Span, "", "missing type specifier; %s assumed", ctype.BaseInt.Name(c.ctx))
		}
	}

	c.warnScopedName(n, n.Name)
	switch b := n.Body.(type) {
	case *ast.ClassStructUnion:
		c.warnScopedName(n, b.Tag)
	case *ast.Enum:
		c.warnScopedName(n, b.Tag)
	case *ast.PointerToMember:
		c.warnScopedName(n, b.Class)
	}
}

// warnFunctionLike: каждый вид получает проверки следующих за ним.
func (c *checker) warnFunctionLike(n *ast.Node) {
	switch n.Kind {
	case ast.KindUdefLit:
		if local := n.Name.Local(); local != "" && !strings.HasPrefix(local, "_") {
			c.warn(diag.NamReservedUdefLit, n.Span, "", "user-defined literals not starting with '_' are reserved")
		}
		fallthrough
	case ast.KindBlock, ast.KindFunction, ast.KindOperator, ast.KindUdefConv:
		ret := c.get(n.Of())
		if ret != nil {
			if _, qual := c.tree.UntypedefQual(ret); qual.Has(ctype.QualVolatile) && c.ctx.Is(dialect.CPPMin(dialect.CPP20)) {
				c.warn(diag.NamDeprecatedVolatile, ret.Span, "", `"%s" return types are deprecated%s`,
					ctype.QualVolatile.Name(c.ctx), c.ctx.Which(dialect.CPPMax(dialect.CPP17)))
			}
			if n.Type.Has(ctype.AttrNodiscard) && c.tree.IsBuiltinAny(ret, ctype.BaseVoid) {
				c.warn(diag.NamNodiscardVoid, n.Span, "", "%s %ss can not return void",
					ctype.AttrNodiscard.Name(c.ctx), c.kind(n))
			}
		}
		fallthrough
	case ast.KindConstructor:
		for _, id := range n.Params() {
			c.tree.Walk(id, func(p *ast.Node) bool {
				c.visitWarning(p)
				return false
			})
			p := c.get(id)
			if _, qual := c.tree.UntypedefQual(p); qual.Has(ctype.QualVolatile) && c.ctx.Is(dialect.CPPMin(dialect.CPP20)) {
				c.warn(diag.NamDeprecatedVolatile, p.Span, "", `"%s" parameter types are deprecated%s`,
					ctype.QualVolatile.Name(c.ctx), c.ctx.Which(dialect.CPPMax(dialect.CPP17)))
			}
		}
		fallthrough
	case ast.KindDestructor:
		if n.Type.Has(ctype.StoreThrow) && c.ctx.Is(dialect.Noexcept) {
			c.warn(diag.NamDeprecatedThrow, n.Span, `"noexcept"`, `"%s" is deprecated%s`,
				ctype.StoreThrow.Name(c.ctx), c.ctx.Which(dialect.CPPMax(dialect.CPP03)))
		}
	}
}

// warnScopedName warns about each scope of name that is a keyword in some
// dialect or a reserved identifier.
func (c *checker) warnScopedName(n *ast.Node, name ast.ScopedName) {
	for i := 0; i < name.Count(); i++ {
		c.warnName(n, name.At(i))
	}
}

func (c *checker) warnName(n *ast.Node, name string) {
	if langs := dialect.KeywordLangs(name); langs != dialect.None {
		c.warn(diag.NamKeyword, n.Span, "", `"%s" is a keyword in %s`, name, langs.Oldest().Name())
		return
	}
	if langs := dialect.ReservedIn(name); langs != dialect.None {
		in := ""
		if langs.CoarseName() == "C++" {
			in = " in C++"
		}
		c.warn(diag.NamReserved, n.Span, "", `"%s" is a reserved identifier%s`, name, in)
	}
}
