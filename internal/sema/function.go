package sema

import (
	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
	"cdecl/internal/operator"
	"cdecl/internal/source"
)

func (c *checker) memberOnly() ctype.Tid {
	return ctype.MemberFuncOnly(c.ctx.Is(dialect.DefaultRelOps))
}

func (c *checker) isMain(n *ast.Node) bool {
	if n.Kind != ast.KindFunction || n.Name.Count() != 1 || n.Name.Local() != "main" {
		return false
	}
	// В C++ функция с чем-то кроме extern/friend/noexcept/throw - просто член
	// класса с именем main.
	return c.ctx.IsC() || n.Type.Store.Without(ctype.MainFuncCPP).Empty()
}

func (c *checker) checkFunc(n *ast.Node) bool {
	if c.isMain(n) && !c.checkMain(n) {
		return false
	}
	if c.ctx.IsC() {
		return true
	}

	store := n.Type.Store
	params := n.Params()
	var first *ast.Node
	if len(params) > 0 {
		first = c.get(params[0])
	}

	if first != nil && c.tree.IsTidAny(first, ctype.StoreThis) != nil && store.Has(ctype.NotExplicitObjParam) {
		return c.fail(diag.SemFunction, first.Span, `%s with "this" parameter can not be %s`,
			c.kind(n), store.Only(ctype.NotExplicitObjParam).Name(c.ctx))
	}
	if store.Has(ctype.StoreConstinit) {
		return c.kindNotTid(diag.SemStorage, n, ctype.StoreConstinit, dialect.None)
	}
	if store.Has(ctype.AnyReference) {
		if !c.ctx.Is(dialect.RefQualifiedFuncs) {
			return c.fail(diag.LngUnsupported, n.Span, "reference qualified %ss not supported%s",
				c.kind(n), c.ctx.Which(dialect.RefQualifiedFuncs))
		}
		if store.Has(ctype.AnyLinkage) {
			return c.fail(diag.SemFunction, n.Span, "reference qualified %ss can not be %s",
				c.kind(n), store.Only(ctype.AnyLinkage).Name(c.ctx))
		}
	}

	memberStore := store.Only(c.memberOnly())
	if !memberStore.Empty() && store.Has(ctype.AnyLinkage) {
		return c.fail(diag.SemFunction, n.Span, "%s %ss can not be %s",
			store.Only(ctype.AnyLinkage).Name(c.ctx), c.kind(n), memberStore.Name(c.ctx))
	}

	f := n.FuncOf()
	switch f.Member {
	case ast.MemberMember:
		// У членов нет связывания; только new и delete могут быть static.
		linkage := ctype.StoreExtern.With(ctype.StoreExternC)
		if n.Kind == ast.KindOperator && !n.OperatorID().IsNewDelete() {
			linkage = linkage.With(ctype.StoreStatic)
		}
		if store.Has(linkage) {
			return c.fail(diag.SemFunction, n.Span, "member %ss can not be %s",
				c.kind(n), store.Only(linkage).Name(c.ctx))
		}
	case ast.MemberNonMember:
		if !memberStore.Empty() {
			return c.fail(diag.SemFunction, n.Span, "non-member %ss can not be %s",
				c.kind(n), memberStore.Name(c.ctx))
		}
	}

	if store.Has(ctype.StoreDefault.With(ctype.StoreDelete)) && !c.defaultDeleteOK(n, first) {
		relops := ""
		if c.ctx.Is(dialect.DefaultRelOps) && store.Has(ctype.StoreDefault) {
			relops = " and relational operators"
		}
		return c.fail(diag.SemFunction, n.Span, `"%s" can be used only for special member functions%s`,
			n.Type.ErrorName(c.ctx), relops)
	}

	if bad := n.Type.Attr.Without(ctype.AttrFunc); !bad.Empty() {
		return c.kindNotTid(diag.SemFunction, n, bad, dialect.None)
	}

	if store.Has(ctype.StoreVirtual) {
		if n.Name.Count() > 1 {
			return c.fail(diag.SemFunction, n.Span, `"%s": virtual can not be used in file-scoped %ss`,
				n.Name.Full(), c.kind(n))
		}
	} else if store.Has(ctype.StorePure) {
		return c.fail(diag.SemFunction, n.Span, "non-virtual %s can not be pure", c.kind(n))
	}
	return true
}

// defaultDeleteOK reports whether "= default" or "= delete" fits n: the
// default and copy constructors, copy assignment, and relational operators.
func (c *checker) defaultDeleteOK(n *ast.Node, first *ast.Node) bool {
	switch n.Kind {
	case ast.KindConstructor:
		switch len(n.Params()) {
		case 0:
			return true
		case 1:
			// Копирующий конструктор; аргументы по умолчанию не поддерживаются.
			return c.isRefToClassNamed(first, n.Name)
		}
		return false
	case ast.KindFunction, ast.KindUdefConv:
		return !n.Type.Has(ctype.StoreDefault)
	case ast.KindOperator:
		switch op := n.OperatorID(); {
		case op == operator.Equal:
			ret := c.tree.IsRefToTidAny(c.get(n.Of()), ctype.AnyClass)
			if ret == nil || len(n.Params()) != 1 {
				return false
			}
			param := c.tree.IsRefToTidAny(first, ctype.AnyClass)
			return param != nil && sameClass(ret, param)
		case op.IsRelational():
			// Подробности - в checkRelationalDefault.
			return !n.Type.Has(ctype.StoreDelete)
		}
		return false
	}
	return true
}

// isRefToClassNamed reports whether n is a reference to a class, struct or
// union whose tag matches the local part of name.
func (c *checker) isRefToClassNamed(n *ast.Node, name ast.ScopedName) bool {
	to := c.tree.IsRefToTidAny(n, ctype.AnyClass)
	if to == nil {
		return false
	}
	tag := classTag(to)
	return !tag.Empty() && tag.Local() == name.Local()
}

func classTag(n *ast.Node) ast.ScopedName {
	switch b := n.Body.(type) {
	case *ast.ClassStructUnion:
		return b.Tag
	case *ast.Enum:
		return b.Tag
	}
	return nil
}

// sameClass compares two class nodes by tag.
func sameClass(a, b *ast.Node) bool {
	if a == b {
		return true
	}
	ta, tb := classTag(a), classTag(b)
	return !ta.Empty() && ta.Equal(tb)
}

func (c *checker) checkMain(n *ast.Node) bool {
	if c.ctx.IsC() {
		if bad := n.Type.Store.Without(ctype.MainFuncC); !bad.Empty() {
			return c.fail(diag.SemMain, n.Span, "main() can not be %s in C", n.Type.Store.Name(c.ctx))
		}
	}

	ret := c.get(n.Of())
	if !c.tree.IsBuiltinAny(ret, ctype.BaseInt) {
		return c.fail(diag.SemMain, spanOr(ret, n), "main() must return int")
	}

	params := n.Params()
	switch len(params) {
	case 0:
	case 1:
		p := c.get(params[0])
		if c.ctx.Lang.Std() == dialect.KNRC {
			return c.fail(diag.SemMain, p.Span, "main() must have 0, 2, or 3 parameters in %s", dialect.KNRC.Name())
		}
		if !c.tree.IsBuiltinAny(p, ctype.BaseVoid) {
			return c.fail(diag.SemMain, p.Span, "a single parameter for main() must be void")
		}
	case 2, 3:
		if !c.ctx.Is(dialect.Prototypes) {
			break
		}
		p := c.get(params[0])
		if !c.tree.IsBuiltinAny(p, ctype.BaseInt) {
			return c.fail(diag.SemMain, p.Span, "main()'s first parameter must be int")
		}
		for _, id := range params[1:] {
			if !c.checkMainCharPtrParam(c.get(id)) {
				return false
			}
		}
	default:
		count := "0, 2, or 3"
		if c.ctx.Is(dialect.Prototypes) {
			count = "0-3"
		}
		return c.fail(diag.SemMain, c.paramsSpan(n), "main() must have %s parameters", count)
	}
	return true
}

// checkMainCharPtrParam checks argv and envp: char *argv[] or char **argv,
// optionally with const chars.
func (c *checker) checkMainCharPtrParam(p *ast.Node) bool {
	raw := c.tree.Untypedef(p)
	switch raw.Kind {
	case ast.KindArray, ast.KindPointer:
		if !c.tree.IsPtrTo(c.get(raw.Of()), isConstCharOrChar) {
			prep := "to"
			if p.Kind == ast.KindArray {
				prep = "of"
			}
			return c.fail(diag.SemMain, p.Span, "this parameter of main() must be %s %s pointer to [const] char",
				c.kind(p), prep)
		}
		return true
	}
	return c.fail(diag.SemMain, p.Span, "illegal signature for main()")
}

func isConstCharOrChar(n *ast.Node) bool {
	return n.Type.Base.Is(ctype.BaseChar) &&
		n.Type.Store.Without(ctype.QualConst).Empty() &&
		n.Type.Attr.Empty()
}

func (c *checker) checkCtorDtor(n *ast.Node) bool {
	if !c.ctx.Is(dialect.Constructors) {
		return c.fail(diag.LngUnsupportedKind, n.Span, "%ss not supported%s", c.kind(n), c.ctx.Which(dialect.Constructors))
	}

	definition := n.Name.Count() > 1
	if definition && !n.Name.IsCtor() {
		return c.fail(diag.SemCtorDtor, n.Span, `"%s", "%s": %s and %s names don't match`,
			n.Name.At(1), n.Name.Local(), n.Name.ScopeType().ErrorName(c.ctx), c.kind(n))
	}

	var ok ctype.Tid
	switch {
	case n.Kind == ast.KindConstructor && definition:
		ok = ctype.CtorDef
	case n.Kind == ast.KindConstructor:
		ok = ctype.CtorDecl
	case definition:
		ok = ctype.DtorDef
	default:
		ok = ctype.DtorDecl
	}
	if bad := n.Type.Store.Without(ok); !bad.Empty() {
		what := "s"
		if definition {
			what = " definitions"
		}
		return c.fail(diag.SemCtorDtor, n.Span, "%s%s can not be %s", c.kind(n), what, bad.Name(c.ctx))
	}
	return true
}

func (c *checker) checkReturn(n *ast.Node) bool {
	ret := c.get(n.Of())
	if ret == nil {
		return true
	}
	kind := c.kind(n)
	raw := c.tree.Untypedef(ret)

	switch raw.Kind {
	case ast.KindArray:
		return c.failHint(diag.SemReturn, ret.Span, kind+" returning pointer", "%s returning array", kind)
	case ast.KindBuiltin:
		if raw.Type.Has(ctype.BaseAuto) && !c.ctx.Is(dialect.AutoReturnTypes) {
			return c.fail(diag.LngUnsupported, ret.Span, `%s returning "auto" not supported%s`,
				kind, c.ctx.Which(dialect.AutoReturnTypes))
		}
	case ast.KindClassStructUnion:
		if !c.ctx.Is(dialect.CSUReturnTypes) {
			return c.fail(diag.LngUnsupported, ret.Span, "%s returning %s not supported%s",
				kind, c.kind(raw), c.ctx.Which(dialect.CSUReturnTypes))
		}
	case ast.KindFunction, ast.KindOperator, ast.KindUdefLit:
		return c.failHint(diag.SemReturn, ret.Span, kind+" returning pointer to function",
			"%s returning %s is illegal", kind, c.kind(raw))
	}

	if n.Type.Has(ctype.StoreExplicit) {
		if n.Kind == ast.KindUdefConv && c.ctx.Is(dialect.ExplicitUDefConvs) {
			return true
		}
		legal := dialect.None
		if n.Kind == ast.KindUdefConv {
			legal = dialect.ExplicitUDefConvs
		}
		return c.kindNotTid(diag.SemReturn, n, ctype.StoreExplicit, legal)
	}
	return true
}

func (c *checker) checkUdefConv(n *ast.Node) bool {
	if !n.Type.Store.Without(ctype.UserDefConv).Empty() {
		return c.kindNotTid(diag.SemUdefConv, n, n.Type.Store, dialect.None)
	}
	if n.Type.Has(ctype.StoreFriend) && n.Name.Empty() {
		return c.fail(diag.SemUdefConv, n.Span, "friend user-defined conversion operator must use qualified name")
	}
	to := c.get(n.Of())
	if to != nil && c.tree.Untypedef(to).Kind == ast.KindArray {
		return c.failHint(diag.SemUdefConv, to.Span, "pointer to array",
			"user-defined conversion operator can not convert to an array")
	}
	return c.checkReturn(n) && c.checkFunc(n) && c.checkParams(n)
}

func spanOr(n, fallback *ast.Node) source.Span {
	if n != nil {
		return n.Span
	}
	return fallback.Span
}
