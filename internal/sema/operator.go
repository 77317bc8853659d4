package sema

import (
	"slices"

	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
	"cdecl/internal/operator"
	"cdecl/internal/typedefs"
)

func (c *checker) checkOperator(n *ast.Node) bool {
	op := operator.Get(c.ctx, n.OperatorID())
	store := n.Type.Store

	if op.Overload == operator.OverloadNone {
		return c.fail(diag.SemOperator, n.Span, "operator %s can not be overloaded", op.Literal)
	}
	if !c.ctx.Is(op.Langs) {
		return c.fail(diag.LngUnsupported, n.Span, `overloading operator "%s" not supported%s`,
			op.Literal, c.ctx.Which(op.Langs))
	}

	f := n.FuncOf()
	if f.Member != ast.MemberUnspecified && operator.Overload(f.Member)&op.Overload == 0 {
		only := "member"
		if op.Overload == operator.OverloadNonMember {
			only = "non-member"
		}
		return c.fail(diag.SemOperator, n.Span, "operator %s can only be a %s", op.Literal, only)
	}

	if op.Overload == operator.OverloadMember && store.Has(ctype.StoreStatic) {
		switch {
		case op.ID == operator.Parens && c.ctx.Is(dialect.StaticOpParens):
		case op.ID == operator.Parens:
			return c.fail(diag.SemOperator, n.Span, "operator %s must be non-static%s",
				op.Literal, c.ctx.Which(dialect.StaticOpParens))
		default:
			return c.fail(diag.SemOperator, n.Span, "operator %s must be non-static", op.Literal)
		}
	}

	ret := c.get(n.Of())
	switch op.ID {
	case operator.New, operator.NewArray, operator.Delete, operator.DeleteArray:
		if bad := store.Without(ctype.NewDeleteOper); !bad.Empty() {
			return c.fail(diag.SemOperator, n.Span, "operator %s can not be %s", op.Literal, n.Type.ErrorName(c.ctx))
		}
	}

	switch op.ID {
	case operator.Arrow:
		if !c.tree.IsPtrToKindAny(ret, ast.KindClassStructUnion.Set()) {
			return c.fail(diag.SemOperator, spanOr(ret, n),
				"operator %s must return a pointer to struct, union, or class", op.Literal)
		}
	case operator.Delete, operator.DeleteArray:
		if !c.tree.IsBuiltinAny(ret, ctype.BaseVoid) {
			return c.fail(diag.SemOperator, spanOr(ret, n), "operator %s must return void", op.Literal)
		}
	case operator.New, operator.NewArray:
		if c.tree.IsPtrToTidAny(ret, ctype.BaseVoid) == nil {
			return c.fail(diag.SemOperator, spanOr(ret, n), "operator %s must return a pointer to void", op.Literal)
		}
	}

	if store.Has(ctype.StoreDefault) && !c.checkOperDefault(n, op) {
		return false
	}
	return c.checkOperParams(n, op)
}

// operOverload decides whether n is a member or non-member operator from
// what the declaration says; 0 means it can't tell.
func (c *checker) operOverload(n *ast.Node, op *operator.Operator) operator.Overload {
	switch op.Overload {
	case operator.OverloadMember, operator.OverloadNonMember:
		return op.Overload
	case operator.OverloadNone:
		return 0
	}

	switch n.FuncOf().Member {
	case ast.MemberMember:
		return operator.OverloadMember
	case ast.MemberNonMember:
		return operator.OverloadNonMember
	}

	store := n.Type.Store
	if store.Has(c.memberOnly()) {
		return operator.OverloadMember
	}
	if store.Has(ctype.NonMemberFuncOnly) {
		return operator.OverloadNonMember
	}
	if op.ID.IsNewDelete() {
		// new и delete внутри класса: по имени класса или по static.
		if n.Name.Count() > 1 || store.Has(ctype.StoreStatic) {
			return operator.OverloadMember
		}
		return operator.OverloadNonMember
	}

	switch np := uint(len(n.Params())); {
	case np == op.ParamsMin:
		return operator.OverloadMember
	case np == op.ParamsMax:
		return operator.OverloadNonMember
	}
	return 0
}

func (c *checker) checkOperDefault(n *ast.Node, op *operator.Operator) bool {
	switch {
	case op.ID == operator.Equal:
		return true
	case op.ID.IsRelational():
		return c.checkRelationalDefault(n, op)
	}
	relops := ""
	if c.ctx.Is(dialect.DefaultRelOps) {
		relops = " and relational"
	}
	return c.fail(diag.SemOperator, n.Span, "only operator =%s operators can be default", relops)
}

func (c *checker) checkRelationalDefault(n *ast.Node, op *operator.Operator) bool {
	if !c.ctx.Is(dialect.DefaultRelOps) {
		return c.fail(diag.LngUnsupported, n.Span, "default operator %s not supported%s",
			op.Literal, c.ctx.Which(dialect.DefaultRelOps))
	}

	params := n.Params()
	param := func(i int) *ast.Node {
		if i < len(params) {
			return c.get(params[i])
		}
		return nil
	}
	// Класс, переданный по значению или по ссылке на const.
	classOf := func(p *ast.Node) *ast.Node {
		if p == nil {
			return nil
		}
		if to := c.tree.IsRefToConstClass(p); to != nil {
			return to
		}
		if raw := c.tree.Untypedef(p); raw.Is(ast.KindClassStructUnion.Set()) {
			return raw
		}
		return nil
	}

	store := n.Type.Store
	switch c.operOverload(n, op) {
	case operator.OverloadNonMember:
		if !store.Has(ctype.StoreFriend) {
			return c.fail(diag.SemOperator, n.Span, "default non-member operator %s must also be friend", op.Literal)
		}
		p1, p2 := classOf(param(0)), classOf(param(1))
		if len(params) != 2 || p1 == nil || p2 == nil || !sameClass(p1, p2) {
			return c.fail(diag.SemOperator, c.paramsSpan(n),
				"default non-member relational operators must take two value or reference-to-const parameters of the same class")
		}
	case operator.OverloadMember:
		if !store.Has(ctype.QualConst) {
			return c.fail(diag.SemOperator, n.Span, "default member operator %s must also be const", op.Literal)
		}
		if len(params) != 1 || classOf(param(0)) == nil {
			return c.fail(diag.SemOperator, c.paramsSpan(n),
				"default member relational operators must take one value or reference-to-const parameter to a class")
		}
	}

	ret := c.get(n.Of())
	raw := c.tree.Untypedef(ret)
	if op.ID == operator.LessEqualGreater {
		if raw != nil && raw.Type.Has(ctype.BaseAuto) {
			return true
		}
		if raw != nil && raw.Kind == ast.KindClassStructUnion && slices.Contains(typedefs.OrderingNames, classTag(raw).Full()) {
			return true
		}
		return c.fail(diag.SemOperator, spanOr(ret, n),
			"operator %s must return one of auto, std::partial_ordering, std::strong_ordering, or std::weak_ordering",
			op.Literal)
	}
	if !c.tree.IsBuiltinAny(ret, ctype.BaseBool) {
		return c.fail(diag.SemOperator, spanOr(ret, n), "operator %s must return %s",
			op.Literal, ctype.BaseBool.Name(c.ctx))
	}
	return true
}

func (c *checker) checkOperParams(n *ast.Node, op *operator.Operator) bool {
	overload := c.operOverload(n, op)
	np := uint(len(n.Params()))

	lo, hi := op.ParamsMin, op.ParamsMax
	var which string
	switch overload {
	case operator.OverloadNonMember:
		which = "non-member "
		if !op.Ambiguous() && op.ParamsMax != operator.Unlimited {
			lo = op.ParamsMax
		} else {
			lo = 1
		}
	case operator.OverloadMember:
		which = "member "
		if op.ParamsMax != operator.Unlimited {
			hi = op.ParamsMin
			if op.Ambiguous() {
				hi = 1
			}
		}
	}

	switch {
	case np < lo:
		if lo == hi {
			return c.fail(diag.SemOperator, c.paramsSpan(n), "%soperator %s must have exactly %d parameter%s",
				which, op.Literal, lo, plural(lo))
		}
		return c.fail(diag.SemOperator, c.paramsSpan(n), "%soperator %s must have at least %d parameter%s",
			which, op.Literal, lo, plural(lo))
	case np > hi:
		if op.ParamsMin == hi {
			return c.fail(diag.SemOperator, c.paramsSpan(n), "%soperator %s must have exactly %d parameter%s",
				which, op.Literal, hi, plural(hi))
		}
		return c.fail(diag.SemOperator, c.paramsSpan(n), "%soperator %s can have at most %d parameter%s",
			which, op.Literal, op.ParamsMax, plural(op.ParamsMax))
	}

	params := n.Params()
	switch overload {
	case operator.OverloadNonMember:
		if !op.ID.IsNewDelete() && c.countECSU(params) == 0 {
			return c.fail(diag.SemOperator, c.paramsSpan(n),
				"at least 1 parameter of a non-member operator must be an enum, class, struct, or union; or a reference or rvalue reference thereto")
		}
	case operator.OverloadMember:
		if n.Type.Has(ctype.StoreFriend) && n.Name.Empty() {
			return c.fail(diag.SemOperator, n.Span, "member operators can not be friend")
		}
	}

	switch op.ID {
	case operator.Plus2, operator.Minus2:
		// Постфиксная форма различается фиктивным int.
		i := 0
		if overload == operator.OverloadNonMember {
			i = 1
		}
		if i < len(params) {
			p := c.get(params[i])
			if raw := c.tree.Untypedef(p); !raw.Is(ast.KindBuiltin.Set()) || !raw.Type.Base.Is(ctype.BaseInt) {
				return c.fail(diag.SemOperator, p.Span, "parameter of postfix %soperator %s must be int",
					which, op.Literal)
			}
		}
	case operator.Delete, operator.DeleteArray:
		if len(params) > 0 {
			p := c.get(params[0])
			if c.tree.IsPtrToTidAny(p, ctype.BaseVoid.With(ctype.AnyClass)) == nil {
				return c.fail(diag.SemOperator, p.Span,
					"invalid parameter type for operator %s; must be a pointer to void, class, struct, or union", op.Literal)
			}
		}
	case operator.New, operator.NewArray:
		if len(params) > 0 {
			p := c.get(params[0])
			if !c.tree.IsSizeT(p) {
				return c.fail(diag.SemOperator, p.Span,
					"invalid parameter type for operator %s; must be std::size_t (or equivalent)", op.Literal)
			}
		}
	}
	return true
}

// countECSU counts the parameters that are an enum, class, struct or union,
// or a reference to one.
func (c *checker) countECSU(params []ast.NodeID) int {
	count := 0
	for _, id := range params {
		p := c.tree.Untypedef(c.get(id))
		if p.Is(ast.AnyReference) {
			p = c.tree.UnReference(p)
		}
		if p.Is(ast.AnyECSU) {
			count++
		}
	}
	return count
}

func (c *checker) checkUdefLitParams(n *ast.Node) bool {
	params := n.Params()
	if len(params) == 0 {
		return c.fail(diag.SemUdefLit, n.Span, "user-defined literal must have parameters")
	}
	char8 := ""
	if c.ctx.Is(dialect.Char8) {
		char8 = "char8_t, "
	}

	first := c.get(params[0])
	switch len(params) {
	case 1:
		if !c.udefLitValueParam(first) {
			return c.fail(diag.SemUdefLit, first.Span,
				"invalid parameter type for user-defined literal; must be one of: unsigned long long, long double, char, const char*, %schar16_t, char32_t, or wchar_t",
				char8)
		}
	case 2:
		if to := c.tree.IsPtrToTidAny(first, ctype.AnyChar); to == nil || c.tree.IsPtrToTidAny(first, ctype.QualConst) == nil {
			alt := ""
			if char8 != "" {
				alt = "|char8_t"
			}
			return c.fail(diag.SemUdefLit, first.Span,
				"invalid parameter type for user-defined literal; must be one of: const (char%s|char16_t|char32_t|wchar_t)*", alt)
		}
		second := c.get(params[1])
		if !c.tree.IsSizeT(second) {
			return c.fail(diag.SemUdefLit, second.Span,
				"invalid parameter type for user-defined literal; must be std::size_t (or equivalent)")
		}
	default:
		return c.fail(diag.SemUdefLit, c.get(params[2]).Span, "user-defined literal may have at most 2 parameters")
	}
	return true
}

var udefLitBases = []ctype.Tid{
	ctype.BaseChar,
	ctype.BaseChar8,
	ctype.BaseChar16,
	ctype.BaseChar32,
	ctype.BaseWChar,
	ctype.BaseUnsigned.With(ctype.BaseLong).With(ctype.BaseLongLong),
	ctype.BaseUnsigned.With(ctype.BaseLong).With(ctype.BaseLongLong).With(ctype.BaseInt),
	ctype.BaseLong.With(ctype.BaseDouble),
}

// udefLitValueParam: a single parameter is one of the literal value types or
// const char*.
func (c *checker) udefLitValueParam(p *ast.Node) bool {
	raw := c.tree.Untypedef(p)
	if raw == nil {
		return false
	}
	if raw.Kind == ast.KindBuiltin {
		return slices.ContainsFunc(udefLitBases, raw.Type.Base.Is)
	}
	return c.tree.IsPtrTo(raw, func(to *ast.Node) bool {
		return to.Type.Base.Is(ctype.BaseChar) &&
			to.Type.Store.Is(ctype.QualConst) &&
			to.Type.Attr.Empty()
	})
}
