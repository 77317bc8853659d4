// Package gibberish spells a checked declaration tree as a C or C++
// declaration: "int *const (*x)[3]". It is the inverse of package english.
package gibberish

import (
	"fmt"
	"strings"

	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/dialect"
	"cdecl/internal/operator"
)

// Specifiers of a function that follow its parameter list.
var (
	trailing = []struct {
		tid  ctype.Tid
		text string
	}{
		{ctype.QualConst, "const"},
		{ctype.QualVolatile, "volatile"},
		{ctype.QualRestrict, "__restrict"},
		{ctype.QualRef, "&"},
		{ctype.QualRvalueRef, "&&"},
		{ctype.StoreNoexcept, "noexcept"},
		{ctype.StoreThrow, "throw()"},
		{ctype.StoreOverride, "override"},
		{ctype.StoreFinal, "final"},
		{ctype.StorePure, "= 0"},
		{ctype.StoreDefault, "= default"},
		{ctype.StoreDelete, "= delete"},
	}
	trailingMask ctype.Tid
)

func init() {
	for _, t := range trailing {
		trailingMask = trailingMask.With(t.tid)
	}
}

type printer struct {
	tree *ast.Tree
	ctx  *dialect.Context
	// bare drops storage classes, as in a type name.
	bare bool
}

// Declare returns the declaration rooted at root, without a semicolon. The
// tree is expected to have passed the semantic checker.
func Declare(tree *ast.Tree, root ast.NodeID, ctx *dialect.Context) string {
	n := tree.Get(root)
	if n == nil {
		return ""
	}
	p := &printer{tree: tree, ctx: ctx}
	if c, ok := n.Body.(*ast.Cast); ok {
		return p.cast(n, c)
	}
	return p.declaration(root)
}

// DeclareList spells every declaration of a list, one per line.
func DeclareList(tree *ast.Tree, roots []ast.NodeID, ctx *dialect.Context) string {
	lines := make([]string, 0, len(roots))
	for _, id := range roots {
		lines = append(lines, Declare(tree, id, ctx))
	}
	return strings.Join(lines, "\n")
}

// TypeName spells the type rooted at id without a name or storage class:
// "char *". For the definition of a typedef it gives the aliased type.
func TypeName(tree *ast.Tree, id ast.NodeID, ctx *dialect.Context) string {
	if tree.Get(id) == nil {
		return ""
	}
	p := &printer{tree: tree, ctx: ctx, bare: true}
	return p.decl(id, "")
}

func (p *printer) native(t ctype.Type) string { return t.Render(p.ctx, ctype.Native) }

// declaration spells a whole declarator: alignment, storage of the root,
// then the type and the bit-field width.
func (p *printer) declaration(id ast.NodeID) string {
	n := p.tree.Get(id)
	var sb strings.Builder
	switch n.Align.Kind {
	case ast.AlignBytes:
		fmt.Fprintf(&sb, "%s(%d) ", p.alignas(), n.Align.Bytes)
	case ast.AlignType:
		fmt.Fprintf(&sb, "%s(%s) ", p.alignas(), p.decl(n.Align.Type, ""))
	}
	if !isLeaf(n) {
		// квалификаторы указателя пишутся после "*", а не здесь
		store := n.Type.Store.Only(ctype.AnyStorage).Without(trailingMask)
		pre := p.native(ctype.Type{Store: store, Attr: n.Type.Attr})
		if pre != "" {
			sb.WriteString(pre)
			sb.WriteByte(' ')
		}
	}
	sb.WriteString(p.decl(id, p.name(id, n)))
	if n.BitWidth > 0 {
		fmt.Fprintf(&sb, " : %d", n.BitWidth)
	}
	return sb.String()
}

func (p *printer) alignas() string {
	if p.ctx != nil && p.ctx.IsC() && !p.ctx.Is(dialect.CMin(dialect.C23)) {
		return "_Alignas"
	}
	return "alignas"
}

// name is the declared name of n, spelled the way it appears in the
// declarator.
func (p *printer) name(id ast.NodeID, n *ast.Node) string {
	name := p.tree.FindName(id)
	switch b := n.Body.(type) {
	case *ast.Operator:
		op := operator.Get(p.ctx, b.Op)
		return scoped(name.Full(), "operator"+op.Literal)
	case *ast.Destructor:
		if local := name.Local(); !strings.HasPrefix(local, "~") {
			return scoped(name.ScopeName(), "~"+local)
		}
	case *ast.UdefConv:
		return scoped(name.Full(), "operator "+p.decl(b.Ret, ""))
	case *ast.UdefLit:
		return scoped(name.ScopeName(), `operator""`+name.Local())
	}
	return name.Full()
}

func scoped(scope, local string) string {
	if scope == "" {
		return local
	}
	return scope + "::" + local
}

func isLeaf(n *ast.Node) bool {
	return !n.Is(ast.AnyParent) || n.Kind == ast.KindEnum
}

// decl wraps inner, the declarator built so far, in the declarator of id and
// continues down; the leaf type ends up in front.
func (p *printer) decl(id ast.NodeID, inner string) string {
	n := p.tree.Get(id)
	if n == nil {
		return inner
	}
	switch b := n.Body.(type) {
	case *ast.Pointer:
		return p.decl(b.To, p.wrap(b.To, "*"+p.quals(n, inner)))
	case *ast.Reference:
		return p.decl(b.To, p.wrap(b.To, "&"+p.quals(n, inner)))
	case *ast.RvalueReference:
		return p.decl(b.To, p.wrap(b.To, "&&"+p.quals(n, inner)))
	case *ast.PointerToMember:
		return p.decl(b.To, p.wrap(b.To, b.Class.Full()+"::*"+p.quals(n, inner)))
	case *ast.Array:
		return p.decl(b.Of, inner+p.arraySize(n, b))
	case *ast.Block:
		return p.decl(b.Ret, "(^"+inner+")"+p.params(&b.Func)+p.funcTrailing(n))
	case *ast.Constructor, *ast.Destructor:
		return inner + p.params(n.FuncOf()) + p.funcTrailing(n)
	case *ast.UdefConv:
		// тип преобразования уже в имени
		return inner + "()" + p.funcTrailing(n)
	}
	if f := n.FuncOf(); f != nil {
		return p.decl(f.Ret, inner+p.params(f)+p.funcTrailing(n))
	}
	return join(p.leaf(n), inner)
}

// wrap parenthesizes a pointer or reference declarator whose target binds
// tighter: "(*p)[3]", "(*f)()".
func (p *printer) wrap(to ast.NodeID, s string) string {
	t := p.tree.Get(to)
	if t != nil && (t.Kind == ast.KindArray || (t.FuncOf() != nil && t.Kind != ast.KindBlock)) {
		return "(" + s + ")"
	}
	return s
}

// quals puts the qualifiers of a pointer or reference between "*" and the
// rest of the declarator: "*const p".
func (p *printer) quals(n *ast.Node, inner string) string {
	q := p.native(ctype.Type{Store: n.Type.Store.Only(ctype.AnyQualifier)})
	switch {
	case q == "":
		return inner
	case inner == "":
		return q
	}
	return q + " " + inner
}

func (p *printer) arraySize(n *ast.Node, a *ast.Array) string {
	var sb strings.Builder
	sb.WriteByte('[')
	q := p.native(ctype.Type{Store: n.Type.Store.Only(ctype.AnyArrayQualifier)})
	sb.WriteString(q)
	switch a.Size.Kind {
	case ast.SizeInt:
		if q != "" {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", a.Size.Int)
	case ast.SizeNamed:
		if q != "" {
			sb.WriteByte(' ')
		}
		sb.WriteString(a.Size.Name)
	case ast.SizeVLA:
		sb.WriteByte('*')
	}
	sb.WriteByte(']')
	return sb.String()
}

func (p *printer) params(f *ast.Func) string {
	parts := make([]string, 0, len(f.Params))
	for _, id := range f.Params {
		parts = append(parts, p.declaration(id))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (p *printer) funcTrailing(n *ast.Node) string {
	var sb strings.Builder
	for _, t := range trailing {
		if n.Type.Store.Has(t.tid) {
			sb.WriteByte(' ')
			sb.WriteString(t.text)
		}
	}
	return sb.String()
}

// leaf spells the type a declarator chain ends with.
func (p *printer) leaf(n *ast.Node) string {
	typ := n.Type
	if p.bare {
		typ.Store = typ.Store.Without(ctype.AnyStorage)
	}
	switch b := n.Body.(type) {
	case *ast.Builtin:
		s := p.native(typ)
		if b.BitIntWidth > 0 {
			s = strings.Replace(s, "_BitInt", fmt.Sprintf("_BitInt(%d)", b.BitIntWidth), 1)
		}
		return s
	case *ast.ClassStructUnion:
		return join(p.native(typ), b.Tag.Full())
	case *ast.Enum:
		s := join(p.native(typ), b.Tag.Full())
		if b.Of != ast.NoNodeID {
			s += " : " + p.decl(b.Of, "")
		}
		return s
	case *ast.Typedef:
		return join(p.native(typ), b.Alias.Full())
	case *ast.NameOnly:
		// K&R: только имя
		return ""
	case *ast.Variadic:
		return "..."
	}
	return p.native(typ)
}

func (p *printer) cast(n *ast.Node, c *ast.Cast) string {
	to := p.decl(c.To, "")
	name := n.Name.Full()
	if c.Kind == ast.CastC {
		return "(" + to + ")" + name
	}
	return fmt.Sprintf("%s_cast<%s>(%s)", c.Kind, to, name)
}

// join separates a type from its declarator: "int *p".
func join(typ, decl string) string {
	switch {
	case typ == "":
		return decl
	case decl == "":
		return typ
	}
	return typ + " " + decl
}
