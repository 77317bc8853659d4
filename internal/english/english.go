// Package english paraphrases a checked declaration tree in pseudo-English:
// "declare x as pointer to array 3 of constant integer".
package english

import (
	"fmt"
	"strings"

	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/dialect"
	"cdecl/internal/operator"
)

type printer struct {
	sb   strings.Builder
	tree *ast.Tree
	ctx  *dialect.Context
}

// Explain returns the paraphrase of the declaration (or cast) rooted at root.
// The tree is expected to have passed the semantic checker.
func Explain(tree *ast.Tree, root ast.NodeID, ctx *dialect.Context) string {
	n := tree.Get(root)
	if n == nil {
		return ""
	}
	p := &printer{tree: tree, ctx: ctx}
	if c, ok := n.Body.(*ast.Cast); ok {
		p.cast(n, c)
		return p.sb.String()
	}

	p.sb.WriteString("declare ")
	if n.Kind != ast.KindUdefConv {
		p.declName(root, n)
	}
	p.explain(root)
	return p.sb.String()
}

// ExplainList paraphrases every declaration of a list, one per line.
func ExplainList(tree *ast.Tree, roots []ast.NodeID, ctx *dialect.Context) string {
	lines := make([]string, 0, len(roots))
	for _, id := range roots {
		lines = append(lines, Explain(tree, id, ctx))
	}
	return strings.Join(lines, "\n")
}

// Type paraphrases the type rooted at id on its own, without "declare" or a
// name: "pointer to constant character".
func Type(tree *ast.Tree, id ast.NodeID, ctx *dialect.Context) string {
	if tree.Get(id) == nil {
		return ""
	}
	p := &printer{tree: tree, ctx: ctx}
	p.explain(id)
	return strings.TrimSpace(p.sb.String())
}

func (p *printer) english(t ctype.Type) string { return t.Render(p.ctx, ctype.English) }

// notBase: storage, qualifiers and attributes, followed by a space if any.
func (p *printer) notBase(t ctype.Type) {
	p.spaced(p.english(ctype.Type{Store: t.Store, Attr: t.Attr}))
}

func (p *printer) spaced(s string) {
	if s != "" {
		p.sb.WriteString(s)
		p.sb.WriteByte(' ')
	}
}

func (p *printer) declName(root ast.NodeID, n *ast.Node) {
	name := p.tree.FindName(root)
	var local, scope string
	var scopeType ctype.Type
	if op := n.OperatorID(); op != operator.None {
		local = "operator " + op.String()
		if !name.Empty() {
			scope, scopeType = name.Full(), name.LocalType()
		}
	} else {
		local, scope, scopeType = name.Local(), name.ScopeName(), name.ScopeType()
	}
	p.spaced(local)
	if scope != "" {
		fmt.Fprintf(&p.sb, "of %s %s ", p.english(scopeType), scope)
	}
	p.sb.WriteString("as ")
}

func (p *printer) cast(n *ast.Node, c *ast.Cast) {
	if c.Kind != ast.CastC {
		p.sb.WriteString(c.Kind.String())
		p.sb.WriteByte(' ')
	}
	p.sb.WriteString("cast")
	if !n.Name.Empty() {
		p.sb.WriteByte(' ')
		p.sname(n.Name)
	}
	p.sb.WriteString(" into ")
	p.explain(c.To)
}

// explain walks down from id, then appends the alignment of id.
func (p *printer) explain(id ast.NodeID) {
	p.tree.Walk(id, func(n *ast.Node) bool {
		p.visit(n)
		return false
	})

	n := p.tree.Get(id)
	switch n.Align.Kind {
	case ast.AlignBytes:
		if n.Align.Bytes > 0 {
			fmt.Fprintf(&p.sb, " aligned as %d bytes", n.Align.Bytes)
		}
	case ast.AlignType:
		p.sb.WriteString(" aligned as ")
		p.explain(n.Align.Type)
	}
}

func (p *printer) visit(n *ast.Node) {
	switch b := n.Body.(type) {
	case *ast.Array:
		p.notBase(n.Type)
		if b.Size.Kind == ast.SizeVLA {
			p.sb.WriteString("variable length ")
		}
		p.sb.WriteString("array ")
		switch b.Size.Kind {
		case ast.SizeInt:
			fmt.Fprintf(&p.sb, "%d ", b.Size.Int)
		case ast.SizeNamed:
			p.spaced(b.Size.Name)
		}
		p.sb.WriteString("of ")

	case *ast.Builtin:
		p.sb.WriteString(p.english(n.Type))
		if b.BitIntWidth > 0 {
			fmt.Fprintf(&p.sb, " width %d bits", b.BitIntWidth)
		}
		p.bitWidth(n)

	case *ast.ClassStructUnion:
		p.spaced(p.english(n.Type))
		p.sname(b.Tag)

	case *ast.Enum:
		p.spaced(p.english(n.Type))
		p.sname(b.Tag)
		p.bitWidth(n)
		if b.Of != ast.NoNodeID {
			p.sb.WriteString(" of type ")
		}

	case *ast.NameOnly:
		// K&R: a parameter given by name only is int.
		p.sb.WriteString(p.english(ctype.TypeInt))

	case *ast.Pointer, *ast.Reference, *ast.RvalueReference:
		p.notBase(n.Type)
		fmt.Fprintf(&p.sb, "%s to ", n.Kind.Name(p.ctx))

	case *ast.PointerToMember:
		p.notBase(n.Type)
		fmt.Fprintf(&p.sb, "%s of ", n.Kind.Name(p.ctx))
		class := b.Class.LocalType().Base
		if class.Has(ctype.BaseScope) || class.Empty() {
			class = ctype.BaseClass
		}
		p.spaced(p.english(ctype.Of(class)))
		p.sname(b.Class)
		p.sb.WriteByte(' ')

	case *ast.Typedef:
		if !n.Type.Base.Is(ctype.BaseTypedef) || !n.Type.Store.Empty() || !n.Type.Attr.Empty() {
			p.spaced(p.english(n.Type))
		}
		p.sname(b.Alias)
		p.bitWidth(n)

	case *ast.UdefConv:
		p.spaced(p.english(n.Type))
		p.sb.WriteString(n.Kind.Name(p.ctx))
		if !n.Name.Empty() {
			fmt.Fprintf(&p.sb, " of %s ", p.english(n.Name.LocalType()))
			p.sname(n.Name)
		}
		p.sb.WriteString(" returning ")

	case *ast.Variadic:
		p.sb.WriteString(n.Kind.Name(p.ctx))

	default:
		if f := n.FuncOf(); f != nil {
			p.function(n, f)
		}
	}
}

func (p *printer) function(n *ast.Node, f *ast.Func) {
	p.notBase(n.Type)
	switch n.Kind {
	case ast.KindFunction:
		if f.Member == ast.MemberMember || n.Type.Store.Has(ctype.MemberFuncOnly(p.ctx.Is(dialect.DefaultRelOps))) {
			p.sb.WriteString("member ")
		}
	case ast.KindOperator:
		p.sb.WriteString(p.overload(n, f))
	}

	p.sb.WriteString(n.Kind.Name(p.ctx))
	if len(f.Params) > 0 {
		p.sb.WriteString(" (")
		for i, id := range f.Params {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			if name := p.tree.FindName(id); !name.Empty() {
				p.sname(name)
				p.sb.WriteString(" as ")
			}
			p.tree.Walk(id, func(n *ast.Node) bool {
				p.visit(n)
				return false
			})
		}
		p.sb.WriteByte(')')
	}
	if f.Ret != ast.NoNodeID {
		p.sb.WriteString(" returning ")
	}
}

func (p *printer) overload(n *ast.Node, f *ast.Func) string {
	op := operator.Get(p.ctx, n.OperatorID())
	over := op.Overload
	if over == operator.OverloadEither {
		switch {
		case f.Member == ast.MemberMember:
			over = operator.OverloadMember
		case f.Member == ast.MemberNonMember, n.Type.Store.Has(ctype.NonMemberFuncOnly):
			over = operator.OverloadNonMember
		}
	}
	switch over {
	case operator.OverloadMember:
		return "member "
	case operator.OverloadNonMember:
		return "non-member "
	}
	return ""
}

func (p *printer) bitWidth(n *ast.Node) {
	if n.BitWidth > 0 {
		fmt.Fprintf(&p.sb, " width %d bits", n.BitWidth)
	}
}

// sname: innermost name first, then each enclosing scope, as in
// "x of class T of namespace S".
func (p *printer) sname(name ast.ScopedName) {
	p.sb.WriteString(name.Local())
	for i := len(name) - 2; i >= 0; i-- {
		fmt.Fprintf(&p.sb, " of %s %s", p.english(name[i].Type), name[i].Name)
	}
}
