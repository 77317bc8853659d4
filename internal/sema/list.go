package sema

import (
	"errors"

	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
	"cdecl/internal/typedefs"
)

// CheckList checks the declarations of one declaration statement, as in
// "int x, *y": the list as a whole, then each declaration on its own.
func CheckList(tree *ast.Tree, roots []ast.NodeID, opts Options) bool {
	if len(roots) == 0 {
		return true
	}
	c := newChecker(tree, opts)

	if len(roots) > 1 && !c.ctx.Is(dialect.AutoTypeMultiDecl) {
		if leaf := tree.Leaf(roots[0]); leaf != nil && leaf.Type.Base.Is(ctype.BaseAuto) {
			return c.fail(diag.LngUnsupported, leaf.Span, `"auto" with multiple declarators is not supported%s`,
				c.ctx.Which(dialect.AutoTypeMultiDecl))
		}
	}

	for i := 1; i < len(roots); i++ {
		prev, cur := roots[i-1], roots[i]
		name := tree.FindName(cur)
		if name.Empty() || !name.Equal(tree.FindName(prev)) {
			continue
		}
		n := tree.Get(cur)
		if !c.ctx.Is(dialect.TentativeDefs) {
			return c.fail(diag.SemRedefinition, n.Span, `"%s": redefinition`, name.Full())
		}
		if !ast.Equal(tree, prev, tree, cur) {
			return c.fail(diag.SemRedefinition, n.Span, `"%s": redefinition with different type`, name.Full())
		}
	}

	for _, root := range roots {
		if !c.check(root) {
			return false
		}
	}
	return true
}

// checkTypedefRedef: a typedef may be repeated only with the same type.
func (c *checker) checkTypedefRedef(root ast.NodeID) bool {
	n := c.get(root)
	if c.typedefs == nil || n == nil || !n.Type.Has(ctype.StoreTypedef) {
		return true
	}
	name := c.tree.FindName(root)
	if err := c.typedefs.Compatible(name, c.tree, root); err != nil {
		if errors.Is(err, typedefs.ErrRedefinition) {
			return c.fail(diag.SemRedefinition, n.Span, `"%s": typedef redefinition with different type`, name.Full())
		}
		return c.fail(diag.SemRedefinition, n.Span, "%v", err)
	}
	return true
}
