package sema

import (
	"fmt"

	"cdecl/internal/ast"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
	"cdecl/internal/source"
	"cdecl/internal/typedefs"
)

// Input says which way a declaration is being translated; some hints are
// phrased for the side the user typed.
type Input uint8

const (
	// FromNative: C/C++ declaration in, English out.
	FromNative Input = iota
	// FromEnglish: English in, C/C++ declaration out.
	FromEnglish
)

func (i Input) String() string {
	if i == FromEnglish {
		return "english"
	}
	return "native"
}

// ParseInput accepts the names String returns.
func ParseInput(s string) (Input, bool) {
	switch s {
	case "native", "":
		return FromNative, true
	case "english":
		return FromEnglish, true
	}
	return FromNative, false
}

// Options configure a check.
type Options struct {
	Reporter diag.Reporter
	// Context is the active dialect; nil means the newest C.
	Context  *dialect.Context
	Typedefs *typedefs.Registry
	Input    Input
	// Warnings enables the warning pass.
	Warnings bool
}

type checker struct {
	tree     *ast.Tree
	ctx      *dialect.Context
	reporter diag.Reporter
	typedefs *typedefs.Registry
	input    Input
	warnings bool
}

// state is what a walk carries from a node to its descendants.
type state struct {
	// fn is the function whose parameters are being checked.
	fn *ast.Node
	// pointee is set for the definition of an alias that is pointed to,
	// as in "typedef void V; V *p".
	pointee bool
}

func newChecker(tree *ast.Tree, opts Options) *checker {
	ctx := opts.Context
	if ctx == nil {
		ctx = dialect.NewContext(dialect.NewestC)
	}
	return &checker{
		tree:     tree,
		ctx:      ctx,
		reporter: opts.Reporter,
		typedefs: opts.Typedefs,
		input:    opts.Input,
		warnings: opts.Warnings,
	}
}

// CheckDeclaration runs the structural, type and warning passes over the
// declaration rooted at root. It returns false after the first error; the
// error has been reported by then.
func CheckDeclaration(tree *ast.Tree, root ast.NodeID, opts Options) bool {
	if tree == nil || tree.Get(root) == nil {
		return true
	}
	return newChecker(tree, opts).check(root)
}

// CheckCast checks a cast node and then the type cast into.
func CheckCast(tree *ast.Tree, cast ast.NodeID, opts Options) bool {
	n := tree.Get(cast)
	if n == nil || n.Kind != ast.KindCast {
		return CheckDeclaration(tree, cast, opts)
	}
	return newChecker(tree, opts).check(cast)
}

// check runs the structural and type passes, then the typedef redefinition
// check; warnings come only after all of them pass.
func (c *checker) check(root ast.NodeID) bool {
	if !c.checkErrors(root, state{}) || !c.checkTypedefRedef(root) {
		return false
	}
	if c.warnings {
		c.tree.Walk(root, func(n *ast.Node) bool {
			c.visitWarning(n)
			return false
		})
	}
	return true
}

// checkErrors runs the structural pass and, if it passes, the type pass.
func (c *checker) checkErrors(id ast.NodeID, st state) bool {
	return c.walk(id, st, c.visitError) && c.walk(id, st, c.visitType)
}

// walk applies visit to id and down its "of" chain; false at the first
// failure.
func (c *checker) walk(id ast.NodeID, st state, visit func(*ast.Node, state) bool) bool {
	return c.tree.Walk(id, func(n *ast.Node) bool { return !visit(n, st) }) == nil
}

func (c *checker) get(id ast.NodeID) *ast.Node { return c.tree.Get(id) }

func (c *checker) kind(n *ast.Node) string { return n.Kind.Name(c.ctx) }

// fail reports an error and returns false.
func (c *checker) fail(code diag.Code, sp source.Span, format string, args ...any) bool {
	return c.failHint(code, sp, "", format, args...)
}

// failHint is fail with a "did you mean" suggestion.
func (c *checker) failHint(code diag.Code, sp source.Span, hint, format string, args ...any) bool {
	if c.reporter == nil {
		return false
	}
	msg := fmt.Sprintf(format, args...)
	diag.ReportError(c.reporter, code, sp, msg).WithHint(hint).Emit()
	return false
}

func (c *checker) warn(code diag.Code, sp source.Span, hint, format string, args ...any) {
	if c.reporter == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	diag.ReportWarning(c.reporter, code, sp, msg).WithHint(hint).Emit()
}

// paramsSpan is where errors about a parameter list as a whole point: the
// first parameter, or the function itself.
func (c *checker) paramsSpan(n *ast.Node) source.Span {
	if ps := n.Params(); len(ps) > 0 {
		return c.get(ps[0]).Span
	}
	return n.Span
}

// findName returns the first name from n downwards.
func (c *checker) findName(n *ast.Node) ast.ScopedName {
	if !n.Name.Empty() {
		return n.Name
	}
	return c.tree.FindName(n.Of())
}

func plural(n uint) string {
	if n == 1 {
		return ""
	}
	return "s"
}
