package sema

import (
	"math/bits"

	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
)

func (c *checker) checkAlign(n *ast.Node) bool {
	al := n.Align
	if al.Kind == ast.AlignNone {
		return true
	}
	if n.Type.Has(ctype.StoreTypedef) {
		return c.fail(diag.SemAlignment, al.Span, "types can not be aligned")
	}
	if n.Type.Has(ctype.StoreRegister) {
		return c.fail(diag.SemAlignment, al.Span, `"alignas" can not be combined with "register"`)
	}

	raw := c.tree.Untypedef(n)
	if !raw.Is(ast.AnyObject) {
		return c.fail(diag.SemAlignment, al.Span, "%s can not be aligned", c.kind(n))
	}
	if raw.Is(ast.AnyBitField) && n.BitWidth > 0 {
		return c.fail(diag.SemAlignment, al.Span, "bit fields can not be aligned")
	}
	if raw.Kind == ast.KindClassStructUnion && !c.ctx.Is(dialect.AlignedCSUs) {
		return c.fail(diag.SemAlignment, al.Span, "%s can not be aligned%s",
			c.kind(raw), c.ctx.Which(dialect.AlignedCSUs))
	}

	switch al.Kind {
	case ast.AlignBytes:
		if bits.OnesCount(al.Bytes) > 1 {
			return c.fail(diag.SemAlignment, al.Span, `"%d": alignment must be a power of 2`, al.Bytes)
		}
	case ast.AlignType:
		return c.check(al.Type)
	}
	return true
}

func (c *checker) checkArray(n *ast.Node, st state) bool {
	arr := n.Body.(*ast.Array)

	if n.Type.Has(ctype.QualAtomic) {
		return c.kindNotTid(diag.SemArray, n, ctype.QualAtomic, dialect.None)
	}

	switch arr.Size.Kind {
	case ast.SizeEmpty:
		// "non-empty array of int" без размера можно сказать только по-английски.
		if n.Type.Has(ctype.QualNonEmpty) {
			return c.fail(diag.SemArray, n.Span, `"non-empty" requires an array size`)
		}
	case ast.SizeInt:
		if arr.Size.Int == 0 {
			return c.fail(diag.SemArray, n.Span, "array size must be greater than 0")
		}
	case ast.SizeNamed:
		if st.fn == nil {
			break
		}
		p := c.findParamNamed(st.fn, arr.Size.Name, n)
		if p == nil {
			break
		}
		if !c.tree.IsIntegral(p) {
			return c.fail(diag.SemArray, n.Span, "size of array has non-integral type %s", p.Type.ErrorName(c.ctx))
		}
		if !c.checkVLA(n) {
			return false
		}
	case ast.SizeVLA:
		if !c.checkVLA(n) {
			return false
		}
		if st.fn == nil {
			return c.fail(diag.SemArray, n.Span, "variable length arrays are illegal outside of function parameters")
		}
	}

	if n.Type.Has(ctype.AnyArrayQualifier) {
		quals := ctype.Type{Store: n.Type.Store.Only(ctype.AnyArrayQualifier)}
		if !c.ctx.Is(dialect.QualifiedArrays) {
			return c.fail(diag.LngUnsupported, n.Span, `"%s" arrays not supported%s`,
				quals.ErrorName(c.ctx), c.ctx.Which(dialect.QualifiedArrays))
		}
		// [static 3], [const]: только у параметров
		if st.fn == nil {
			return c.fail(diag.SemArray, n.Span, `"%s" arrays are illegal outside of function parameters`,
				quals.ErrorName(c.ctx))
		}
	}

	of := c.get(arr.Of)
	raw := c.tree.Untypedef(of)
	if raw == nil {
		return true
	}
	switch raw.Kind {
	case ast.KindArray:
		if oa, ok := of.Body.(*ast.Array); ok && oa.Size.Kind == ast.SizeEmpty {
			return c.fail(diag.SemArray, of.Span, "array dimension required")
		}
	case ast.KindBuiltin:
		if raw.Type.Has(ctype.BaseVoid) {
			return c.failHint(diag.SemArray, n.Span, "array of pointer to void", "array of void")
		}
	case ast.KindBlock, ast.KindFunction:
		return c.failHint(diag.SemArray, n.Span, "array of pointer to function",
			"%s of %s is illegal", c.kind(n), c.kind(raw))
	case ast.KindReference, ast.KindRvalueReference:
		var hint string
		if c.input == FromEnglish {
			hint = c.kind(raw) + " to array"
		} else {
			amp := "&"
			if raw.Kind == ast.KindRvalueReference {
				amp = "&&"
			}
			hint = "(" + amp + c.findName(n).Full() + ")[]"
		}
		return c.failHint(diag.SemArray, n.Span, hint, "%s of %s is illegal", c.kind(n), c.kind(raw))
	}
	return true
}

func (c *checker) checkVLA(n *ast.Node) bool {
	if !c.ctx.Is(dialect.VLAs) {
		return c.fail(diag.LngUnsupported, n.Span, "variable length arrays not supported%s", c.ctx.Which(dialect.VLAs))
	}
	return true
}

// findParamNamed returns the parameter of fn called name that comes before
// the parameter containing n.
func (c *checker) findParamNamed(fn *ast.Node, name string, n *ast.Node) *ast.Node {
	for _, id := range fn.Params() {
		if c.tree.Contains(id, n) {
			break
		}
		p := c.get(id)
		if p.Name.Count() == 1 && p.Name.Local() == name {
			return p
		}
	}
	return nil
}
