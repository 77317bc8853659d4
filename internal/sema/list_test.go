package sema

import (
	"testing"

	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
	"cdecl/internal/typedefs"
)

func runList(t *testing.T, lang dialect.Lang, reg *typedefs.Registry, build func(tr *ast.Tree) []ast.NodeID) result {
	t.Helper()
	tree := ast.NewTree(0)
	roots := build(tree)
	bag := diag.NewBag(16)
	ok := CheckList(tree, roots, Options{
		Reporter: diag.BagReporter{Bag: bag},
		Context:  dialect.NewContext(lang),
		Typedefs: reg,
	})
	return result{ok: ok, bag: bag}
}

func TestCheckList(t *testing.T) {
	intNamed := func(tr *ast.Tree, name string) ast.NodeID {
		return named(tr, builtin(tr, ctype.BaseInt), name)
	}

	t.Run("distinct names", func(t *testing.T) {
		wantOK(t, runList(t, dialect.C17, nil, func(tr *ast.Tree) []ast.NodeID {
			return []ast.NodeID{intNamed(tr, "x"), tr.SetName(tr.NewPointer(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt)), ast.Name("y"))}
		}))
	})
	t.Run("tentative definition in C", func(t *testing.T) {
		wantOK(t, runList(t, dialect.C17, nil, func(tr *ast.Tree) []ast.NodeID {
			return []ast.NodeID{intNamed(tr, "x"), intNamed(tr, "x")}
		}))
	})
	t.Run("tentative definition with different type", func(t *testing.T) {
		r := runList(t, dialect.C17, nil, func(tr *ast.Tree) []ast.NodeID {
			return []ast.NodeID{intNamed(tr, "x"), named(tr, builtin(tr, ctype.BaseDouble), "x")}
		})
		wantError(t, r, diag.SemRedefinition, `"x": redefinition with different type`)
	})
	t.Run("redefinition in C++", func(t *testing.T) {
		r := runList(t, dialect.CPP11, nil, func(tr *ast.Tree) []ast.NodeID {
			return []ast.NodeID{intNamed(tr, "x"), intNamed(tr, "x")}
		})
		wantError(t, r, diag.SemRedefinition, `"x": redefinition`)
	})
	t.Run("auto with several declarators in C23", func(t *testing.T) {
		r := runList(t, dialect.C23, nil, func(tr *ast.Tree) []ast.NodeID {
			return []ast.NodeID{named(tr, builtin(tr, ctype.BaseAuto), "a"), named(tr, builtin(tr, ctype.BaseAuto), "b")}
		})
		wantError(t, r, diag.LngUnsupported, `"auto" with multiple declarators is not supported`)
	})
	t.Run("second declaration fails", func(t *testing.T) {
		r := runList(t, dialect.C17, nil, func(tr *ast.Tree) []ast.NodeID {
			return []ast.NodeID{intNamed(tr, "x"), named(tr, builtin(tr, ctype.BaseVoid), "y")}
		})
		wantError(t, r, diag.SemBuiltin, "variable of void")
	})
}

func TestTypedefRedefinition(t *testing.T) {
	reg := typedefs.NewPredefined()
	sizeT := func(tr *ast.Tree, tids ...ctype.Tid) []ast.NodeID {
		return []ast.NodeID{named(tr, builtin(tr, append(tids, ctype.StoreTypedef)...), "size_t")}
	}

	wantOK(t, runList(t, dialect.C17, reg, func(tr *ast.Tree) []ast.NodeID {
		return sizeT(tr, ctype.BaseUnsigned, ctype.BaseLong)
	}))
	r := runList(t, dialect.C17, reg, func(tr *ast.Tree) []ast.NodeID {
		return sizeT(tr, ctype.BaseInt)
	})
	wantError(t, r, diag.SemRedefinition, `"size_t": typedef redefinition with different type`)
}
