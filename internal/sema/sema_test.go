package sema

import (
	"strings"
	"testing"

	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
	"cdecl/internal/source"
)

var sp = source.Span{}

type result struct {
	ok  bool
	bag *diag.Bag
}

func runCheck(t *testing.T, lang dialect.Lang, input Input, build func(tr *ast.Tree) ast.NodeID) result {
	t.Helper()
	tree := ast.NewTree(0)
	root := build(tree)
	bag := diag.NewBag(16)
	ok := CheckDeclaration(tree, root, Options{
		Reporter: diag.BagReporter{Bag: bag},
		Context:  dialect.NewContext(lang),
		Input:    input,
		Warnings: true,
	})
	return result{ok: ok, bag: bag}
}

func diagCodes(bag *diag.Bag) []diag.Code {
	items := bag.Items()
	codes := make([]diag.Code, 0, len(items))
	for _, d := range items {
		codes = append(codes, d.Code)
	}
	return codes
}

func firstError(t *testing.T, r result) diag.Diagnostic {
	t.Helper()
	for _, d := range r.bag.Items() {
		if d.Severity == diag.SevError {
			return d
		}
	}
	t.Fatalf("no error reported; got %v", diagCodes(r.bag))
	return diag.Diagnostic{}
}

func wantOK(t *testing.T, r result) {
	t.Helper()
	if !r.ok || r.bag.HasErrors() {
		t.Fatalf("unexpected failure: %v", r.bag.Items())
	}
}

func wantError(t *testing.T, r result, code diag.Code, msgPrefix string) diag.Diagnostic {
	t.Helper()
	if r.ok {
		t.Fatalf("check passed, want %v", code)
	}
	d := firstError(t, r)
	if d.Code != code {
		t.Fatalf("code = %v (%q), want %v", d.Code, d.Message, code)
	}
	if !strings.HasPrefix(d.Message, msgPrefix) {
		t.Fatalf("message = %q, want prefix %q", d.Message, msgPrefix)
	}
	if n := r.bag.Count(diag.SevError); n != 1 {
		t.Fatalf("got %d errors, want exactly 1", n)
	}
	return d
}

func wantHint(t *testing.T, d diag.Diagnostic, hint string) {
	t.Helper()
	if len(d.Hints) != 1 || d.Hints[0] != hint {
		t.Fatalf("hints = %q, want %q", d.Hints, hint)
	}
}

func builtin(tr *ast.Tree, tids ...ctype.Tid) ast.NodeID {
	return tr.NewBuiltin(sp, ctype.Of(tids...))
}

func named(tr *ast.Tree, id ast.NodeID, name string) ast.NodeID {
	return tr.SetName(id, ast.ParseName(name))
}

func TestVoidVariable(t *testing.T) {
	r := runCheck(t, dialect.C23, FromNative, func(tr *ast.Tree) ast.NodeID {
		return named(tr, builtin(tr, ctype.BaseVoid), "x")
	})
	d := wantError(t, r, diag.SemBuiltin, "variable of void")
	wantHint(t, d, "pointer to void")
}

func TestVoidAllowed(t *testing.T) {
	tests := []struct {
		name  string
		lang  dialect.Lang
		build func(tr *ast.Tree) ast.NodeID
	}{
		{"extern in C", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return named(tr, builtin(tr, ctype.BaseVoid, ctype.StoreExtern), "v")
		}},
		{"typedef", dialect.CPP11, func(tr *ast.Tree) ast.NodeID {
			return named(tr, builtin(tr, ctype.BaseVoid, ctype.StoreTypedef), "V")
		}},
		{"pointer to void", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewPointer(sp, ctype.TypeNone, builtin(tr, ctype.BaseVoid)), "p")
		}},
		{"f(void)", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewFunction(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt), builtin(tr, ctype.BaseVoid)), "f")
		}},
		{"pointer to void alias", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			def := builtin(tr, ctype.BaseVoid, ctype.StoreTypedef)
			use := tr.NewTypedef(sp, ctype.TypeNone, ast.Name("V"), def)
			return named(tr, tr.NewPointer(sp, ctype.TypeNone, use), "p")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantOK(t, runCheck(t, tt.lang, FromNative, tt.build))
		})
	}
}

func TestVoidAliasVariable(t *testing.T) {
	r := runCheck(t, dialect.C17, FromNative, func(tr *ast.Tree) ast.NodeID {
		def := builtin(tr, ctype.BaseVoid, ctype.StoreTypedef)
		return named(tr, tr.NewTypedef(sp, ctype.TypeNone, ast.Name("V"), def), "v")
	})
	wantError(t, r, diag.SemBuiltin, "variable of void")
}

func TestThreadLocalInC89(t *testing.T) {
	r := runCheck(t, dialect.C89, FromNative, func(tr *ast.Tree) ast.NodeID {
		return named(tr, builtin(tr, ctype.BaseChar, ctype.StoreThreadLocal), "c")
	})
	wantError(t, r, diag.LngIllegal, `"`)
}

func mainWith(tr *ast.Tree, params ...ast.NodeID) ast.NodeID {
	return named(tr, tr.NewFunction(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt), params...), "main")
}

func charPtrArray(tr *ast.Tree) ast.NodeID {
	ptr := tr.NewPointer(sp, ctype.TypeNone, builtin(tr, ctype.BaseChar))
	return tr.NewArray(sp, ctype.TypeNone, ptr, ast.ArraySize{Kind: ast.SizeEmpty})
}

func TestMainSignature(t *testing.T) {
	t.Run("argc argv in C17", func(t *testing.T) {
		wantOK(t, runCheck(t, dialect.C17, FromNative, func(tr *ast.Tree) ast.NodeID {
			return mainWith(tr, builtin(tr, ctype.BaseInt), charPtrArray(tr))
		}))
	})
	t.Run("one parameter in K&R C", func(t *testing.T) {
		r := runCheck(t, dialect.KNRC, FromNative, func(tr *ast.Tree) ast.NodeID {
			return mainWith(tr, builtin(tr, ctype.BaseInt))
		})
		wantError(t, r, diag.SemMain, "main() must have 0, 2, or 3 parameters")
	})
	t.Run("single non-void parameter", func(t *testing.T) {
		r := runCheck(t, dialect.C17, FromNative, func(tr *ast.Tree) ast.NodeID {
			return mainWith(tr, builtin(tr, ctype.BaseInt))
		})
		wantError(t, r, diag.SemMain, "a single parameter for main() must be void")
	})
	t.Run("returns double", func(t *testing.T) {
		r := runCheck(t, dialect.C17, FromNative, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewFunction(sp, ctype.TypeNone, builtin(tr, ctype.BaseDouble)), "main")
		})
		wantError(t, r, diag.SemMain, "main() must return int")
	})
	t.Run("argv of int", func(t *testing.T) {
		r := runCheck(t, dialect.C17, FromNative, func(tr *ast.Tree) ast.NodeID {
			ptr := tr.NewPointer(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt))
			return mainWith(tr, builtin(tr, ctype.BaseInt), ptr)
		})
		wantError(t, r, diag.SemMain, "this parameter of main() must be pointer to pointer to [const] char")
	})
}

func TestReferenceToReference(t *testing.T) {
	tests := []struct {
		input Input
		hint  string
	}{
		{FromEnglish, "reference to pointer"},
		{FromNative, `"*&"`},
	}
	for _, tt := range tests {
		t.Run(tt.input.String(), func(t *testing.T) {
			r := runCheck(t, dialect.CPP11, tt.input, func(tr *ast.Tree) ast.NodeID {
				inner := tr.NewReference(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt))
				return named(tr, tr.NewReference(sp, ctype.TypeNone, inner), "r")
			})
			d := wantError(t, r, diag.SemReference, "reference to reference is illegal")
			wantHint(t, d, tt.hint)
		})
	}
}

func TestPointerAndReference(t *testing.T) {
	tests := []struct {
		name  string
		lang  dialect.Lang
		build func(tr *ast.Tree) ast.NodeID
		code  diag.Code
		msg   string
	}{
		{"pointer to reference", dialect.CPP11, func(tr *ast.Tree) ast.NodeID {
			ref := tr.NewReference(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt))
			return named(tr, tr.NewPointer(sp, ctype.TypeNone, ref), "p")
		}, diag.SemPointer, "pointer to reference is illegal"},
		{"reference in C", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewReference(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt)), "r")
		}, diag.LngUnsupportedKind, "reference not supported"},
		{"const reference", dialect.CPP11, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewReference(sp, ctype.Of(ctype.QualConst), builtin(tr, ctype.BaseInt)), "r")
		}, diag.SemReference, "reference can not be const"},
		{"reference to void", dialect.CPP11, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewReference(sp, ctype.TypeNone, builtin(tr, ctype.BaseVoid)), "r")
		}, diag.SemReference, "reference to void is illegal"},
		{"pointer to register", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewPointer(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt, ctype.StoreRegister)), "p")
		}, diag.SemPointer, "pointer to register is illegal"},
		{"auto pointer in C++03", dialect.CPP03, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewPointer(sp, ctype.TypeNone, builtin(tr, ctype.BaseAuto)), "p")
		}, diag.LngUnsupported, `"auto" with pointer declarator not supported`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantError(t, runCheck(t, tt.lang, FromNative, tt.build), tt.code, tt.msg)
		})
	}
}

func TestArrays(t *testing.T) {
	size := func(n uint) ast.ArraySize { return ast.ArraySize{Kind: ast.SizeInt, Int: n} }
	tests := []struct {
		name  string
		lang  dialect.Lang
		build func(tr *ast.Tree) ast.NodeID
		code  diag.Code
		msg   string
	}{
		{"zero size", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewArray(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt), size(0)), "a")
		}, diag.SemArray, "array size must be greater than 0"},
		{"array of void", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewArray(sp, ctype.TypeNone, builtin(tr, ctype.BaseVoid), size(2)), "a")
		}, diag.SemArray, "array of void"},
		{"array of function", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			fn := tr.NewFunction(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt))
			return named(tr, tr.NewArray(sp, ctype.TypeNone, fn, size(2)), "a")
		}, diag.SemArray, "array of function is illegal"},
		{"inner dimension", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			inner := tr.NewArray(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt), ast.ArraySize{Kind: ast.SizeEmpty})
			return named(tr, tr.NewArray(sp, ctype.TypeNone, inner, size(2)), "a")
		}, diag.SemArray, "array dimension required"},
		{"VLA in C89", dialect.C89, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewArray(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt), ast.ArraySize{Kind: ast.SizeVLA}), "a")
		}, diag.LngUnsupported, "variable length arrays not supported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantError(t, runCheck(t, tt.lang, FromNative, tt.build), tt.code, tt.msg)
		})
	}
}

func TestArraysOnlyAsParameters(t *testing.T) {
	vla := func(tr *ast.Tree) ast.NodeID {
		return tr.NewArray(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt), ast.ArraySize{Kind: ast.SizeVLA})
	}
	nonEmpty := func(tr *ast.Tree) ast.NodeID {
		return tr.NewArray(sp, ctype.Of(ctype.QualNonEmpty), builtin(tr, ctype.BaseInt), ast.ArraySize{Kind: ast.SizeInt, Int: 3})
	}
	fn := func(tr *ast.Tree, param ast.NodeID) ast.NodeID {
		return named(tr, tr.NewFunction(sp, ctype.TypeNone, builtin(tr, ctype.BaseVoid), named(tr, param, "a")), "f")
	}

	t.Run("variable length object", func(t *testing.T) {
		r := runCheck(t, dialect.C99, FromNative, func(tr *ast.Tree) ast.NodeID { return named(tr, vla(tr), "a") })
		wantError(t, r, diag.SemArray, "variable length arrays are illegal outside of function parameters")
	})
	t.Run("static size object", func(t *testing.T) {
		r := runCheck(t, dialect.C99, FromNative, func(tr *ast.Tree) ast.NodeID { return named(tr, nonEmpty(tr), "a") })
		d := wantError(t, r, diag.SemArray, `"`)
		if !strings.HasSuffix(d.Message, "arrays are illegal outside of function parameters") {
			t.Fatalf("message = %q", d.Message)
		}
	})
	t.Run("variable length parameter", func(t *testing.T) {
		wantOK(t, runCheck(t, dialect.C99, FromNative, func(tr *ast.Tree) ast.NodeID { return fn(tr, vla(tr)) }))
	})
	t.Run("static size parameter", func(t *testing.T) {
		wantOK(t, runCheck(t, dialect.C99, FromNative, func(tr *ast.Tree) ast.NodeID { return fn(tr, nonEmpty(tr)) }))
	})
}

func TestArrayOfReferenceHint(t *testing.T) {
	build := func(tr *ast.Tree) ast.NodeID {
		ref := tr.NewReference(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt))
		return named(tr, tr.NewArray(sp, ctype.TypeNone, ref, ast.ArraySize{Kind: ast.SizeInt, Int: 3}), "a")
	}
	d := wantError(t, runCheck(t, dialect.CPP11, FromNative, build), diag.SemArray, "array of reference is illegal")
	wantHint(t, d, "(&a)[]")
	d = wantError(t, runCheck(t, dialect.CPP11, FromEnglish, build), diag.SemArray, "array of reference is illegal")
	wantHint(t, d, "reference to array")
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		name  string
		lang  dialect.Lang
		build func(tr *ast.Tree) ast.NodeID
		code  diag.Code
		msg   string
	}{
		{"implicit int in C99", dialect.C99, func(tr *ast.Tree) ast.NodeID {
			return named(tr, builtin(tr, ctype.StoreStatic), "x")
		}, diag.LngIllegal, `implicit "int" is illegal`},
		{"_BitInt too narrow", dialect.C23, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewBitInt(sp, ctype.TypeNone, 1), "b")
		}, diag.SemBuiltin, ""},
		{"_BitInt too wide", dialect.C23, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewBitInt(sp, ctype.TypeNone, MaxBitIntWidth+1), "b")
		}, diag.SemBuiltin, ""},
		{"static bit-field", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			id := named(tr, builtin(tr, ctype.BaseInt, ctype.StoreStatic), "f")
			tr.Get(id).BitWidth = 3
			return id
		}, diag.SemBitField, "static can not have bit-field widths"},
		{"inline variable in C++14", dialect.CPP14, func(tr *ast.Tree) ast.NodeID {
			return named(tr, builtin(tr, ctype.BaseInt, ctype.StoreInline), "x")
		}, diag.LngUnsupported, "inline variables not supported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantError(t, runCheck(t, tt.lang, FromNative, tt.build), tt.code, tt.msg)
		})
	}
}

func TestParams(t *testing.T) {
	fn := func(tr *ast.Tree, params ...ast.NodeID) ast.NodeID {
		return named(tr, tr.NewFunction(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt), params...), "f")
	}
	tests := []struct {
		name  string
		lang  dialect.Lang
		build func(tr *ast.Tree) ast.NodeID
		code  diag.Code
		msg   string
	}{
		{"void then int", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return fn(tr, builtin(tr, ctype.BaseVoid), builtin(tr, ctype.BaseInt))
		}, diag.SemParam, `"void" must be only parameter if specified`},
		{"named void", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return fn(tr, named(tr, builtin(tr, ctype.BaseVoid), "v"))
		}, diag.SemParam, "void as parameter can not have a name"},
		{"same name twice", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return fn(tr, named(tr, builtin(tr, ctype.BaseInt), "x"), named(tr, builtin(tr, ctype.BaseChar), "x"))
		}, diag.SemRedefinition, `"x": redefinition of parameter`},
		{"variadic only in C17", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return fn(tr, tr.NewVariadic(sp))
		}, diag.LngUnsupported, "variadic specifier can not be only parameter"},
		{"variadic not last", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return fn(tr, builtin(tr, ctype.BaseInt), tr.NewVariadic(sp), builtin(tr, ctype.BaseInt))
		}, diag.SemParam, "variadic specifier must be last"},
		{"static parameter", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return fn(tr, builtin(tr, ctype.BaseInt, ctype.StoreStatic))
		}, diag.SemParam, "function parameters can not be static"},
		{"prototype in K&R C", dialect.KNRC, func(tr *ast.Tree) ast.NodeID {
			return fn(tr, builtin(tr, ctype.BaseInt))
		}, diag.LngUnsupported, "function prototypes not supported"},
		{"name only in C23", dialect.C23, func(tr *ast.Tree) ast.NodeID {
			return fn(tr, tr.NewName(sp, ast.Name("x")))
		}, diag.LngIllegal, "type specifier required"},
		{"auto parameter in C++17", dialect.CPP17, func(tr *ast.Tree) ast.NodeID {
			return fn(tr, builtin(tr, ctype.BaseAuto))
		}, diag.LngUnsupported, `parameters can not be "auto"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantError(t, runCheck(t, tt.lang, FromNative, tt.build), tt.code, tt.msg)
		})
	}

	t.Run("K&R names", func(t *testing.T) {
		wantOK(t, runCheck(t, dialect.KNRC, FromNative, func(tr *ast.Tree) ast.NodeID {
			return fn(tr, tr.NewName(sp, ast.Name("a")), tr.NewName(sp, ast.Name("b")))
		}))
	})
}

func TestFunctionReturns(t *testing.T) {
	tests := []struct {
		name  string
		lang  dialect.Lang
		build func(tr *ast.Tree) ast.NodeID
		code  diag.Code
		msg   string
		hint  string
	}{
		{"returning array", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			arr := tr.NewArray(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt), ast.ArraySize{Kind: ast.SizeInt, Int: 2})
			return named(tr, tr.NewFunction(sp, ctype.TypeNone, arr), "f")
		}, diag.SemReturn, "function returning array", "function returning pointer"},
		{"returning function", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			inner := tr.NewFunction(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt))
			return named(tr, tr.NewFunction(sp, ctype.TypeNone, inner), "f")
		}, diag.SemReturn, "function returning function is illegal", "function returning pointer to function"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := wantError(t, runCheck(t, tt.lang, FromNative, tt.build), tt.code, tt.msg)
			wantHint(t, d, tt.hint)
		})
	}
}

func TestCasts(t *testing.T) {
	check := func(lang dialect.Lang, build func(tr *ast.Tree) ast.NodeID) result {
		tree := ast.NewTree(0)
		root := build(tree)
		bag := diag.NewBag(8)
		ok := CheckCast(tree, root, Options{Reporter: diag.BagReporter{Bag: bag}, Context: dialect.NewContext(lang)})
		return result{ok: ok, bag: bag}
	}

	wantOK(t, check(dialect.C17, func(tr *ast.Tree) ast.NodeID {
		return tr.NewCast(sp, ast.CastC, builtin(tr, ctype.BaseVoid))
	}))

	r := check(dialect.CPP11, func(tr *ast.Tree) ast.NodeID {
		return tr.NewCast(sp, ast.CastReinterpret, builtin(tr, ctype.BaseVoid))
	})
	wantError(t, r, diag.SemCast, "reinterpret_cast can not be to void")

	r = check(dialect.CPP11, func(tr *ast.Tree) ast.NodeID {
		return tr.NewCast(sp, ast.CastConst, builtin(tr, ctype.BaseInt))
	})
	wantError(t, r, diag.SemCast, "const_cast must be to a pointer")

	r = check(dialect.C17, func(tr *ast.Tree) ast.NodeID {
		return tr.NewCast(sp, ast.CastC, builtin(tr, ctype.BaseInt, ctype.StoreStatic))
	})
	wantError(t, r, diag.SemCast, "can not cast into static")
}

func TestNilReporterStillFails(t *testing.T) {
	tree := ast.NewTree(0)
	root := named(tree, builtin(tree, ctype.BaseVoid), "x")
	if CheckDeclaration(tree, root, Options{Context: dialect.NewContext(dialect.C17)}) {
		t.Fatal("void variable accepted")
	}
}
