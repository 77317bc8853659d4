package gibberish

import (
	"testing"

	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/dialect"
	"cdecl/internal/source"
)

var sp = source.Span{}

func builtin(tr *ast.Tree, tids ...ctype.Tid) ast.NodeID {
	return tr.NewBuiltin(sp, ctype.Of(tids...))
}

func named(tr *ast.Tree, id ast.NodeID, name string) ast.NodeID {
	return tr.SetName(id, ast.ParseName(name))
}

func TestDeclare(t *testing.T) {
	tests := []struct {
		name  string
		lang  dialect.Lang
		build func(tr *ast.Tree) ast.NodeID
		want  string
	}{
		{"qualified builtin", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return named(tr, builtin(tr, ctype.QualConst, ctype.BaseChar), "c")
		}, "const char c"},
		{"array of pointers", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			ptr := tr.NewPointer(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt))
			return named(tr, tr.NewArray(sp, ctype.TypeNone, ptr, ast.ArraySize{Kind: ast.SizeInt, Int: 3}), "x")
		}, "int *x[3]"},
		{"pointer to array", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			arr := tr.NewArray(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt), ast.ArraySize{Kind: ast.SizeInt, Int: 3})
			return named(tr, tr.NewPointer(sp, ctype.TypeNone, arr), "x")
		}, "int (*x)[3]"},
		{"const pointer", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewPointer(sp, ctype.Of(ctype.QualConst), builtin(tr, ctype.BaseChar)), "p")
		}, "char *const p"},
		{"pointer to function", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			fn := tr.NewFunction(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt), builtin(tr, ctype.BaseChar))
			return named(tr, tr.NewPointer(sp, ctype.TypeNone, fn), "f")
		}, "int (*f)(char)"},
		{"static function", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewFunction(sp, ctype.Of(ctype.StoreStatic), builtin(tr, ctype.BaseDouble), builtin(tr, ctype.BaseInt), tr.NewVariadic(sp)), "g")
		}, "static double g(int, ...)"},
		{"K&R parameter", dialect.C89, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewFunction(sp, ctype.TypeNone, builtin(tr, ctype.BaseDouble), tr.NewName(sp, ast.Name("x"))), "f")
		}, "double f(x)"},
		{"variable length parameter", dialect.C99, func(tr *ast.Tree) ast.NodeID {
			arr := named(tr, tr.NewArray(sp, ctype.TypeNone, builtin(tr, ctype.BaseInt), ast.ArraySize{Kind: ast.SizeVLA}), "a")
			return named(tr, tr.NewFunction(sp, ctype.TypeNone, builtin(tr, ctype.BaseVoid), arr), "f")
		}, "void f(int a[*])"},
		{"typedef of pointer", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewPointer(sp, ctype.Of(ctype.StoreTypedef), builtin(tr, ctype.BaseInt)), "P")
		}, "typedef int *P"},
		{"typedef use", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			def := builtin(tr, ctype.BaseUnsigned, ctype.BaseLong, ctype.StoreTypedef)
			use := tr.NewTypedef(sp, ctype.TypeNone, ast.Name("size_t"), def)
			return named(tr, tr.NewPointer(sp, ctype.TypeNone, use), "p")
		}, "size_t *p"},
		{"bit-field", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			id := named(tr, builtin(tr, ctype.BaseUnsigned), "flags")
			tr.Get(id).BitWidth = 3
			return id
		}, "unsigned flags : 3"},
		{"aligned", dialect.C11, func(tr *ast.Tree) ast.NodeID {
			id := named(tr, builtin(tr, ctype.BaseInt), "x")
			tr.Get(id).Align = ast.Align{Kind: ast.AlignBytes, Bytes: 8}
			return id
		}, "_Alignas(8) int x"},
		{"reference to array", dialect.CPP17, func(tr *ast.Tree) ast.NodeID {
			arr := tr.NewArray(sp, ctype.TypeNone, builtin(tr, ctype.BaseChar), ast.ArraySize{Kind: ast.SizeInt, Int: 4})
			return named(tr, tr.NewReference(sp, ctype.TypeNone, arr), "r")
		}, "char (&r)[4]"},
		{"pointer to member", dialect.CPP17, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewPointerToMember(sp, ctype.TypeNone, ast.Name("C"), builtin(tr, ctype.BaseInt)), "pm")
		}, "int C::*pm"},
		{"const member function", dialect.CPP17, func(tr *ast.Tree) ast.NodeID {
			fn := tr.SetMember(tr.NewFunction(sp, ctype.Of(ctype.StoreVirtual, ctype.QualConst, ctype.StorePure), builtin(tr, ctype.BaseInt)), ast.MemberMember)
			return named(tr, fn, "size")
		}, "virtual int size() const = 0"},
		{"struct", dialect.C17, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewClass(sp, ctype.Of(ctype.BaseStruct), ast.Name("tm")), "t")
		}, "struct tm t"},
		{"enum with underlying type", dialect.CPP11, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewEnum(sp, ctype.TypeNone, ast.Name("E"), builtin(tr, ctype.BaseChar)), "e")
		}, "enum E : char e"},
		{"destructor", dialect.CPP11, func(tr *ast.Tree) ast.NodeID {
			return named(tr, tr.NewDestructor(sp, ctype.TypeNone), "S::S")
		}, "S::~S()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := ast.NewTree(0)
			root := tt.build(tree)
			if got := Declare(tree, root, dialect.NewContext(tt.lang)); got != tt.want {
				t.Fatalf("Declare() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeclareCast(t *testing.T) {
	tests := []struct {
		kind ast.CastKind
		want string
	}{
		{ast.CastC, "(char *)p"},
		{ast.CastStatic, "static_cast<char *>(p)"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			tree := ast.NewTree(0)
			ptr := tree.NewPointer(sp, ctype.TypeNone, builtin(tree, ctype.BaseChar))
			root := named(tree, tree.NewCast(sp, tt.kind, ptr), "p")
			if got := Declare(tree, root, dialect.NewContext(dialect.CPP17)); got != tt.want {
				t.Fatalf("Declare() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeclareList(t *testing.T) {
	tree := ast.NewTree(0)
	x := named(tree, builtin(tree, ctype.BaseInt), "x")
	y := named(tree, tree.NewPointer(sp, ctype.TypeNone, builtin(tree, ctype.BaseInt)), "y")
	got := DeclareList(tree, []ast.NodeID{x, y}, dialect.NewContext(dialect.C17))
	if want := "int x\nint *y"; got != want {
		t.Fatalf("DeclareList() = %q, want %q", got, want)
	}
}

func TestTypeName(t *testing.T) {
	tree := ast.NewTree(0)
	ptr := tree.NewPointer(sp, ctype.TypeNone, builtin(tree, ctype.BaseChar, ctype.QualConst))
	if got, want := TypeName(tree, ptr, dialect.NewContext(dialect.C17)), "const char *"; got != want {
		t.Fatalf("TypeName() = %q, want %q", got, want)
	}
	def := builtin(tree, ctype.BaseUnsigned, ctype.BaseLong, ctype.StoreTypedef)
	if got, want := TypeName(tree, def, dialect.NewContext(dialect.C17)), "unsigned long"; got != want {
		t.Fatalf("TypeName(typedef) = %q, want %q", got, want)
	}
	if got := TypeName(tree, ast.NoNodeID, nil); got != "" {
		t.Fatalf("TypeName(NoNodeID) = %q", got)
	}
}
