package typedefs

import (
	"fmt"
	"strings"

	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/dialect"
	"cdecl/internal/source"
)

// Underlying types are the usual LP64 ones, not those of any particular
// platform.
var stdintH = [][2]string{
	{"ptrdiff_t", "long"},
	{"ssize_t", "long"},
	{"size_t", "unsigned long"},

	{"intmax_t", "long"},
	{"intptr_t", "long"},
	{"uintmax_t", "unsigned long"},
	{"uintptr_t", "unsigned long"},

	{"int8_t", "char"},
	{"int16_t", "short"},
	{"int32_t", "int"},
	{"int64_t", "long"},
	{"uint8_t", "unsigned char"},
	{"uint16_t", "unsigned short"},
	{"uint32_t", "unsigned int"},
	{"uint64_t", "unsigned long"},

	{"int_fast8_t", "char"},
	{"int_fast16_t", "short"},
	{"int_fast32_t", "int"},
	{"int_fast64_t", "long"},
	{"uint_fast8_t", "unsigned char"},
	{"uint_fast16_t", "unsigned short"},
	{"uint_fast32_t", "unsigned int"},
	{"uint_fast64_t", "unsigned long"},

	{"int_least8_t", "char"},
	{"int_least16_t", "short"},
	{"int_least32_t", "int"},
	{"int_least64_t", "long"},
	{"uint_least8_t", "unsigned char"},
	{"uint_least16_t", "unsigned short"},
	{"uint_least32_t", "unsigned int"},
	{"uint_least64_t", "unsigned long"},
}

// stdatomic.h; must come after stdint.h, some refer to it.
var stdatomicH = [][2]string{
	{"atomic_bool", "_Atomic _Bool"},
	{"atomic_char", "_Atomic char"},
	{"atomic_schar", "_Atomic signed char"},
	{"atomic_char16_t", "_Atomic char16_t"},
	{"atomic_char32_t", "_Atomic char32_t"},
	{"atomic_wchar_t", "_Atomic wchar_t"},
	{"atomic_short", "_Atomic short"},
	{"atomic_int", "_Atomic int"},
	{"atomic_long", "_Atomic long"},
	{"atomic_llong", "_Atomic long long"},
	{"atomic_uchar", "_Atomic unsigned char"},
	{"atomic_ushort", "_Atomic unsigned short"},
	{"atomic_uint", "_Atomic unsigned int"},
	{"atomic_ulong", "_Atomic unsigned long"},
	{"atomic_ullong", "_Atomic unsigned long long"},

	{"atomic_ptrdiff_t", "_Atomic ptrdiff_t"},
	{"atomic_size_t", "_Atomic size_t"},
	{"atomic_intmax_t", "_Atomic intmax_t"},
	{"atomic_intptr_t", "_Atomic intptr_t"},
	{"atomic_uintptr_t", "_Atomic uintptr_t"},
	{"atomic_uintmax_t", "_Atomic uintmax_t"},

	{"atomic_int_fast8_t", "_Atomic int_fast8_t"},
	{"atomic_int_fast16_t", "_Atomic int_fast16_t"},
	{"atomic_int_fast32_t", "_Atomic int_fast32_t"},
	{"atomic_int_fast64_t", "_Atomic int_fast64_t"},
	{"atomic_uint_fast8_t", "_Atomic uint_fast8_t"},
	{"atomic_uint_fast16_t", "_Atomic uint_fast16_t"},
	{"atomic_uint_fast32_t", "_Atomic uint_fast32_t"},
	{"atomic_uint_fast64_t", "_Atomic uint_fast64_t"},

	{"atomic_int_least8_t", "_Atomic int_least8_t"},
	{"atomic_int_least16_t", "_Atomic int_least16_t"},
	{"atomic_int_least32_t", "_Atomic int_least32_t"},
	{"atomic_int_least64_t", "_Atomic int_least64_t"},
	{"atomic_uint_least8_t", "_Atomic uint_least8_t"},
	{"atomic_uint_least16_t", "_Atomic uint_least16_t"},
	{"atomic_uint_least32_t", "_Atomic uint_least32_t"},
	{"atomic_uint_least64_t", "_Atomic uint_least64_t"},
}

// <compare>, <cstddef>
var stdCPP = [][2]string{
	{"std::partial_ordering", "class std::partial_ordering"},
	{"std::strong_ordering", "class std::strong_ordering"},
	{"std::weak_ordering", "class std::weak_ordering"},
	{"std::byte", "enum std::byte : unsigned char"},
	{"std::size_t", "size_t"},
}

// OrderingNames are the types a defaulted operator<=> may return.
var OrderingNames = []string{
	"std::partial_ordering",
	"std::strong_ordering",
	"std::weak_ordering",
}

// NewPredefined returns a registry holding the aliases of <stdint.h>,
// <stdatomic.h> and the few std:: types the checker needs.
func NewPredefined() *Registry {
	r := New()
	for _, set := range []struct {
		defs  [][2]string
		langs dialect.Set
	}{
		{stdintH, dialect.Any},
		{stdatomicH, dialect.Any},
		{stdCPP, dialect.AnyCPP},
	} {
		for _, d := range set.defs {
			if err := r.predefine(d[0], d[1], set.langs); err != nil {
				panic(fmt.Errorf("predefined typedef %s: %w", d[0], err))
			}
		}
	}
	return r
}

// predefine parses the tiny "specifiers [tag] [: underlying]" language of the
// tables above.
func (r *Registry) predefine(name, spec string, langs dialect.Set) error {
	var sp source.Span
	tree := ast.NewTree(4)

	// " : " а не ":", иначе режется "std::"
	spec, underlying, fixed := strings.Cut(spec, " : ")
	typ := ctype.TypeNone
	var tag, alias string
	for _, w := range strings.Fields(spec) {
		tid, ok := ctype.Lookup(nil, w)
		switch {
		case ok:
			var err error
			if typ, err = typ.Add(tid); err != nil {
				return err
			}
		case strings.Contains(w, "::"):
			tag = w
		default:
			alias = w
		}
	}

	var def ast.NodeID
	switch {
	case alias != "":
		id, ok := r.Instantiate(tree, alias, sp, typ.Without(ctype.BaseTypedef))
		if !ok {
			return fmt.Errorf("unknown type %q", alias)
		}
		def = id
	case typ.Has(ctype.BaseClass):
		def = tree.NewClass(sp, typ, ast.ParseName(tag))
	case typ.Has(ctype.BaseEnum):
		var of ast.NodeID
		if fixed {
			t := ctype.TypeNone
			for _, w := range strings.Fields(underlying) {
				if tid, ok := ctype.Lookup(nil, w); ok {
					t = t.With(tid)
				}
			}
			of = tree.NewBuiltin(sp, t)
		}
		def = tree.NewEnum(sp, typ, ast.ParseName(tag), of)
	default:
		def = tree.NewBuiltin(sp, typ)
	}
	return r.add(ast.ParseName(name), tree, def, langs, false)
}
