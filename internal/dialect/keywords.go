package dialect

import "strings"

// keywordLangs maps a C/C++ keyword to the dialects that reserve it.
// "auto" is a keyword everywhere; only its meaning changes.
var keywordLangs = map[string]Set{
	// K&R C
	"auto": Any, "break": Any, "case": Any, "char": Any, "continue": Any,
	"default": Any, "do": Any, "double": Any, "else": Any, "extern": Any,
	"float": Any, "for": Any, "goto": Any, "if": Any, "int": Any, "long": Any,
	"register": Any, "return": Any, "short": Any, "sizeof": Any, "static": Any,
	"struct": Any, "switch": Any, "typedef": Any, "union": Any,
	"unsigned": Any, "while": Any,

	// C89
	"const":    Const,
	"enum":     Enum,
	"signed":   Signed,
	"void":     Void,
	"volatile": Volatile,

	// C99
	"_Bool":      BoolType,
	"_Complex":   Complex,
	"_Imaginary": Imaginary,
	"inline":     Inline,
	"restrict":   Restrict,

	// C11
	"_Alignas":       CMin(C11),
	"_Alignof":       CMin(C11),
	"_Atomic":        AtomicQualifier,
	"_Generic":       CMin(C11),
	"_Noreturn":      CMin(C11),
	"_Static_assert": CMin(C11),
	"_Thread_local":  CMin(C11),

	// C23
	"_BitInt":       BitInt,
	"bool":          BoolKeyword,
	"false":         CMin(C23) | AnyCPP,
	"true":          CMin(C23) | AnyCPP,
	"nullptr":       CMin(C23) | CPPMin(CPP11),
	"typeof":        CMin(C23),
	"typeof_unqual": CMin(C23),
	"static_assert": CMin(C23) | CPPMin(CPP11),

	// C++
	"catch": AnyCPP, "class": AnyCPP, "const_cast": AnyCPP, "delete": AnyCPP,
	"dynamic_cast": AnyCPP, "explicit": AnyCPP, "export": AnyCPP,
	"friend": AnyCPP, "mutable": AnyCPP, "namespace": AnyCPP, "new": AnyCPP,
	"operator": AnyCPP, "private": AnyCPP, "protected": AnyCPP,
	"public": AnyCPP, "reinterpret_cast": AnyCPP, "static_cast": AnyCPP,
	"template": AnyCPP, "this": AnyCPP, "throw": AnyCPP, "try": AnyCPP,
	"typeid": AnyCPP, "typename": AnyCPP, "using": AnyCPP, "virtual": AnyCPP,
	"wchar_t": AnyCPP,

	// C++11
	"alignas":       CMin(C23) | CPPMin(CPP11),
	"alignof":       CMin(C23) | CPPMin(CPP11),
	"char16_t":      CPPMin(CPP11),
	"char32_t":      CPPMin(CPP11),
	"constexpr":     Constexpr,
	"decltype":      CPPMin(CPP11),
	"noexcept":      Noexcept,
	"thread_local":  ThreadLocalWord,

	// C++20
	"char8_t":   CPPMin(CPP20),
	"concept":   CPPMin(CPP20),
	"consteval": Consteval,
	"constinit": Constinit,
	"co_await":  CPPMin(CPP20),
	"co_return": CPPMin(CPP20),
	"co_yield":  CPPMin(CPP20),
	"requires":  CPPMin(CPP20),

	// alternative tokens
	"and": AnyCPP, "and_eq": AnyCPP, "bitand": AnyCPP, "bitor": AnyCPP,
	"compl": AnyCPP, "not": AnyCPP, "not_eq": AnyCPP, "or": AnyCPP,
	"or_eq": AnyCPP, "xor": AnyCPP, "xor_eq": AnyCPP,

	// Embedded C, Unified Parallel C
	"_Accum":  C99EMC.Set(),
	"_Fract":  C99EMC.Set(),
	"_Sat":    C99EMC.Set(),
	"relaxed": C99UPC.Set(),
	"shared":  C99UPC.Set(),
	"strict":  C99UPC.Set(),
}

// KeywordLangs returns the dialects in which name is a keyword, or None.
func KeywordLangs(name string) Set {
	return keywordLangs[name]
}

// IsKeyword reports whether name is a keyword in the active dialect.
func (c *Context) IsKeyword(name string) bool {
	s, ok := keywordLangs[name]
	return ok && c.Is(s)
}

// ReservedIn returns the dialects in which name is a reserved identifier:
// a leading underscore followed by an uppercase letter or another underscore
// is reserved everywhere; "__" anywhere else only in C++.
func ReservedIn(name string) Set {
	if len(name) >= 2 && name[0] == '_' && (name[1] == '_' || (name[1] >= 'A' && name[1] <= 'Z')) {
		return Any
	}
	if strings.Contains(name, "__") {
		return AnyCPP
	}
	return None
}
