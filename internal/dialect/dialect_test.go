package dialect

import "testing"

func TestFindRoundTrip(t *testing.T) {
	for _, l := range All() {
		got, ok := Find(l.Name())
		if !ok {
			t.Fatalf("Find(%q) failed", l.Name())
		}
		if got != l {
			t.Errorf("Find(%q) = %v, want %v", l.Name(), got, l)
		}
	}
}

func TestFindAliases(t *testing.T) {
	tests := []struct {
		name string
		want Lang
	}{
		{"c", C23},
		{"C++", CPP23},
		{"knr", KNRC},
		{"K&R", KNRC},
		{"c78", KNRC},
		{"C90", C89},
		{"c18", C17},
		{"c2x", C23},
		{"c++0x", CPP11},
		{"C++2a", CPP20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Find(tt.name)
			if !ok || got != tt.want {
				t.Fatalf("Find(%q) = %v, %v; want %v", tt.name, got, ok, tt.want)
			}
		})
	}
	if _, ok := Find("fortran"); ok {
		t.Fatalf("unexpected match for unknown dialect")
	}
}

func TestOldestNewestBracketMembers(t *testing.T) {
	sets := []Set{
		Any,
		AnyC,
		AnyCPP,
		ThreadLocal,
		CMin(C99) | CPPMin(CPP17),
		C89.Set() | CPP03.Set(),
		Range(C95, C17),
	}
	for _, s := range sets {
		oldest, newest := s.Oldest(), s.Newest()
		for _, l := range All() {
			if !s.Contains(l) {
				continue
			}
			if l < oldest || l > newest {
				t.Errorf("set %v: %v outside [%v, %v]", s, l, oldest, newest)
			}
		}
	}
}

func TestCPPNewerThanC(t *testing.T) {
	if !(CPP98 > C23) {
		t.Fatalf("C++98 must order after C23")
	}
	if got := AndNewer(C23); !got.Contains(CPP98) {
		t.Fatalf("AndNewer(C23) = %v, want C++ included", got)
	}
	if got := Older(CPP98); got != AnyC {
		t.Fatalf("Older(C++98) = %v, want all of C", got)
	}
}

func TestRanges(t *testing.T) {
	if got := Newer(C17); got.Contains(C17) || !got.Contains(C23) {
		t.Errorf("Newer(C17) = %v", got)
	}
	if got := AndOlder(C89); got != KNRC.Set()|C89.Set() {
		t.Errorf("AndOlder(C89) = %v", got)
	}
	if got := CPPMax(CPP03); got != CPP98.Set()|CPP03.Set() {
		t.Errorf("CPPMax(C++03) = %v", got)
	}
	if got := AndNewer(C99); got&maskExt != 0 {
		t.Errorf("ranges must not include extension bits: %v", got)
	}
}

func TestCoarseName(t *testing.T) {
	tests := []struct {
		set  Set
		want string
	}{
		{AnyC, "C"},
		{CMin(C11), "C"},
		{CPPMin(CPP11), "C++"},
		{ThreadLocal, ""},
		{None, ""},
	}
	for _, tt := range tests {
		if got := tt.set.CoarseName(); got != tt.want {
			t.Errorf("CoarseName(%v) = %q, want %q", tt.set, got, tt.want)
		}
	}
}

func TestWhich(t *testing.T) {
	tests := []struct {
		name   string
		active Lang
		legal  Set
		want   string
	}{
		{"satisfied", C17, ThreadLocal, ""},
		{"single other", C89, C99.Set(), " unless C99"},
		{"single same", C99, C99.Set(), ""},
		{"cross family from C", C17, References, " in C"},
		{"cross family from C++", CPP17, Restrict, " in C++"},
		{"until", C89, ThreadLocal, " until C11"},
		{"until C++", CPP03, Constexpr, " until C++11"},
		{"since", CPP17, Register, " since C++17"},
		{"since C", C99, ImplicitInt, " since C99"},
		{"gap in C", C17, C89.Set() | C23.Set(), " until C23"},
		{"gap in C++", CPP17, CPP11.Set() | CPP23.Set(), " until C++23"},
		{"gap before newest", C99, C89.Set() | C11.Set() | C23.Set(), " until C11"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(tt.active)
			if got := ctx.Which(tt.legal); got != tt.want {
				t.Fatalf("Which(%v) in %v = %q, want %q", tt.legal, tt.active, got, tt.want)
			}
		})
	}
}

func TestSpellingsResolve(t *testing.T) {
	spell := MustSpellings(
		Spelling{Langs: BoolKeyword, Literal: "bool"},
		Spelling{Langs: Any, Literal: "_Bool"},
	)
	if got := spell.Resolve(NewContext(C99)); got != "_Bool" {
		t.Errorf("C99 spelling = %q", got)
	}
	if got := spell.Resolve(NewContext(C23)); got != "bool" {
		t.Errorf("C23 spelling = %q", got)
	}
	if got := spell.Resolve(NewContext(CPP98)); got != "bool" {
		t.Errorf("C++98 spelling = %q", got)
	}
}

func TestMustSpellingsRejectsNonUniversalTail(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	_ = MustSpellings(Spelling{Langs: AnyCPP, Literal: "bool"})
}

func TestReservedIn(t *testing.T) {
	tests := []struct {
		name string
		want Set
	}{
		{"_Foo", Any},
		{"__x", Any},
		{"a__b", AnyCPP},
		{"_foo", None},
		{"plain", None},
	}
	for _, tt := range tests {
		if got := ReservedIn(tt.name); got != tt.want {
			t.Errorf("ReservedIn(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMacroValues(t *testing.T) {
	if got := CPP98.CPlusPlus(); got != "199711L" {
		t.Errorf("__cplusplus C++98 = %q", got)
	}
	if got := C89.STDCVersion(); got != "199409L" {
		t.Errorf("__STDC_VERSION__ C89 = %q", got)
	}
	if got := C17.CPlusPlus(); got != "" {
		t.Errorf("__cplusplus in C = %q", got)
	}
}
