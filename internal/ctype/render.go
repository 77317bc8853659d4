package ctype

import (
	"strings"

	"cdecl/internal/dialect"
)

// Mode selects how a Type is spelled.
type Mode uint8

const (
	// Native spells C/C++ keywords.
	Native Mode = iota
	// English uses the paraphrase of a flag where one exists.
	English
	// Error spells keywords verbatim and keeps an explicit "signed"; used in
	// diagnostics.
	Error
)

func (m Mode) String() string {
	switch m {
	case English:
		return "english"
	case Error:
		return "error"
	}
	return "native"
}

var attrOrder = []Tid{
	AttrCarriesDependency,
	AttrDeprecated,
	AttrMaybeUnused,
	AttrNodiscard,
	AttrNoreturn,
	AttrNoUniqueAddress,
	AttrReproducible,
	AttrUnsequenced,
}

var mscCallOrder = []Tid{
	AttrCdecl,
	AttrClrcall,
	AttrFastcall,
	AttrStdcall,
	AttrThiscall,
	AttrVectorcall,
}

// default/delete first ("deleted constructor"), typedef before almost
// everything else, then the storage classes.
var storageOrder = []Tid{
	StoreDefault,
	StoreDelete,
	StoreExternC,
	StoreTypedef,
	StoreAuto,
	StoreBlock,
	StoreExport,
	StoreExtern,
	StoreFriend,
	StoreRegister,
	StoreMutable,
	StoreStatic,
	StoreThis,
	StoreThreadLocal,
	StoreExplicit,
	StoreInline,
	StoreOverride,
	StoreFinal,
	StorePure,
	StoreVirtual,
	StoreNoexcept,
	StoreThrow,
	StoreConsteval,
	StoreConstexpr,
	StoreConstinit,
}

var qualifierOrder = []Tid{
	QualRelaxed,
	QualStrict,
	QualShared,
	QualConst,
	QualRestrict,
	QualVolatile,
	QualNonEmpty,
	QualRef,
	QualRvalueRef,
	QualAtomic,
}

// sign and size modifiers come before the base keyword.
var baseOrder = []Tid{
	BaseSigned,
	BaseUnsigned,
	BaseShort,
	BaseLong,
	BaseLongLong,
	BaseVoid,
	BaseAuto,
	BaseBitInt,
	BaseBool,
	BaseChar,
	BaseChar8,
	BaseChar16,
	BaseChar32,
	BaseWChar,
	BaseInt,
	BaseComplex,
	BaseImaginary,
	BaseFloat,
	BaseDouble,
	BaseEnum,
	BaseStruct,
	BaseUnion,
	BaseClass,
	BaseSat,
	BaseAccum,
	BaseFract,
}

func names(ctx *dialect.Context, tid Tid, order []Tid, mode Mode) []string {
	var out []string
	for _, o := range order {
		if !tid.Has(o) {
			continue
		}
		if s := literal(ctx, o.Part(), o.Tag(), mode); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func is(ctx *dialect.Context, s dialect.Set) bool {
	return ctx != nil && ctx.Is(s)
}

// Render spells t for mode. A nil ctx uses each keyword's canonical spelling.
func (t Type) Render(ctx *dialect.Context, mode Mode) string {
	var words []string
	b, s, a := t.Base, t.Store, t.Attr
	if mode != Error {
		b = nosigned(b)
	}

	// _Noreturn is a keyword rather than an attribute before C23.
	if a.Has(AttrNoreturn) && !is(ctx, dialect.Noreturn) {
		words = append(words, literal(ctx, PartAttr, tagNoreturn, mode))
		a = a.Without(AttrNoreturn)
	}
	if attrs := names(ctx, a, attrOrder, mode); len(attrs) > 0 {
		if mode == Native && is(ctx, dialect.AttributeSyntax) {
			words = append(words, "[["+strings.Join(attrs, ",")+"]]")
		} else {
			words = append(words, attrs...)
		}
	}

	switch mode {
	case English:
		if b.Within(AnyModifier) {
			b = b.With(BaseInt)
		}
		if s.Has(StoreFinal.With(StoreOverride)) {
			s = s.With(StoreVirtual)
		}
	case Native:
		if b.Has(AnyModifier) {
			b = b.Without(BaseInt)
		}
	}

	words = append(words, names(ctx, s, storageOrder, mode)...)
	words = append(words, names(ctx, s, qualifierOrder, mode)...)

	base := names(ctx, b, baseOrder, mode)
	if mode == Native && is(ctx, dialect.CPPMin(dialect.CPP23)) &&
		s.Has(QualAtomic) && !b.Has(BaseTypedef) && len(base) > 0 && len(words) > 0 {
		// C++23 spells an atomic type as _Atomic(T).
		last := len(words) - 1
		words[last] += "(" + strings.Join(base, " ") + ")"
		base = nil
	}
	words = append(words, base...)
	words = append(words, names(ctx, a, mscCallOrder, mode)...)

	switch {
	case b.Has(BaseNamespace):
		words = append(words, "namespace")
	case b.Has(BaseScope):
		words = append(words, "scope")
	}
	return strings.Join(words, " ")
}

// Name spells t natively in ctx.
func (t Type) Name(ctx *dialect.Context) string { return t.Render(ctx, Native) }

// ErrorName spells t for a diagnostic.
func (t Type) ErrorName(ctx *dialect.Context) string { return t.Render(ctx, Error) }

// Name spells a single part for a diagnostic.
func (t Tid) Name(ctx *dialect.Context) string { return Of(t).Render(ctx, Error) }

func (t Type) String() string { return t.Render(nil, Error) }
