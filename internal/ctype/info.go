package ctype

import "cdecl/internal/dialect"

// info describes one flag: where it is legal on its own, its paraphrase and
// its dialect-dependent spellings.
type info struct {
	legal   dialect.Set
	english string // "" when the paraphrase equals the literal
	spell   dialect.Spellings
}

func lit(s string) dialect.Spellings { return dialect.Literal(s) }

// gnu returns spellings that fall back to the GNU extension keyword where the
// standard keyword does not exist.
func gnu(std dialect.Set, ext, keyword string) dialect.Spellings {
	return dialect.MustSpellings(
		dialect.Spelling{Langs: std.Complement(), Literal: ext},
		dialect.Spelling{Langs: dialect.Any, Literal: keyword},
	)
}

var baseInfo = [numBaseTags]info{
	tagVoid:     {dialect.Void, "", lit("void")},
	tagAutoType: {dialect.AndNewer(dialect.C89), "automatic", gnu(dialect.AutoType, "__auto_type", "auto")},
	tagBitInt:   {dialect.BitInt, "bit-precise integer", lit("_BitInt")},
	tagBool: {dialect.BoolType, "boolean", dialect.MustSpellings(
		dialect.Spelling{Langs: dialect.BoolKeyword, Literal: "bool"},
		dialect.Spelling{Langs: dialect.Any, Literal: "_Bool"},
	)},
	tagChar:      {dialect.Any, "character", lit("char")},
	tagChar8:     {dialect.Char8, "character 8", lit("char8_t")},
	tagChar16:    {dialect.Char16And32, "character 16", lit("char16_t")},
	tagChar32:    {dialect.Char16And32, "character 32", lit("char32_t")},
	tagWChar:     {dialect.WcharT, "wide character", lit("wchar_t")},
	tagShort:     {dialect.Any, "", lit("short")},
	tagInt:       {dialect.Any, "integer", lit("int")},
	tagLong:      {dialect.Any, "", lit("long")},
	tagLongLong:  {dialect.LongLong, "", lit("long")},
	tagSigned:    {dialect.Any, "", gnu(dialect.Signed, "__signed", "signed")},
	tagUnsigned:  {dialect.Any, "", lit("unsigned")},
	tagFloat:     {dialect.Any, "floating point", lit("float")},
	tagDouble:    {dialect.Any, "double precision", lit("double")},
	tagComplex:   {dialect.AnyC, "complex", gnu(dialect.Complex, "__complex", "_Complex")},
	tagImaginary: {dialect.Imaginary, "imaginary", lit("_Imaginary")},
	tagEnum:      {dialect.Enum, "enumeration", lit("enum")},
	tagStruct:    {dialect.Any, "structure", lit("struct")},
	tagUnion:     {dialect.Any, "", lit("union")},
	tagClass:     {dialect.AnyCPP, "", lit("class")},
	tagTypedef:   {dialect.Any, "", lit("")},
	tagAccum:     {dialect.C99.Set(), "accum", lit("_Accum")},
	tagFract:     {dialect.C99.Set(), "fract", lit("_Fract")},
	tagSat:       {dialect.C99.Set(), "saturated", lit("_Sat")},
	tagNamespace: {dialect.AnyCPP, "", lit("namespace")},
	tagScope:     {dialect.Any, "", lit("scope")},
}

var storageInfo = [numStorageTags]info{
	tagAutoStorage:    {dialect.AutoStorage, "automatic", lit("auto")},
	tagBlock:          {dialect.Any, "block", lit("__block")},
	tagExtern:         {dialect.Any, "external", lit("extern")},
	tagExternC:        {dialect.AnyCPP, `external "C" linkage`, lit(`extern "C"`)},
	tagRegister:       {dialect.Register, "", lit("register")},
	tagStatic:         {dialect.Any, "", lit("static")},
	tagThreadLocal:    {dialect.ThreadLocal, "thread local", dialect.MustSpellings(
		dialect.Spelling{Langs: dialect.ThreadLocalWord, Literal: "thread_local"},
		dialect.Spelling{Langs: dialect.Any, Literal: "_Thread_local"},
	)},
	tagTypedefStorage: {dialect.Any, "type", lit("typedef")},
	tagConsteval:      {dialect.Consteval, "constant evaluation", lit("consteval")},
	tagConstexpr:      {dialect.Constexpr, "constant expression", lit("constexpr")},
	tagConstinit:      {dialect.Constinit, "constant initialization", lit("constinit")},
	tagDefault:        {dialect.DefaultDeleteFunc, "", lit("default")},
	tagDelete:         {dialect.DefaultDeleteFunc, "deleted", lit("delete")},
	tagExplicit:       {dialect.AnyCPP, "", lit("explicit")},
	tagExport:         {dialect.Export, "exported", lit("export")},
	tagFinal:          {dialect.FinalOverride, "", lit("final")},
	tagFriend:         {dialect.AnyCPP, "", lit("friend")},
	tagInline:         {dialect.Any, "", gnu(dialect.Inline, "__inline", "inline")},
	tagMutable:        {dialect.AnyCPP, "", lit("mutable")},
	tagNoexcept:       {dialect.Noexcept, "no exception", lit("noexcept")},
	tagOverride:       {dialect.FinalOverride, "overridden", lit("override")},
	tagThis:           {dialect.ExplicitObjParam, "", lit("this")},
	tagThrow:          {dialect.AnyCPP, "non-throwing", lit("throw")},
	tagVirtual:        {dialect.AnyCPP, "", lit("virtual")},
	tagPure:           {dialect.AnyCPP, "pure", lit("pure")},

	tagAtomic:    {dialect.AtomicQualifier, "atomic", lit("_Atomic")},
	tagConst:     {dialect.Any, "constant", gnu(dialect.Const, "__const", "const")},
	tagNonEmpty:  {dialect.QualifiedArrays, "non-empty", lit("static")},
	tagRef:       {dialect.RefQualifiedFuncs, "", lit("reference")},
	tagRvalueRef: {dialect.RefQualifiedFuncs, "", lit("rvalue reference")},
	tagRestrict:  {dialect.Any, "restricted", gnu(dialect.Restrict, "__restrict", "restrict")},
	tagVolatile:  {dialect.Any, "", gnu(dialect.Volatile, "__volatile", "volatile")},
	tagRelaxed:   {dialect.C99.Set(), "", lit("relaxed")},
	tagShared:    {dialect.C99.Set(), "", lit("shared")},
	tagStrict:    {dialect.C99.Set(), "", lit("strict")},
}

var attrInfo = [numAttrTags]info{
	tagCarriesDependency: {dialect.CarriesDependency, "carries dependency", lit("carries_dependency")},
	tagDeprecated:        {dialect.Deprecated, "", lit("deprecated")},
	tagMaybeUnused:       {dialect.MaybeUnused, "maybe unused", lit("maybe_unused")},
	tagNodiscard:         {dialect.Nodiscard, "non-discardable", lit("nodiscard")},
	tagNoreturn: {dialect.NonReturningFunc, "non-returning", dialect.MustSpellings(
		dialect.Spelling{Langs: dialect.Noreturn, Literal: "noreturn"},
		dialect.Spelling{Langs: dialect.Any, Literal: "_Noreturn"},
	)},
	tagNoUniqueAddress: {dialect.NoUniqueAddress, "non-unique address", lit("no_unique_address")},
	tagReproducible:    {dialect.Reproducible, "", lit("reproducible")},
	tagUnsequenced:     {dialect.Unsequenced, "", lit("unsequenced")},
	tagCdecl:           {dialect.MSCExtensions, "cdecl", lit("__cdecl")},
	tagClrcall:         {dialect.MSCExtensions, "clrcall", lit("__clrcall")},
	tagFastcall:        {dialect.MSCExtensions, "fastcall", lit("__fastcall")},
	tagStdcall:         {dialect.MSCExtensions, "stdcall", lit("__stdcall")},
	tagThiscall:        {dialect.MSCExtensions, "thiscall", lit("__thiscall")},
	tagVectorcall:      {dialect.MSCExtensions, "vectorcall", lit("__vectorcall")},
}

func infoOf(p Part, t Tag) *info {
	switch p {
	case PartBase:
		return &baseInfo[t]
	case PartStorage:
		return &storageInfo[t]
	case PartAttr:
		return &attrInfo[t]
	}
	return nil
}

// Legal returns the dialects in which the single flag t is legal on its own.
func (t Tid) Legal() dialect.Set {
	return infoOf(t.Part(), t.Tag()).legal
}

// literal picks the spelling of a single flag for mode.
func literal(ctx *dialect.Context, p Part, t Tag, mode Mode) string {
	in := infoOf(p, t)
	if mode == English && in.english != "" {
		return in.english
	}
	if ctx == nil {
		return in.spell.Canonical()
	}
	return in.spell.Resolve(ctx)
}
