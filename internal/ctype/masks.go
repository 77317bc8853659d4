package ctype

func union(tids ...Tid) Tid {
	var out Tid
	for _, t := range tids {
		out = out.With(t)
	}
	return out
}

// Base shorthands.
var (
	AnyChar     = union(BaseChar, BaseWChar, BaseChar8, BaseChar16, BaseChar32)
	AnyClass    = union(BaseClass, BaseStruct, BaseUnion)
	AnyECSU     = union(BaseEnum, AnyClass)
	AnyEMC      = union(BaseAccum, BaseFract)
	AnyFloat    = union(BaseFloat, BaseDouble)
	AnyModifier = union(BaseShort, BaseLong, BaseLongLong, BaseSigned, BaseUnsigned)
	AnyIntegral = union(BaseBool, AnyChar, BaseInt, AnyModifier)
	AnyScope    = union(AnyClass, BaseNamespace)
)

// Storage shorthands.
var (
	CV           = union(QualConst, QualVolatile)
	AnyUPC       = union(QualRelaxed, QualShared, QualStrict)
	AnyQualifier = union(QualAtomic, CV, QualRestrict, AnyUPC)
	AnyReference = union(QualRef, QualRvalueRef)

	AnyStorage = union(StoreAuto, StoreBlock, StoreExtern, StoreExternC,
		StoreRegister, StoreStatic, StoreThreadLocal, StoreTypedef,
		StoreConsteval, StoreConstexpr, StoreConstinit, StoreDefault,
		StoreDelete, StoreExplicit, StoreExport, StoreFinal, StoreFriend,
		StoreInline, StoreMutable, StoreNoexcept, StoreOverride, StoreThis,
		StoreThrow, StoreVirtual, StorePure)

	// Specifiers allowed on a constructor definition and declaration.
	CtorDef  = union(StoreConstexpr, StoreInline, StoreNoexcept, StoreThrow)
	CtorDecl = union(CtorDef, StoreDefault, StoreDelete, StoreExplicit, StoreFriend)
	CtorOnly = StoreExplicit

	DtorDef  = union(StoreInline, StoreNoexcept, StoreThrow)
	DtorDecl = union(DtorDef, StoreDelete, StoreFinal, StoreFriend,
		StoreOverride, StorePure, StoreVirtual)

	// Storage legal on a function in C.
	FuncC = union(StoreExtern, StoreInline, StoreStatic, StoreTypedef)

	FuncLikeCPP = union(CV, StoreConsteval, StoreConstexpr, StoreDefault,
		StoreDelete, StoreExplicit, StoreExport, StoreExternC, StoreFinal,
		StoreFriend, FuncC, StoreNoexcept, StoreOverride, StorePure,
		AnyReference, QualRestrict, StoreThrow, StoreVirtual)

	// Storage classes a parameter may have.
	FuncLikeParam = union(StoreRegister, StoreThis)

	// Not allowed on a member function with an explicit object parameter.
	NotExplicitObjParam = union(CV, AnyReference, QualRestrict, StoreStatic, StoreVirtual)

	AnyLinkage        = union(StoreExtern, StoreExternC, StoreStatic)
	AnyArrayQualifier = union(CV, QualRestrict, QualNonEmpty)

	// constexpr objects in C may not be any of these.
	NotConstexprCOnly = union(QualAtomic, QualRestrict, QualVolatile)

	MainFuncC   = StoreExtern
	MainFuncCPP = union(StoreExtern, StoreFriend, StoreNoexcept, StoreThrow)

	NewDeleteOper     = union(StoreExtern, StoreFriend, StoreNoexcept, StoreStatic, StoreThrow)
	NonMemberFuncOnly = StoreFriend

	UserDefConv = union(QualConst, StoreConstexpr, StoreExplicit, StoreFinal,
		StoreFriend, StoreInline, StoreNoexcept, StoreOverride, StorePure,
		StoreThrow, StoreVirtual)

	// Storage that only a member function may have; "= default" is added
	// where defaulted relational operators are unavailable.
	memberFuncOnly = union(CV, StoreDelete, StoreFinal, StoreOverride,
		AnyReference, QualRestrict, StoreVirtual)
)

// Attribute shorthands.
var (
	AnyMSCCall = union(AttrCdecl, AttrClrcall, AttrFastcall, AttrStdcall,
		AttrThiscall, AttrVectorcall)

	AttrFunc = union(AttrCarriesDependency, AttrDeprecated, AttrMaybeUnused,
		AttrNodiscard, AttrNoreturn, AttrReproducible, AttrUnsequenced, AnyMSCCall)
	AttrObject = union(AttrCarriesDependency, AttrDeprecated, AttrMaybeUnused,
		AttrNoUniqueAddress)
)

// MemberFuncOnly returns the storage only member functions may have; it
// includes "= default" unless defaulted relational operators exist.
func MemberFuncOnly(defaultRelOps bool) Tid {
	if defaultRelOps {
		return memberFuncOnly
	}
	return memberFuncOnly.With(StoreDefault)
}

// Common types.
var (
	TypeNone    = Of()
	TypeTypedef = Of(StoreTypedef)
	TypeInt     = Of(BaseInt)
	TypeVoid    = Of(BaseVoid)
)
