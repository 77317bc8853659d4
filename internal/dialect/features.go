package dialect

// Dialects in which individual features exist.
var (
	Alignment         = CMin(C11) | CPPMin(CPP11)
	AlignedCSUs       = CPPMin(CPP11)
	AttributeSyntax   = CMin(C23) | CPPMin(CPP11)
	AtomicQualifier   = CMin(C11) | CPPMin(CPP23)
	AutoParameters    = CPPMin(CPP20)
	AutoPointerTypes  = CPPMin(CPP11)
	AutoReturnTypes   = CPPMin(CPP14)
	AutoStorage       = AnyC | CPPMax(CPP03)
	AutoType          = CMin(C23) | CPPMin(CPP11)
	AutoTypeMultiDecl = CPPMin(CPP11)
	BitInt            = CMin(C23)
	BoolKeyword       = CMin(C23) | AnyCPP
	BoolType          = CMin(C99) | AnyCPP
	Char8             = CMin(C23) | CPPMin(CPP20)
	Char16And32       = CMin(C11) | CPPMin(CPP11)
	Complex           = CMin(C99)
	Const             = CMin(C89) | AnyCPP
	Consteval         = CPPMin(CPP20)
	Constexpr         = CMin(C23) | CPPMin(CPP11)
	ConstexprVoidFunc = CPPMin(CPP14)
	Constinit         = CPPMin(CPP20)
	Constructors      = AnyCPP
	CSUReturnTypes    = CMin(C89) | AnyCPP
	DefaultDeleteFunc = CPPMin(CPP11)
	DefaultRelOps     = CPPMin(CPP20)
	Enum              = CMin(C89) | AnyCPP
	EnumBitFields     = AnyCPP
	EnumClass         = CPPMin(CPP11)
	ExplicitObjParam  = CPPMin(CPP23)
	Export            = CPPMin(CPP20)
	ExplicitUDefConvs = CPPMin(CPP11)
	FinalOverride     = CPPMin(CPP11)
	FixedTypeEnum     = CMin(C23) | CPPMin(CPP11)
	ImplicitInt       = CMax(C95)
	Imaginary         = CMin(C99)
	Inline            = CMin(C99) | AnyCPP
	InlineVariables   = CPPMin(CPP17)
	KNRFuncDefs       = CMax(C17)
	LongDouble        = CMin(C89) | AnyCPP
	LongFloat         = KNRC.Set()
	LongLong          = CMin(C99) | CPPMin(CPP11)
	MSCExtensions     = Any
	Noexcept          = CPPMin(CPP11)
	NonReturningFunc  = CMin(C11) | CPPMin(CPP11)
	PointersToMember  = AnyCPP
	Prototypes        = CMin(C89) | AnyCPP
	QualifiedArrays   = CMin(C99)
	RefQualifiedFuncs = CPPMin(CPP11)
	References        = AnyCPP
	Register          = AnyC | CPPMax(CPP14)
	Restrict          = CMin(C99)
	RvalueReferences  = CPPMin(CPP11)
	Signed            = CMin(C89) | AnyCPP
	StaticOpParens    = CPPMin(CPP23)
	TentativeDefs     = AnyC
	ThreadLocal       = CMin(C11) | CPPMin(CPP11)
	ThreadLocalWord   = CMin(C23) | CPPMin(CPP11)
	Throw             = CPPMax(CPP17)
	UnsignedChar      = CMin(C89) | AnyCPP
	UnsignedShort     = CMin(C89) | AnyCPP
	UnsignedLong      = CMin(C89) | AnyCPP
	VariadicOnly      = CMin(C23) | AnyCPP
	VirtualConstexpr  = CPPMin(CPP20)
	VLAs              = CMin(C99)
	Void              = CMin(C89) | AnyCPP
	Volatile          = CMin(C89) | AnyCPP
	WcharT            = CMin(C95) | AnyCPP

	// attributes
	CarriesDependency = CPPMin(CPP11)
	Deprecated        = CMin(C23) | CPPMin(CPP14)
	MaybeUnused       = CMin(C23) | CPPMin(CPP17)
	Nodiscard         = CMin(C23) | CPPMin(CPP17)
	NoUniqueAddress   = CPPMin(CPP20)
	Noreturn          = CMin(C23) | CPPMin(CPP11)
	Reproducible      = CMin(C23)
	Unsequenced       = CMin(C23)
)
