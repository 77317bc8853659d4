package ctype

import (
	"fmt"
	"math/bits"
)

// Part is one of the three disjoint namespaces a Tid belongs to.
type Part uint8

const (
	PartNone Part = iota
	PartBase
	PartStorage
	PartAttr
)

func (p Part) String() string {
	switch p {
	case PartBase:
		return "base"
	case PartStorage:
		return "storage"
	case PartAttr:
		return "attribute"
	}
	return "none"
}

// Tag is the dense per-part index of a single flag. Tables are keyed by tags,
// never by raw bit positions.
type Tag uint8

// Tid is a set of flags of a single part. The part lives in the top bits so
// that a Tid on its own knows where it belongs.
type Tid uint64

const (
	partShift     = 62
	partMask  Tid = 3 << partShift
	flagMask  Tid = ^partMask
)

func mk(p Part, t Tag) Tid { return Tid(p)<<partShift | 1<<t }

// None returns the empty Tid of part p.
func None(p Part) Tid { return Tid(p) << partShift }

// Base tags, in table order.
const (
	tagVoid Tag = iota
	tagAutoType
	tagBitInt
	tagBool
	tagChar
	tagChar8
	tagChar16
	tagChar32
	tagWChar
	tagShort
	tagInt
	tagLong
	tagLongLong
	tagSigned
	tagUnsigned
	tagFloat
	tagDouble
	tagComplex
	tagImaginary
	tagEnum
	tagStruct
	tagUnion
	tagClass
	tagTypedef
	tagAccum
	tagFract
	tagSat
	tagNamespace
	tagScope

	numBaseTags
)

// Storage tags: storage classes first, then qualifiers. Qualifiers share the
// storage part but have a table of their own.
const (
	tagAutoStorage Tag = iota
	tagBlock
	tagExtern
	tagExternC
	tagRegister
	tagStatic
	tagThreadLocal
	tagTypedefStorage
	tagConsteval
	tagConstexpr
	tagConstinit
	tagDefault
	tagDelete
	tagExplicit
	tagExport
	tagFinal
	tagFriend
	tagInline
	tagMutable
	tagNoexcept
	tagOverride
	tagThis
	tagThrow
	tagVirtual
	tagPure

	tagAtomic
	tagConst
	tagNonEmpty
	tagRef
	tagRvalueRef
	tagRestrict
	tagVolatile
	tagRelaxed
	tagShared
	tagStrict

	numStorageTags
)

const firstQualifierTag = tagAtomic

// Attribute tags.
const (
	tagCarriesDependency Tag = iota
	tagDeprecated
	tagMaybeUnused
	tagNodiscard
	tagNoreturn
	tagNoUniqueAddress
	tagReproducible
	tagUnsequenced
	tagCdecl
	tagClrcall
	tagFastcall
	tagStdcall
	tagThiscall
	tagVectorcall

	numAttrTags
)

// Base types.
var (
	BaseNone      = None(PartBase)
	BaseVoid      = mk(PartBase, tagVoid)
	BaseAuto      = mk(PartBase, tagAutoType)
	BaseBitInt    = mk(PartBase, tagBitInt)
	BaseBool      = mk(PartBase, tagBool)
	BaseChar      = mk(PartBase, tagChar)
	BaseChar8     = mk(PartBase, tagChar8)
	BaseChar16    = mk(PartBase, tagChar16)
	BaseChar32    = mk(PartBase, tagChar32)
	BaseWChar     = mk(PartBase, tagWChar)
	BaseShort     = mk(PartBase, tagShort)
	BaseInt       = mk(PartBase, tagInt)
	BaseLong      = mk(PartBase, tagLong)
	BaseLongLong  = mk(PartBase, tagLongLong)
	BaseSigned    = mk(PartBase, tagSigned)
	BaseUnsigned  = mk(PartBase, tagUnsigned)
	BaseFloat     = mk(PartBase, tagFloat)
	BaseDouble    = mk(PartBase, tagDouble)
	BaseComplex   = mk(PartBase, tagComplex)
	BaseImaginary = mk(PartBase, tagImaginary)
	BaseEnum      = mk(PartBase, tagEnum)
	BaseStruct    = mk(PartBase, tagStruct)
	BaseUnion     = mk(PartBase, tagUnion)
	BaseClass     = mk(PartBase, tagClass)
	BaseTypedef   = mk(PartBase, tagTypedef)
	BaseAccum     = mk(PartBase, tagAccum)
	BaseFract     = mk(PartBase, tagFract)
	BaseSat       = mk(PartBase, tagSat)
	BaseNamespace = mk(PartBase, tagNamespace)
	BaseScope     = mk(PartBase, tagScope)
)

// Storage classes and storage-class-like specifiers.
var (
	StoreNone        = None(PartStorage)
	StoreAuto        = mk(PartStorage, tagAutoStorage)
	StoreBlock       = mk(PartStorage, tagBlock)
	StoreExtern      = mk(PartStorage, tagExtern)
	StoreExternC     = mk(PartStorage, tagExternC)
	StoreRegister    = mk(PartStorage, tagRegister)
	StoreStatic      = mk(PartStorage, tagStatic)
	StoreThreadLocal = mk(PartStorage, tagThreadLocal)
	StoreTypedef     = mk(PartStorage, tagTypedefStorage)
	StoreConsteval   = mk(PartStorage, tagConsteval)
	StoreConstexpr   = mk(PartStorage, tagConstexpr)
	StoreConstinit   = mk(PartStorage, tagConstinit)
	StoreDefault     = mk(PartStorage, tagDefault)
	StoreDelete      = mk(PartStorage, tagDelete)
	StoreExplicit    = mk(PartStorage, tagExplicit)
	StoreExport      = mk(PartStorage, tagExport)
	StoreFinal       = mk(PartStorage, tagFinal)
	StoreFriend      = mk(PartStorage, tagFriend)
	StoreInline      = mk(PartStorage, tagInline)
	StoreMutable     = mk(PartStorage, tagMutable)
	StoreNoexcept    = mk(PartStorage, tagNoexcept)
	StoreOverride    = mk(PartStorage, tagOverride)
	StoreThis        = mk(PartStorage, tagThis)
	StoreThrow       = mk(PartStorage, tagThrow)
	StoreVirtual     = mk(PartStorage, tagVirtual)
	StorePure        = mk(PartStorage, tagPure)
)

// Qualifiers.
var (
	QualAtomic    = mk(PartStorage, tagAtomic)
	QualConst     = mk(PartStorage, tagConst)
	QualNonEmpty  = mk(PartStorage, tagNonEmpty)
	QualRef       = mk(PartStorage, tagRef)
	QualRvalueRef = mk(PartStorage, tagRvalueRef)
	QualRestrict  = mk(PartStorage, tagRestrict)
	QualVolatile  = mk(PartStorage, tagVolatile)
	QualRelaxed   = mk(PartStorage, tagRelaxed)
	QualShared    = mk(PartStorage, tagShared)
	QualStrict    = mk(PartStorage, tagStrict)
)

// Attributes.
var (
	AttrNone              = None(PartAttr)
	AttrCarriesDependency = mk(PartAttr, tagCarriesDependency)
	AttrDeprecated        = mk(PartAttr, tagDeprecated)
	AttrMaybeUnused       = mk(PartAttr, tagMaybeUnused)
	AttrNodiscard         = mk(PartAttr, tagNodiscard)
	AttrNoreturn          = mk(PartAttr, tagNoreturn)
	AttrNoUniqueAddress   = mk(PartAttr, tagNoUniqueAddress)
	AttrReproducible      = mk(PartAttr, tagReproducible)
	AttrUnsequenced       = mk(PartAttr, tagUnsequenced)
	AttrCdecl             = mk(PartAttr, tagCdecl)
	AttrClrcall           = mk(PartAttr, tagClrcall)
	AttrFastcall          = mk(PartAttr, tagFastcall)
	AttrStdcall           = mk(PartAttr, tagStdcall)
	AttrThiscall          = mk(PartAttr, tagThiscall)
	AttrVectorcall        = mk(PartAttr, tagVectorcall)
)

// Part returns the part t belongs to.
func (t Tid) Part() Part { return Part(t >> partShift) }

func (t Tid) flags() Tid { return t & flagMask }

// Empty reports whether no flag is set.
func (t Tid) Empty() bool { return t.flags() == 0 }

// Has reports whether t and o share at least one flag.
func (t Tid) Has(o Tid) bool { return t.flags()&o.flags() != 0 }

// HasAll reports whether every flag of o is in t.
func (t Tid) HasAll(o Tid) bool { return t.flags()&o.flags() == o.flags() }

// HasExcept reports whether t has a flag of want but none of unwanted.
func (t Tid) HasExcept(want, unwanted Tid) bool {
	return t.Has(want) && !t.Has(unwanted)
}

// Is reports whether t and o carry exactly the same flags.
func (t Tid) Is(o Tid) bool { return t.flags() == o.flags() }

// Within reports whether t is non-empty and every flag of t is in o.
func (t Tid) Within(o Tid) bool {
	return !t.Empty() && t.flags()&^o.flags() == 0
}

// With returns t with the flags of o added.
func (t Tid) With(o Tid) Tid {
	if t.Part() == PartNone {
		t |= Tid(o.Part()) << partShift
	}
	return t | o.flags()
}

// Without returns t with the flags of o removed.
func (t Tid) Without(o Tid) Tid { return t &^ o.flags() }

// Only returns the flags of t that are also in o.
func (t Tid) Only(o Tid) Tid { return t & (partMask | o.flags()) }

// Count returns the number of flags set.
func (t Tid) Count() int { return bits.OnesCount64(uint64(t.flags())) }

// Tags lists the tags of the set flags in ascending order.
func (t Tid) Tags() []Tag {
	var out []Tag
	for f := uint64(t.flags()); f != 0; f &= f - 1 {
		out = append(out, Tag(bits.TrailingZeros64(f)))
	}
	return out
}

// Tag returns the tag of a single-flag Tid.
func (t Tid) Tag() Tag {
	if t.Count() != 1 {
		panic(fmt.Sprintf("ctype: Tag of %#x: not a single flag", uint64(t)))
	}
	return Tag(bits.TrailingZeros64(uint64(t.flags())))
}

// IsQualifier reports whether every flag of a storage Tid is a qualifier.
func (t Tid) IsQualifier() bool {
	if t.Part() != PartStorage || t.Empty() {
		return false
	}
	return uint64(t.flags())&(1<<firstQualifierTag-1) == 0
}

func (t Tid) String() string {
	if t.Empty() {
		return "none"
	}
	return Of(t).Render(nil, Error)
}
