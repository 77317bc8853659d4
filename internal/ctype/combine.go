package ctype

import (
	"fmt"

	"cdecl/internal/dialect"
)

// TagPair is an unordered pair of tags of one table, stored with A <= B.
type TagPair struct {
	A, B Tag
}

// PairOf returns the normalised pair of a and b.
func PairOf(a, b Tag) TagPair {
	if a > b {
		a, b = b, a
	}
	return TagPair{A: a, B: b}
}

// comboTable gives, for a pair of flags, the dialects in which they may
// appear together. A pair of a tag with itself restricts that flag alone.
// Missing pairs are unconstrained.
type comboTable map[TagPair]dialect.Set

// triangle builds a table from the rows of a lower triangle: row i lists the
// entries for columns 0..i of order. Entries equal to dialect.Any are left
// out.
func triangle(order []Tag, rows [][]dialect.Set) comboTable {
	if len(rows) != len(order) {
		panic(fmt.Sprintf("ctype: %d rows for %d tags", len(rows), len(order)))
	}
	t := make(comboTable)
	for i, row := range rows {
		if len(row) != i+1 {
			panic(fmt.Sprintf("ctype: row %d has %d entries", i, len(row)))
		}
		for j, langs := range row {
			if langs == dialect.Any {
				continue
			}
			t[PairOf(order[i], order[j])] = langs
		}
	}
	return t
}

func tagRange(lo, hi Tag) []Tag {
	out := make([]Tag, 0, hi-lo)
	for t := lo; t < hi; t++ {
		out = append(out, t)
	}
	return out
}

var (
	baseCombos      = buildBaseCombos()
	storageCombos   = buildStorageCombos()
	qualifierCombos = buildQualifierCombos()
)

func buildQualifierCombos() comboTable {
	var (
		___ = dialect.Any
		XXX = dialect.None
		ATO = dialect.AtomicQualifier
		CPP = dialect.AnyCPP
		QAR = dialect.QualifiedArrays
		RVR = dialect.RvalueReferences
		UPC = dialect.C99.Set()
	)
	return triangle(tagRange(firstQualifierTag, numStorageTags), [][]dialect.Set{
		//ato con  nea  ref  rva  res  vol  rel  sha  str
		{ATO},                                         // atomic
		{ATO, ___},                                    // const
		{XXX, QAR, QAR},                               // non-empty
		{XXX, CPP, XXX, CPP},                          // reference
		{XXX, RVR, XXX, XXX, RVR},                     // rvalue reference
		{XXX, ___, QAR, CPP, RVR, ___},                // restrict
		{ATO, ___, QAR, CPP, RVR, ___, ___},           // volatile
		{XXX, UPC, XXX, XXX, XXX, UPC, UPC, UPC},      // relaxed
		{XXX, UPC, XXX, XXX, XXX, UPC, UPC, UPC, UPC}, // shared
		{XXX, UPC, XXX, XXX, XXX, UPC, UPC, XXX, UPC, UPC}, // strict
	})
}

func buildStorageCombos() comboTable {
	var (
		___ = dialect.Any
		XXX = dialect.None
		AUS = dialect.AutoStorage
		CEV = dialect.Consteval
		CEX = dialect.Constexpr
		CIN = dialect.Constinit
		CPP = dialect.AnyCPP
		DDF = dialect.DefaultDeleteFunc
		EXP = dialect.Export
		FIN = dialect.FinalOverride
		INL = dialect.Inline
		NOE = dialect.Noexcept
		OVR = dialect.FinalOverride
		REG = dialect.Register
		THI = dialect.ExplicitObjParam
		THR = dialect.Throw
		TLS = dialect.ThreadLocal
		VCX = dialect.VirtualConstexpr
	)
	// auto blk ext exC reg sta thr typ cev cex cin def del exp xpo fin frn inl mut noe ovr thi thw vir pur
	return triangle(tagRange(tagAutoStorage, firstQualifierTag), [][]dialect.Set{
		{___}, // auto
		{___, ___}, // block
		{XXX, ___, ___}, // extern
		{XXX, ___, ___, CPP}, // extern "C"
		{XXX, ___, XXX, XXX, ___}, // register
		{XXX, XXX, XXX, XXX, XXX, ___}, // static
		{XXX, ___, ___, TLS, XXX, ___, ___}, // thread_local
		{XXX, ___, XXX, CPP, XXX, XXX, XXX, ___}, // typedef
		{XXX, CEV, CEV, CEV, XXX, CEV, XXX, XXX, CEV}, // consteval
		{AUS & CEX, CEX, XXX, XXX, CEX & REG, CEX, XXX, XXX, XXX, CEX}, // constexpr
		{XXX, XXX, CIN, CIN, XXX, CIN, CIN & TLS, XXX, XXX, XXX, CIN}, // constinit
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, CEV & DDF, CEX & DDF, XXX, DDF}, // default
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, CEV & DDF, CEX & DDF, XXX, XXX, DDF}, // delete
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, CEX, XXX, DDF, DDF, CPP}, // explicit
		{XXX, XXX, EXP, XXX, XXX, XXX, XXX, XXX, XXX, CEX & EXP, CIN, XXX, XXX, XXX, EXP}, // export
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, CEX & FIN, XXX, XXX, XXX, XXX, XXX, FIN}, // final
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, CEV, CEX, XXX, DDF, XXX, XXX, XXX, XXX, CPP}, // friend
		{XXX, XXX, ___, CPP, XXX, ___, XXX, XXX, CEV, CEX, CIN, DDF, DDF, CPP, EXP, FIN, CPP, INL}, // inline
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, CPP}, // mutable
		{XXX, XXX, NOE, NOE, XXX, NOE, XXX, NOE, CEV & NOE, CEX & NOE, XXX, NOE, NOE, NOE, EXP, NOE, NOE, NOE, NOE, NOE}, // noexcept
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, CEX & OVR, XXX, XXX, XXX, XXX, XXX, FIN & OVR, XXX, OVR, XXX, NOE & OVR, OVR}, // override
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, THI}, // this
		{XXX, XXX, CPP, CPP, XXX, CPP, XXX, CPP, CEV, CEX, XXX, DDF, DDF, CPP, XXX, FIN, XXX, CPP, THR, XXX, OVR, THI, CPP}, // throw
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, VCX, XXX, XXX, XXX, XXX, XXX, FIN, XXX, CPP, XXX, NOE, OVR, XXX, CPP, CPP}, // virtual
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, VCX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, CPP, XXX, NOE, OVR, XXX, CPP, CPP, CPP}, // pure
	})
}

func buildBaseCombos() comboTable {
	var (
		___ = dialect.Any
		XXX = dialect.None
		BIT = dialect.BitInt
		BOO = dialect.BoolType
		C08 = dialect.Char8
		C16 = dialect.Char16And32
		COM = dialect.Complex
		CPP = dialect.AnyCPP
		ENC = dialect.EnumClass
		ENU = dialect.Enum
		IMA = dialect.Imaginary
		LDO = dialect.LongDouble
		LFL = dialect.LongFloat
		LLO = dialect.LongLong
		SIG = dialect.Signed
		UNC = dialect.UnsignedChar
		UNL = dialect.UnsignedLong
		UNS = dialect.UnsignedShort
		UPC = dialect.C99.Set()
		VOL = dialect.Volatile
		WCH = dialect.WcharT
	)
	// namespace and scope never combine with anything and stay out of the table.
	// voi aut Bit boo cha ch8 c16 c32 wch sho int lon lol sig uns flo dou com ima enu str uni cla typ aca fra sat
	return triangle(tagRange(tagVoid, tagNamespace), [][]dialect.Set{
		{VOL}, // void
		{XXX, ___}, // auto
		{XXX, XXX, BIT}, // _BitInt
		{XXX, XXX, XXX, BOO}, // bool
		{XXX, XXX, XXX, XXX, ___}, // char
		{XXX, XXX, XXX, XXX, XXX, C08}, // char8_t
		{XXX, XXX, XXX, XXX, XXX, XXX, C16}, // char16_t
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, C16}, // char32_t
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, WCH}, // wchar_t
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, ___}, // short
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, ___, ___}, // int
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, ___, ___}, // long
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, LLO, ___, LLO}, // long long
		{XXX, XXX, BIT, XXX, SIG, XXX, XXX, XXX, XXX, SIG, SIG, SIG, SIG, SIG}, // signed
		{XXX, XXX, BIT, XXX, UNC, XXX, XXX, XXX, XXX, UNS, ___, UNL, LLO, XXX, ___}, // unsigned
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, LFL, XXX, XXX, XXX, ___}, // float
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, LDO, XXX, XXX, XXX, XXX, ___}, // double
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, COM, COM, COM}, // complex
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, IMA, IMA, XXX, IMA}, // imaginary
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, ENU}, // enum
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, ENC, ___}, // struct
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, ___}, // union
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, ENC, XXX, XXX, CPP}, // class
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, ___}, // typedef
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, UPC, XXX, UPC, XXX, UPC, UPC, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, UPC}, // _Accum
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, UPC, XXX, UPC, XXX, UPC, UPC, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, UPC}, // _Fract
		{XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, UPC, XXX, UPC, XXX, UPC, UPC, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, XXX, UPC, UPC, UPC}, // _Sat
	})
}

// CombinableIn returns the dialects in which a and b, flags of the same part,
// may appear together. Flags of different parts always combine.
func CombinableIn(a, b Tid) dialect.Set {
	if a.Part() != b.Part() {
		return dialect.Any
	}
	table := baseCombos
	switch {
	case a.Part() == PartAttr:
		return dialect.Any
	case a.Part() == PartStorage:
		aq, bq := a.IsQualifier(), b.IsQualifier()
		if aq != bq {
			return dialect.Any
		}
		table = storageCombos
		if aq {
			table = qualifierCombos
		}
	}
	if langs, ok := table[PairOf(a.Tag(), b.Tag())]; ok {
		return langs
	}
	return dialect.Any
}
