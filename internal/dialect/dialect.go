package dialect

import (
	"fmt"
	"math/bits"
)

// Lang identifies one C or C++ dialect: exactly one standard bit, optionally
// OR'd with extension-profile bits.
type Lang uint32

// Set is a bitwise-or of dialects.
type Set uint32

// Стандартные диалекты. Порядок битов задаёт хронологию: все C++ новее всех C.
const (
	KNRC  Lang = 1 << 0
	C89   Lang = 1 << 1
	C95   Lang = 1 << 2
	C99   Lang = 1 << 3
	C11   Lang = 1 << 4
	C17   Lang = 1 << 5
	C23   Lang = 1 << 6
	EMC   Lang = 1 << 7 // Embedded C profile bit
	UPC   Lang = 1 << 8 // Unified Parallel C profile bit
	CPP98 Lang = 1 << 9
	CPP03 Lang = 1 << 10
	CPP11 Lang = 1 << 11
	CPP14 Lang = 1 << 12
	CPP17 Lang = 1 << 13
	CPP20 Lang = 1 << 14
	CPP23 Lang = 1 << 15

	// C99EMC and C99UPC are not selectable; they mark keywords that exist only
	// in the extension profiles.
	C99EMC = C99 | EMC
	C99UPC = C99 | UPC

	NewestC   = C23
	NewestCPP = CPP23
)

const (
	None Set = 0

	maskC   Set = 0x01FF
	maskCPP Set = 0xFE00
	maskExt Set = 0x0180

	// Any is every standard dialect; extension bits are excluded.
	Any    Set = (maskC | maskCPP) &^ maskExt
	AnyC   Set = maskC &^ maskExt
	AnyCPP Set = maskCPP
)

// Set widens l to a one-member set.
func (l Lang) Set() Set { return Set(l) }

// Std strips the extension-profile bits.
func (l Lang) Std() Lang { return l &^ Lang(maskExt) }

// IsC reports whether l is a C dialect.
func (l Lang) IsC() bool { return Set(l)&AnyC != 0 }

// IsCPP reports whether l is a C++ dialect.
func (l Lang) IsCPP() bool { return Set(l)&AnyCPP != 0 }

// Name returns the canonical dialect name.
func (l Lang) Name() string {
	switch l {
	case KNRC:
		return "K&RC"
	case C89:
		return "C89"
	case C95:
		return "C95"
	case C99:
		return "C99"
	case C99EMC:
		return "C99 (with Embedded C extensions)"
	case C99UPC:
		return "C99 (with Unified Parallel C extensions)"
	case C11:
		return "C11"
	case C17:
		return "C17"
	case C23:
		return "C23"
	case CPP98:
		return "C++98"
	case CPP03:
		return "C++03"
	case CPP11:
		return "C++11"
	case CPP14:
		return "C++14"
	case CPP17:
		return "C++17"
	case CPP20:
		return "C++20"
	case CPP23:
		return "C++23"
	}
	return ""
}

func (l Lang) String() string { return l.Name() }

func (l Lang) GoString() string {
	return fmt.Sprintf("dialect.Lang(%s)", l.Name())
}

// CPlusPlus returns the value of __cplusplus for l, or "" for C dialects.
func (l Lang) CPlusPlus() string {
	switch l.Std() {
	case CPP98, CPP03:
		return "199711L"
	case CPP11:
		return "201103L"
	case CPP14:
		return "201402L"
	case CPP17:
		return "201703L"
	case CPP20:
		return "202002L"
	case CPP23:
		return "202302L"
	}
	return ""
}

// STDCVersion returns the value of __STDC_VERSION__ for l, or "" when the
// dialect does not define it.
func (l Lang) STDCVersion() string {
	switch l.Std() {
	case C89, C95:
		return "199409L"
	case C99:
		return "199901L"
	case C11:
		return "201112L"
	case C17:
		return "201710L"
	case C23:
		return "202311L"
	}
	return ""
}

// All lists every selectable dialect, oldest first.
func All() []Lang {
	out := make([]Lang, 0, bits.OnesCount32(uint32(Any)))
	for s := Any; s != None; {
		low := s & -s
		out = append(out, Lang(low))
		s &^= low
	}
	return out
}
