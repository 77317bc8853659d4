package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Конфликты флагов типа
	TypInfo     Code = 1000
	TypConflict Code = 1001

	// Нарушения диалекта
	LngInfo            Code = 2000
	LngIllegal         Code = 2001
	LngUnsupportedKind Code = 2002
	LngUnsupported     Code = 2003

	// Структурные ошибки
	SemInfo           Code = 3000
	SemStructural     Code = 3001
	SemAlignment      Code = 3002
	SemArray          Code = 3003
	SemBuiltin        Code = 3004
	SemBitField       Code = 3005
	SemCast           Code = 3006
	SemCtorDtor       Code = 3007
	SemEnum           Code = 3008
	SemFunction       Code = 3009
	SemMain           Code = 3010
	SemOperator       Code = 3011
	SemParam          Code = 3012
	SemPointer        Code = 3013
	SemReference      Code = 3014
	SemReturn         Code = 3015
	SemUdefConv       Code = 3016
	SemUdefLit        Code = 3017
	SemRedefinition   Code = 3018
	SemStorage        Code = 3019
	SemWarningAsErr   Code = 3020
	SemUnknownTypedef Code = 3021

	// Имена и устаревшие конструкции (предупреждения)
	NamInfo               Code = 4000
	NamKeyword            Code = 4001
	NamReserved           Code = 4002
	NamReservedUdefLit    Code = 4003
	NamDeprecatedRegister Code = 4004
	NamDeprecatedVolatile Code = 4005
	NamDeprecatedThrow    Code = 4006
	NamNodiscardVoid      Code = 4007
	NamImplicitInt        Code = 4008

	// Документы с объявлениями
	DclInfo        Code = 5000
	DclSyntax      Code = 5001
	DclUnknownKey  Code = 5002
	DclBadValue    Code = 5003
	DclUnknownType Code = 5004
	DclUnknownLang Code = 5005
	DclNoDecls     Code = 5006
	DclMissingKey  Code = 5007

	// Файлы и кэш
	IOInfo          Code = 6000
	IOLoadFileError Code = 6001
	IOCacheError    Code = 6002
	IOConfigError   Code = 6003

	// Наблюдаемость
	ObsInfo    Code = 7000
	ObsTimings Code = 7001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		TypInfo:               "Type information",
		TypConflict:           "Conflicting type specifiers",
		LngInfo:               "Dialect information",
		LngIllegal:            "Illegal in the active dialect",
		LngUnsupportedKind:    "Declaration kind not supported in the active dialect",
		LngUnsupported:        "Construct not supported in the active dialect",
		SemInfo:               "Declaration information",
		SemStructural:         "Ill-formed declaration",
		SemAlignment:          "Invalid alignment",
		SemArray:              "Invalid array",
		SemBuiltin:            "Invalid built-in type",
		SemBitField:           "Invalid bit-field",
		SemCast:               "Invalid cast",
		SemCtorDtor:           "Invalid constructor or destructor",
		SemEnum:               "Invalid enum",
		SemFunction:           "Invalid function",
		SemMain:               "Invalid main()",
		SemOperator:           "Invalid operator",
		SemParam:              "Invalid parameter",
		SemPointer:            "Invalid pointer",
		SemReference:          "Invalid reference",
		SemReturn:             "Invalid return type",
		SemUdefConv:           "Invalid user-defined conversion",
		SemUdefLit:            "Invalid user-defined literal",
		SemRedefinition:       "Redefinition",
		SemStorage:            "Invalid storage class or qualifier",
		SemWarningAsErr:       "Warning treated as error",
		SemUnknownTypedef:     "Unknown typedef",
		NamInfo:               "Name information",
		NamKeyword:            "Name is a keyword in another dialect",
		NamReserved:           "Reserved identifier",
		NamReservedUdefLit:    "Reserved user-defined literal",
		NamDeprecatedRegister: "Deprecated register",
		NamDeprecatedVolatile: "Deprecated volatile",
		NamDeprecatedThrow:    "Deprecated dynamic exception specification",
		NamNodiscardVoid:      "[[nodiscard]] on a void function",
		NamImplicitInt:        "Implicit int",
		DclInfo:               "Declaration document information",
		DclSyntax:             "Malformed declaration document",
		DclUnknownKey:         "Unknown key",
		DclBadValue:           "Invalid value",
		DclUnknownType:        "Unknown type name",
		DclUnknownLang:        "Unknown language",
		DclNoDecls:            "No declarations",
		DclMissingKey:         "Missing key",
		IOInfo:                "I/O information",
		IOLoadFileError:       "Failed to load file",
		IOCacheError:          "Cache error",
		IOConfigError:         "Configuration error",
		ObsInfo:               "Observability information",
		ObsTimings:            "Phase timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LNG%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("NAM%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("DCL%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
