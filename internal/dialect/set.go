package dialect

import (
	"math/bits"
	"strings"
)

// Union returns s | o.
func (s Set) Union(o Set) Set { return s | o }

// Intersect returns s & o.
func (s Set) Intersect(o Set) Set { return s & o }

// Complement returns every standard dialect not in s.
func (s Set) Complement() Set { return Any &^ s }

// Contains reports whether the standard bit of l is in s.
func (s Set) Contains(l Lang) bool { return s&Set(l.Std()) != 0 }

// Empty reports whether s has no standard dialect.
func (s Set) Empty() bool { return s&^maskExt == None }

// Std strips the extension-profile bits.
func (s Set) Std() Set { return s &^ maskExt }

// Oldest returns the oldest standard dialect in s together with the
// extension bits of s.
func (s Set) Oldest() Lang {
	std := s.Std()
	if std == None {
		return 0
	}
	return Lang(std&-std) | Lang(s&maskExt)
}

// Newest returns the newest standard dialect in s together with the
// extension bits of s.
func (s Set) Newest() Lang {
	std := s.Std()
	if std == None {
		return 0
	}
	return Lang(1<<(31-bits.LeadingZeros32(uint32(std)))) | Lang(s&maskExt)
}

// IsOne returns AnyC or AnyCPP when s lies wholly in one family, else None.
func (s Set) IsOne() Set {
	isC := s&AnyC != None
	isCPP := s&AnyCPP != None
	switch {
	case isC && !isCPP:
		return AnyC
	case isCPP && !isC:
		return AnyCPP
	}
	return None
}

// CoarseName returns "C" or "C++" when s lies wholly in one family.
func (s Set) CoarseName() string {
	switch s.IsOne() {
	case AnyC:
		return "C"
	case AnyCPP:
		return "C++"
	}
	return ""
}

// String lists the member names separated by commas.
func (s Set) String() string {
	if s == None {
		return "none"
	}
	if s.Std() == Any {
		return "any"
	}
	var names []string
	for _, l := range All() {
		if s.Contains(l) {
			names = append(names, l.Name())
		}
	}
	return strings.Join(names, ",")
}

// AndNewer returns l and every newer dialect.
func AndNewer(l Lang) Set {
	b := Set(l.Std())
	return ^(b - 1) & Any
}

// Newer returns every dialect strictly newer than l.
func Newer(l Lang) Set { return AndNewer(l) &^ Set(l.Std()) }

// AndOlder returns l and every older dialect.
func AndOlder(l Lang) Set {
	b := Set(l.Std())
	return (b | (b - 1)) & Any
}

// Older returns every dialect strictly older than l.
func Older(l Lang) Set { return AndOlder(l) &^ Set(l.Std()) }

// CMin returns the C dialects from l onward.
func CMin(l Lang) Set { return AndNewer(l) & AnyC }

// CMax returns the C dialects up to and including l.
func CMax(l Lang) Set { return AndOlder(l) & AnyC }

// CPPMin returns the C++ dialects from l onward.
func CPPMin(l Lang) Set { return AndNewer(l) & AnyCPP }

// CPPMax returns the C++ dialects up to and including l.
func CPPMax(l Lang) Set { return AndOlder(l) & AnyCPP }

// Range returns the dialects from lo through hi inclusive.
func Range(lo, hi Lang) Set { return AndNewer(lo) & AndOlder(hi) }
