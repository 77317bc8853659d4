package dialect

import (
	"golang.org/x/text/cases"
)

type langName struct {
	name    string
	isAlias bool
	lang    Lang
}

// langNames is ordered for listing: canonical names in chronological order,
// aliases next to what they name.
var langNames = []langName{
	{"C", false, NewestC},
	{"CK&R", true, KNRC},
	{"CKNR", true, KNRC},
	{"CKR", true, KNRC},
	{"K&R", true, KNRC},
	{"K&RC", false, KNRC},
	{"KNR", true, KNRC},
	{"KNRC", true, KNRC},
	{"KR", true, KNRC},
	{"KRC", true, KNRC},
	{"C78", true, KNRC},
	{"C89", false, C89},
	{"C90", true, C89},
	{"C95", false, C95},
	{"C99", false, C99},
	{"C11", false, C11},
	{"C17", false, C17},
	{"C18", true, C17},
	{"C23", false, C23},
	{"C2X", true, C23},
	{"C++", false, NewestCPP},
	{"C++98", false, CPP98},
	{"C++03", false, CPP03},
	{"C++11", false, CPP11},
	{"C++0X", true, CPP11},
	{"C++14", false, CPP14},
	{"C++1Y", true, CPP14},
	{"C++17", false, CPP17},
	{"C++1Z", true, CPP17},
	{"C++20", false, CPP20},
	{"C++2A", true, CPP20},
	{"C++23", false, CPP23},
	{"C++2B", true, CPP23},
}

// Find looks a dialect up by name, ignoring case. Aliases such as "C90" or
// "KNR" are accepted; "C" and "C++" mean the newest of each family.
func Find(name string) (Lang, bool) {
	// Caser хранит состояние, поэтому новый на каждый вызов.
	folder := cases.Fold()
	key := folder.String(name)
	for _, ln := range langNames {
		if folder.String(ln.name) == key {
			return ln.lang, true
		}
	}
	return 0, false
}

// Names returns the canonical (non-alias) names, in listing order.
func Names(withAliases bool) []string {
	out := make([]string, 0, len(langNames))
	for _, ln := range langNames {
		if ln.isAlias && !withAliases {
			continue
		}
		out = append(out, ln.name)
	}
	return out
}
