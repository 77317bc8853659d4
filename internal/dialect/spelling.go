package dialect

import "fmt"

// Spelling is one dialect-dependent spelling of a keyword.
type Spelling struct {
	Langs   Set
	Literal string
}

// Spellings is an ordered list resolved by first match. The last entry must
// cover every dialect.
type Spellings []Spelling

// MustSpellings validates the final-entry-is-universal rule.
func MustSpellings(ss ...Spelling) Spellings {
	if len(ss) == 0 {
		panic("dialect: empty spelling list")
	}
	if last := ss[len(ss)-1]; last.Langs.Std() != Any {
		panic(fmt.Sprintf("dialect: last spelling %q is not universal", last.Literal))
	}
	return Spellings(ss)
}

// Literal returns a single spelling valid in every dialect.
func Literal(s string) Spellings {
	return Spellings{{Langs: Any, Literal: s}}
}

// Resolve returns the first spelling whose set contains the active dialect.
func (ss Spellings) Resolve(ctx *Context) string {
	for _, s := range ss {
		if ctx.Is(s.Langs) {
			return s.Literal
		}
	}
	if len(ss) == 0 {
		return ""
	}
	return ss[len(ss)-1].Literal
}

// Canonical returns the last (universal) spelling.
func (ss Spellings) Canonical() string {
	if len(ss) == 0 {
		return ""
	}
	return ss[len(ss)-1].Literal
}
