package ctype

import "cdecl/internal/dialect"

// byWord maps every spelling of every flag to the flags spelled that way,
// in part then tag order.
var byWord = buildWords()

// extra spellings that are not keywords of any dialect.
var wordAliases = map[string]Tid{
	"&":            QualRef,
	"&&":           QualRvalueRef,
	"__thread":     StoreThreadLocal,
	"__restrict__": QualRestrict,
}

func buildWords() map[string][]Tid {
	m := make(map[string][]Tid)
	add := func(p Part, n Tag) {
		for tag := range n {
			for _, s := range infoOf(p, tag).spell {
				if s.Literal != "" {
					m[s.Literal] = append(m[s.Literal], mk(p, tag))
				}
			}
		}
	}
	add(PartBase, numBaseTags)
	add(PartStorage, numStorageTags)
	add(PartAttr, numAttrTags)
	return m
}

// Lookup returns the flag spelled word. When a word spells several flags
// ("auto", "static") the one spelled that way in ctx wins; a nil ctx picks
// the first.
func Lookup(ctx *dialect.Context, word string) (Tid, bool) {
	if tid, ok := wordAliases[word]; ok {
		return tid, true
	}
	cands := byWord[word]
	if len(cands) == 0 {
		return 0, false
	}
	if ctx != nil {
		for _, tid := range cands {
			if infoOf(tid.Part(), tid.Tag()).spell.Resolve(ctx) == word {
				return tid, true
			}
		}
	}
	return cands[0], true
}
