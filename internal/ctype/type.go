package ctype

import (
	"fmt"

	"cdecl/internal/dialect"
)

// Type is the full type of a declaration: one Tid per part.
type Type struct {
	Base  Tid
	Store Tid
	Attr  Tid
}

// Of collects tids into a Type without conflict checks.
func Of(tids ...Tid) Type {
	t := Type{Base: BaseNone, Store: StoreNone, Attr: AttrNone}
	for _, tid := range tids {
		p := t.field(tid.Part())
		if p == nil {
			continue
		}
		*p = p.With(tid)
	}
	return t
}

func (t *Type) field(p Part) *Tid {
	switch p {
	case PartBase:
		return &t.Base
	case PartStorage:
		return &t.Store
	case PartAttr:
		return &t.Attr
	}
	return nil
}

// Get returns the Tid of part p.
func (t Type) Get(p Part) Tid {
	if f := t.field(p); f != nil {
		return *f
	}
	return 0
}

// IsNone reports whether no flag of any part is set.
func (t Type) IsNone() bool {
	return t.Base.Empty() && t.Store.Empty() && t.Attr.Empty()
}

// Has reports whether t has any flag of tid in tid's part.
func (t Type) Has(tid Tid) bool { return t.Get(tid.Part()).Has(tid) }

// Without returns t with the flags of tid removed from tid's part.
func (t Type) Without(tid Tid) Type {
	if f := t.field(tid.Part()); f != nil {
		*f = f.Without(tid)
	}
	return t
}

// With returns t with tid or'ed in, without conflict checks.
func (t Type) With(tid Tid) Type {
	if f := t.field(tid.Part()); f != nil {
		*f = f.With(tid)
	}
	return t
}

// Union returns the part-wise union of t and o.
func (t Type) Union(o Type) Type {
	return Of(t.Base, o.Base, t.Store, o.Store, t.Attr, o.Attr)
}

// ConflictError is returned by Add when a flag is already present.
type ConflictError struct {
	New      Tid
	Existing Tid
}

func (e *ConflictError) Error() string {
	return e.Message(nil)
}

// Message renders the conflict with the spellings of ctx; nil means
// canonical spellings.
func (e *ConflictError) Message(ctx *dialect.Context) string {
	return fmt.Sprintf("%q can not be combined with %q",
		Of(e.New).Render(ctx, Error), Of(e.Existing).Render(ctx, Error))
}

func isLongInt(t Tid) bool {
	return t.Part() == PartBase && t.HasExcept(BaseLong, AnyFloat.With(AnyEMC))
}

// Add returns t with tid added. A flag already present is a conflict, except
// that "long" added to a "long" integer becomes "long long".
func (t Type) Add(tid Tid) (Type, error) {
	f := t.field(tid.Part())
	if f == nil {
		return t, nil
	}
	if isLongInt(*f) && isLongInt(tid) {
		tid = BaseLongLong
	}
	if f.Has(tid) {
		return t, &ConflictError{New: tid, Existing: *f}
	}
	*f = f.With(tid)
	return t, nil
}

// AddType adds every part of o to t, stopping at the first conflict.
func (t Type) AddType(o Type) (Type, error) {
	var err error
	for _, tid := range []Tid{o.Base, o.Store, o.Attr} {
		if tid.Empty() {
			continue
		}
		if t, err = t.Add(tid); err != nil {
			return t, err
		}
	}
	return t, nil
}

// checkLegal returns the legal set of the first present flag in tags that
// is not legal in ctx.
func checkLegal(ctx *dialect.Context, tid Tid, lo, hi Tag) dialect.Set {
	for _, tag := range tid.Tags() {
		if tag < lo || tag >= hi {
			continue
		}
		if legal := infoOf(tid.Part(), tag).legal; !ctx.Is(legal) {
			return legal
		}
	}
	return dialect.Any
}

// checkCombo returns the first table entry for a pair of present flags that
// excludes ctx.
func checkCombo(ctx *dialect.Context, tid Tid, table comboTable, lo, hi Tag) dialect.Set {
	tags := tid.Tags()
	for i, row := range tags {
		if row < lo || row >= hi {
			continue
		}
		for _, col := range tags[:i+1] {
			if col < lo {
				continue
			}
			if langs, ok := table[PairOf(row, col)]; ok && !ctx.Is(langs) {
				return langs
			}
		}
	}
	return dialect.Any
}

// Check returns the dialects the first restricting flag or pair of flags is
// legal in, or dialect.Any when t is legal in the active dialect. Order:
// attributes, storage classes, base types, qualifiers; then storage, base and
// qualifier combinations.
func (t Type) Check(ctx *dialect.Context) dialect.Set {
	checks := []func() dialect.Set{
		func() dialect.Set { return checkLegal(ctx, t.Attr, 0, numAttrTags) },
		func() dialect.Set { return checkLegal(ctx, t.Store, 0, firstQualifierTag) },
		func() dialect.Set { return checkLegal(ctx, t.Base, 0, numBaseTags) },
		func() dialect.Set { return checkLegal(ctx, t.Store, firstQualifierTag, numStorageTags) },
		func() dialect.Set { return checkCombo(ctx, t.Store, storageCombos, 0, firstQualifierTag) },
		func() dialect.Set { return checkCombo(ctx, t.Base, baseCombos, 0, numBaseTags) },
		func() dialect.Set {
			return checkCombo(ctx, t.Store, qualifierCombos, firstQualifierTag, numStorageTags)
		},
	}
	for _, check := range checks {
		if langs := check(); langs != dialect.Any {
			return langs
		}
	}
	return dialect.Any
}

// nosigned drops an explicit "signed" unless the type is "signed char".
func nosigned(b Tid) Tid {
	if b.HasExcept(BaseSigned, BaseChar) {
		b = b.Without(BaseSigned)
		if b.Empty() {
			b = b.With(BaseInt)
		}
	}
	return b
}

// NormalizeBase makes a base Tid canonical: no redundant "signed", explicit
// "int" where only a modifier implies it.
func NormalizeBase(b Tid) Tid {
	if b.Part() != PartBase && b.Part() != PartNone {
		return b
	}
	b = nosigned(b)
	if b.HasExcept(BaseShort, AnyEMC) ||
		b.HasExcept(BaseLong, AnyFloat.With(AnyEMC)) ||
		b.HasExcept(BaseUnsigned, BaseChar.With(AnyEMC)) {
		b = b.With(BaseInt)
	}
	return b
}

// Normalize returns t with its base part normalised.
func (t Type) Normalize() Type {
	t.Base = NormalizeBase(t.Base)
	return t
}

// Equivalent reports whether t and o denote the same type: normalised base
// parts match and storage and attributes match exactly.
func (t Type) Equivalent(o Type) bool {
	if !t.Store.Is(o.Store) || !t.Attr.Is(o.Attr) {
		return false
	}
	return NormalizeBase(t.Base).Is(NormalizeBase(o.Base))
}
