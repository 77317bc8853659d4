package ast

import (
	"strings"

	"cdecl/internal/ctype"
)

// Scope is one component of a scoped name together with what it names
// (class, struct, union, namespace or a generic scope).
type Scope struct {
	Name string
	Type ctype.Type
}

// ScopedName is a possibly qualified name, outermost scope first:
// S::T::x is {S, T, x}.
type ScopedName []Scope

// Name builds an unqualified name; an empty string gives an empty name.
func Name(s string) ScopedName {
	if s == "" {
		return nil
	}
	return ScopedName{{Name: s, Type: ctype.Of(ctype.BaseScope)}}
}

// ParseName splits "a::b::c" into scopes of the generic scope type.
func ParseName(s string) ScopedName {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "::")
	out := make(ScopedName, 0, len(parts))
	for _, p := range parts {
		out = append(out, Scope{Name: strings.TrimSpace(p), Type: ctype.Of(ctype.BaseScope)})
	}
	return out
}

func (n ScopedName) Count() int  { return len(n) }
func (n ScopedName) Empty() bool { return len(n) == 0 }

// Local returns the innermost name.
func (n ScopedName) Local() string {
	if len(n) == 0 {
		return ""
	}
	return n[len(n)-1].Name
}

// LocalType returns the type of the innermost scope.
func (n ScopedName) LocalType() ctype.Type {
	if len(n) == 0 {
		return ctype.TypeNone
	}
	return n[len(n)-1].Type
}

// At returns the i-th name counting from the innermost (0).
func (n ScopedName) At(i int) string {
	if i < 0 || i >= len(n) {
		return ""
	}
	return n[len(n)-1-i].Name
}

// ScopeName is everything but the local name: "a::b" for "a::b::c".
func (n ScopedName) ScopeName() string {
	if len(n) < 2 {
		return ""
	}
	return n[:len(n)-1].Full()
}

// ScopeType returns the type of the scope enclosing the local name.
func (n ScopedName) ScopeType() ctype.Type {
	if len(n) < 2 {
		return ctype.TypeNone
	}
	return n[len(n)-2].Type
}

// Full joins every scope with "::".
func (n ScopedName) Full() string {
	parts := make([]string, len(n))
	for i, s := range n {
		parts[i] = s.Name
	}
	return strings.Join(parts, "::")
}

// Equal compares names only; scope types are ignored.
func (n ScopedName) Equal(o ScopedName) bool {
	if len(n) != len(o) {
		return false
	}
	for i := range n {
		if n[i].Name != o[i].Name {
			return false
		}
	}
	return true
}

// IsCtor reports whether the last two names match, as in S::S.
func (n ScopedName) IsCtor() bool {
	return len(n) > 1 && n.At(0) == n.At(1)
}

func (n ScopedName) String() string { return n.Full() }
