package typedefs

import (
	"errors"
	"fmt"
	"sort"

	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/dialect"
	"cdecl/internal/source"
)

// ErrRedefinition is returned by Add when a name is already bound to a type
// that is not equivalent.
var ErrRedefinition = errors.New("typedef redefined with a different type")

// Entry is one alias. The definition lives in the entry's own tree and is
// copied into a declaration tree on use.
type Entry struct {
	Name ast.ScopedName
	Tree *ast.Tree
	Def  ast.NodeID
	// Langs are the dialects the alias is visible in.
	Langs       dialect.Set
	UserDefined bool
}

// Registry maps typedef names to their definitions.
type Registry struct {
	byName map[string]*Entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]*Entry)}
}

// Add binds name to the type rooted at def in src. Re-adding an equivalent
// type is accepted and keeps the first entry.
func (r *Registry) Add(name ast.ScopedName, src *ast.Tree, def ast.NodeID, user bool) error {
	return r.add(name, src, def, dialect.Any, user)
}

func (r *Registry) add(name ast.ScopedName, src *ast.Tree, def ast.NodeID, langs dialect.Set, user bool) error {
	if name.Empty() {
		return errors.New("typedef without a name")
	}
	tree, root := strip(src, def)
	if err := r.compare(name, tree, root); err != nil || r.has(name) {
		return err
	}
	r.byName[name.Full()] = &Entry{Name: name, Tree: tree, Def: root, Langs: langs, UserDefined: user}
	return nil
}

// Compatible reports whether binding name to the type rooted at def would
// be accepted: either name is unbound or bound to an equivalent type.
func (r *Registry) Compatible(name ast.ScopedName, src *ast.Tree, def ast.NodeID) error {
	tree, root := strip(src, def)
	return r.compare(name, tree, root)
}

func (r *Registry) has(name ast.ScopedName) bool {
	_, ok := r.byName[name.Full()]
	return ok
}

func (r *Registry) compare(name ast.ScopedName, tree *ast.Tree, root ast.NodeID) error {
	if r == nil {
		return nil
	}
	old, ok := r.byName[name.Full()]
	if !ok || ast.Equal(old.Tree, old.Def, tree, root) {
		return nil
	}
	return fmt.Errorf("%q: %w", name.Full(), ErrRedefinition)
}

// strip copies a definition into its own tree without the typedef storage
// class and the declared name.
func strip(src *ast.Tree, def ast.NodeID) (*ast.Tree, ast.NodeID) {
	tree := ast.NewTree(8)
	root := tree.Import(src, def)
	if n := tree.Get(root); n != nil {
		n.Type = n.Type.Without(ctype.StoreTypedef)
		n.Name = nil
	}
	return tree, root
}

// Lookup returns the entry for a full name like "std::byte".
func (r *Registry) Lookup(name string) (*Entry, bool) {
	if r == nil {
		return nil, false
	}
	e, ok := r.byName[name]
	return e, ok
}

// LookupIn is Lookup restricted to aliases visible in ctx.
func (r *Registry) LookupIn(ctx *dialect.Context, name string) (*Entry, bool) {
	e, ok := r.Lookup(name)
	if !ok || (ctx != nil && !ctx.Is(e.Langs)) {
		return nil, false
	}
	return e, true
}

// Instantiate adds a typedef node named name to t, with typ (qualifiers,
// storage) on the node and a copy of the definition behind it.
func (r *Registry) Instantiate(t *ast.Tree, name string, sp source.Span, typ ctype.Type) (ast.NodeID, bool) {
	e, ok := r.Lookup(name)
	if !ok {
		return ast.NoNodeID, false
	}
	def := t.Import(e.Tree, e.Def)
	return t.NewTypedef(sp, typ, e.Name, def), true
}

// Entries returns every entry sorted by name.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, 0, len(r.byName))
	for _, e := range r.byName {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name.Full() < out[j].Name.Full()
	})
	return out
}

func (r *Registry) Len() int { return len(r.byName) }

// Clone returns a registry with the same entries. Entries are never changed
// after Add, so the copies share them.
func (r *Registry) Clone() *Registry {
	out := New()
	if r == nil {
		return out
	}
	for k, e := range r.byName {
		out.byName[k] = e
	}
	return out
}
