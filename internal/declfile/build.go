package declfile

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
	"cdecl/internal/operator"
	"cdecl/internal/typedefs"
)

// Exactly one of these keys says what a node is; a mapping with a name and
// none of them is a K&R parameter given by name only.
var kindKeys = []string{
	"builtin", "bitint", "enum", "struct", "union", "class", "typedef",
	"array", "pointer", "reference", "rvalue_reference", "member_pointer",
	"function", "block", "operator", "constructor", "destructor",
	"conversion", "literal", "variadic",
}

var castKinds = map[string]ast.CastKind{
	"c":           ast.CastC,
	"const":       ast.CastConst,
	"dynamic":     ast.CastDynamic,
	"reinterpret": ast.CastReinterpret,
	"static":      ast.CastStatic,
}

// Builder turns document entries into declaration trees.
type Builder struct {
	Doc      *Document
	Context  *dialect.Context
	Typedefs *typedefs.Registry
	Reporter diag.Reporter
}

type build struct {
	*Builder
	tree *ast.Tree
	ok   bool
}

// Build adds the declarations of e to tree and returns their roots. It
// reports every problem it finds and returns false if there was one.
func (b *Builder) Build(tree *ast.Tree, e Entry) ([]ast.NodeID, bool) {
	s := &build{Builder: b, tree: tree, ok: true}
	var roots []ast.NodeID
	switch e.Kind {
	case EntryTypedef:
		roots = append(roots, s.typedef(e.node))
	case EntryCast:
		roots = append(roots, s.cast(e.node))
	case EntryList:
		f := s.fields(e.node, "list")
		list := f["list"]
		if list == nil || list.Kind != yaml.SequenceNode || len(list.Content) == 0 {
			s.fail(diag.DclBadValue, e.node, "list must hold at least one declaration")
			break
		}
		for _, n := range list.Content {
			roots = append(roots, s.node(n))
		}
	default:
		roots = append(roots, s.node(e.node))
	}
	if !s.ok {
		return nil, false
	}
	return roots, true
}

func (s *build) fail(code diag.Code, n *yaml.Node, format string, args ...any) ast.NodeID {
	s.ok = false
	diag.ReportError(s.Reporter, code, s.Doc.span(n), fmt.Sprintf(format, args...)).Emit()
	return ast.NoNodeID
}

// fields collects the values of a mapping, reporting keys not in allowed.
func (s *build) fields(m *yaml.Node, allowed ...string) map[string]*yaml.Node {
	out := make(map[string]*yaml.Node)
	if m == nil || m.Kind != yaml.MappingNode {
		if m != nil && m.Tag != "!!null" {
			s.fail(diag.DclBadValue, m, "expected a mapping")
		}
		return out
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		if !slices.Contains(allowed, key.Value) {
			s.fail(diag.DclUnknownKey, key, "unknown key %q; expected one of: %s", key.Value, strings.Join(allowed, ", "))
			continue
		}
		out[key.Value] = val
	}
	return out
}

func (s *build) require(m *yaml.Node, f map[string]*yaml.Node, key string) *yaml.Node {
	v := f[key]
	if v == nil {
		s.fail(diag.DclMissingKey, m, "missing key %q", key)
	}
	return v
}

func (s *build) typedef(m *yaml.Node) ast.NodeID {
	f := s.fields(m, "name", "type")
	name, typ := s.require(m, f, "name"), s.require(m, f, "type")
	if name == nil || typ == nil {
		return ast.NoNodeID
	}
	id := s.node(typ)
	n := s.tree.Get(id)
	if n == nil {
		return ast.NoNodeID
	}
	var err error
	if n.Type, err = n.Type.Add(ctype.StoreTypedef); err != nil {
		return s.conflict(typ, err)
	}
	n.Name = ast.ParseName(name.Value)
	return id
}

func (s *build) cast(m *yaml.Node) ast.NodeID {
	f := s.fields(m, "cast", "name", "to")
	kind, ok := castKinds[f["cast"].Value]
	if !ok {
		return s.fail(diag.DclBadValue, f["cast"], "unknown cast %q", f["cast"].Value)
	}
	to := s.require(m, f, "to")
	if to == nil {
		return ast.NoNodeID
	}
	id := s.tree.NewCast(s.Doc.span(f["cast"]), kind, s.node(to))
	if name := f["name"]; name != nil {
		s.tree.SetName(id, ast.ParseName(name.Value))
	}
	return id
}

func (s *build) node(m *yaml.Node) ast.NodeID {
	if m == nil || m.Kind != yaml.MappingNode {
		return s.fail(diag.DclBadValue, m, "expected a declaration mapping")
	}
	var kindKey, kindVal, nameN, scopesN, specsN, widthN, alignN *yaml.Node
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		switch k := key.Value; {
		case k == "name":
			nameN = val
		case k == "scopes":
			scopesN = val
		case k == "specs":
			specsN = val
		case k == "width":
			widthN = val
		case k == "align":
			alignN = val
		case slices.Contains(kindKeys, k):
			if kindKey != nil {
				return s.fail(diag.DclBadValue, key, "%q and %q can not both be given", kindKey.Value, k)
			}
			kindKey, kindVal = key, val
		default:
			return s.fail(diag.DclUnknownKey, key, "unknown key %q", k)
		}
	}

	typ, ok := s.words(ctype.TypeNone, specsN)
	if !ok {
		return ast.NoNodeID
	}
	name, ok := s.name(nameN, scopesN)
	if !ok {
		return ast.NoNodeID
	}

	var id ast.NodeID
	if kindKey == nil {
		if nameN == nil {
			return s.fail(diag.DclMissingKey, m, "declaration needs one of: %s", strings.Join(kindKeys, ", "))
		}
		id = s.tree.NewName(s.Doc.span(nameN), name)
	} else {
		id = s.kind(kindKey, kindVal, typ)
	}
	n := s.tree.Get(id)
	if n == nil {
		return ast.NoNodeID
	}
	if nameN != nil {
		n.Name = name
	}
	if widthN != nil {
		n.BitWidth = s.count(widthN)
	}
	if alignN != nil {
		n.Align = s.align(alignN)
	}
	return id
}

func (s *build) kind(key, val *yaml.Node, typ ctype.Type) ast.NodeID {
	sp := s.Doc.span(key)
	t := s.tree
	var ok bool
	switch key.Value {
	case "builtin":
		if typ, ok = s.words(typ, val); !ok {
			return ast.NoNodeID
		}
		return t.NewBuiltin(sp, typ)

	case "bitint":
		return t.NewBitInt(sp, typ, s.count(val))

	case "enum":
		if val.Kind == yaml.ScalarNode {
			return t.NewEnum(sp, typ, ast.ParseName(val.Value), ast.NoNodeID)
		}
		f := s.fields(val, "tag", "of")
		tag := s.require(val, f, "tag")
		if tag == nil {
			return ast.NoNodeID
		}
		of := ast.NoNodeID
		if f["of"] != nil {
			of = s.node(f["of"])
		}
		return t.NewEnum(sp, typ, ast.ParseName(tag.Value), of)

	case "struct", "union", "class":
		tid, _ := ctype.Lookup(s.Context, key.Value)
		if typ, ok = s.add(typ, tid, key); !ok {
			return ast.NoNodeID
		}
		return t.NewClass(sp, typ, ast.ParseName(val.Value))

	case "typedef":
		if _, found := s.Typedefs.LookupIn(s.Context, val.Value); !found {
			return s.fail(diag.SemUnknownTypedef, val, "%q: unknown type", val.Value)
		}
		id, _ := s.Typedefs.Instantiate(t, val.Value, s.Doc.span(val), typ)
		return id

	case "array":
		f := s.fields(val, "of", "size")
		of := s.require(val, f, "of")
		if of == nil {
			return ast.NoNodeID
		}
		return t.NewArray(sp, typ, s.node(of), s.size(f["size"]))

	case "pointer", "reference", "rvalue_reference":
		f := s.fields(val, "to")
		to := s.require(val, f, "to")
		if to == nil {
			return ast.NoNodeID
		}
		switch key.Value {
		case "pointer":
			return t.NewPointer(sp, typ, s.node(to))
		case "reference":
			return t.NewReference(sp, typ, s.node(to))
		}
		return t.NewRvalueReference(sp, typ, s.node(to))

	case "member_pointer":
		f := s.fields(val, "class", "to")
		class, to := s.require(val, f, "class"), s.require(val, f, "to")
		if class == nil || to == nil {
			return ast.NoNodeID
		}
		return t.NewPointerToMember(sp, typ, ast.ParseName(class.Value), s.node(to))

	case "function", "block", "literal":
		f := s.fields(val, "returns", "params", "member")
		ret := s.require(val, f, "returns")
		if ret == nil {
			return ast.NoNodeID
		}
		r, params := s.node(ret), s.params(f["params"])
		var id ast.NodeID
		switch key.Value {
		case "function":
			id = t.NewFunction(sp, typ, r, params...)
		case "block":
			id = t.NewBlock(sp, typ, r, params...)
		default:
			id = t.NewUdefLit(sp, typ, r, params...)
		}
		return t.SetMember(id, s.member(f["member"]))

	case "operator":
		f := s.fields(val, "op", "returns", "params", "member")
		opN, ret := s.require(val, f, "op"), s.require(val, f, "returns")
		if opN == nil || ret == nil {
			return ast.NoNodeID
		}
		op, found := operator.Find(opN.Value)
		if !found {
			return s.fail(diag.DclBadValue, opN, "unknown operator %q", opN.Value)
		}
		return t.NewOperator(sp, typ, op, s.member(f["member"]), s.node(ret), s.params(f["params"])...)

	case "constructor":
		f := s.fields(val, "params")
		return t.NewConstructor(sp, typ, s.params(f["params"])...)

	case "destructor":
		s.fields(val)
		return t.NewDestructor(sp, typ)

	case "conversion":
		f := s.fields(val, "to")
		to := s.require(val, f, "to")
		if to == nil {
			return ast.NoNodeID
		}
		return t.NewUdefConv(sp, typ, s.node(to))

	case "variadic":
		return t.NewVariadic(sp)
	}
	return s.fail(diag.DclUnknownKey, key, "unknown key %q", key.Value)
}

// words adds every keyword of val (a list, or one space-separated string)
// to typ, the way a parser adds specifiers one at a time.
func (s *build) words(typ ctype.Type, val *yaml.Node) (ctype.Type, bool) {
	if val == nil {
		return typ, true
	}
	var items []*yaml.Node
	switch val.Kind {
	case yaml.SequenceNode:
		items = val.Content
	case yaml.ScalarNode:
		items = []*yaml.Node{val}
	default:
		s.fail(diag.DclBadValue, val, "expected a list of type specifiers")
		return typ, false
	}

	for _, item := range items {
		for _, w := range strings.Fields(item.Value) {
			tid, found := ctype.Lookup(s.Context, w)
			if !found {
				s.fail(diag.DclUnknownType, item, "%q: unknown type specifier", w)
				return typ, false
			}
			var ok bool
			if typ, ok = s.add(typ, tid, item); !ok {
				return typ, false
			}
		}
	}
	return typ, true
}

func (s *build) add(typ ctype.Type, tid ctype.Tid, at *yaml.Node) (ctype.Type, bool) {
	out, err := typ.Add(tid)
	if err != nil {
		s.conflict(at, err)
		return typ, false
	}
	return out, true
}

func (s *build) conflict(at *yaml.Node, err error) ast.NodeID {
	var ce *ctype.ConflictError
	if errors.As(err, &ce) {
		return s.fail(diag.TypConflict, at, "%s", ce.Message(s.Context))
	}
	return s.fail(diag.TypConflict, at, "%v", err)
}

func (s *build) name(nameN, scopesN *yaml.Node) (ast.ScopedName, bool) {
	if nameN == nil {
		return nil, true
	}
	name := ast.ParseName(nameN.Value)
	if scopesN == nil {
		return name, true
	}
	if scopesN.Kind != yaml.SequenceNode || len(scopesN.Content) != len(name)-1 {
		s.fail(diag.DclBadValue, scopesN, "scopes must name the kind of each of the %d enclosing scopes", len(name)-1)
		return nil, false
	}
	for i, sc := range scopesN.Content {
		tid, found := ctype.Lookup(s.Context, sc.Value)
		if !found || tid.Part() != ctype.PartBase {
			s.fail(diag.DclBadValue, sc, "%q is not a kind of scope", sc.Value)
			return nil, false
		}
		name[i].Type = ctype.Of(tid)
	}
	return name, true
}

func (s *build) params(val *yaml.Node) []ast.NodeID {
	if val == nil {
		return nil
	}
	if val.Kind != yaml.SequenceNode {
		s.fail(diag.DclBadValue, val, "params must be a list")
		return nil
	}
	out := make([]ast.NodeID, 0, len(val.Content))
	for _, p := range val.Content {
		out = append(out, s.node(p))
	}
	return out
}

func (s *build) member(val *yaml.Node) ast.Member {
	if val == nil {
		return ast.MemberUnspecified
	}
	switch val.Value {
	case "member":
		return ast.MemberMember
	case "non-member":
		return ast.MemberNonMember
	}
	s.fail(diag.DclBadValue, val, `member must be "member" or "non-member", not %q`, val.Value)
	return ast.MemberUnspecified
}

func (s *build) size(val *yaml.Node) ast.ArraySize {
	switch {
	case val == nil:
		return ast.ArraySize{Kind: ast.SizeEmpty}
	case val.Value == "*":
		return ast.ArraySize{Kind: ast.SizeVLA}
	case val.Tag == "!!int":
		return ast.ArraySize{Kind: ast.SizeInt, Int: s.count(val)}
	}
	return ast.ArraySize{Kind: ast.SizeNamed, Name: val.Value}
}

func (s *build) align(val *yaml.Node) ast.Align {
	sp := s.Doc.span(val)
	if val.Kind == yaml.MappingNode {
		return ast.Align{Kind: ast.AlignType, Type: s.node(val), Span: sp}
	}
	return ast.Align{Kind: ast.AlignBytes, Bytes: s.count(val), Span: sp}
}

func (s *build) count(val *yaml.Node) uint {
	var n uint
	if err := val.Decode(&n); err != nil {
		s.fail(diag.DclBadValue, val, "expected a non-negative integer, not %q", val.Value)
	}
	return n
}
