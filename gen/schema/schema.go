// Package schema builds shapes from a YAML description instead of Go source.
// It needs no type-checking, so member types are classified from their
// spelling alone. A member whose type is a union of the same schema is tested
// as nil-or-method, so the hand-written union interface must declare the
// predicates it derives.
//
//	package: shapes
//	types:
//	  - name: Record
//	    kind: struct
//	    derive: [IsEmpty, IsDefault]
//	    fields:
//	      - {name: Foo, type: string}
//	      - {name: Bar, type: bool}
//	  - name: Sample
//	    kind: union
//	    variants:
//	      - {name: Unit, kind: struct, default: true}
//	      - {name: Tuple, kind: array, elem: string, len: 2}
package schema

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/gen/shape"
	"github.com/teranos/isx/internal/util"
)

// Config mirrors the extract settings that apply to schema input.
type Config struct {
	// Families applies to types that list no derive families.
	Families          shape.FamilySet
	MaxArity          int
	DefaultFuncPrefix string
}

type file struct {
	Package string      `yaml:"package"`
	Path    string      `yaml:"path"`
	Dir     string      `yaml:"dir"`
	Types   []yaml.Node `yaml:"types"`
}

type typeSpec struct {
	Name        string        `yaml:"name"`
	Kind        string        `yaml:"kind"`
	Derive      []string      `yaml:"derive"`
	Receiver    string        `yaml:"receiver"`
	DefaultFunc string        `yaml:"default_func"`
	Variants    []variantSpec `yaml:"variants"`
	recordSpec  `yaml:",inline"`
}

type variantSpec struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Default    bool   `yaml:"default"`
	Pointer    bool   `yaml:"pointer"`
	Comparable *bool  `yaml:"comparable"`
	recordSpec `yaml:",inline"`
}

// recordSpec describes struct, array and newtype bodies.
type recordSpec struct {
	Fields []fieldSpec `yaml:"fields"`
	Elem   string      `yaml:"elem"`
	Len    int         `yaml:"len"`
	Type   string      `yaml:"type"`
	Check  string      `yaml:"check"`
}

type fieldSpec struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Check string `yaml:"check"`
}

// Load reads a schema file.
func Load(path string, cfg Config) (*shape.Package, shape.Diagnostics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read schema %s", path)
	}
	return Parse(data, path, cfg)
}

// Parse builds a package from schema data. filename is used for positions;
// the package directory defaults to the schema's own directory.
func Parse(data []byte, filename string, cfg Config) (*shape.Package, shape.Diagnostics, error) {
	if cfg.MaxArity <= 0 {
		cfg.MaxArity = 64
	}
	if cfg.DefaultFuncPrefix == "" {
		cfg.DefaultFuncPrefix = "Default"
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to parse schema %s", filename)
	}
	if f.Package == "" || !token.IsIdentifier(f.Package) {
		return nil, nil, errors.Newf("schema %s: package must be a Go identifier, got %q", filename, f.Package)
	}

	dir := filepath.Dir(filename)
	if f.Dir != "" {
		if filepath.IsAbs(f.Dir) {
			dir = f.Dir
		} else {
			dir = filepath.Join(dir, f.Dir)
		}
	}

	b := &builder{
		cfg:       cfg,
		filename:  filename,
		requested: make(map[string]shape.FamilySet),
		newtypes:  make(map[string]spelling),
		unions:    make(map[string]bool),
	}
	specs, err := b.decode(f.Types)
	if err != nil {
		return nil, nil, err
	}

	pkg := &shape.Package{Name: f.Package, Path: f.Path, Dir: dir}
	for _, s := range specs {
		if typ, ok := b.build(s); ok {
			pkg.Types = append(pkg.Types, typ)
		}
	}
	b.diags.Sort()
	return pkg, b.diags, nil
}

type positioned struct {
	spec typeSpec
	pos  token.Position
	// variants holds the position of each entry under variants:.
	variants []token.Position
}

type builder struct {
	cfg       Config
	filename  string
	requested map[string]shape.FamilySet
	// newtypes maps a newtype or variant name to its underlying spelling.
	newtypes map[string]spelling
	// unions are the union names; their values are interfaces that may be nil.
	unions map[string]bool
	diags  shape.Diagnostics
}

// decode is the first pass: it decodes every type and records which names
// receive which families, so members may refer to types declared later.
func (b *builder) decode(nodes []yaml.Node) ([]positioned, error) {
	var specs []positioned
	seen := make(map[string]bool)

	for i := range nodes {
		n := &nodes[i]
		var s typeSpec
		if err := n.Decode(&s); err != nil {
			return nil, errors.Wrapf(err, "%s:%d: invalid type", b.filename, n.Line)
		}
		pos := token.Position{Filename: b.filename, Line: n.Line, Column: n.Column}
		if !token.IsIdentifier(s.Name) {
			return nil, errors.Newf("%s: type name %q is not an identifier", pos, s.Name)
		}
		if seen[s.Name] {
			return nil, errors.Newf("%s: type %s declared twice", pos, s.Name)
		}
		seen[s.Name] = true

		fams, err := shape.ParseFamilySet(s.Derive)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: type %s", pos, s.Name)
		}
		if fams.IsZero() {
			fams = b.cfg.Families
		}
		b.requested[s.Name] = fams
		if s.Kind == "union" {
			b.unions[s.Name] = true
		}
		for _, v := range s.Variants {
			if _, taken := b.requested[v.Name]; taken {
				return nil, errors.Newf("%s: variant %s of %s is declared elsewhere", pos, v.Name, s.Name)
			}
			b.requested[v.Name] = fams
		}
		specs = append(specs, positioned{spec: s, pos: pos, variants: b.variantPositions(n)})
	}
	return specs, nil
}

func (b *builder) fail(p positioned, family *shape.Family, err error) {
	b.diags = append(b.diags, shape.Diagnostic{Pos: p.pos, Type: p.spec.Name, Family: family, Err: err})
}

// variantPositions reads where each variant of a type mapping starts.
func (b *builder) variantPositions(n *yaml.Node) []token.Position {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value != "variants" {
			continue
		}
		var out []token.Position
		for _, item := range n.Content[i+1].Content {
			out = append(out, token.Position{Filename: b.filename, Line: item.Line, Column: item.Column})
		}
		return out
	}
	return nil
}

// build is the second pass for one type.
func (b *builder) build(p positioned) (*shape.Type, bool) {
	s := p.spec
	typ := &shape.Type{
		Name:     s.Name,
		Families: b.requested[s.Name],
		Receiver: s.Receiver,
		Pos:      p.pos,
	}

	if s.Kind != "union" {
		if len(s.Variants) > 0 {
			b.fail(p, nil, errors.NewUnsupportedShapef("type %s lists variants but is a %s", s.Name, s.Kind))
			return nil, false
		}
		kind, members, err := b.record(s.Name, s.Kind, s.recordSpec)
		if err != nil {
			b.fail(p, nil, err)
			return nil, false
		}
		typ.Kind, typ.Members = kind, members
	} else {
		typ.Kind = shape.TaggedUnion
		if len(s.Variants) == 0 {
			b.fail(p, nil, errors.NewUnsupportedShapef("union %s has no variants", s.Name))
			return nil, false
		}
		for i, vs := range s.Variants {
			if vs.Kind == "union" {
				b.fail(p, nil, errors.NewUnsupportedShapef("variant %s of %s is itself a union", vs.Name, s.Name))
				return nil, false
			}
			kind, members, err := b.record(vs.Name, vs.Kind, vs.recordSpec)
			if err != nil {
				b.fail(p, nil, errors.Wrapf(err, "variant %s", vs.Name))
				return nil, false
			}
			safe := b.equalitySafe(vs.Kind, vs.recordSpec)
			if vs.Comparable != nil {
				safe = *vs.Comparable
			}
			pos := p.pos
			if i < len(p.variants) {
				pos = p.variants[i]
			}
			typ.Variants = append(typ.Variants, shape.Variant{
				Name:          vs.Name,
				Kind:          kind,
				Members:       members,
				MarkedDefault: vs.Default,
				Pointer:       vs.Pointer,
				Comparable:    safe,
				Pos:           pos,
			})
		}
		typ.DefaultFunc = s.DefaultFunc
		if typ.DefaultFunc == "" {
			typ.DefaultFunc = b.cfg.DefaultFuncPrefix + s.Name
		}
	}

	ok := true
	for _, f := range typ.Families.List() {
		var err error
		if typ.IsUnion() {
			for i := range typ.Variants {
				if err = b.fillChecks(typ.Variants[i].Name, typ.Variants[i].Members, f); err != nil {
					break
				}
			}
		} else {
			err = b.fillChecks(typ.Name, typ.Members, f)
		}
		if err != nil {
			ok = false
			b.fail(p, util.Ptr(f), err)
		}
	}
	if ok {
		prune(typ)
	}
	return typ, ok
}

func (b *builder) record(name, kind string, r recordSpec) (shape.Kind, []shape.Member, error) {
	switch kind {
	case "struct":
		var members []shape.Member
		for _, fs := range r.Fields {
			if fs.Name == "_" {
				continue
			}
			if !token.IsIdentifier(fs.Name) {
				return 0, nil, errors.Newf("field name %q of %s is not an identifier", fs.Name, name)
			}
			m, err := member(fs.Name, len(members), fs.Type, fs.Check)
			if err != nil {
				return 0, nil, err
			}
			members = append(members, m)
		}
		if len(members) == 0 {
			return shape.UnitRecord, nil, nil
		}
		return shape.NamedRecord, members, nil

	case "array":
		if r.Len < 0 {
			return 0, nil, errors.NewUnsupportedShapef("array %s has negative length %d", name, r.Len)
		}
		if r.Len == 0 {
			return shape.UnitRecord, nil, nil
		}
		if r.Len > b.cfg.MaxArity {
			return 0, nil, errors.NewUnsupportedShapef("array type %s has %d elements, more than max_arity %d", name, r.Len, b.cfg.MaxArity)
		}
		members := make([]shape.Member, r.Len)
		for i := range members {
			m, err := member(fmt.Sprintf("_f%d", i), i, r.Elem, r.Check)
			if err != nil {
				return 0, nil, err
			}
			m.Positional = true
			members[i] = m
		}
		return shape.PositionalRecord, members, nil

	case "newtype":
		sp, err := classifyType(r.Type)
		if err != nil {
			return 0, nil, err
		}
		switch sp.kind {
		case spelledBasic, spelledSlice, spelledMap, spelledChan:
		default:
			return 0, nil, errors.NewUnsupportedShapef("type %s over %s cannot be a newtype", name, r.Type)
		}
		if sp.kind == spelledBasic && sp.name == "unsafe.Pointer" {
			return 0, nil, errors.NewUnsupportedShapef("type %s over %s cannot be a newtype", name, r.Type)
		}
		m, err := member("_f0", 0, name, r.Check)
		if err != nil {
			return 0, nil, err
		}
		m.Self = true
		b.newtypes[name] = sp
		return shape.PositionalRecord, []shape.Member{m}, nil

	case "":
		return 0, nil, errors.NewUnsupportedShapef("type %s has no kind", name)
	}
	return 0, nil, errors.WithHint(
		errors.NewUnsupportedShapef("type %s has unknown kind %q", name, kind),
		"kinds are struct, array, newtype and union")
}

// member builds a member, pinning its check for every family when check is
// set.
func member(name string, index int, typ, check string) (shape.Member, error) {
	m := shape.Member{Name: name, Index: index, Type: typ}
	if typ == "" {
		return m, errors.Newf("member %s has no type", name)
	}
	if check == "" {
		return m, nil
	}
	kind, err := shape.ParseCheckKind(check)
	if err != nil {
		return m, errors.Wrapf(err, "member %s", name)
	}
	m.Checks = make(map[shape.Family]shape.CheckKind, len(shape.Families))
	for _, f := range shape.Families {
		m.Checks[f] = kind
	}
	return m, nil
}

func (b *builder) fillChecks(owner string, members []shape.Member, f shape.Family) error {
	for i := range members {
		m := &members[i]
		if _, pinned := m.Check(f); pinned {
			continue
		}
		var (
			kind shape.CheckKind
			err  error
		)
		if m.Self {
			kind, err = builtinCheck(b.newtypes[owner], f)
		} else {
			var sp spelling
			if sp, err = classifyType(m.Type); err == nil {
				kind, err = b.check(sp, f)
			}
		}
		if err != nil {
			return errors.WithHint(
				errors.Wrapf(err, "%s.%s", owner, m.Name),
				"derive "+f.Method()+" for "+m.Type+" in this schema, or set check on the member")
		}
		if m.Checks == nil {
			m.Checks = make(map[shape.Family]shape.CheckKind)
		}
		m.Checks[f] = kind
	}
	return nil
}

// prune drops pinned checks for families the type does not derive.
func prune(t *shape.Type) {
	trim := func(members []shape.Member) {
		for i := range members {
			for f := range members[i].Checks {
				if !t.Families.Has(f) {
					delete(members[i].Checks, f)
				}
			}
		}
	}
	trim(t.Members)
	for i := range t.Variants {
		trim(t.Variants[i].Members)
	}
}
