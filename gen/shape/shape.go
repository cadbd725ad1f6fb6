// Package shape is the normalized description of a type definition that the
// generator understands. Front ends (extract, schema) produce it; synth and
// render consume it. A Type lives for a single generation pass.
package shape

import (
	"fmt"
	"go/token"
	"sort"
	"strings"

	"github.com/teranos/isx/errors"
)

// Family is a predicate family.
type Family int

const (
	Empty Family = iota
	Default
)

// Families lists every family in rendering order.
var Families = []Family{Empty, Default}

// Method returns the predicate method name, e.g. "IsEmpty".
func (f Family) Method() string {
	switch f {
	case Empty:
		return "IsEmpty"
	case Default:
		return "IsDefault"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// Interface returns the capability interface in package isx, e.g. "Emptier".
func (f Family) Interface() string {
	switch f {
	case Empty:
		return "Emptier"
	case Default:
		return "Defaulter"
	}
	return ""
}

func (f Family) String() string {
	switch f {
	case Empty:
		return "empty"
	case Default:
		return "default"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// ParseFamily accepts "empty", "default" and the method names "IsEmpty",
// "IsDefault", case-insensitively.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty", "isempty":
		return Empty, nil
	case "default", "isdefault":
		return Default, nil
	}
	return 0, errors.Newf("unknown predicate family %q", s)
}

// FamilySet is a set of families.
type FamilySet uint8

// NewFamilySet returns a set holding fs.
func NewFamilySet(fs ...Family) FamilySet {
	var s FamilySet
	for _, f := range fs {
		s = s.With(f)
	}
	return s
}

// ParseFamilySet parses a list of family names.
func ParseFamilySet(names []string) (FamilySet, error) {
	var s FamilySet
	for _, n := range names {
		for _, part := range strings.Split(n, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			f, err := ParseFamily(part)
			if err != nil {
				return 0, err
			}
			s = s.With(f)
		}
	}
	return s, nil
}

func (s FamilySet) Has(f Family) bool       { return s&(1<<uint(f)) != 0 }
func (s FamilySet) With(f Family) FamilySet { return s | 1<<uint(f) }
func (s FamilySet) Without(f Family) FamilySet {
	return s &^ (1 << uint(f))
}
func (s FamilySet) IsZero() bool { return s == 0 }

// List returns the families in s in rendering order.
func (s FamilySet) List() []Family {
	var out []Family
	for _, f := range Families {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s FamilySet) String() string {
	var names []string
	for _, f := range s.List() {
		names = append(names, f.String())
	}
	return strings.Join(names, ",")
}

// Kind is the structural classification of a type or variant.
type Kind int

const (
	UnitRecord Kind = iota
	NamedRecord
	PositionalRecord
	TaggedUnion
)

func (k Kind) String() string {
	switch k {
	case UnitRecord:
		return "unit record"
	case NamedRecord:
		return "named record"
	case PositionalRecord:
		return "positional record"
	case TaggedUnion:
		return "tagged union"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// CheckKind says how a member's predicate is evaluated.
type CheckKind int

const (
	// CheckMethod calls the member's own predicate method: x.IsEmpty().
	CheckMethod CheckKind = iota
	// CheckNil compares against nil: pointers, funcs, interfaces.
	CheckNil
	// CheckNilOrMethod is for interfaces declaring the predicate: x == nil || x.IsEmpty().
	CheckNilOrMethod
	// CheckLen compares the length to zero: strings, slices, maps, chans, arrays.
	CheckLen
	// CheckZero compares to the zero literal: numbers.
	CheckZero
	// CheckFalse negates: booleans.
	CheckFalse
	// CheckIsZero calls x.IsZero(), e.g. time.Time.
	CheckIsZero
	// CheckJSON calls isx.EmptyJSON or isx.DefaultJSON.
	CheckJSON
)

var checkKindNames = map[CheckKind]string{
	CheckMethod:      "method",
	CheckNil:         "nil",
	CheckNilOrMethod: "nil-or-method",
	CheckLen:         "len",
	CheckZero:        "zero",
	CheckFalse:       "false",
	CheckIsZero:      "iszero",
	CheckJSON:        "json",
}

func (c CheckKind) String() string {
	if s, ok := checkKindNames[c]; ok {
		return s
	}
	return fmt.Sprintf("CheckKind(%d)", int(c))
}

// ParseCheckKind is the inverse of CheckKind.String.
func ParseCheckKind(s string) (CheckKind, error) {
	for k, name := range checkKindNames {
		if name == s {
			return k, nil
		}
	}
	names := make([]string, 0, len(checkKindNames))
	for _, name := range checkKindNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return 0, errors.Newf("unknown check %q (want one of %s)", s, strings.Join(names, ", "))
}

// Member is one field of a record or variant.
type Member struct {
	// Name is the field name for named records, "_f<i>" for positional ones.
	// A struct field may itself start with "_f", so the name never decides
	// how the member is accessed.
	Name string
	// Index is the array index of a positional member.
	Index int
	// Positional marks an array element, accessed by Index rather than Name.
	Positional bool
	// Self marks the single member of a newtype; it is accessed as the
	// receiver itself.
	Self bool
	// Type is the member's Go type as written in the package, for diagnostics.
	Type string
	// Checks holds the resolved check per family. A family missing here was
	// not requested or could not be resolved.
	Checks map[Family]CheckKind
}

// Check returns the check for f.
func (m Member) Check(f Family) (CheckKind, bool) {
	c, ok := m.Checks[f]
	return c, ok
}

// Variant is one alternative of a tagged union.
type Variant struct {
	Name          string
	Kind          Kind // UnitRecord, NamedRecord or PositionalRecord
	Members       []Member
	MarkedDefault bool
	// Comparable reports whether the variant type supports ==.
	Comparable bool
	// Pointer is set when only *Name implements the union.
	Pointer bool
	Pos     token.Position
}

// Type is the normalized description of one type definition.
type Type struct {
	Name     string
	Kind     Kind
	Members  []Member  // records
	Variants []Variant // unions
	// Families are the requested predicate families.
	Families FamilySet
	// Receiver overrides the derived receiver name.
	Receiver string
	// DefaultFunc names the constructor compared against by unmarked unions.
	// Empty when no such function exists.
	DefaultFunc string
	Pos         token.Position
}

// IsUnion reports whether t is a tagged union.
func (t *Type) IsUnion() bool { return t.Kind == TaggedUnion }

// Variant looks up a variant by name.
func (t *Type) Variant(name string) (Variant, bool) {
	for _, v := range t.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Package groups the types generated into one output file.
type Package struct {
	Name  string // package name
	Path  string // import path, may be empty for schema input
	Dir   string // directory the output file is written to
	Types []*Type
}

// Diagnostic is a generation failure attached to a type and, when the failure
// is specific to one family, to that family.
type Diagnostic struct {
	Pos    token.Position
	Type   string
	Family *Family
	Err    error
}

func (d Diagnostic) Error() string {
	var b strings.Builder
	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}
	if d.Type != "" {
		b.WriteString(d.Type)
		if d.Family != nil {
			b.WriteString(".")
			b.WriteString(d.Family.Method())
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Err.Error())
	return b.String()
}

func (d Diagnostic) Unwrap() error { return d.Err }

// Diagnostics is a list of diagnostics that is itself an error.
type Diagnostics []Diagnostic

func (ds Diagnostics) Error() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.Error()
	}
	return strings.Join(lines, "\n")
}

// Err returns ds as an error, or nil when empty.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}
	return ds
}

// Sort orders diagnostics by position, then type name.
func (ds Diagnostics) Sort() {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i].Pos, ds[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return ds[i].Type < ds[j].Type
	})
}

// Unwrap exposes every diagnostic to errors.Is and errors.As.
func (ds Diagnostics) Unwrap() []error {
	errs := make([]error, len(ds))
	for i, d := range ds {
		errs[i] = d
	}
	return errs
}
