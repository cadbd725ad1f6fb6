package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/gen/resolve"
	"github.com/teranos/isx/gen/shape"
)

func check(name string, kind shape.CheckKind) shape.Member {
	return shape.Member{Name: name, Type: "T", Checks: map[shape.Family]shape.CheckKind{shape.Empty: kind, shape.Default: kind}}
}

// sample is the union {Unit, Tuple(byte, string), Struct{X bool}}.
func sample(markUnit bool) *shape.Type {
	return &shape.Type{
		Name: "Sample",
		Kind: shape.TaggedUnion,
		Variants: []shape.Variant{
			{Name: "Unit", Kind: shape.UnitRecord, MarkedDefault: markUnit, Comparable: true},
			{Name: "Tuple", Kind: shape.PositionalRecord, Comparable: true, Members: []shape.Member{
				{Name: "_f0", Index: 0, Positional: true, Type: "byte", Checks: map[shape.Family]shape.CheckKind{shape.Empty: shape.CheckZero, shape.Default: shape.CheckZero}},
				{Name: "_f1", Index: 1, Positional: true, Type: "string", Checks: map[shape.Family]shape.CheckKind{shape.Empty: shape.CheckLen, shape.Default: shape.CheckLen}},
			}},
			{Name: "Struct", Kind: shape.NamedRecord, Comparable: true, Members: []shape.Member{check("X", shape.CheckFalse)}},
		},
		DefaultFunc: "DefaultSample",
	}
}

func TestRecordBodies(t *testing.T) {
	tests := []struct {
		name  string
		typ   *shape.Type
		empty string
		def   string
	}{
		{"unit", record(0), "true", "true"},
		{"single member", record(1), "v.F0.IsEmpty()", "v.F0.IsDefault()"},
		{"two members", record(2), "v.F0.IsEmpty() && v.F1.IsEmpty()", "v.F0.IsDefault() && v.F1.IsDefault()"},
		{
			"foo text bar bool",
			&shape.Type{Name: "Rec", Kind: shape.NamedRecord, Members: []shape.Member{check("Foo", shape.CheckLen), check("Bar", shape.CheckFalse)}},
			"len(v.Foo) == 0 && !v.Bar",
			"len(v.Foo) == 0 && !v.Bar",
		},
		{
			"positional array",
			&shape.Type{Name: "Pair", Kind: shape.PositionalRecord, Members: []shape.Member{
				{Name: "_f0", Index: 0, Positional: true, Checks: map[shape.Family]shape.CheckKind{shape.Empty: shape.CheckZero, shape.Default: shape.CheckZero}},
				{Name: "_f1", Index: 1, Positional: true, Checks: map[shape.Family]shape.CheckKind{shape.Empty: shape.CheckZero, shape.Default: shape.CheckZero}},
			}},
			"v[0] == 0 && v[1] == 0",
			"v[0] == 0 && v[1] == 0",
		},
		{
			"newtype",
			&shape.Type{Name: "Names", Kind: shape.PositionalRecord, Members: []shape.Member{
				{Name: "_f0", Self: true, Checks: map[shape.Family]shape.CheckKind{shape.Empty: shape.CheckLen, shape.Default: shape.CheckLen}},
			}},
			"len(v) == 0",
			"len(v) == 0",
		},
		{
			"nil and json",
			&shape.Type{Name: "Opt", Kind: shape.NamedRecord, Members: []shape.Member{
				check("Ptr", shape.CheckNil), check("Raw", shape.CheckJSON), check("Iface", shape.CheckNilOrMethod), check("At", shape.CheckIsZero),
			}},
			"v.Ptr == nil && isx.EmptyJSON(v.Raw) && (v.Iface == nil || v.Iface.IsEmpty()) && v.At.IsZero()",
			"v.Ptr == nil && isx.DefaultJSON(v.Raw) && (v.Iface == nil || v.Iface.IsDefault()) && v.At.IsZero()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			empty, err := For(tt.typ, shape.Empty)
			require.NoError(t, err)
			assert.Equal(t, tt.empty, Format(empty.Body))
			assert.Equal(t, shape.Empty, empty.Family)
			assert.Equal(t, tt.typ.Name, empty.Type)

			def, err := For(tt.typ, shape.Default)
			require.NoError(t, err)
			assert.Equal(t, tt.def, Format(def.Body))
		})
	}
}

func TestUnionEmpty_OneArmPerVariant(t *testing.T) {
	p, err := Empty(sample(true))
	require.NoError(t, err)

	m, ok := p.Body.(Match)
	require.True(t, ok)
	assert.Nil(t, m.CatchAll, "empty has no catch-all")
	require.Len(t, m.Arms, 3)
	assert.Equal(t, "match { Unit: true; Tuple: v[0] == 0 && len(v[1]) == 0; Struct: !v.X }", Format(m))
}

func TestUnionDefault_Marked(t *testing.T) {
	p, err := For(sample(true), shape.Default)
	require.NoError(t, err)
	assert.Equal(t, "match { Unit: true; _: false }", Format(p.Body))

	m := p.Body.(Match)
	body, ok := m.Body("Tuple")
	require.True(t, ok)
	assert.Equal(t, Lit(false), body, "unmarked variants are never default")
}

func TestUnionDefault_MarkedWithMembers(t *testing.T) {
	u := sample(false)
	u.Variants[2].MarkedDefault = true
	p, err := For(u, shape.Default)
	require.NoError(t, err)
	assert.Equal(t, "match { Struct: !v.X; _: false }", Format(p.Body))
}

func TestUnionDefault_Unmarked(t *testing.T) {
	p, err := Default(sample(false), resolve.Resolution{})
	require.NoError(t, err)
	assert.Equal(t, EqualsDefault{Union: "Sample", Func: "DefaultSample"}, p.Body)
	assert.Equal(t, "Sample(v) == DefaultSample()", Format(p.Body))
}

func TestUnionDefault_UnmarkedRequiresEquality(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*shape.Type)
		want   string
	}{
		{"no constructor", func(u *shape.Type) { u.DefaultFunc = "" }, "no default constructor"},
		{"not comparable", func(u *shape.Type) { u.Variants[1].Comparable = false }, "Tuple is not comparable"},
		{"pointer variant", func(u *shape.Type) { u.Variants[2].Pointer = true }, "*Struct compares by identity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := sample(false)
			tt.mutate(u)
			_, err := For(u, shape.Default)
			require.Error(t, err)
			assert.True(t, errors.IsMissingCapabilityError(err))
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, errors.FlattenHints(err), "//isx:default")

			// the empty family does not care
			_, err = For(u, shape.Empty)
			assert.NoError(t, err)
		})
	}
}

func TestUnionDefault_Conflict(t *testing.T) {
	u := sample(true)
	u.Variants[1].MarkedDefault = true

	_, err := For(u, shape.Default)
	require.Error(t, err)
	assert.True(t, errors.IsMultipleDefaultMarkersError(err))
	assert.Contains(t, err.Error(), "Unit")
	assert.Contains(t, err.Error(), "Tuple")

	_, err = For(u, shape.Empty)
	assert.NoError(t, err, "markers only matter to the default family")
}

func TestMissingCapability(t *testing.T) {
	typ := &shape.Type{Name: "Holder", Kind: shape.NamedRecord, Members: []shape.Member{
		check("Ok", shape.CheckLen),
		{Name: "Blob", Type: "mystery.Blob", Checks: map[shape.Family]shape.CheckKind{shape.Empty: shape.CheckMethod}},
	}}

	_, err := For(typ, shape.Empty)
	require.NoError(t, err)

	_, err = For(typ, shape.Default)
	require.Error(t, err)
	assert.True(t, errors.IsMissingCapabilityError(err))
	assert.Contains(t, err.Error(), "Holder.Blob (mystery.Blob) has no IsDefault")
}

func TestUnionWithoutVariants(t *testing.T) {
	typ := &shape.Type{Name: "Never", Kind: shape.TaggedUnion}
	_, err := For(typ, shape.Empty)
	assert.True(t, errors.IsUnsupportedShapeError(err))
	_, err = For(typ, shape.Default)
	assert.True(t, errors.IsUnsupportedShapeError(err))
}

func TestDeterministic(t *testing.T) {
	a, err := For(sample(true), shape.Empty)
	require.NoError(t, err)
	b, err := For(sample(true), shape.Empty)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
