package shape

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/internal/util"
)

func TestParseFamily(t *testing.T) {
	tests := []struct {
		in      string
		want    Family
		wantErr bool
	}{
		{"empty", Empty, false},
		{"IsEmpty", Empty, false},
		{" DEFAULT ", Default, false},
		{"isdefault", Default, false},
		{"zero", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFamily(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFamilySet(t *testing.T) {
	s, err := ParseFamilySet([]string{"default,empty", ""})
	require.NoError(t, err)
	assert.True(t, s.Has(Empty))
	assert.True(t, s.Has(Default))
	assert.Equal(t, []Family{Empty, Default}, s.List(), "rendering order regardless of input order")
	assert.Equal(t, "empty,default", s.String())

	s = s.Without(Empty)
	assert.Equal(t, []Family{Default}, s.List())
	assert.False(t, s.IsZero())
	assert.True(t, s.Without(Default).IsZero())

	_, err = ParseFamilySet([]string{"empty,bogus"})
	assert.Error(t, err)

	assert.Equal(t, NewFamilySet(Empty, Default), NewFamilySet(Default, Empty))
}

func TestFamilyNames(t *testing.T) {
	assert.Equal(t, "IsEmpty", Empty.Method())
	assert.Equal(t, "IsDefault", Default.Method())
	assert.Equal(t, "Emptier", Empty.Interface())
	assert.Equal(t, "Defaulter", Default.Interface())
}

func TestParseCheckKind(t *testing.T) {
	for k, name := range checkKindNames {
		got, err := ParseCheckKind(name)
		require.NoError(t, err)
		assert.Equal(t, k, got)
		assert.Equal(t, name, k.String())
	}
	_, err := ParseCheckKind("maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iszero")
}

func TestDiagnosticError(t *testing.T) {
	d := Diagnostic{
		Pos:    token.Position{Filename: "shapes.go", Line: 12, Column: 6},
		Type:   "Shape",
		Family: util.Ptr(Default),
		Err:    errors.Wrap(errors.ErrMultipleDefaultMarkers, "variants A, B"),
	}
	assert.Equal(t, "shapes.go:12:6: Shape.IsDefault: variants A, B: multiple default markers", d.Error())

	noPos := Diagnostic{Type: "Box", Err: errors.NewUnsupportedShapef("type Box is generic")}
	assert.Equal(t, "Box: type Box is generic: unsupported shape", noPos.Error())
}

func TestDiagnosticsAsError(t *testing.T) {
	var ds Diagnostics
	assert.NoError(t, ds.Err())

	ds = append(ds,
		Diagnostic{Pos: token.Position{Filename: "b.go", Line: 1, Column: 1}, Type: "B", Err: errors.ErrMissingCapability},
		Diagnostic{Pos: token.Position{Filename: "a.go", Line: 9, Column: 1}, Type: "A", Err: errors.ErrUnsupportedShape},
		Diagnostic{Pos: token.Position{Filename: "a.go", Line: 3, Column: 1}, Type: "C", Err: errors.ErrUnsupportedShape},
	)
	ds.Sort()
	assert.Equal(t, []string{"C", "A", "B"}, []string{ds[0].Type, ds[1].Type, ds[2].Type})

	err := ds.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMissingCapability))
	assert.True(t, errors.Is(err, errors.ErrUnsupportedShape))
	assert.False(t, errors.Is(err, errors.ErrMultipleDefaultMarkers))
}

func TestTypeVariant(t *testing.T) {
	typ := &Type{Name: "Shape", Kind: TaggedUnion, Variants: []Variant{{Name: "Unit"}, {Name: "Tuple", Kind: PositionalRecord}}}
	assert.True(t, typ.IsUnion())
	v, ok := typ.Variant("Tuple")
	require.True(t, ok)
	assert.Equal(t, PositionalRecord, v.Kind)
	_, ok = typ.Variant("Missing")
	assert.False(t, ok)
}
