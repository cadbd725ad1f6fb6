// Package synth turns a shape into predicate bodies.
//
// Records conjoin their members' checks in declaration order. Unions match on
// the active variant: for the empty family every variant gets an arm; for the
// default family only the marked variant does and everything else is false,
// or, with no marked variant, the value is compared with the union's default
// constructor.
package synth

import (
	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/gen/resolve"
	"github.com/teranos/isx/gen/shape"
)

// Predicate is the synthesized body of one (type, family) pair.
type Predicate struct {
	Type   string
	Family shape.Family
	Body   Expr
}

// For synthesizes family f for t, resolving the default variant when needed.
func For(t *shape.Type, f shape.Family) (Predicate, error) {
	switch f {
	case shape.Empty:
		return Empty(t)
	case shape.Default:
		var res resolve.Resolution
		if t.IsUnion() {
			var err error
			if res, err = resolve.Default(t); err != nil {
				return Predicate{}, err
			}
		}
		return Default(t, res)
	}
	return Predicate{}, errors.AssertionFailedf("unknown family %s", f)
}

// Empty synthesizes IsEmpty for t.
func Empty(t *shape.Type) (Predicate, error) {
	p := Predicate{Type: t.Name, Family: shape.Empty}

	if !t.IsUnion() {
		body, err := conjoin(t.Name, t.Members, shape.Empty)
		if err != nil {
			return Predicate{}, err
		}
		p.Body = body
		return p, nil
	}

	if len(t.Variants) == 0 {
		return Predicate{}, errors.NewUnsupportedShapef("union %s has no variants", t.Name)
	}
	var m Match
	for _, v := range t.Variants {
		body, err := conjoin(v.Name, v.Members, shape.Empty)
		if err != nil {
			return Predicate{}, err
		}
		m.Arms = append(m.Arms, Arm{Variant: v.Name, Body: body})
	}
	p.Body = m
	return p, nil
}

// Default synthesizes IsDefault for t. res is only consulted for unions.
func Default(t *shape.Type, res resolve.Resolution) (Predicate, error) {
	p := Predicate{Type: t.Name, Family: shape.Default}

	if !t.IsUnion() {
		body, err := conjoin(t.Name, t.Members, shape.Default)
		if err != nil {
			return Predicate{}, err
		}
		p.Body = body
		return p, nil
	}

	if len(t.Variants) == 0 {
		return Predicate{}, errors.NewUnsupportedShapef("union %s has no variants", t.Name)
	}

	if res.Marked() {
		body, err := conjoin(res.Variant.Name, res.Variant.Members, shape.Default)
		if err != nil {
			return Predicate{}, err
		}
		p.Body = Match{
			Arms:     []Arm{{Variant: res.Variant.Name, Body: body}},
			CatchAll: Lit(false),
		}
		return p, nil
	}

	if err := equalityCapable(t); err != nil {
		return Predicate{}, err
	}
	p.Body = EqualsDefault{Union: t.Name, Func: t.DefaultFunc}
	return p, nil
}

// equalityCapable checks what comparing against the default constructor
// needs: the constructor itself and variants that compare by value.
func equalityCapable(t *shape.Type) error {
	hint := "mark the default variant with //isx:default"
	if t.DefaultFunc == "" {
		return errors.WithHint(
			errors.NewMissingCapabilityf("union %s has no default variant marker and no default constructor", t.Name),
			hint+", or declare a constructor returning the default "+t.Name)
	}
	for _, v := range t.Variants {
		if v.Pointer {
			return errors.WithHint(
				errors.NewMissingCapabilityf("union %s: variant *%s compares by identity, not by value", t.Name, v.Name),
				hint)
		}
		if !v.Comparable {
			return errors.WithHint(
				errors.NewMissingCapabilityf("union %s: variant %s is not comparable, or holds an interface that can make == panic", t.Name, v.Name),
				hint)
		}
	}
	return nil
}

// conjoin ANDs the checks of members for f. No members is true; one member
// is its own check.
func conjoin(owner string, members []shape.Member, f shape.Family) (Expr, error) {
	var ops And
	for _, m := range members {
		kind, ok := m.Check(f)
		if !ok {
			return nil, errors.WithHint(
				errors.NewMissingCapabilityf("%s.%s (%s) has no %s", owner, m.Name, m.Type, f.Method()),
				"implement "+f.Method()+"() bool on the member type or request it with //isx:derive")
		}
		ops = append(ops, Check{Member: m, Family: f, Kind: kind})
	}
	switch len(ops) {
	case 0:
		return Lit(true), nil
	case 1:
		return ops[0], nil
	}
	return ops, nil
}
