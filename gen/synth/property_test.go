package synth

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/teranos/isx/gen/shape"
)

func TestRecordConjunctionProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	for _, f := range shape.Families {
		f := f
		properties.Property(f.Method()+" holds iff every member holds", prop.ForAll(
			func(bs []bool) bool {
				p, err := For(record(len(bs)), f)
				if err != nil {
					return false
				}
				return eval(p.Body, recordValue(bs)) == all(bs)
			},
			gen.SliceOf(gen.Bool()),
		))
	}

	properties.Property("flipping one member of an all-empty record flips the aggregate", prop.ForAll(
		func(n, i int) bool {
			i = i % n
			bs := make([]bool, n)
			for j := range bs {
				bs[j] = true
			}
			p, err := Empty(record(n))
			if err != nil || !eval(p.Body, recordValue(bs)) {
				return false
			}
			bs[i] = false
			return !eval(p.Body, recordValue(bs))
		},
		gen.IntRange(1, 16),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}

// unionCase picks a variant of sample() and member outcomes for it.
type unionCase struct {
	variant int
	x       bool
	f0      bool
	f1      bool
	isDef   bool
}

func genUnionCase() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 2),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	).Map(func(vs []interface{}) unionCase {
		return unionCase{variant: vs[0].(int), x: vs[1].(bool), f0: vs[2].(bool), f1: vs[3].(bool), isDef: vs[4].(bool)}
	})
}

func (c unionCase) value() value {
	names := []string{"Unit", "Tuple", "Struct"}
	return value{
		variant:       names[c.variant],
		members:       map[string]bool{"_f0": c.f0, "_f1": c.f1, "X": c.x},
		equalsDefault: c.isDef,
	}
}

// ownFields is what the active variant's members say on their own.
func (c unionCase) ownFields() bool {
	switch c.variant {
	case 1:
		return c.f0 && c.f1
	case 2:
		return c.x
	}
	return true
}

func TestUnionProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("IsEmpty follows the active variant's own fields", prop.ForAll(
		func(c unionCase) bool {
			p, err := Empty(sample(false))
			return err == nil && eval(p.Body, c.value()) == c.ownFields()
		},
		genUnionCase(),
	))

	properties.Property("IsDefault with a marked variant is false for every other variant", prop.ForAll(
		func(c unionCase) bool {
			u := sample(false)
			u.Variants[1].MarkedDefault = true // Tuple
			p, err := For(u, shape.Default)
			if err != nil {
				return false
			}
			got := eval(p.Body, c.value())
			if c.variant != 1 {
				return !got
			}
			return got == (c.f0 && c.f1)
		},
		genUnionCase(),
	))

	properties.Property("IsDefault without a marker is equality with the default", prop.ForAll(
		func(c unionCase) bool {
			p, err := For(sample(false), shape.Default)
			return err == nil && eval(p.Body, c.value()) == c.isDef
		},
		genUnionCase(),
	))

	properties.TestingRun(t)
}
