package synth

import (
	"fmt"
	"strconv"

	"github.com/teranos/isx/gen/shape"
)

// value models a runtime value for evaluation: the active variant (empty for
// records), the outcome of each member's own predicate, and whether the
// value equals the union's default constructor.
type value struct {
	variant       string
	members       map[string]bool
	equalsDefault bool
}

func eval(e Expr, v value) bool {
	switch e := e.(type) {
	case Lit:
		return bool(e)
	case And:
		for _, op := range e {
			if !eval(op, v) {
				return false
			}
		}
		return true
	case Check:
		r, ok := v.members[e.Member.Name]
		if !ok {
			panic(fmt.Sprintf("no value for member %s", e.Member.Name))
		}
		return r
	case Match:
		body, ok := e.Body(v.variant)
		if !ok {
			panic("match does not cover variant " + v.variant)
		}
		return eval(body, v)
	case EqualsDefault:
		return v.equalsDefault
	}
	panic(fmt.Sprintf("unknown expression %T", e))
}

func members(n int) []shape.Member {
	ms := make([]shape.Member, n)
	for i := range ms {
		ms[i] = shape.Member{
			Name:   "F" + strconv.Itoa(i),
			Type:   "T",
			Checks: map[shape.Family]shape.CheckKind{shape.Empty: shape.CheckMethod, shape.Default: shape.CheckMethod},
		}
	}
	return ms
}

func record(n int) *shape.Type {
	t := &shape.Type{Name: "R", Kind: shape.NamedRecord, Members: members(n)}
	if n == 0 {
		t.Kind = shape.UnitRecord
	}
	return t
}

func recordValue(bs []bool) value {
	v := value{members: map[string]bool{}}
	for i, b := range bs {
		v.members["F"+strconv.Itoa(i)] = b
	}
	return v
}

func all(bs []bool) bool {
	for _, b := range bs {
		if !b {
			return false
		}
	}
	return true
}
