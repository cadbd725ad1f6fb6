package synth

import (
	"strconv"
	"strings"

	"github.com/teranos/isx/gen/shape"
)

// Expr is a predicate body: Lit, And, Check, Match or EqualsDefault.
type Expr interface {
	isExpr()
}

// Lit is a boolean literal.
type Lit bool

// And is the short-circuiting conjunction of its operands, left to right.
// It always has at least two operands; shorter conjunctions collapse.
type And []Expr

// Check evaluates one member's predicate.
type Check struct {
	Member shape.Member
	Family shape.Family
	Kind   shape.CheckKind
}

// Arm is the body evaluated when the union holds Variant.
type Arm struct {
	Variant string
	Body    Expr
}

// Match dispatches on the active variant. CatchAll, when non-nil, covers every
// variant without an arm.
type Match struct {
	Arms     []Arm
	CatchAll Expr
}

// EqualsDefault compares the value with the union's default constructor.
type EqualsDefault struct {
	Union string
	Func  string
}

func (Lit) isExpr()           {}
func (And) isExpr()           {}
func (Check) isExpr()         {}
func (Match) isExpr()         {}
func (EqualsDefault) isExpr() {}

// Body returns the expression evaluated for variant, falling back to the
// catch-all. ok is false when the match does not cover variant.
func (m Match) Body(variant string) (Expr, bool) {
	for _, a := range m.Arms {
		if a.Variant == variant {
			return a.Body, true
		}
	}
	if m.CatchAll != nil {
		return m.CatchAll, true
	}
	return nil, false
}

// Format renders e as compact Go-like text for logs and test failures.
func Format(e Expr) string {
	var b strings.Builder
	format(&b, e)
	return b.String()
}

func format(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case Lit:
		b.WriteString(strconv.FormatBool(bool(e)))
	case And:
		for i, op := range e {
			if i > 0 {
				b.WriteString(" && ")
			}
			format(b, op)
		}
	case Check:
		b.WriteString(formatCheck(e))
	case Match:
		b.WriteString("match {")
		for i, a := range e.Arms {
			if i > 0 {
				b.WriteString(";")
			}
			b.WriteString(" ")
			b.WriteString(a.Variant)
			b.WriteString(": ")
			format(b, a.Body)
		}
		if e.CatchAll != nil {
			if len(e.Arms) > 0 {
				b.WriteString(";")
			}
			b.WriteString(" _: ")
			format(b, e.CatchAll)
		}
		b.WriteString(" }")
	case EqualsDefault:
		b.WriteString(e.Union + "(v) == " + e.Func + "()")
	case nil:
		b.WriteString("<nil>")
	}
}

func formatCheck(c Check) string {
	x := "v"
	switch {
	case c.Member.Self:
	case c.Member.Positional:
		x = "v[" + strconv.Itoa(c.Member.Index) + "]"
	default:
		x = "v." + c.Member.Name
	}
	method := c.Family.Method()
	switch c.Kind {
	case shape.CheckMethod:
		return x + "." + method + "()"
	case shape.CheckNil:
		return x + " == nil"
	case shape.CheckNilOrMethod:
		return "(" + x + " == nil || " + x + "." + method + "())"
	case shape.CheckLen:
		return "len(" + x + ") == 0"
	case shape.CheckZero:
		return x + " == 0"
	case shape.CheckFalse:
		return "!" + x
	case shape.CheckIsZero:
		return x + ".IsZero()"
	case shape.CheckJSON:
		if c.Family == shape.Empty {
			return "isx.EmptyJSON(" + x + ")"
		}
		return "isx.DefaultJSON(" + x + ")"
	}
	return "?" + x
}
