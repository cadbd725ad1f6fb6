// Package render emits Go source for synthesized predicates using jennifer.
//
// Records get value-receiver methods. Go cannot attach methods to an
// interface, so a union's predicates are rendered as methods on each of its
// variants, each returning that variant's match arm.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"

	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/gen/shape"
	"github.com/teranos/isx/gen/synth"
)

// RuntimePath is the import path of the capability package generated code calls into.
const RuntimePath = "github.com/teranos/isx"

// Header lines. MetadataPrefix lines change between isxgen builds and are
// ignored when comparing generated files.
const (
	GeneratedHeader = "// Code generated by isxgen. DO NOT EDIT."
	MetadataPrefix  = "// isxgen version:"
)

// Options control file-level output.
type Options struct {
	Version    string
	BuildTags  []string
	Assertions bool
	// Receiver overrides derived receiver names for every type that does not
	// set its own.
	Receiver string
}

// Unit is one type together with the predicates synthesized for it.
type Unit struct {
	Type  *shape.Type
	Preds []synth.Predicate
}

// File renders units, in order, into one gofmt'd Go file for pkg.
func File(pkg *shape.Package, units []Unit, opts Options) ([]byte, error) {
	f := jen.NewFilePathName(pkg.Path, pkg.Name)
	f.ImportName(RuntimePath, "isx")
	f.HeaderComment(GeneratedHeader)
	if opts.Version != "" {
		f.HeaderComment(MetadataPrefix + " " + opts.Version)
	}
	if len(opts.BuildTags) > 0 {
		f.HeaderComment("//go:build " + strings.Join(opts.BuildTags, " && "))
	}

	var assertions []jen.Code
	for _, u := range units {
		if err := unit(f, u, opts.Receiver); err != nil {
			return nil, err
		}
		if opts.Assertions {
			assertions = append(assertions, assertionsFor(u)...)
		}
	}
	if len(assertions) > 0 {
		f.Line()
		f.Var().Defs(assertions...)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, errors.Wrapf(err, "failed to render %s", pkg.Name)
	}
	return buf.Bytes(), nil
}

func unit(f *jen.File, u Unit, receiver string) error {
	t := u.Type
	if t.Receiver != "" {
		receiver = t.Receiver
	}

	if !t.IsUnion() {
		for _, p := range u.Preds {
			method(f, t.Name, false, receiver, p.Family, p.Body)
		}
		return nil
	}

	for _, v := range t.Variants {
		for _, p := range u.Preds {
			body := p.Body
			if m, ok := p.Body.(synth.Match); ok {
				arm, ok := m.Body(v.Name)
				if !ok {
					return errors.AssertionFailedf("%s for %s does not cover variant %s", p.Family.Method(), t.Name, v.Name)
				}
				body = arm
			}
			method(f, v.Name, v.Pointer, receiver, p.Family, body)
		}
	}
	return nil
}

// method writes the predicate for family and, for the default family, the
// derived IsNotDefault.
func method(f *jen.File, typeName string, pointer bool, receiver string, family shape.Family, body synth.Expr) {
	recv := receiver
	if recv == "" {
		recv = ReceiverName(typeName)
	}
	recv = unshadowed(recv, body)

	var recvType *jen.Statement
	if pointer {
		recvType = jen.Op("*").Id(typeName)
	} else {
		recvType = jen.Id(typeName)
	}

	ret := expr(body, recv)
	if pointer && usesReceiver(body) {
		ret = jen.Id(recv).Op("==").Nil().Op("||").Add(ret)
	}

	var params *jen.Statement
	if usesReceiver(body) {
		params = jen.Id(recv).Add(recvType)
	} else {
		params = recvType
	}

	f.Line()
	f.Func().Params(params).Id(family.Method()).Params().Bool().Block(
		jen.Return(ret),
	)

	if family == shape.Default {
		notRecvType := jen.Id(typeName)
		if pointer {
			notRecvType = jen.Op("*").Id(typeName)
		}
		f.Line()
		f.Func().Params(jen.Id(recv).Add(notRecvType)).Id("IsNotDefault").Params().Bool().Block(
			jen.Return(jen.Op("!").Id(recv).Dot("IsDefault").Call()),
		)
	}
}

func assertionsFor(u Unit) []jen.Code {
	var names []string
	if u.Type.IsUnion() {
		for _, v := range u.Type.Variants {
			names = append(names, v.Name)
		}
	} else {
		names = []string{u.Type.Name}
	}

	var defs []jen.Code
	for _, name := range names {
		for _, p := range u.Preds {
			defs = append(defs, jen.Id("_").Qual(RuntimePath, p.Family.Interface()).Op("=").
				Parens(jen.Op("*").Id(name)).Call(jen.Nil()))
		}
	}
	return defs
}

// ReceiverName derives a receiver from a type name: its first letter, lower-cased.
func ReceiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimLeft(typeName, "_"))
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "v"
	}
	return string(unicode.ToLower(r))
}

// usesReceiver reports whether rendering e refers to the receiver.
// unshadowed returns recv, or a substitute when body refers to a package
// level identifier spelled recv, which the receiver would hide.
func unshadowed(recv string, body synth.Expr) string {
	names := make(map[string]bool)
	referenced(body, names)
	if !names[recv] {
		return recv
	}
	for _, alt := range []string{"v", "x", "self"} {
		if !names[alt] {
			return alt
		}
	}
	for i := 0; ; i++ {
		if alt := fmt.Sprintf("v%d", i); !names[alt] {
			return alt
		}
	}
}

func referenced(e synth.Expr, names map[string]bool) {
	switch e := e.(type) {
	case synth.And:
		for _, op := range e {
			referenced(op, names)
		}
	case synth.Match:
		for _, arm := range e.Arms {
			referenced(arm.Body, names)
		}
		if e.CatchAll != nil {
			referenced(e.CatchAll, names)
		}
	case synth.EqualsDefault:
		names[e.Union] = true
		names[e.Func] = true
	}
}

func usesReceiver(e synth.Expr) bool {
	switch e := e.(type) {
	case synth.Lit:
		return false
	case synth.And:
		for _, op := range e {
			if usesReceiver(op) {
				return true
			}
		}
		return false
	}
	return true
}

// expr builds a fresh jennifer statement for e. Statements are mutable, so
// nothing is shared between calls.
func expr(e synth.Expr, recv string) *jen.Statement {
	switch e := e.(type) {
	case synth.Lit:
		return jen.Lit(bool(e))
	case synth.And:
		s := expr(e[0], recv)
		for _, op := range e[1:] {
			s = s.Op("&&").Add(expr(op, recv))
		}
		return s
	case synth.Check:
		return check(e, recv)
	case synth.EqualsDefault:
		return jen.Id(e.Union).Call(jen.Id(recv)).Op("==").Id(e.Func).Call()
	}
	// Match is resolved per variant before rendering.
	panic(errors.AssertionFailedf("cannot render %T", e))
}

func access(m shape.Member, recv string) *jen.Statement {
	switch {
	case m.Self:
		return jen.Id(recv)
	case m.Positional:
		return jen.Id(recv).Index(jen.Lit(m.Index))
	}
	return jen.Id(recv).Dot(m.Name)
}

func check(c synth.Check, recv string) *jen.Statement {
	x := func() *jen.Statement { return access(c.Member, recv) }
	method := c.Family.Method()

	switch c.Kind {
	case shape.CheckMethod:
		return x().Dot(method).Call()
	case shape.CheckNil:
		return x().Op("==").Nil()
	case shape.CheckNilOrMethod:
		return jen.Parens(x().Op("==").Nil().Op("||").Add(x().Dot(method).Call()))
	case shape.CheckLen:
		return jen.Len(x()).Op("==").Lit(0)
	case shape.CheckZero:
		return x().Op("==").Lit(0)
	case shape.CheckFalse:
		if c.Member.Type == "bool" && !c.Member.Self {
			return jen.Op("!").Add(x())
		}
		// named boolean types need a conversion to combine with &&
		return jen.Op("!").Bool().Call(x())
	case shape.CheckIsZero:
		return x().Dot("IsZero").Call()
	case shape.CheckJSON:
		fn := "EmptyJSON"
		if c.Family == shape.Default {
			fn = "DefaultJSON"
		}
		return jen.Qual(RuntimePath, fn).Call(x())
	}
	panic(errors.AssertionFailedf("unknown check %s", c.Kind))
}
