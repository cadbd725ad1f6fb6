package extract

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/gen/shape"
)

// Comment directives recognized in type doc comments.
const (
	DeriveDirective = "//isx:derive"
	DefaultMarker   = "//isx:default"
)

// Directive is a parsed //isx:derive line.
type Directive struct {
	Families    shape.FamilySet
	Receiver    string
	Variants    []string
	DefaultFunc string
}

// ParseDirective parses one comment line. ok is false when the line is not a
// derive directive. A directive naming no families requests fallback.
func ParseDirective(text string, fallback shape.FamilySet) (d Directive, ok bool, err error) {
	rest, ok := cutDirective(text, DeriveDirective)
	if !ok {
		return Directive{}, false, nil
	}

	args, err := shellquote.Split(rest)
	if err != nil {
		return Directive{}, true, errors.Wrapf(err, "malformed %s", DeriveDirective)
	}

	for _, arg := range args {
		key, value, isOption := strings.Cut(arg, "=")
		if !isOption {
			f, err := shape.ParseFamily(arg)
			if err != nil {
				return Directive{}, true, errors.WithHint(err, "families are IsEmpty and IsDefault")
			}
			d.Families = d.Families.With(f)
			continue
		}

		switch key {
		case "receiver":
			if !isIdent(value) {
				return Directive{}, true, errors.Newf("receiver %q is not an identifier", value)
			}
			d.Receiver = value
		case "variants":
			for _, v := range strings.Split(value, ",") {
				v = strings.TrimSpace(v)
				if v == "" {
					continue
				}
				if !isIdent(v) {
					return Directive{}, true, errors.Newf("variant %q is not an identifier", v)
				}
				d.Variants = append(d.Variants, v)
			}
		case "defaultfunc":
			if !isIdent(value) {
				return Directive{}, true, errors.Newf("defaultfunc %q is not an identifier", value)
			}
			d.DefaultFunc = value
		default:
			return Directive{}, true, errors.WithHint(
				errors.Newf("unknown %s option %q", DeriveDirective, key),
				"options are receiver=, variants= and defaultfunc=")
		}
	}

	if d.Families.IsZero() {
		d.Families = fallback
	}
	return d, true, nil
}

// IsDefaultMarker reports whether text is the //isx:default marker.
func IsDefaultMarker(text string) bool {
	_, ok := cutDirective(text, DefaultMarker)
	return ok
}

// cutDirective returns what follows name when text starts with it as a whole word.
func cutDirective(text, name string) (string, bool) {
	rest, ok := strings.CutPrefix(text, name)
	if !ok {
		return "", false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func isIdent(s string) bool {
	return s != "_" && token.IsIdentifier(s)
}

// docComments yields the raw comment lines attached to a type spec. The spec's
// own doc wins; an unparenthesized declaration's doc belongs to its only spec.
func docComments(decl *ast.GenDecl, spec *ast.TypeSpec) []string {
	var groups []*ast.CommentGroup
	if spec.Doc != nil {
		groups = append(groups, spec.Doc)
	}
	if decl.Doc != nil && !decl.Lparen.IsValid() {
		groups = append(groups, decl.Doc)
	}
	var lines []string
	for _, g := range groups {
		for _, c := range g.List {
			lines = append(lines, c.Text)
		}
	}
	return lines
}
