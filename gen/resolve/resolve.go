// Package resolve finds the variant of a tagged union marked as its default.
package resolve

import (
	"go/token"
	"strings"

	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/gen/shape"
)

// Resolution is the outcome of scanning a union for the default marker.
// A nil Variant means no variant is marked.
type Resolution struct {
	Variant *shape.Variant
}

// Marked reports whether a default variant was found.
func (r Resolution) Marked() bool { return r.Variant != nil }

// ConflictError names every variant of a union carrying the default marker.
type ConflictError struct {
	Union     string
	Variants  []string
	Positions []token.Position
}

func (e *ConflictError) Error() string {
	return "union " + e.Union + " marks " + strings.Join(e.Variants, ", ") + " as default"
}

// Unwrap classifies the conflict as errors.ErrMultipleDefaultMarkers.
func (e *ConflictError) Unwrap() error { return errors.ErrMultipleDefaultMarkers }

// Default scans t's variants. It fails with *ConflictError when more than one
// variant is marked.
func Default(t *shape.Type) (Resolution, error) {
	if !t.IsUnion() {
		return Resolution{}, errors.AssertionFailedf("resolve.Default called on %s %s", t.Kind, t.Name)
	}

	var marked []int
	for i := range t.Variants {
		if t.Variants[i].MarkedDefault {
			marked = append(marked, i)
		}
	}

	switch len(marked) {
	case 0:
		return Resolution{}, nil
	case 1:
		v := t.Variants[marked[0]]
		return Resolution{Variant: &v}, nil
	}

	conflict := &ConflictError{Union: t.Name}
	for _, i := range marked {
		conflict.Variants = append(conflict.Variants, t.Variants[i].Name)
		conflict.Positions = append(conflict.Positions, t.Variants[i].Pos)
	}
	return Resolution{}, errors.WithHint(conflict, "keep //isx:default on exactly one variant")
}
