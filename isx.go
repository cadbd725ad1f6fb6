// Package isx is the capability contract that isxgen-generated code
// implements and calls into.
//
// A type is composable when it implements the predicate for the family being
// generated: Emptier for IsEmpty, Defaulter for IsDefault. Built-in kinds
// cannot carry methods, so the generator checks them inline (len(x) == 0,
// x == nil, x == 0, !x); the helpers in this package cover the remaining
// library types that need more than an inline expression.
//
// Usage:
//
//	//go:generate isxgen
//
//	//isx:derive IsEmpty IsDefault
//	type Settings struct {
//	    Name string
//	    Tags []string
//	}
//
//	var s Settings
//	s.IsEmpty()      // true
//	s.IsDefault()    // true
//	s.IsNotDefault() // false
package isx

// Emptier reports whether a value holds nothing.
//
// A composite is empty when every one of its members is empty. Pointers and
// other nil-able references are empty when nil.
type Emptier interface {
	IsEmpty() bool
}

// Defaulter reports whether a value equals its type's default.
type Defaulter interface {
	IsDefault() bool
}

// NotDefaulter is implemented by every generated Defaulter.
type NotDefaulter interface {
	Defaulter
	IsNotDefault() bool
}

// IsNotDefault is the negation of d.IsDefault().
func IsNotDefault(d Defaulter) bool {
	return !d.IsDefault()
}

// AllEmpty reports whether every value is empty. An empty list is empty.
func AllEmpty[T Emptier](values ...T) bool {
	for _, v := range values {
		if !v.IsEmpty() {
			return false
		}
	}
	return true
}

// AllDefault reports whether every value is its default. An empty list is default.
func AllDefault[T Defaulter](values ...T) bool {
	for _, v := range values {
		if !v.IsDefault() {
			return false
		}
	}
	return true
}
