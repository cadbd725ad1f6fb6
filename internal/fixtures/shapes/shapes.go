// Package shapes is a small package of derived types. Its isx_gen.go is
// produced by isxgen and checked in, so tests exercise real generated code.
package shapes

import "encoding/json"

//go:generate go run github.com/teranos/isx/cmd/isxgen

//isx:derive IsEmpty IsDefault
type Record struct {
	Foo string
	Bar bool
}

// Sample is a tagged union over Unit, Tuple and Struct.
//
//isx:derive IsEmpty IsDefault
type Sample interface {
	isSample()
	IsEmpty() bool
	IsDefault() bool
}

//isx:default
type Unit struct{}

type Tuple struct {
	F0 byte
	F1 string
}

type Struct struct {
	X bool
}

func (Unit) isSample()   {}
func (Tuple) isSample()  {}
func (Struct) isSample() {}

// Mode has no marked variant, so IsDefault compares with DefaultMode.
//
//isx:derive IsDefault
type Mode interface{ isMode() }

type Auto struct{}

type Manual struct {
	Level int
}

func (Auto) isMode()   {}
func (Manual) isMode() {}

func DefaultMode() Mode { return Auto{} }

//isx:derive IsEmpty IsDefault
type Names []string

//isx:derive IsEmpty
type Pair [2]string

//isx:derive IsEmpty IsDefault receiver=env
type Envelope struct {
	Rec   Record
	Kind  Sample
	Tags  Names
	Raw   json.RawMessage
	Next  *Envelope
	Count int
}
