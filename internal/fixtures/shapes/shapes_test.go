package shapes

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/teranos/isx"
)

func TestRecordScenario(t *testing.T) {
	empty := Record{Foo: "", Bar: false}
	assert.True(t, empty.IsEmpty())
	assert.True(t, empty.IsDefault())
	assert.False(t, empty.IsNotDefault())

	hi := Record{Foo: "hi", Bar: false}
	assert.False(t, hi.IsEmpty())
	assert.False(t, hi.IsDefault())
	assert.True(t, hi.IsNotDefault())

	assert.False(t, Record{Bar: true}.IsEmpty())
}

func TestRecordProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("empty iff every field is empty", prop.ForAll(
		func(foo string, bar bool) bool {
			r := Record{Foo: foo, Bar: bar}
			want := foo == "" && !bar
			return r.IsEmpty() == want && r.IsDefault() == want
		},
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestSampleScenario(t *testing.T) {
	var s Sample = Unit{}
	assert.True(t, s.IsDefault())
	assert.True(t, s.IsEmpty())

	s = Tuple{0, ""}
	assert.False(t, s.IsDefault(), "only the marked variant is default")
	assert.True(t, s.IsEmpty())

	s = Tuple{1, ""}
	assert.False(t, s.IsEmpty())

	s = Struct{X: false}
	assert.True(t, s.IsEmpty())
	assert.False(t, s.IsDefault())

	s = Struct{X: true}
	assert.False(t, s.IsEmpty())
}

func TestModeComparesWithDefault(t *testing.T) {
	assert.True(t, DefaultMode().(isx.Defaulter).IsDefault())
	assert.True(t, Auto{}.IsDefault())
	assert.False(t, Manual{}.IsDefault(), "equal fields do not make another variant default")
	assert.False(t, Manual{Level: 2}.IsDefault())
	assert.True(t, Manual{}.IsNotDefault())
}

func TestNewtypeAndArray(t *testing.T) {
	assert.True(t, Names(nil).IsEmpty())
	assert.True(t, Names{}.IsDefault())
	assert.False(t, Names{"a"}.IsEmpty())

	assert.True(t, Pair{}.IsEmpty())
	assert.False(t, Pair{"", "b"}.IsEmpty())
}

func TestEnvelopeComposesMembers(t *testing.T) {
	assert.True(t, Envelope{}.IsEmpty())
	assert.True(t, Envelope{}.IsDefault())

	tests := []struct {
		name    string
		env     Envelope
		empty   bool
		isDeflt bool
	}{
		{"empty union variant", Envelope{Kind: Unit{}}, true, true},
		{"empty non-default variant", Envelope{Kind: Tuple{}}, true, false},
		{"non-empty variant", Envelope{Kind: Struct{X: true}}, false, false},
		{"record member", Envelope{Rec: Record{Foo: "x"}}, false, false},
		{"newtype member", Envelope{Tags: Names{"t"}}, false, false},
		{"json null", Envelope{Raw: json.RawMessage("null")}, true, true},
		{"json empty array", Envelope{Raw: json.RawMessage("[]")}, true, false},
		{"json value", Envelope{Raw: json.RawMessage(`{"a":1}`)}, false, false},
		{"pointer", Envelope{Next: &Envelope{}}, false, false},
		{"number", Envelope{Count: 1}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.empty, tt.env.IsEmpty())
			assert.Equal(t, tt.isDeflt, tt.env.IsDefault())
		})
	}
}

func TestCapabilityContract(t *testing.T) {
	assert.True(t, isx.AllEmpty[isx.Emptier](Record{}, Unit{}, Tuple{}, Names{}, Pair{}, Envelope{}))
	assert.False(t, isx.AllDefault[isx.Defaulter](Unit{}, Tuple{}))

	var _ isx.NotDefaulter = Envelope{}
}
