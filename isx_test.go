package isx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

type bag []string

func (b bag) IsEmpty() bool   { return len(b) == 0 }
func (b bag) IsDefault() bool { return len(b) == 0 }

func TestIsNotDefault(t *testing.T) {
	assert.False(t, IsNotDefault(bag(nil)))
	assert.True(t, IsNotDefault(bag{"a"}))
}

func TestAllEmpty(t *testing.T) {
	assert.True(t, AllEmpty[bag]())
	assert.True(t, AllEmpty(bag(nil), bag{}))
	assert.False(t, AllEmpty(bag(nil), bag{"x"}))
}

func TestAllDefault(t *testing.T) {
	assert.True(t, AllDefault[bag]())
	assert.False(t, AllDefault(bag{"x"}, bag(nil)))
}

func TestEmptyJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"", true},
		{"null", true},
		{"  null\n", true},
		{`""`, true},
		{"[]", true},
		{"[ ]", true},
		{"{}", true},
		{"{ \n }", true},
		{`"a"`, false},
		{"[1]", false},
		{`{"a":1}`, false},
		{"0", false},
		{"false", false},
		{"[", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EmptyJSON(json.RawMessage(tt.raw)), "EmptyJSON(%q)", tt.raw)
	}
}

func TestDefaultJSON(t *testing.T) {
	assert.True(t, DefaultJSON(nil))
	assert.True(t, DefaultJSON(json.RawMessage(" null ")))
	assert.False(t, DefaultJSON(json.RawMessage("[]")))
	assert.False(t, DefaultJSON(json.RawMessage(`""`)))
	assert.False(t, DefaultJSON(json.RawMessage("0")))
}
