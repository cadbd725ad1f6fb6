package isx

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// EmptyJSON reports whether raw holds no JSON value: nothing at all, null,
// an empty string, an empty array or an empty object.
func EmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		return true
	}
	if len(trimmed) < 2 {
		return false
	}
	switch trimmed[0] {
	case '"':
		return len(trimmed) == 2
	case '[', '{':
		inner := bytes.TrimSpace(trimmed[1 : len(trimmed)-1])
		return len(inner) == 0
	}
	return false
}

// DefaultJSON reports whether raw is the default JSON value, null. A
// zero-length message decodes to nothing and counts as null.
func DefaultJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull)
}
