package core

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ID is an opaque identifier that upstream writes either as a string or a number.
type ID string

// UnmarshalJSON keeps the literal text of numbers and the content of strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ""
	case data[0] == '"':
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*id = ID(value)
	default:
		*id = ID(strings.Trim(string(data), "\""))
	}
	return nil
}

// String returns the identifier, or "N/A" when empty.
func (id ID) String() string {
	if id == "" {
		return "N/A"
	}
	return string(id)
}
