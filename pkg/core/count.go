package core

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Count is an optional display-only integer. Upstream writes it as an int, a
// float such as 12.0, a numeric string or null; anything else decodes as absent.
type Count struct {
	value float64
	valid bool
}

// NewCount wraps a present count
func NewCount(n int) Count {
	return Count{value: float64(n), valid: true}
}

// Value returns the count and whether it is present
func (c Count) Value() (float64, bool) { return c.value, c.valid }

// Valid reports whether the count is present
func (c Count) Valid() bool { return c.valid }

// String prints integral values without a decimal part, or "N/A" when absent
func (c Count) String() string {
	if !c.valid {
		return "N/A"
	}
	if c.value == math.Trunc(c.value) && math.Abs(c.value) < 1e15 {
		return strconv.FormatInt(int64(c.value), 10)
	}
	return strconv.FormatFloat(c.value, 'f', -1, 64)
}

func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*c = Count{}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}

	*c = Count{value: value, valid: true}
	return nil
}

func (c Count) MarshalJSON() ([]byte, error) {
	if !c.valid {
		return []byte("null"), nil
	}
	return []byte(c.String()), nil
}
