package core

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// timestampLayouts lists the accepted date-time shapes. Both the "T" and the
// space separator are supported, with or without an explicit offset.
// Fractional seconds are accepted by time.Parse even when the layout omits them.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Timestamp is a UTC instant that may be absent.
// The zero value is absent and must never be used as an instant.
type Timestamp struct {
	time  time.Time
	valid bool
	raw   string
}

// Absent is the timestamp produced for missing or unparsable input.
var Absent = Timestamp{}

// NewTimestamp wraps an instant, converting it to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{time: t.UTC(), valid: true, raw: t.UTC().Format(time.RFC3339)}
}

// ParseTimestamp normalizes a raw date-time string. Naive values are taken as UTC,
// values with an offset are converted to UTC. Anything unparsable yields Absent.
func ParseTimestamp(raw string) Timestamp {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Absent
	}

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return Timestamp{time: t.UTC(), valid: true, raw: raw}
	}

	return Timestamp{raw: raw}
}

// Valid reports whether the timestamp holds an instant.
func (t Timestamp) Valid() bool { return t.valid }

// Time returns the instant and whether it is present.
func (t Timestamp) Time() (time.Time, bool) { return t.time, t.valid }

// Raw returns the original text the timestamp was parsed from, even when unparsable.
func (t Timestamp) Raw() string { return t.raw }

// Add shifts a present timestamp. Absent stays absent.
func (t Timestamp) Add(d time.Duration) Timestamp {
	if !t.valid {
		return t
	}
	return NewTimestamp(t.time.Add(d))
}

// Equal compares two timestamps. Two absent timestamps are equal.
func (t Timestamp) Equal(other Timestamp) bool {
	if t.valid != other.valid {
		return false
	}
	return !t.valid || t.time.Equal(other.time)
}

func (t Timestamp) String() string {
	if !t.valid {
		return "absent"
	}
	return t.time.Format(time.RFC3339)
}

// UnmarshalJSON accepts a string, null or any other JSON value. Only strings
// that parse become present; everything else decodes to Absent without error.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		*t = Absent
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*t = Absent
		return nil
	}

	*t = ParseTimestamp(raw)
	return nil
}

// MarshalJSON writes RFC3339 for present timestamps and null otherwise.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.time.Format(time.RFC3339))
}
