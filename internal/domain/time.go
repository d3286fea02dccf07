package domain

import (
	"fmt"
	"strings"
	"time"
)

// ISOTime is a time.Time that decodes from the date formats the remote
// backend emits. Date-valued fields must be parsed into this type
// before they enter a snapshot; comparing raw date strings lexically is
// forbidden because string order does not match temporal order across
// formats.
type ISOTime struct {
	time.Time
}

// acceptedLayouts are tried in order when decoding.
var acceptedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NewISOTime wraps a time.Time.
func NewISOTime(t time.Time) ISOTime {
	return ISOTime{Time: t}
}

// ParseISOTime parses s using the accepted layouts.
func ParseISOTime(s string) (ISOTime, error) {
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ISOTime{Time: t}, nil
		}
	}
	return ISOTime{}, fmt.Errorf("unrecognized date format %q", s)
}

// UnmarshalJSON implements json.Unmarshaler. Empty strings and null
// decode to the zero value.
func (t *ISOTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseISOTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed.Time
	return nil
}

// MarshalJSON implements json.Marshaler. Zero values encode as null so
// optional dates round-trip.
func (t ISOTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

// SameDay reports whether t and u fall on the same calendar day in UTC.
func (t ISOTime) SameDay(u time.Time) bool {
	y1, m1, d1 := t.UTC().Date()
	y2, m2, d2 := u.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
