package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// naiveLayouts are the ISO-8601 forms the invite API emits without a zone.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Timestamp is a time decoded from an ISO-8601 string.
// Values without a zone offset are read as UTC.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses an RFC 3339 or zone-less ISO-8601 string
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: t}, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// MarshalJSON encodes the timestamp as RFC 3339
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts RFC 3339 and zone-less ISO-8601 strings
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
