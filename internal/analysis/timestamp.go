package analysis

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Layouts accepted for created_at / updated_at. The analysis worker emits
// zone-less ISO strings, the result store emits RFC 3339. Zone-less values
// are read as UTC, not the viewer's local zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// Timestamp is an ISO timestamp as sent by the backend. Raw keeps the
// original text so an unparseable value can still be shown.
type Timestamp struct {
	Time time.Time
	Raw  string
}

// ParseTimestamp parses value with the accepted layouts. Unparseable input
// yields a Timestamp with only Raw set.
func ParseTimestamp(value string) Timestamp {
	value = strings.TrimSpace(value)
	if value == "" {
		return Timestamp{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Timestamp{Time: t, Raw: value}
		}
	}
	return Timestamp{Raw: value}
}

// IsZero reports whether the backend sent no timestamp at all.
func (t Timestamp) IsZero() bool {
	return t.Raw == "" && t.Time.IsZero()
}

// Valid reports whether the timestamp parsed into a time.
func (t Timestamp) Valid() bool {
	return !t.Time.IsZero()
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParseTimestamp(s)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	if t.Raw != "" {
		return json.Marshal(t.Raw)
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// MarshalYAML renders the timestamp the same way the JSON encoder does.
func (t Timestamp) MarshalYAML() (any, error) {
	if t.IsZero() {
		return nil, nil
	}
	if t.Raw != "" {
		return t.Raw, nil
	}
	return t.Time.Format(time.RFC3339Nano), nil
}
