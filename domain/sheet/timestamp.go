package sheet

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// offsetWithZ matches a numeric UTC offset followed by a redundant "Z", which
// the Smartsheet SDK emits when serializing sheets (e.g. "+00:00Z").
var offsetWithZ = regexp.MustCompile(`[+-]\d{2}:\d{2}Z$`)

// ISO-8601 forms accepted after normalization. Go accepts a fractional second
// after the seconds field even when the layout has none.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp is a time.Time decoded from an upstream ISO-8601 string.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses an upstream timestamp. Values without an offset are
// taken as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if offsetWithZ.MatchString(s) {
		s = strings.TrimSuffix(s, "Z")
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp %q", value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
