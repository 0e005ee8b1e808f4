package order

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp accepts both RFC 3339 and the zone-less LocalDateTime layout
// the backend emits.
type Timestamp struct{ time.Time }

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		ts.Time = time.Time{}
		return nil
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		ts.Time = t
		return nil
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			ts.Time = t
			return nil
		}
	}

	return fmt.Errorf("timestamp [%s]: unsupported layout", raw)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}

	return []byte(`"` + ts.Format(time.RFC3339) + `"`), nil
}
