// Package event models the raw trip lifecycle events and provides
// defensive lookup over their loosely structured bodies.
package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// Event is one timestamped lifecycle record. Bodies vary wildly between
// event types, so they are kept raw and read through gjson paths.
type Event struct {
	Type      string          `json:"type"`
	CreatedAt float64         `json:"created_at"`
	Body      json.RawMessage `json:"body"`
}

// ParseEvents decodes a flat JSON array of heterogeneous event objects.
func ParseEvents(data []byte) ([]Event, error) {
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decode trip events: %w", err)
	}
	return events, nil
}

// Get resolves a gjson path against the event body. Missing keys,
// out-of-range indices and type mismatches all yield the zero Result.
func (e Event) Get(path string) gjson.Result {
	return gjson.GetBytes(e.Body, path)
}

// Str returns the string at path, or def when absent.
func (e Event) Str(path, def string) string {
	if r := e.Get(path); r.Exists() {
		return r.String()
	}
	return def
}

// Int returns the integer at path, or def when absent.
func (e Event) Int(path string, def int64) int64 {
	if r := e.Get(path); r.Exists() {
		return r.Int()
	}
	return def
}

// Float returns the number at path, or def when absent.
func (e Event) Float(path string, def float64) float64 {
	if r := e.Get(path); r.Exists() {
		return r.Float()
	}
	return def
}

// Bool returns the boolean at path, or def when absent.
func (e Event) Bool(path string, def bool) bool {
	if r := e.Get(path); r.Exists() {
		return r.Bool()
	}
	return def
}

// Exists reports whether path resolves to any value in the body.
func (e Event) Exists(path string) bool {
	return e.Get(path).Exists()
}

// Time converts the created_at epoch to a time.Time. Producers are
// inconsistent about units: values above 1e12 are milliseconds.
func (e Event) Time() time.Time {
	ts := e.CreatedAt
	if ts == 0 {
		return time.Time{}
	}
	if ts > 1e12 {
		ts = ts / 1000
	}
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec)
}

// TimeLabel renders the event timestamp for display. Events without a
// usable timestamp fall back to the raw value.
func (e Event) TimeLabel() string {
	t := e.Time()
	if t.IsZero() {
		return fmt.Sprintf("%v", e.CreatedAt)
	}
	return t.Format("2006-01-02 15:04:05")
}

// FirstByType returns the first event with the given type.
func FirstByType(events []Event, typ string) (Event, bool) {
	for _, e := range events {
		if e.Type == typ {
			return e, true
		}
	}
	return Event{}, false
}
