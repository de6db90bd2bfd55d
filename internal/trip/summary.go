// Package trip projects raw lifecycle events into the row and view
// models the dashboard renders. All projections are defensive: absent
// or oddly shaped fields produce empty cells, never errors.
package trip

import (
	"github.com/tidwall/gjson"

	"tripdash/internal/event"
)

// Stop is one pickup or drop point from the trip_created body.
type Stop struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Summary is the passenger and trip info card sourced from trip_created.
type Summary struct {
	PassengerID  string
	PIN          string
	Seats        string
	PreBooking   string
	ServiceGroup string
	Pickups      []Stop
	Drops        []Stop
}

// FirstPickup returns the canonical trip origin.
func (s Summary) FirstPickup() (Stop, bool) {
	if len(s.Pickups) == 0 {
		return Stop{}, false
	}
	return s.Pickups[0], true
}

// LastDrop returns the canonical trip destination.
func (s Summary) LastDrop() (Stop, bool) {
	if len(s.Drops) == 0 {
		return Stop{}, false
	}
	return s.Drops[len(s.Drops)-1], true
}

// BuildSummary extracts the summary from the first trip_created event.
func BuildSummary(events []event.Event) (Summary, bool) {
	created, ok := event.FirstByType(events, "trip_created")
	if !ok {
		return Summary{}, false
	}
	return Summary{
		PassengerID:  cell(created.Get("passenger.id")),
		PIN:          cell(created.Get("pin")),
		Seats:        cell(created.Get("seat_requirement")),
		PreBooking:   cell(created.Get("pre_booking")),
		ServiceGroup: cell(created.Get("service_group_code")),
		Pickups:      stops(created.Get("pickup.location")),
		Drops:        stops(created.Get("drop.location")),
	}, true
}

func stops(r gjson.Result) []Stop {
	arr := r.Array()
	if len(arr) == 0 {
		return nil
	}
	out := make([]Stop, 0, len(arr))
	for _, s := range arr {
		out = append(out, Stop{
			Lat:     s.Get("lat").Float(),
			Lng:     s.Get("lng").Float(),
			Address: s.Get("address").String(),
		})
	}
	return out
}

// cell renders a gjson result as a display cell, "-" when absent.
func cell(r gjson.Result) string {
	if !r.Exists() || r.Type == gjson.Null {
		return "-"
	}
	return r.String()
}
