package trip

import (
	"github.com/tidwall/gjson"

	"tripdash/internal/event"
)

// OverviewRow links a ride, a trip and the event that mentioned them.
type OverviewRow struct {
	RideID   string
	TripID   string
	Event    string
	DriverID string
}

// BuildOverview collects one row per event whose body carries a trip_id.
// The ride ID sometimes only appears inside business_metadata entries.
// Duplicate rows are dropped, first occurrence wins.
func BuildOverview(events []event.Event) []OverviewRow {
	var rows []OverviewRow
	seen := map[OverviewRow]bool{}
	for _, e := range events {
		// An explicit null trip_id counts as absent.
		tripID := e.Get("trip_id")
		if !tripID.Exists() || tripID.Type == gjson.Null {
			continue
		}
		rideID := "-"
		for _, meta := range e.Get("business_metadata").Array() {
			if meta.Get("key").String() == "ride_id" {
				rideID = meta.Get("value").String()
				break
			}
		}
		row := OverviewRow{
			RideID:   rideID,
			TripID:   tripID.String(),
			Event:    e.Type,
			DriverID: cell(e.Get("driver_id")),
		}
		if seen[row] {
			continue
		}
		seen[row] = true
		rows = append(rows, row)
	}
	return rows
}
