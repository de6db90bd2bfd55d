package trip

import (
	"sort"
	"time"

	"tripdash/internal/event"
)

// Category values for timeline rows.
const (
	CategoryDriver = "Driver Event"
	CategoryTrip   = "Trip Event"
)

// TimelineRow is one entry of the chronological event table.
type TimelineRow struct {
	Time      time.Time `json:"-"`
	TimeLabel string    `json:"timestamp"`
	Type      string    `json:"event_type"`
	Category  string    `json:"category"`
	DriverID  string    `json:"driver_id"`
	Distance  string    `json:"distance"`
	ETA       string    `json:"eta"`
	Location  string    `json:"location"`
	Body      string    `json:"body"`
}

// BuildTimeline projects every event into the timeline, sorted by
// timestamp. Events touching a driver (driver_id, drivers or
// drivers_status in the body) are categorized separately so the page
// can tint them.
func BuildTimeline(events []event.Event) []TimelineRow {
	var rows []TimelineRow
	for _, e := range events {
		category := CategoryTrip
		driverID := "-"
		if e.Exists("driver_id") || e.Exists("drivers") || e.Exists("drivers_status") {
			category = CategoryDriver
			driverID = cell(e.Get("driver_id"))
		}
		rows = append(rows, TimelineRow{
			Time:      e.Time(),
			TimeLabel: e.TimeLabel(),
			Type:      e.Type,
			Category:  category,
			DriverID:  driverID,
			Distance:  cell(e.Get("distance")),
			ETA:       cell(e.Get("eta")),
			Location:  cell(e.Get("location.address")),
			Body:      string(e.Body),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Time.Before(rows[j].Time)
	})

	type dedupKey struct {
		label, typ, category, driver string
	}
	seen := map[dedupKey]bool{}
	out := rows[:0]
	for _, r := range rows {
		k := dedupKey{r.TimeLabel, r.Type, r.Category, r.DriverID}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
