package trip

import "tripdash/internal/event"

// BidRow is one candidate driver from a driver_selected or
// driver_assigned event, enriched with the trip_accepted outcome.
type BidRow struct {
	TripID        string
	DriverID      string
	Bidding       bool
	BidAmount     string
	Assigned      bool
	Winner        bool
	SelectionType string
	ETA           string
	Distance      string
}

// BuildBidding flattens driver selection and assignment events into one
// row per candidate driver, then marks the winner and fills the bid
// amount from trip_accepted. Rows that only differ in ETA or distance
// collapse to the first occurrence.
func BuildBidding(events []event.Event) []BidRow {
	var rows []BidRow
	for _, e := range events {
		if e.Type != "driver_selected" && e.Type != "driver_assigned" {
			continue
		}
		tripID := cell(e.Get("trip_id"))
		for _, d := range e.Get("drivers").Array() {
			rows = append(rows, BidRow{
				TripID:        tripID,
				DriverID:      d.Get("driver_id").String(),
				Bidding:       d.Get("bidding").Bool(),
				BidAmount:     "-",
				Assigned:      e.Type == "driver_assigned",
				SelectionType: cell(d.Get("selection_type")),
				ETA:           cell(d.Get("eta")),
				Distance:      cell(d.Get("distance")),
			})
		}
	}

	for _, e := range events {
		if e.Type != "trip_accepted" {
			continue
		}
		tripID := cell(e.Get("trip_id"))
		driverID := e.Get("driver_id").String()
		amount := cell(e.Get("bid_amount"))
		for i := range rows {
			if rows[i].TripID == tripID && rows[i].DriverID == driverID {
				rows[i].BidAmount = amount
				rows[i].Winner = true
			}
		}
	}

	type dedupKey struct {
		trip, driver     string
		assigned, winner bool
	}
	seen := map[dedupKey]bool{}
	out := rows[:0]
	for _, r := range rows {
		k := dedupKey{r.TripID, r.DriverID, r.Assigned, r.Winner}
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
