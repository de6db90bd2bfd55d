package trip

import "tripdash/internal/event"

// EstimatedFare is one row of the estimated trip details table, one per
// fare_details entry in the trip_fare_updated body.
type EstimatedFare struct {
	Currency        string
	DistanceKm      string
	DurationSec     string
	Stops           int
	BaseFare        string
	DistanceFare    string
	DurationFare    string
	WaitingFare     string
	FreeWaitingTime string
	ExtraRideFare   string
	AboveKmFare     string
	IsUpfront       string
	RideHourEnabled string
}

// BuildEstimatedFares projects the fare update event into table rows.
// The stop count comes from the trip_created drop list.
func BuildEstimatedFares(events []event.Event) []EstimatedFare {
	fare, ok := event.FirstByType(events, "trip_fare_updated")
	if !ok {
		return nil
	}
	stops := 0
	if summary, ok := BuildSummary(events); ok {
		stops = len(summary.Drops)
	}

	var rows []EstimatedFare
	for _, f := range fare.Get("fare_details").Array() {
		est := f.Get("estimated_fare.fare_info")
		rows = append(rows, EstimatedFare{
			Currency:        cell(f.Get("currency_code")),
			DistanceKm:      cell(f.Get("distance")),
			DurationSec:     cell(f.Get("duration")),
			Stops:           stops,
			BaseFare:        cell(est.Get("min_fare")),
			DistanceFare:    cell(est.Get("fare_breakdown.distance_fare")),
			DurationFare:    cell(est.Get("fare_breakdown.duration_fare")),
			WaitingFare:     cell(est.Get("waiting_fare")),
			FreeWaitingTime: cell(est.Get("free_waiting_time")),
			ExtraRideFare:   cell(est.Get("extra_ride_fare")),
			AboveKmFare:     cell(est.Get("above_km_fare")),
			IsUpfront:       cell(f.Get("is_upfront")),
			RideHourEnabled: cell(f.Get("ride_hour_enabled")),
		})
	}
	return rows
}

// PriceTable is one section of the fare price file.
type PriceTable struct {
	Key     string
	Title   string
	Columns []string
	Rows    [][]string
}

// priceTableDefs pins the column subset and display headers per section.
var priceTableDefs = []struct {
	key     string
	title   string
	fields  []string
	headers []string
}{
	{"additional_charge", "Additional Charge",
		[]string{"id", "name", "amount", "type"},
		[]string{"ID", "Name", "Amount", "Type"}},
	{"distance_fare", "Distance Fare",
		[]string{"base_fare", "distance", "km_fare"},
		[]string{"Base Fare", "Distance", "KM Fare"}},
	{"waiting_fare", "Waiting Fare",
		[]string{"end_time", "fare"},
		[]string{"End Time", "Fare"}},
}

// BuildPriceFile projects fare_details.0.price_file into the three fixed
// tables. Sections missing from the event come back with no rows so the
// page can show an info note instead.
func BuildPriceFile(events []event.Event) []PriceTable {
	fare, ok := event.FirstByType(events, "trip_fare_updated")
	if !ok {
		return nil
	}
	priceFile := fare.Get("fare_details.0.price_file")

	tables := make([]PriceTable, 0, len(priceTableDefs))
	for _, def := range priceTableDefs {
		t := PriceTable{Key: def.key, Title: def.title, Columns: def.headers}
		for _, item := range priceFile.Get(def.key).Array() {
			row := make([]string, len(def.fields))
			for i, field := range def.fields {
				row[i] = cell(item.Get(field))
			}
			t.Rows = append(t.Rows, row)
		}
		tables = append(tables, t)
	}
	return tables
}
