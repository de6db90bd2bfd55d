package trip

import (
	"github.com/tidwall/gjson"

	"tripdash/internal/event"
)

// ActualField is one labelled value of the actual trip details card.
type ActualField struct {
	Label string
	Value string
}

// BuildActual merges trip_ended and trip_completed into the actual trip
// details card. Either event may be missing; trip_ended wins where both
// carry a value.
func BuildActual(events []event.Event) ([]ActualField, bool) {
	completed, hasCompleted := event.FirstByType(events, "trip_completed")
	ended, hasEnded := event.FirstByType(events, "trip_ended")
	if !hasCompleted && !hasEnded {
		return nil, false
	}

	tripInfo := completed.Get("trip")
	meter := ended.Get("meter_details.travel_details")
	travel := ended.Get("travel_info")

	fields := []ActualField{
		{"Driver ID", fallback(ended.Get("driver_id"), tripInfo.Get("driver_id"))},
		{"Passenger ID", cell(tripInfo.Get("passenger_id"))},
		{"Currency", fallback(ended.Get("currency_code"), tripInfo.Get("currency_code"))},
		{"Pickup Address", cell(tripInfo.Get("actual_pickup.address"))},
		{"Drop Address", cell(tripInfo.Get("actual_drop.address"))},
		{"Distance Travelled (m)", cell(meter.Get("distance_travelled"))},
		{"Waiting Time (sec)", cell(meter.Get("waiting_time"))},
		{"Total Trip Cost", cell(tripInfo.Get("trip_cost"))},
		{"Promotion Code", cell(tripInfo.Get("promo_code"))},
		{"Tip", cell(tripInfo.Get("total_tip"))},
		{"Payment Method", cell(tripInfo.Get("payment.0.method"))},
		{"Actual Duration (sec)", cell(travel.Get("actual_duration"))},
		{"Estimated Distance", cell(travel.Get("estimated_distance"))},
		{"Lost Mileage", cell(travel.Get("estimated_lost_mileage"))},
	}
	return fields, true
}

func fallback(primary, secondary gjson.Result) string {
	if primary.Exists() && primary.Type != gjson.Null {
		return primary.String()
	}
	return cell(secondary)
}
