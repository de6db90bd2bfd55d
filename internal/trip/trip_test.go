package trip

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tripdash/internal/event"
)

// fixture is a condensed but structurally faithful trip lifecycle.
const fixture = `[
  {"type":"trip_created","created_at":1700000000,"body":{
    "trip_id":9001,
    "passenger":{"id":"pax-77"},
    "pin":"4321",
    "seat_requirement":2,
    "pre_booking":false,
    "service_group_code":"MINI",
    "pickup":{"location":[{"lat":6.9271,"lng":79.8612,"address":"Fort"}]},
    "drop":{"location":[
      {"lat":6.9344,"lng":79.8500,"address":"Pettah"},
      {"lat":6.9000,"lng":79.9000,"address":"Nugegoda"}
    ]},
    "business_metadata":[{"key":"ride_id","value":"ride-55"}]
  }},
  {"type":"trip_fare_updated","created_at":1700000010,"body":{
    "trip_id":9001,
    "fare_details":[{
      "currency_code":"LKR",
      "distance":12.4,
      "duration":1800,
      "is_upfront":true,
      "ride_hour_enabled":false,
      "estimated_fare":{"fare_info":{
        "min_fare":300,
        "waiting_fare":4.5,
        "free_waiting_time":180,
        "extra_ride_fare":0,
        "above_km_fare":95,
        "fare_breakdown":{"distance_fare":780,"duration_fare":120}
      }},
      "price_file":{
        "additional_charge":[{"id":1,"name":"Night charge","amount":50,"type":"flat"}],
        "distance_fare":[{"base_fare":300,"distance":1,"km_fare":95}],
        "waiting_fare":[{"end_time":600,"fare":4.5}]
      }
    }]
  }},
  {"type":"driver_selected","created_at":1700000020,"body":{
    "trip_id":9001,
    "drivers":[
      {"driver_id":501,"bidding":true,"eta":120,"distance":800,"selection_type":"broadcast"},
      {"driver_id":502,"bidding":true,"eta":240,"distance":1500,"selection_type":"broadcast"}
    ]
  }},
  {"type":"driver_assigned","created_at":1700000030,"body":{
    "trip_id":9001,
    "drivers":[{"driver_id":501,"bidding":true,"eta":120,"distance":800,"selection_type":"broadcast"}]
  }},
  {"type":"trip_accepted","created_at":1700000040,"body":{
    "trip_id":9001,"driver_id":501,"bid_amount":1450
  }},
  {"type":"driver_location","created_at":1700000050,"body":{
    "trip_id":9001,"driver_id":501,"eta":60,"distance":400,
    "location":{"lat":6.9300,"lng":79.8600,"address":"Near Fort"}
  }},
  {"type":"trip_completed","created_at":1700000800,"body":{
    "trip_id":9001,
    "trip":{
      "driver_id":501,"passenger_id":"pax-77","currency_code":"LKR",
      "actual_pickup":{"address":"Fort Station"},
      "actual_drop":{"address":"Nugegoda Junction"},
      "trip_cost":1620,"promo_code":"OFF10","total_tip":100,
      "payment":[{"method":"CASH"}]
    }
  }},
  {"type":"trip_ended","created_at":1700000810,"body":{
    "trip_id":9001,"driver_id":501,"currency_code":"LKR",
    "meter_details":{"travel_details":{"distance_travelled":12900,"waiting_time":240}},
    "travel_info":{"actual_duration":1750,"estimated_distance":12.4,"estimated_lost_mileage":0.5}
  }}
]`

func load(t *testing.T) []event.Event {
	t.Helper()
	events, err := event.ParseEvents([]byte(fixture))
	require.NoError(t, err)
	return events
}
