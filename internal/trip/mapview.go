package trip

import "tripdash/internal/event"

// LatLng is a WGS84 coordinate pair as the map frontend expects it.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Marker is one point plotted on the trip map.
type Marker struct {
	LatLng
	Label string `json:"label"`
	Kind  string `json:"kind"` // pickup, drop, driver
	Seq   int    `json:"seq,omitempty"`
}

// MapView is everything the map page needs to plot a trip.
type MapView struct {
	Center    LatLng   `json:"center"`
	Pickup    *Marker  `json:"pickup,omitempty"`
	Drops     []Marker `json:"drops"`
	Driver    *Marker  `json:"driver,omitempty"`
	Waypoints []LatLng `json:"waypoints"`
}

// BuildMapView derives markers and route waypoints from the trip_created
// stops plus the freshest driver position seen in any event body.
func BuildMapView(events []event.Event) (MapView, bool) {
	summary, ok := BuildSummary(events)
	if !ok {
		return MapView{}, false
	}

	var view MapView
	if pickup, ok := summary.FirstPickup(); ok {
		view.Pickup = &Marker{
			LatLng: LatLng{Lat: pickup.Lat, Lng: pickup.Lng},
			Label:  "Pickup: " + pickup.Address,
			Kind:   "pickup",
		}
		view.Center = view.Pickup.LatLng
		view.Waypoints = append(view.Waypoints, view.Pickup.LatLng)
	}
	for i, d := range summary.Drops {
		if d.Lat == 0 && d.Lng == 0 {
			continue
		}
		m := Marker{
			LatLng: LatLng{Lat: d.Lat, Lng: d.Lng},
			Label:  d.Address,
			Kind:   "drop",
			Seq:    i + 1,
		}
		view.Drops = append(view.Drops, m)
		view.Waypoints = append(view.Waypoints, m.LatLng)
	}

	// Last reported driver position across the whole event stream.
	for _, e := range events {
		if !e.Exists("driver_id") || !e.Exists("location.lat") || !e.Exists("location.lng") {
			continue
		}
		view.Driver = &Marker{
			LatLng: LatLng{
				Lat: e.Float("location.lat", 0),
				Lng: e.Float("location.lng", 0),
			},
			Label: "Driver " + e.Get("driver_id").String(),
			Kind:  "driver",
		}
	}

	if view.Pickup == nil && len(view.Drops) > 0 {
		view.Center = view.Drops[0].LatLng
	}
	return view, true
}
