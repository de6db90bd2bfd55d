package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripdash/internal/event"
	"tripdash/internal/routing"
	"tripdash/internal/store"
	"tripdash/internal/trip"
)

const maxUploadBytes = 10 << 20

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, tmplIndex, map[string]any{
		"APIConfigured": s.trips != nil,
		"Recent":        s.store.Recent(),
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("trip_json")
	if err != nil {
		s.renderError(w, http.StatusBadRequest, "Upload failed", "No trip JSON file in the request.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, "Upload failed", "Could not read the uploaded file: "+err.Error())
		return
	}
	events, err := event.ParseEvents(data)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, "Upload failed", "Failed to read JSON file: "+err.Error())
		return
	}

	key := uuid.NewString()
	s.store.Put(store.Record{
		Key:    key,
		TripID: firstTripID(events),
		Source: store.SourceUpload,
		Events: events,
	})
	s.log.Info("trip uploaded", zap.String("key", key), zap.Int("events", len(events)))
	http.Redirect(w, r, "/trip/"+key, http.StatusSeeOther)
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	if s.trips == nil {
		s.renderError(w, http.StatusBadRequest, "Fetch unavailable", "No trip event API is configured.")
		return
	}
	tripID := strings.TrimSpace(r.FormValue("trip_id"))
	if tripID == "" {
		s.renderError(w, http.StatusBadRequest, "Fetch failed", "Trip ID is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()
	events, err := s.trips.Events(ctx, tripID)
	if err != nil {
		s.renderError(w, http.StatusBadGateway, "Fetch failed", "Could not fetch trip events: "+err.Error())
		return
	}

	key := "trip-" + tripID
	s.store.Put(store.Record{
		Key:    key,
		TripID: tripID,
		Source: store.SourceAPI,
		Events: events,
	})
	s.log.Info("trip fetched", zap.String("trip_id", tripID), zap.Int("events", len(events)))
	s.follow(key, tripID)
	http.Redirect(w, r, "/trip/"+key, http.StatusSeeOther)
}

func (s *Server) handleTrip(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	summary, hasSummary := trip.BuildSummary(rec.Events)
	actual, hasActual := trip.BuildActual(rec.Events)

	s.render(w, tmplTrip, map[string]any{
		"TripKey":     rec.Key,
		"Record":      rec,
		"HasSummary":  hasSummary,
		"Summary":     summary,
		"Overview":    trip.BuildOverview(rec.Events),
		"Fares":       trip.BuildEstimatedFares(rec.Events),
		"PriceTables": trip.BuildPriceFile(rec.Events),
		"HasActual":   hasActual,
		"Actual":      actual,
		"Bidding":     trip.BuildBidding(rec.Events),
		"Timeline":    trip.BuildTimeline(rec.Events),
	})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	view, hasView := trip.BuildMapView(rec.Events)
	var warning string
	if !hasView {
		warning = "No trip_created event: nothing to plot."
	}
	s.render(w, tmplMap, map[string]any{
		"TripKey": rec.Key,
		"Record":  rec,
		"Center":  view.Center,
		"Warning": warning,
	})
}

// routeJSON is the wire shape of the planned route for the map page.
type routeJSON struct {
	LatLngs        [][2]float64 `json:"latlngs"`
	DistanceMeters float64      `json:"distance_meters"`
	DurationSec    float64      `json:"duration_sec"`
}

func (s *Server) handleMapJSON(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(chi.URLParam(r, "key"))
	if err != nil {
		http.Error(w, "trip not found", http.StatusNotFound)
		return
	}
	view, hasView := trip.BuildMapView(rec.Events)

	payload := map[string]any{
		"pickup": view.Pickup,
		"drops":  view.Drops,
		"driver": view.Driver,
	}
	if !hasView {
		payload["warning"] = "No trip_created event: nothing to plot."
		writeJSON(w, payload)
		return
	}

	// Route overlay is best-effort: a routing failure only produces a
	// warning on the map.
	waypoints := make([]routing.Waypoint, len(view.Waypoints))
	for i, p := range view.Waypoints {
		waypoints[i] = routing.Waypoint{Lat: p.Lat, Lng: p.Lng}
	}
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	route, err := s.osrm.Drive(ctx, waypoints)
	switch {
	case errors.Is(err, routing.ErrTooFewWaypoints):
		// Not enough stops for a route; markers alone are fine.
	case err != nil:
		s.log.Warn("route fetch failed", zap.String("key", rec.Key), zap.Error(err))
		payload["warning"] = "Could not fetch route from OSRM: " + err.Error()
	default:
		rj := routeJSON{
			LatLngs:        make([][2]float64, len(route.Line)),
			DistanceMeters: route.DistanceMeters,
			DurationSec:    route.DurationSec,
		}
		for i, pt := range route.Line {
			rj.LatLngs[i] = [2]float64{pt.Lat(), pt.Lon()}
		}
		payload["route"] = rj
	}

	writeJSON(w, payload)
}

func (s *Server) handleEventsJSON(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(chi.URLParam(r, "key"))
	if err != nil {
		http.Error(w, "trip not found", http.StatusNotFound)
		return
	}
	writeJSON(w, rec.Events)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (store.Record, bool) {
	rec, err := s.store.Get(chi.URLParam(r, "key"))
	if err != nil {
		s.renderError(w, http.StatusNotFound, "Trip not found",
			"No trip is loaded under this key. Upload a file or fetch by trip ID first.")
		return store.Record{}, false
	}
	return rec, true
}

func firstTripID(events []event.Event) string {
	for _, e := range events {
		if e.Exists("trip_id") {
			return e.Get("trip_id").String()
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
