package web

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripdash/internal/event"
	"tripdash/internal/routing"
	"tripdash/internal/store"
	"tripdash/internal/tripapi"
)

const tripJSON = `[
  {"type":"trip_created","created_at":1700000000,"body":{
    "trip_id":9001,
    "passenger":{"id":"pax-77"},
    "pin":"4321",
    "pickup":{"location":[{"lat":6.9271,"lng":79.8612,"address":"Fort"}]},
    "drop":{"location":[{"lat":6.9000,"lng":79.9000,"address":"Nugegoda"}]}
  }},
  {"type":"trip_ended","created_at":1700000800,"body":{"trip_id":9001,"driver_id":501}}
]`

func newTestServer(t *testing.T, osrmURL string) *Server {
	t.Helper()
	s := New(zap.NewNop(), store.New(), nil, routing.NewClient(osrmURL, time.Second), 0)
	t.Cleanup(s.Close)
	return s
}

func seedTrip(t *testing.T, s *Server, key string) {
	t.Helper()
	events, err := event.ParseEvents([]byte(tripJSON))
	require.NoError(t, err)
	s.store.Put(store.Record{Key: key, TripID: "9001", Source: store.SourceUpload, Events: events})
}

func uploadRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("trip_json", "trip.json")
	require.NoError(t, err)
	_, err = io.WriteString(fw, body)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadAndDashboard(t *testing.T) {
	s := newTestServer(t, "http://unused.invalid")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, uploadRequest(t, tripJSON))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	location := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/trip/"))

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, location, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, "pax-77")
	assert.Contains(t, page, "Fort")
	assert.Contains(t, page, "trip_ended")
	assert.Contains(t, page, "Complete Trip Events Timeline")
}

func TestUploadRejectsInvalidJSON(t *testing.T) {
	s := newTestServer(t, "http://unused.invalid")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, uploadRequest(t, `{"not":"a list"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to read JSON file")
}

func TestTripNotFound(t *testing.T) {
	s := newTestServer(t, "http://unused.invalid")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trip/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFetchWithoutAPIConfigured(t *testing.T) {
	s := newTestServer(t, "http://unused.invalid")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/fetch", strings.NewReader("trip_id=9001"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFetchStoresTrip(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/trips/9001/events", r.URL.Path)
		_, _ = io.WriteString(w, tripJSON)
	}))
	defer api.Close()

	s := New(zap.NewNop(), store.New(), tripapi.NewClient(api.URL, time.Second),
		routing.NewClient("http://unused.invalid", time.Second), 0)
	defer s.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/fetch", strings.NewReader("trip_id=9001"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/trip/trip-9001", rec.Header().Get("Location"))

	stored, err := s.store.Get("trip-9001")
	require.NoError(t, err)
	assert.Equal(t, "9001", stored.TripID)
	assert.True(t, stored.Live())
	assert.Len(t, stored.Events, 2)
}

func TestMapJSONWithRoute(t *testing.T) {
	osrm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"routes":[{"distance":5000,"duration":600,
			"geometry":{"type":"LineString","coordinates":[[79.8612,6.9271],[79.9,6.9]]}}]}`)
	}))
	defer osrm.Close()

	s := newTestServer(t, osrm.URL)
	seedTrip(t, s, "k1")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trip/k1/map.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Pickup  *struct{ Lat, Lng float64 } `json:"pickup"`
		Warning string                      `json:"warning"`
		Route   *struct {
			LatLngs        [][2]float64 `json:"latlngs"`
			DistanceMeters float64      `json:"distance_meters"`
		} `json:"route"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotNil(t, payload.Pickup)
	assert.Empty(t, payload.Warning)
	require.NotNil(t, payload.Route)
	require.Len(t, payload.Route.LatLngs, 2)
	// latlngs come back lat-first for Leaflet.
	assert.InDelta(t, 6.9271, payload.Route.LatLngs[0][0], 1e-9)
	assert.InDelta(t, 79.8612, payload.Route.LatLngs[0][1], 1e-9)
}

func TestMapJSONDegradesOnRoutingFailure(t *testing.T) {
	osrm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer osrm.Close()

	s := newTestServer(t, osrm.URL)
	seedTrip(t, s, "k1")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trip/k1/map.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload["warning"], "Could not fetch route from OSRM")
	assert.NotNil(t, payload["pickup"], "markers must survive a routing failure")
	assert.Nil(t, payload["route"])
}

func TestMapJSONWithoutTripCreated(t *testing.T) {
	s := newTestServer(t, "http://unused.invalid")
	events, err := event.ParseEvents([]byte(`[{"type":"trip_ended","created_at":1700000800,"body":{"trip_id":1}}]`))
	require.NoError(t, err)
	s.store.Put(store.Record{Key: "k1", Source: store.SourceUpload, Events: events})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trip/k1/map.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload["warning"], "nothing to plot")
	assert.Nil(t, payload["route"])
}

func TestEventsJSON(t *testing.T) {
	s := newTestServer(t, "http://unused.invalid")
	seedTrip(t, s, "k1")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trip/k1/events.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var events []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, "trip_created", events[0]["type"])
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "http://unused.invalid")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMapPage(t *testing.T) {
	s := newTestServer(t, "http://unused.invalid")
	seedTrip(t, s, "k1")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trip/k1/map", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, "leaflet")
	assert.Contains(t, page, "/api/trip/k1/map.json")
}

func TestIndexListsRecentTrips(t *testing.T) {
	s := newTestServer(t, "http://unused.invalid")
	seedTrip(t, s, "k1")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, "Recently loaded")
	assert.Contains(t, page, "/trip/k1")
	assert.Contains(t, page, "No trip API configured")
}
