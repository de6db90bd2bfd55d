// Package web serves the trip dashboard: upload and fetch forms, the
// projected trip views, the map page and the JSON API behind it.
package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"tripdash/internal/routing"
	"tripdash/internal/store"
	"tripdash/internal/tripapi"
)

// Server wires the store, the trip API client and the routing client
// into the HTTP surface.
type Server struct {
	router     chi.Router
	log        *zap.Logger
	store      *store.Store
	trips      *tripapi.Client // nil when no API is configured
	osrm       *routing.Client
	refreshMin time.Duration

	baseCtx context.Context
	cancel  context.CancelFunc

	mu        sync.Mutex
	hubs      map[string]*tripHub
	followers map[string]bool
}

// New creates a Server. trips may be nil; fetching by ID is then
// disabled in the UI.
func New(log *zap.Logger, st *store.Store, trips *tripapi.Client, osrm *routing.Client, refreshMin time.Duration) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		router:     chi.NewRouter(),
		log:        log,
		store:      st,
		trips:      trips,
		osrm:       osrm,
		refreshMin: refreshMin,
		baseCtx:    ctx,
		cancel:     cancel,
		hubs:       make(map[string]*tripHub),
		followers:  make(map[string]bool),
	}
	s.routes()
	return s
}

// Close stops all live-follow pollers.
func (s *Server) Close() {
	s.cancel()
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)

	s.router.Get("/", s.handleIndex)
	s.router.Post("/upload", s.handleUpload)
	s.router.Post("/fetch", s.handleFetch)
	s.router.Get("/trip/{key}", s.handleTrip)
	s.router.Get("/trip/{key}/map", s.handleMap)

	s.router.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Get("/api/trip/{key}/map.json", s.handleMapJSON)
	s.router.Get("/api/trip/{key}/events.json", s.handleEventsJSON)
	s.router.Get("/api/trip/{key}/live", s.handleLive)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
		)
	})
}

var funcMap = template.FuncMap{
	"fmtTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02 15:04:05")
	},
	"fmtCoord": func(f float64) string {
		return fmt.Sprintf("%.6f", f)
	},
	"add":   func(a, b int) int { return a + b },
	"lower": strings.ToLower,
	"truncate": func(s string, n int) string {
		s = strings.ReplaceAll(s, "\n", " ")
		s = strings.TrimSpace(s)
		if len(s) > n {
			return s[:n] + "…"
		}
		return s
	},
	"categoryClass": func(category string) string {
		if category == "Driver Event" {
			return "row-driver"
		}
		return "row-trip"
	},
}

func (s *Server) render(w http.ResponseWriter, tmplStr string, data any) {
	t, err := template.New("page").Funcs(funcMap).Parse(tmplBase + tmplStr)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		s.log.Warn("template execute", zap.Error(err))
	}
}

func (s *Server) renderError(w http.ResponseWriter, status int, title, message string) {
	w.WriteHeader(status)
	s.render(w, tmplError, map[string]any{
		"Title":   title,
		"Message": message,
	})
}
