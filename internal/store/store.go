// Package store keeps loaded trips in memory for the lifetime of the
// process. There is deliberately no persistence behind it.
package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"tripdash/internal/event"
)

// Source distinguishes how a trip's events arrived.
type Source string

const (
	SourceUpload Source = "upload"
	SourceAPI    Source = "api"
)

// ErrNotFound is returned for unknown trip keys.
var ErrNotFound = errors.New("store: trip not found")

// Record is one loaded trip.
type Record struct {
	Key      string
	TripID   string
	Source   Source
	LoadedAt time.Time
	Events   []event.Event
}

// Live reports whether the record can be refreshed from the API.
func (r Record) Live() bool { return r.Source == SourceAPI }

// Store is a mutex-guarded in-memory trip map.
type Store struct {
	mu    sync.RWMutex
	trips map[string]Record
}

// New creates an empty Store.
func New() *Store {
	return &Store{trips: make(map[string]Record)}
}

// Put stores a record under its key, stamping LoadedAt.
func (s *Store) Put(rec Record) {
	rec.LoadedAt = time.Now()
	s.mu.Lock()
	s.trips[rec.Key] = rec
	s.mu.Unlock()
}

// Get looks a trip up by key.
func (s *Store) Get(key string) (Record, error) {
	s.mu.RLock()
	rec, ok := s.trips[key]
	s.mu.RUnlock()
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Replace swaps the event list of an existing record, used by the live
// poller. Missing keys are ignored: the trip may have been evicted by a
// restart between poll ticks.
func (s *Store) Replace(key string, events []event.Event) {
	s.mu.Lock()
	if rec, ok := s.trips[key]; ok {
		rec.Events = events
		s.trips[key] = rec
	}
	s.mu.Unlock()
}

// Recent lists loaded trips, newest first.
func (s *Store) Recent() []Record {
	s.mu.RLock()
	out := make([]Record, 0, len(s.trips))
	for _, rec := range s.trips {
		out = append(out, rec)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].LoadedAt.After(out[j].LoadedAt)
	})
	return out
}
