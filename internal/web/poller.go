package web

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tripdash/internal/event"
	"tripdash/internal/trip"
	"tripdash/internal/tripapi"
)

// follower re-fetches one API-sourced trip on a minimum interval and
// pushes updates to the trip's websocket hub when events were appended.
type follower struct {
	key        string
	tripID     string
	api        *tripapi.Client
	srv        *Server
	hub        *tripHub
	log        *zap.Logger
	minRefresh time.Duration

	lastCount int
	lastTime  time.Time
}

// follow starts a follower for the trip key unless one is already
// running. Followers stop when the server context is cancelled.
func (s *Server) follow(key, tripID string) {
	if s.trips == nil || s.refreshMin <= 0 {
		return
	}
	s.mu.Lock()
	if s.followers[key] {
		s.mu.Unlock()
		return
	}
	s.followers[key] = true
	s.mu.Unlock()

	f := &follower{
		key:        key,
		tripID:     tripID,
		api:        s.trips,
		srv:        s,
		hub:        s.hub(key),
		log:        s.log.With(zap.String("trip_id", tripID)),
		minRefresh: s.refreshMin,
	}
	// Seed from the just-stored record so the first tick only fires on
	// genuinely new events.
	if rec, err := s.store.Get(key); err == nil {
		f.changed(rec.Events)
	}
	go f.run(s.baseCtx)
}

func (f *follower) run(ctx context.Context) {
	t := time.NewTimer(f.minRefresh)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			start := time.Now()
			f.tick(ctx)
			// Back off when the API is slow rather than hammering it.
			interval := f.minRefresh
			if elapsed := time.Since(start); elapsed*2 > interval {
				interval = elapsed * 2
			}
			t.Reset(interval)
		}
	}
}

func (f *follower) tick(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	events, err := f.api.Events(cctx, f.tripID)
	if err != nil {
		f.log.Warn("live poll failed", zap.Error(err))
		return
	}
	if !f.changed(events) {
		return
	}
	f.log.Info("trip updated", zap.Int("events", len(events)))
	f.srv.store.Replace(f.key, events)
	f.hub.broadcast(livePayload{
		Key:        f.key,
		EventCount: len(events),
		Timeline:   trip.BuildTimeline(events),
	})
}

func (f *follower) changed(events []event.Event) bool {
	var last time.Time
	if len(events) > 0 {
		last = events[len(events)-1].Time()
	}
	if len(events) == f.lastCount && last.Equal(f.lastTime) {
		return false
	}
	f.lastCount = len(events)
	f.lastTime = last
	return true
}
