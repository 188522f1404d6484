package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stempeluhr/timeclock/internal/timeclock/store"
	"github.com/stempeluhr/timeclock/internal/timeclock/types"
)

// EventStore is an in-memory store.EventStore for tests and dev runs.
type EventStore struct {
	mu     sync.Mutex
	events map[int64]types.ClockEvent
	nextID int64
}

func NewEventStore() *EventStore {
	return &EventStore{events: make(map[int64]types.ClockEvent), nextID: 1}
}

func (s *EventStore) Insert(_ context.Context, ev types.ClockEvent) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev.ID = s.nextID
	s.nextID++
	s.events[ev.ID] = ev
	return ev.ID, nil
}

func (s *EventStore) ByID(_ context.Context, id int64) (types.ClockEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[id]
	if !ok {
		return types.ClockEvent{}, store.ErrEventNotFound
	}
	return ev, nil
}

func (s *EventStore) LastActiveBefore(_ context.Context, employeeID string, before *time.Time) (types.ClockEvent, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		best  types.ClockEvent
		found bool
	)
	for _, ev := range s.events {
		if ev.EmployeeID != employeeID || !ev.Active {
			continue
		}
		if before != nil && !ev.Timestamp.Before(*before) {
			continue
		}
		if !found || laterThan(ev, best) {
			best = ev
			found = true
		}
	}
	return best, found, nil
}

func (s *EventStore) ListActive(_ context.Context, employeeID string, from, to *time.Time) ([]types.ClockEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []types.ClockEvent
	for _, ev := range s.events {
		if ev.EmployeeID != employeeID || !ev.Active {
			continue
		}
		if from != nil && ev.Timestamp.Before(*from) {
			continue
		}
		if to != nil && ev.Timestamp.After(*to) {
			continue
		}
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return laterThan(out[j], out[i]) })
	return out, nil
}

func (s *EventStore) SoftDelete(_ context.Context, ids []int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, id := range ids {
		ev, ok := s.events[id]
		if !ok || !ev.Active {
			continue
		}
		ev.Active = false
		s.events[id] = ev
		n++
	}
	return n, nil
}

func (s *EventStore) UpdateActions(_ context.Context, updates []store.ActionUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before touching anything so a bad ID can't
	// leave a half-applied correction behind.
	for _, u := range updates {
		if _, ok := s.events[u.EventID]; !ok {
			return store.ErrEventNotFound
		}
	}
	for _, u := range updates {
		ev := s.events[u.EventID]
		ev.Action = u.Action
		s.events[u.EventID] = ev
	}
	return nil
}

// laterThan orders events by timestamp, breaking ties by insertion order so
// two scans landing on the same millisecond still have a stable sequence.
func laterThan(a, b types.ClockEvent) bool {
	if a.Timestamp.Equal(b.Timestamp) {
		return a.ID > b.ID
	}
	return a.Timestamp.After(b.Timestamp)
}
