package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/stempeluhr/timeclock/internal/timeclock/store"
	"github.com/stempeluhr/timeclock/internal/timeclock/types"
)

// DayCodeStore is an in-memory store.DayCodeStore for tests and dev runs.
type DayCodeStore struct {
	mu     sync.Mutex
	byKey  map[string]types.DayCode // employeeID + "/" + date
	nextID int64
}

func NewDayCodeStore() *DayCodeStore {
	return &DayCodeStore{byKey: make(map[string]types.DayCode), nextID: 1}
}

func key(employeeID, date string) string { return employeeID + "/" + date }

func (s *DayCodeStore) Upsert(_ context.Context, rec types.DayCode) (types.DayCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(rec.EmployeeID, rec.Date)
	if prev, ok := s.byKey[k]; ok {
		rec.ID = prev.ID
		rec.CreatedAt = prev.CreatedAt
	} else {
		rec.ID = s.nextID
		s.nextID++
	}
	rec.Active = true
	s.byKey[k] = rec
	return rec, nil
}

func (s *DayCodeStore) Get(_ context.Context, employeeID, date string) (types.DayCode, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byKey[key(employeeID, date)]
	if !ok || !rec.Active {
		return types.DayCode{}, false, nil
	}
	return rec, true, nil
}

func (s *DayCodeStore) Range(_ context.Context, employeeID, fromDate, toDate string) ([]types.DayCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []types.DayCode
	for _, rec := range s.byKey {
		if rec.EmployeeID != employeeID || !rec.Active {
			continue
		}
		if rec.Date < fromDate || rec.Date > toDate {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *DayCodeStore) SoftDelete(_ context.Context, employeeID, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(employeeID, date)
	rec, ok := s.byKey[k]
	if !ok || !rec.Active {
		return store.ErrDayCodeNotFound
	}
	rec.Active = false
	s.byKey[k] = rec
	return nil
}
