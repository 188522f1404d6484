package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/stempeluhr/timeclock/internal/timeclock/store"
	"github.com/stempeluhr/timeclock/internal/timeclock/types"
)

// EmployeeStore is an in-memory store.EmployeeStore for tests and dev runs.
type EmployeeStore struct {
	mu    sync.RWMutex
	byID  map[string]types.Employee
	byTag map[string]string // badge tag -> employee ID, includes deactivated employees
}

func NewEmployeeStore() *EmployeeStore {
	return &EmployeeStore{
		byID:  make(map[string]types.Employee),
		byTag: make(map[string]string),
	}
}

func (s *EmployeeStore) Create(_ context.Context, emp types.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byTag[emp.BadgeTag]; ok {
		return store.ErrDuplicateBadge
	}
	s.byID[emp.ID] = emp
	s.byTag[emp.BadgeTag] = emp.ID
	return nil
}

func (s *EmployeeStore) ByID(_ context.Context, id string) (types.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emp, ok := s.byID[id]
	if !ok {
		return types.Employee{}, store.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *EmployeeStore) ByBadge(_ context.Context, tag string) (types.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byTag[tag]
	if !ok {
		return types.Employee{}, store.ErrEmployeeNotFound
	}
	emp := s.byID[id]
	if !emp.Active {
		return types.Employee{}, store.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *EmployeeStore) List(_ context.Context, includeInactive bool) ([]types.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Employee, 0, len(s.byID))
	for _, emp := range s.byID {
		if !includeInactive && !emp.Active {
			continue
		}
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *EmployeeStore) Rename(_ context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.byID[id]
	if !ok {
		return store.ErrEmployeeNotFound
	}
	emp.Name = name
	s.byID[id] = emp
	return nil
}

func (s *EmployeeStore) Deactivate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.byID[id]
	if !ok {
		return store.ErrEmployeeNotFound
	}
	emp.Active = false
	s.byID[id] = emp
	return nil
}

func (s *EmployeeStore) AdminCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, emp := range s.byID {
		if emp.Active && emp.IsAdmin {
			n++
		}
	}
	return n, nil
}
