package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/stempeluhr/timeclock/internal/timeclock/store"
	"github.com/stempeluhr/timeclock/internal/timeclock/types"
)

var (
	ErrInvalidAction       = errors.New(`action must be "in" or "out"`)
	ErrInactiveEmployee    = errors.New("employee is inactive")
	ErrTimestampOutOfRange = errors.New("timestamp outside accepted window")
)

// Accepted window for event timestamps: up to one day ahead of the clock
// (kiosk clock drift, DST edges) and one year back (manual corrections).
const (
	maxFutureDrift = 24 * time.Hour
	maxPastDrift   = 365 * 24 * time.Hour
)

// ClockResult describes one completed clock action.
type ClockResult struct {
	Employee types.Employee
	Action   types.Action
	Event    types.ClockEvent
}

// ClockService owns all writes to the clock ledger.  Every read-determine-
// write sequence runs under the employee's lock from the injected registry,
// so a rapid double-scan resolves to in-then-out instead of two ins.
type ClockService struct {
	employees  store.EmployeeStore
	events     store.EventStore
	reconciler *Reconciler
	locks      *LockRegistry
	logger     *log.Logger
	now        func() time.Time
}

func NewClockService(
	employees store.EmployeeStore,
	events store.EventStore,
	reconciler *Reconciler,
	locks *LockRegistry,
	logger *log.Logger,
) *ClockService {
	return &ClockService{
		employees:  employees,
		events:     events,
		reconciler: reconciler,
		locks:      locks,
		logger:     logger,
		now:        time.Now,
	}
}

// DetermineNextAction returns the action a new event at the cursor must
// carry: "in" when no active event precedes it or the preceding one is
// "out", otherwise "out".  A nil cursor means "after the latest event".
// Pure query, no side effects.
func (s *ClockService) DetermineNextAction(ctx context.Context, employeeID string, before *time.Time) (types.Action, error) {
	last, ok, err := s.events.LastActiveBefore(ctx, employeeID, before)
	if err != nil {
		return "", err
	}
	if !ok || last.Action == types.ActionOut {
		return types.ActionIn, nil
	}
	return types.ActionOut, nil
}

// ClockByBadge resolves the badge to an active employee and performs the
// clock action at the current time.
func (s *ClockService) ClockByBadge(ctx context.Context, badgeTag string) (ClockResult, error) {
	tag := strings.ToUpper(strings.TrimSpace(badgeTag))
	emp, err := s.employees.ByBadge(ctx, tag)
	if err != nil {
		return ClockResult{}, err
	}
	return s.Clock(ctx, emp)
}

// Clock records the employee's next action at the current time.  The
// appended event lands after every existing one, so alternation is preserved
// without a reconciliation pass.
func (s *ClockService) Clock(ctx context.Context, emp types.Employee) (ClockResult, error) {
	if !emp.Active {
		return ClockResult{}, ErrInactiveEmployee
	}

	mu := s.locks.For(emp.ID)
	mu.Lock()
	defer mu.Unlock()

	action, err := s.DetermineNextAction(ctx, emp.ID, nil)
	if err != nil {
		return ClockResult{}, err
	}

	ev := types.ClockEvent{
		EmployeeID: emp.ID,
		Timestamp:  s.now().UTC(),
		Action:     action,
		Active:     true,
	}
	id, err := s.events.Insert(ctx, ev)
	if err != nil {
		return ClockResult{}, err
	}
	ev.ID = id

	s.logger.Printf("clocked %s: %s @ %s",
		strings.ToUpper(string(action)), emp.Name, ev.Timestamp.Format(time.RFC3339))

	return ClockResult{Employee: emp, Action: action, Event: ev}, nil
}

// CreateEvent inserts an event with an explicit action, validating the
// action tag, the employee's active flag, and the timestamp window.  Callers
// that may perturb the ordered sequence must reconcile afterwards; InsertAt
// does both.
func (s *ClockService) CreateEvent(ctx context.Context, employeeID string, action types.Action, ts time.Time) (types.ClockEvent, error) {
	if !action.Valid() {
		return types.ClockEvent{}, ErrInvalidAction
	}
	emp, err := s.employees.ByID(ctx, employeeID)
	if err != nil {
		return types.ClockEvent{}, err
	}
	if !emp.Active {
		return types.ClockEvent{}, ErrInactiveEmployee
	}
	if err := s.checkTimestamp(ts); err != nil {
		return types.ClockEvent{}, err
	}

	mu := s.locks.For(emp.ID)
	mu.Lock()
	defer mu.Unlock()

	ev := types.ClockEvent{
		EmployeeID: emp.ID,
		Timestamp:  ts.UTC(),
		Action:     action,
		Active:     true,
	}
	id, err := s.events.Insert(ctx, ev)
	if err != nil {
		return types.ClockEvent{}, err
	}
	ev.ID = id
	return ev, nil
}

// InsertAt records a manual entry at the given timestamp.  The action is
// determined against the ledger at that point in time, not against a stale
// "last known action", and the tail of the sequence is reconciled since an
// out-of-order insert may have broken alternation downstream.  Returns the
// result and the number of corrected entries.
func (s *ClockService) InsertAt(ctx context.Context, employeeID string, ts time.Time) (ClockResult, int, error) {
	emp, err := s.employees.ByID(ctx, employeeID)
	if err != nil {
		return ClockResult{}, 0, err
	}
	if !emp.Active {
		return ClockResult{}, 0, ErrInactiveEmployee
	}
	if err := s.checkTimestamp(ts); err != nil {
		return ClockResult{}, 0, err
	}

	mu := s.locks.For(emp.ID)
	mu.Lock()
	defer mu.Unlock()

	cursor := ts.UTC()
	action, err := s.DetermineNextAction(ctx, emp.ID, &cursor)
	if err != nil {
		return ClockResult{}, 0, err
	}

	ev := types.ClockEvent{
		EmployeeID: emp.ID,
		Timestamp:  cursor,
		Action:     action,
		Active:     true,
	}
	id, err := s.events.Insert(ctx, ev)
	if err != nil {
		return ClockResult{}, 0, err
	}
	ev.ID = id

	corrected, err := s.reconciler.Reconcile(ctx, emp.ID)
	if err != nil {
		return ClockResult{}, 0, err
	}

	s.logger.Printf("inserted %s for %s @ %s (%d corrected)",
		strings.ToUpper(string(action)), emp.Name, cursor.Format(time.RFC3339), corrected)

	return ClockResult{Employee: emp, Action: action, Event: ev}, corrected, nil
}

// DeleteEvents tombstones the given events and reconciles every owning
// employee.  Unknown and already-tombstoned IDs are skipped, so repeating a
// delete is a no-op.  Returns the number of events tombstoned and the number
// of actions corrected by the follow-up reconciliation.
func (s *ClockService) DeleteEvents(ctx context.Context, ids []int64) (deleted int64, corrected int, err error) {
	// Resolve owners before deleting; afterwards the events are invisible
	// to the active-only queries.
	owners := make(map[string]struct{})
	for _, id := range ids {
		ev, err := s.events.ByID(ctx, id)
		if errors.Is(err, store.ErrEventNotFound) {
			continue
		}
		if err != nil {
			return 0, 0, err
		}
		owners[ev.EmployeeID] = struct{}{}
	}

	deleted, err = s.events.SoftDelete(ctx, ids)
	if err != nil {
		return 0, 0, err
	}

	for employeeID := range owners {
		mu := s.locks.For(employeeID)
		mu.Lock()
		n, rerr := s.reconciler.Reconcile(ctx, employeeID)
		mu.Unlock()
		if rerr != nil {
			return deleted, corrected, rerr
		}
		corrected += n
	}
	return deleted, corrected, nil
}

func (s *ClockService) checkTimestamp(ts time.Time) error {
	now := s.now().UTC()
	if ts.After(now.Add(maxFutureDrift)) || ts.Before(now.Add(-maxPastDrift)) {
		return ErrTimestampOutOfRange
	}
	return nil
}
