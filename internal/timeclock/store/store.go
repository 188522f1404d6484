package store

import (
	"context"
	"errors"
	"time"

	"github.com/stempeluhr/timeclock/internal/timeclock/types"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEventNotFound    = errors.New("time entry not found")
	ErrDayCodeNotFound  = errors.New("day code entry not found")

	// ErrDuplicateBadge covers deactivated employees too: a badge stays
	// reserved for its historical owner unless explicitly reassigned.
	ErrDuplicateBadge = errors.New("badge tag already registered")
)

type EmployeeStore interface {
	Create(ctx context.Context, emp types.Employee) error
	ByID(ctx context.Context, id string) (types.Employee, error)

	// ByBadge resolves an active employee by badge tag.  Deactivated
	// employees are not matched; they can no longer badge in.
	ByBadge(ctx context.Context, tag string) (types.Employee, error)

	List(ctx context.Context, includeInactive bool) ([]types.Employee, error)
	Rename(ctx context.Context, id, name string) error
	Deactivate(ctx context.Context, id string) error
	AdminCount(ctx context.Context) (int, error)
}

// ActionUpdate is one corrected action produced by reconciliation.
type ActionUpdate struct {
	EventID int64
	Action  types.Action
}

// EventStore persists the clock ledger.  Every read method except ByID
// filters to active (non-tombstoned) events.
type EventStore interface {
	// Insert appends one event and returns its assigned ID.
	Insert(ctx context.Context, ev types.ClockEvent) (int64, error)

	// ByID returns the event regardless of its tombstone flag.
	ByID(ctx context.Context, id int64) (types.ClockEvent, error)

	// LastActiveBefore returns the most recent active event strictly before
	// the cursor, or the most recent overall when before is nil.  The bool
	// reports whether such an event exists.
	LastActiveBefore(ctx context.Context, employeeID string, before *time.Time) (types.ClockEvent, bool, error)

	// ListActive returns active events ordered by timestamp ascending.
	// Nil bounds are open.
	ListActive(ctx context.Context, employeeID string, from, to *time.Time) ([]types.ClockEvent, error)

	// SoftDelete tombstones the given events.  Already-tombstoned and
	// unknown IDs are skipped; the count of newly tombstoned rows is
	// returned.
	SoftDelete(ctx context.Context, ids []int64) (int64, error)

	// UpdateActions applies a reconciliation batch as one atomic unit:
	// either every listed event gets its corrected action or none do.
	UpdateActions(ctx context.Context, updates []ActionUpdate) error
}

type DayCodeStore interface {
	// Upsert inserts or replaces the entry for (employee, date) and returns
	// the stored record.
	Upsert(ctx context.Context, rec types.DayCode) (types.DayCode, error)

	Get(ctx context.Context, employeeID, date string) (types.DayCode, bool, error)

	// Range returns active entries with fromDate <= date <= toDate,
	// ordered by date ascending.
	Range(ctx context.Context, employeeID, fromDate, toDate string) ([]types.DayCode, error)

	SoftDelete(ctx context.Context, employeeID, date string) error
}
