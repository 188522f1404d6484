package service

import (
	"context"
	"log"

	"github.com/stempeluhr/timeclock/internal/timeclock/store"
	"github.com/stempeluhr/timeclock/internal/timeclock/types"
)

// Reconciler restores the alternation invariant over an employee's active
// clock events after an insert or soft-delete perturbed the sequence.
//
// Policy: the first active event's action is authoritative and every later
// active event must alternate from it.  The first event is deliberately not
// forced to "in": after old records are pruned, a ledger may legitimately
// start with an "out" left over from a shift that began before the pruning
// horizon, and flipping it would corrupt a valid sequence.
type Reconciler struct {
	events store.EventStore
	logger *log.Logger
}

func NewReconciler(events store.EventStore, logger *log.Logger) *Reconciler {
	return &Reconciler{events: events, logger: logger}
}

// Reconcile repairs the employee's active event sequence and returns the
// number of events whose action was corrected.
//
// A sequence that already alternates produces zero writes, which keeps the
// operation idempotent: repeated calls with no intervening mutation never
// flip a legitimately odd first entry back and forth.
func (r *Reconciler) Reconcile(ctx context.Context, employeeID string) (int, error) {
	events, err := r.events.ListActive(ctx, employeeID, nil, nil)
	if err != nil {
		return 0, err
	}

	// Zero or one active events trivially alternate.
	if len(events) <= 1 {
		return 0, nil
	}
	if alternates(events) {
		return 0, nil
	}

	expected := expectedActions(events)

	var updates []store.ActionUpdate
	for i, ev := range events {
		if ev.Action != expected[i] {
			updates = append(updates, store.ActionUpdate{EventID: ev.ID, Action: expected[i]})
		}
	}

	// All corrections land in one atomic batch; a failed write rolls the
	// whole repair back rather than leaving a partially-alternating ledger.
	if err := r.events.UpdateActions(ctx, updates); err != nil {
		return 0, err
	}

	r.logger.Printf("reconciled employee %s: corrected %d of %d entries",
		employeeID, len(updates), len(events))
	return len(updates), nil
}

// alternates reports whether no two consecutive events share an action.
func alternates(events []types.ClockEvent) bool {
	for i := 1; i < len(events); i++ {
		if events[i].Action == events[i-1].Action {
			return false
		}
	}
	return true
}

// expectedActions recomputes the action for every position, alternating from
// the first event's existing action.
func expectedActions(events []types.ClockEvent) []types.Action {
	out := make([]types.Action, len(events))
	out[0] = events[0].Action
	for i := 1; i < len(events); i++ {
		out[i] = out[i-1].Opposite()
	}
	return out
}
