package report_test

import (
	"testing"
	"time"

	"github.com/stempeluhr/timeclock/internal/timeclock/report"
	"github.com/stempeluhr/timeclock/internal/timeclock/types"
)

func ev(id int64, ts time.Time, action types.Action) types.ClockEvent {
	return types.ClockEvent{ID: id, EmployeeID: "emp-1", Timestamp: ts, Action: action, Active: true}
}

func TestAssemble_PairsInOrder(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	res := report.Assemble([]types.ClockEvent{
		ev(1, base, types.ActionIn),
		ev(2, base.Add(4*time.Hour), types.ActionOut),
		ev(3, base.Add(5*time.Hour), types.ActionIn),
		ev(4, base.Add(9*time.Hour), types.ActionOut),
	})

	if len(res.Sessions) != 2 || res.Open != 0 || res.Orphans != 0 {
		t.Fatalf("sessions=%d open=%d orphans=%d", len(res.Sessions), res.Open, res.Orphans)
	}
	for i, sess := range res.Sessions {
		if sess.Seconds() != 4*3600 {
			t.Errorf("session %d: %d seconds, want %d", i, sess.Seconds(), 4*3600)
		}
	}
	if res.Sessions[0].InEventID != 1 || res.Sessions[0].OutEventID != 2 {
		t.Errorf("first session event IDs: %d, %d", res.Sessions[0].InEventID, res.Sessions[0].OutEventID)
	}
}

func TestAssemble_OrphanOutSkipped(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	res := report.Assemble([]types.ClockEvent{
		ev(1, base, types.ActionOut), // leftover from a pruned shift
		ev(2, base.Add(time.Hour), types.ActionIn),
		ev(3, base.Add(5*time.Hour), types.ActionOut),
	})

	if res.Orphans != 1 {
		t.Errorf("orphans = %d, want 1", res.Orphans)
	}
	if len(res.Sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(res.Sessions))
	}
	if res.Sessions[0].InEventID != 2 || res.Sessions[0].OutEventID != 3 {
		t.Errorf("session paired wrong events: %+v", res.Sessions[0])
	}
}

func TestAssemble_TrailingInIsOpen(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	res := report.Assemble([]types.ClockEvent{
		ev(1, base, types.ActionIn),
		ev(2, base.Add(4*time.Hour), types.ActionOut),
		ev(3, base.Add(5*time.Hour), types.ActionIn),
	})

	if res.Open != 1 {
		t.Errorf("open = %d, want 1", res.Open)
	}
	if len(res.Sessions) != 1 {
		t.Errorf("sessions = %d, want 1", len(res.Sessions))
	}
}

func TestAssemble_Empty(t *testing.T) {
	res := report.Assemble(nil)
	if len(res.Sessions) != 0 || res.Open != 0 || res.Orphans != 0 {
		t.Errorf("empty input produced %+v", res)
	}
}

func TestSession_MidnightSpanAttributedToStartDate(t *testing.T) {
	in := time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)
	out := time.Date(2026, 3, 3, 1, 0, 0, 0, time.UTC)
	sess := report.Session{Start: in, End: out}

	if sess.Date() != "2026-03-02" {
		t.Errorf("Date() = %q, want 2026-03-02", sess.Date())
	}
	if sess.Seconds() != 2*3600 {
		t.Errorf("Seconds() = %d, want %d", sess.Seconds(), 2*3600)
	}
}
