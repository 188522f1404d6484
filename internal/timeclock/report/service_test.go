package report_test

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stempeluhr/timeclock/internal/timeclock/report"
	"github.com/stempeluhr/timeclock/internal/timeclock/store/memory"
	"github.com/stempeluhr/timeclock/internal/timeclock/types"
)

func newTestReportService(t *testing.T, events ...types.ClockEvent) (*report.Service, *memory.DayCodeStore) {
	t.Helper()

	es := memory.NewEventStore()
	for _, e := range events {
		e.EmployeeID = "emp-1"
		e.Active = true
		if _, err := es.Insert(context.Background(), e); err != nil {
			t.Fatalf("seed event: %v", err)
		}
	}
	ds := memory.NewDayCodeStore()
	return report.NewService(es, ds, log.New(io.Discard, "", 0)), ds
}

func TestSessions_MidnightSpanClosesAndAttributes(t *testing.T) {
	// Shift from 23:00 on March 2 to 01:00 on March 3; the report range
	// ends on March 2.
	svc, _ := newTestReportService(t,
		types.ClockEvent{Timestamp: time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC), Action: types.ActionIn},
		types.ClockEvent{Timestamp: time.Date(2026, 3, 3, 1, 0, 0, 0, time.UTC), Action: types.ActionOut},
	)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	res, err := svc.Sessions(context.Background(), "emp-1", day, day)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(res.Sessions) != 1 {
		t.Fatalf("sessions = %d, want 1 (the out after midnight must close the shift)", len(res.Sessions))
	}
	sess := res.Sessions[0]
	if sess.Date() != "2026-03-02" {
		t.Errorf("attributed to %s, want 2026-03-02", sess.Date())
	}
	if report.FormatHMS(sess.Seconds()) != "02:00:00" {
		t.Errorf("duration = %s, want 02:00:00", report.FormatHMS(sess.Seconds()))
	}
	if res.Open != 0 {
		t.Errorf("open = %d, want 0", res.Open)
	}
}

func TestSessions_NextDaySessionExcluded(t *testing.T) {
	// The 24h window extension pulls in the next day's events; a session
	// that starts after the range end must not leak into the report.
	svc, _ := newTestReportService(t,
		types.ClockEvent{Timestamp: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), Action: types.ActionIn},
		types.ClockEvent{Timestamp: time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC), Action: types.ActionOut},
		types.ClockEvent{Timestamp: time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC), Action: types.ActionIn},
		types.ClockEvent{Timestamp: time.Date(2026, 3, 3, 16, 0, 0, 0, time.UTC), Action: types.ActionOut},
	)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	res, err := svc.Sessions(context.Background(), "emp-1", day, day)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(res.Sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(res.Sessions))
	}
	if res.Sessions[0].Date() != "2026-03-02" {
		t.Errorf("kept session from %s", res.Sessions[0].Date())
	}
}

func TestSessions_OrphanAndOpenCounted(t *testing.T) {
	svc, _ := newTestReportService(t,
		types.ClockEvent{Timestamp: time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC), Action: types.ActionOut},
		types.ClockEvent{Timestamp: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), Action: types.ActionIn},
	)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	res, err := svc.Sessions(context.Background(), "emp-1", day, day)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if res.Orphans != 1 || res.Open != 1 || len(res.Sessions) != 0 {
		t.Errorf("orphans=%d open=%d sessions=%d, want 1, 1, 0",
			res.Orphans, res.Open, len(res.Sessions))
	}
}

func TestGenerate_FullReport(t *testing.T) {
	svc, ds := newTestReportService(t,
		types.ClockEvent{Timestamp: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), Action: types.ActionIn},
		types.ClockEvent{Timestamp: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), Action: types.ActionOut},
		types.ClockEvent{Timestamp: time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC), Action: types.ActionIn},
		types.ClockEvent{Timestamp: time.Date(2026, 3, 3, 16, 0, 0, 0, time.UTC), Action: types.ActionOut},
	)
	if _, err := ds.Upsert(context.Background(), types.DayCode{
		EmployeeID: "emp-1", Date: "2026-03-04", UpperCode: "U", Active: true,
	}); err != nil {
		t.Fatalf("seed day code: %v", err)
	}

	emp := types.Employee{ID: "emp-1", Name: "Ada", Active: true}
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	rep, err := svc.Generate(context.Background(), emp, from, to)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if rep.Summary.TotalSeconds != 12*3600 {
		t.Errorf("total = %s, want 12:00:00", report.FormatHMS(rep.Summary.TotalSeconds))
	}
	if rep.Summary.DaysWorked != 2 {
		t.Errorf("days = %d, want 2", rep.Summary.DaysWorked)
	}
	if got := rep.Summary.AverageSecondsPerDay(); got != 6*3600 {
		t.Errorf("average = %s, want 06:00:00", report.FormatHMS(got))
	}
	if len(rep.Daily) != 2 || len(rep.Monthly) != 1 {
		t.Errorf("daily=%d monthly=%d", len(rep.Daily), len(rep.Monthly))
	}
	if len(rep.DayCodes) != 1 || rep.DayCodes[0].UpperCode != "U" {
		t.Errorf("day codes: %+v", rep.DayCodes)
	}
}

func TestGenerate_DefaultsRangeStartToFirstSession(t *testing.T) {
	svc, _ := newTestReportService(t,
		types.ClockEvent{Timestamp: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), Action: types.ActionIn},
		types.ClockEvent{Timestamp: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), Action: types.ActionOut},
	)

	emp := types.Employee{ID: "emp-1", Name: "Ada", Active: true}
	to := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	rep, err := svc.Generate(context.Background(), emp, time.Time{}, to)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if !rep.From.Equal(want) {
		t.Errorf("From = %v, want %v", rep.From, want)
	}
}
