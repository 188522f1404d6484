package report

import (
	"context"
	"log"
	"time"

	"github.com/stempeluhr/timeclock/internal/timeclock/store"
	"github.com/stempeluhr/timeclock/internal/timeclock/types"
)

// Report is a derived aggregate over a date range, computed on demand and
// never persisted.
type Report struct {
	Employee types.Employee
	From     time.Time
	To       time.Time

	Sessions     []Session
	OpenSessions int
	Orphans      int

	Summary  Summary
	Daily    []DayTotal
	Monthly  []MonthTotal
	DayCodes []types.DayCode
}

type Service struct {
	events   store.EventStore
	dayCodes store.DayCodeStore
	logger   *log.Logger
	now      func() time.Time
}

func NewService(events store.EventStore, dayCodes store.DayCodeStore, logger *log.Logger) *Service {
	return &Service{events: events, dayCodes: dayCodes, logger: logger, now: time.Now}
}

// Sessions assembles the employee's sessions for the closed date range
// [from, to].  A zero from means "since the first entry"; a zero to means
// today.
//
// The candidate-event window extends 24 hours past the end of the range so
// an IN on the last day that clocked out after midnight still closes; the
// resulting session is attributed to the day it began.
func (s *Service) Sessions(ctx context.Context, employeeID string, from, to time.Time) (AssembleResult, error) {
	if to.IsZero() {
		to = s.now()
	}

	var windowStart *time.Time
	if !from.IsZero() {
		t := startOfDay(from)
		windowStart = &t
	}
	windowEnd := endOfDay(to).Add(24 * time.Hour)

	events, err := s.events.ListActive(ctx, employeeID, windowStart, &windowEnd)
	if err != nil {
		return AssembleResult{}, err
	}

	res := Assemble(events)

	// The extended window may have pulled in an IN from the day after the
	// range; sessions attributed past the range end are not part of it.
	cut := endOfDay(to)
	kept := res.Sessions[:0]
	for _, sess := range res.Sessions {
		if !sess.Start.After(cut) {
			kept = append(kept, sess)
		}
	}
	res.Sessions = kept

	if res.Orphans > 0 {
		s.logger.Printf("employee %s: %d clock-out(s) without a matching clock-in skipped",
			employeeID, res.Orphans)
	}
	if res.Open > 0 {
		s.logger.Printf("employee %s: %d open session(s) without a clock-out",
			employeeID, res.Open)
	}
	return res, nil
}

// Generate builds the full working-time report for an employee.
func (s *Service) Generate(ctx context.Context, emp types.Employee, from, to time.Time) (Report, error) {
	if to.IsZero() {
		to = s.now()
	}

	res, err := s.Sessions(ctx, emp.ID, from, to)
	if err != nil {
		return Report{}, err
	}

	// Default the displayed range start to the first session when the
	// caller left it open.
	if from.IsZero() {
		if len(res.Sessions) > 0 {
			from = startOfDay(res.Sessions[0].Start)
		} else {
			from = startOfDay(to)
		}
	}

	rep := Report{
		Employee:     emp,
		From:         from,
		To:           to,
		Sessions:     res.Sessions,
		OpenSessions: res.Open,
		Orphans:      res.Orphans,
		Summary:      Summarize(res.Sessions),
		Daily:        DailyTotals(res.Sessions),
		Monthly:      MonthlyTotals(res.Sessions),
	}

	if s.dayCodes != nil {
		codes, err := s.dayCodes.Range(ctx, emp.ID,
			from.Format("2006-01-02"), to.Format("2006-01-02"))
		if err != nil {
			return Report{}, err
		}
		rep.DayCodes = codes
	}

	return rep, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24*time.Hour - time.Nanosecond)
}
