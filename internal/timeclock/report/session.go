package report

import (
	"time"

	"github.com/stempeluhr/timeclock/internal/timeclock/types"
)

// Session is one reconstructed IN→OUT work period.  Sessions are derived
// from the active event set on demand and never persisted.
type Session struct {
	Start time.Time
	End   time.Time

	// Originating ledger entries, kept so a session shown in a UI can be
	// deleted by tombstoning both events.
	InEventID  int64
	OutEventID int64
}

func (s Session) Seconds() int64 {
	return int64(s.End.Sub(s.Start) / time.Second)
}

// Date is the calendar date the session is attributed to: the date of its
// start, even when it ends after midnight.  An overnight shift shows up
// under the day it began.
func (s Session) Date() string {
	return s.Start.Format("2006-01-02")
}

// AssembleResult is the output of pairing a ledger into sessions.
type AssembleResult struct {
	Sessions []Session

	// Open counts trailing IN events with no OUT yet.  Not an error; the
	// employee is simply still clocked in.
	Open int

	// Orphans counts OUT events with no pending IN.  Not an error either;
	// they produce no session and are skipped.
	Orphans int
}

// Assemble pairs IN events with subsequent OUT events in one chronological
// pass over the active ledger, using a FIFO queue of pending INs.  As long
// as the input alternates, the produced sessions never overlap and never
// invert; callers should reconcile first if the ledger may be perturbed.
func Assemble(events []types.ClockEvent) AssembleResult {
	var res AssembleResult
	var pending []types.ClockEvent

	for _, ev := range events {
		switch ev.Action {
		case types.ActionIn:
			pending = append(pending, ev)
		case types.ActionOut:
			if len(pending) == 0 {
				res.Orphans++
				continue
			}
			in := pending[0]
			pending = pending[1:]
			res.Sessions = append(res.Sessions, Session{
				Start:      in.Timestamp,
				End:        ev.Timestamp,
				InEventID:  in.ID,
				OutEventID: ev.ID,
			})
		}
	}

	res.Open = len(pending)
	return res
}
