package types

import "time"

// Action is the direction of a clock event.
type Action string

const (
	ActionIn  Action = "in"
	ActionOut Action = "out"
)

func (a Action) Valid() bool {
	return a == ActionIn || a == ActionOut
}

// Opposite returns the action that must follow a in a well-formed ledger.
func (a Action) Opposite() Action {
	if a == ActionIn {
		return ActionOut
	}
	return ActionIn
}

type Employee struct {
	ID        string
	Name      string
	BadgeTag  string
	IsAdmin   bool
	Active    bool // soft-delete flag
	CreatedAt time.Time
}

// ClockEvent is one timestamped IN/OUT record for an employee.  Tombstoned
// events (Active=false) stay in the ledger but are invisible to every
// alternation, session, and report computation.
type ClockEvent struct {
	ID         int64
	EmployeeID string
	Timestamp  time.Time
	Action     Action
	Active     bool
}

// DayCode is a per-day absence/holiday annotation (vacation, sick leave,
// public holiday, ...).  At most one per employee per calendar date.
type DayCode struct {
	ID           int64
	EmployeeID   string
	Date         string // YYYY-MM-DD
	UpperCode    string
	LowerCode    string
	TotalSeconds int64
	Notes        string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
