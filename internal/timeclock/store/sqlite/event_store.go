package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	dbpkg "github.com/stempeluhr/timeclock/internal/db"
	"github.com/stempeluhr/timeclock/internal/timeclock/store"
	"github.com/stempeluhr/timeclock/internal/timeclock/types"
)

type EventStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewEventStore(conn *sql.DB, writer *dbpkg.Worker) *EventStore {
	return &EventStore{db: conn, writer: writer}
}

const eventColumns = `entry_id, employee_id, timestamp_ms, action, active`

func scanEvent(row interface{ Scan(...any) error }) (types.ClockEvent, error) {
	var (
		ev     types.ClockEvent
		tsMs   int64
		action string
		active int
	)
	if err := row.Scan(&ev.ID, &ev.EmployeeID, &tsMs, &action, &active); err != nil {
		return types.ClockEvent{}, err
	}
	ev.Timestamp = time.UnixMilli(tsMs).UTC()
	ev.Action = types.Action(action)
	ev.Active = active != 0
	return ev, nil
}

func (s *EventStore) Insert(ctx context.Context, ev types.ClockEvent) (int64, error) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	var id int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var active int
		if ev.Active {
			active = 1
		}
		res, err := tx.ExecContext(ctx, `
INSERT INTO time_entries(employee_id, timestamp_ms, action, active)
VALUES (?, ?, ?, ?);
`, ev.EmployeeID, ev.Timestamp.UnixMilli(), string(ev.Action), active)
		if err != nil {
			return fmt.Errorf("Insert: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("Insert id: %w", err)
		}
		return nil
	})
	return id, err
}

func (s *EventStore) ByID(ctx context.Context, id int64) (types.ClockEvent, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM time_entries WHERE entry_id = ?;`, id)
	ev, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return types.ClockEvent{}, store.ErrEventNotFound
	}
	if err != nil {
		return types.ClockEvent{}, fmt.Errorf("ByID: %w", err)
	}
	return ev, nil
}

func (s *EventStore) LastActiveBefore(ctx context.Context, employeeID string, before *time.Time) (types.ClockEvent, bool, error) {
	q := `SELECT ` + eventColumns + ` FROM time_entries
WHERE employee_id = ? AND active = 1`
	args := []any{employeeID}
	if before != nil {
		q += ` AND timestamp_ms < ?`
		args = append(args, before.UnixMilli())
	}
	// entry_id breaks ties between scans on the same millisecond.
	q += ` ORDER BY timestamp_ms DESC, entry_id DESC LIMIT 1;`

	row := s.db.QueryRowContext(ctx, q, args...)
	ev, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return types.ClockEvent{}, false, nil
	}
	if err != nil {
		return types.ClockEvent{}, false, fmt.Errorf("LastActiveBefore: %w", err)
	}
	return ev, true, nil
}

func (s *EventStore) ListActive(ctx context.Context, employeeID string, from, to *time.Time) ([]types.ClockEvent, error) {
	q := `SELECT ` + eventColumns + ` FROM time_entries
WHERE employee_id = ? AND active = 1`
	args := []any{employeeID}
	if from != nil {
		q += ` AND timestamp_ms >= ?`
		args = append(args, from.UnixMilli())
	}
	if to != nil {
		q += ` AND timestamp_ms <= ?`
		args = append(args, to.UnixMilli())
	}
	q += ` ORDER BY timestamp_ms ASC, entry_id ASC;`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("ListActive: %w", err)
	}
	defer rows.Close()

	var out []types.ClockEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("ListActive scan: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (s *EventStore) SoftDelete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	var deleted int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		// active = 1 guard makes repeat deletes a no-op rather than an error.
		res, err := tx.ExecContext(ctx,
			`UPDATE time_entries SET active = 0 WHERE entry_id IN (`+placeholders+`) AND active = 1;`,
			args...)
		if err != nil {
			return fmt.Errorf("SoftDelete: %w", err)
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	return deleted, err
}

func (s *EventStore) UpdateActions(ctx context.Context, updates []store.ActionUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	// One transaction for the whole batch: a failure on any row rolls the
	// entire correction back so the ledger is never left half-repaired.
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for _, u := range updates {
			res, err := tx.ExecContext(ctx,
				`UPDATE time_entries SET action = ? WHERE entry_id = ?;`,
				string(u.Action), u.EventID)
			if err != nil {
				return fmt.Errorf("UpdateActions %d: %w", u.EventID, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return store.ErrEventNotFound
			}
		}
		return nil
	})
}
