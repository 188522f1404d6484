package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/stempeluhr/timeclock/internal/db"
	"github.com/stempeluhr/timeclock/internal/timeclock/store"
	"github.com/stempeluhr/timeclock/internal/timeclock/types"
)

type DayCodeStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewDayCodeStore(conn *sql.DB, writer *dbpkg.Worker) *DayCodeStore {
	return &DayCodeStore{db: conn, writer: writer}
}

const dayCodeColumns = `day_code_id, employee_id, date, upper_code, lower_code,
total_seconds, notes, active, created_at_ms, updated_at_ms`

func scanDayCode(row interface{ Scan(...any) error }) (types.DayCode, error) {
	var (
		rec       types.DayCode
		upper     sql.NullString
		lower     sql.NullString
		notes     sql.NullString
		active    int
		createdMs int64
		updatedMs int64
	)
	if err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &upper, &lower,
		&rec.TotalSeconds, &notes, &active, &createdMs, &updatedMs); err != nil {
		return types.DayCode{}, err
	}
	rec.UpperCode = upper.String
	rec.LowerCode = lower.String
	rec.Notes = notes.String
	rec.Active = active != 0
	rec.CreatedAt = time.UnixMilli(createdMs).UTC()
	rec.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return rec, nil
}

func (s *DayCodeStore) Upsert(ctx context.Context, rec types.DayCode) (types.DayCode, error) {
	now := time.Now().UTC()
	nowMs := now.UnixMilli()

	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO day_codes(employee_id, date, upper_code, lower_code, total_seconds, notes, active, created_at_ms, updated_at_ms)
VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?)
ON CONFLICT(employee_id, date) DO UPDATE SET
  upper_code = excluded.upper_code,
  lower_code = excluded.lower_code,
  total_seconds = excluded.total_seconds,
  notes = excluded.notes,
  active = 1,
  updated_at_ms = excluded.updated_at_ms;
`, rec.EmployeeID, rec.Date, nullable(rec.UpperCode), nullable(rec.LowerCode),
			rec.TotalSeconds, nullable(rec.Notes), nowMs, nowMs); err != nil {
			return fmt.Errorf("Upsert: %w", err)
		}
		return nil
	})
	if err != nil {
		return types.DayCode{}, err
	}

	stored, ok, err := s.Get(ctx, rec.EmployeeID, rec.Date)
	if err != nil {
		return types.DayCode{}, err
	}
	if !ok {
		return types.DayCode{}, store.ErrDayCodeNotFound
	}
	return stored, nil
}

func (s *DayCodeStore) Get(ctx context.Context, employeeID, date string) (types.DayCode, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+dayCodeColumns+` FROM day_codes WHERE employee_id = ? AND date = ? AND active = 1;`,
		employeeID, date)
	rec, err := scanDayCode(row)
	if err == sql.ErrNoRows {
		return types.DayCode{}, false, nil
	}
	if err != nil {
		return types.DayCode{}, false, fmt.Errorf("Get: %w", err)
	}
	return rec, true, nil
}

func (s *DayCodeStore) Range(ctx context.Context, employeeID, fromDate, toDate string) ([]types.DayCode, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+dayCodeColumns+` FROM day_codes
WHERE employee_id = ? AND active = 1 AND date >= ? AND date <= ?
ORDER BY date ASC;`, employeeID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("Range: %w", err)
	}
	defer rows.Close()

	var out []types.DayCode
	for rows.Next() {
		rec, err := scanDayCode(rows)
		if err != nil {
			return nil, fmt.Errorf("Range scan: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *DayCodeStore) SoftDelete(ctx context.Context, employeeID, date string) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE day_codes SET active = 0 WHERE employee_id = ? AND date = ? AND active = 1;`,
			employeeID, date)
		if err != nil {
			return fmt.Errorf("SoftDelete: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return store.ErrDayCodeNotFound
		}
		return nil
	})
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
