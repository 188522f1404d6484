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

type EmployeeStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewEmployeeStore(conn *sql.DB, writer *dbpkg.Worker) *EmployeeStore {
	return &EmployeeStore{db: conn, writer: writer}
}

func (s *EmployeeStore) Create(ctx context.Context, emp types.Employee) error {
	if emp.CreatedAt.IsZero() {
		emp.CreatedAt = time.Now().UTC()
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		// The badge must be unique among all employees ever created,
		// deactivated ones included.  Checked here rather than relying on
		// the constraint error so callers get a typed sentinel.
		var one int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM employees WHERE badge_tag = ?;`, emp.BadgeTag,
		).Scan(&one)
		if err == nil {
			return store.ErrDuplicateBadge
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("Create check badge: %w", err)
		}

		var isAdmin, active int
		if emp.IsAdmin {
			isAdmin = 1
		}
		if emp.Active {
			active = 1
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO employees(employee_id, name, badge_tag, is_admin, active, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?);
`, emp.ID, emp.Name, emp.BadgeTag, isAdmin, active, emp.CreatedAt.UnixMilli()); err != nil {
			return fmt.Errorf("Create insert: %w", err)
		}
		return nil
	})
}

const employeeColumns = `employee_id, name, badge_tag, is_admin, active, created_at_ms`

func scanEmployee(row interface{ Scan(...any) error }) (types.Employee, error) {
	var (
		emp       types.Employee
		isAdmin   int
		active    int
		createdMs int64
	)
	if err := row.Scan(&emp.ID, &emp.Name, &emp.BadgeTag, &isAdmin, &active, &createdMs); err != nil {
		return types.Employee{}, err
	}
	emp.IsAdmin = isAdmin != 0
	emp.Active = active != 0
	emp.CreatedAt = time.UnixMilli(createdMs).UTC()
	return emp, nil
}

func (s *EmployeeStore) ByID(ctx context.Context, id string) (types.Employee, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE employee_id = ?;`, id)
	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return types.Employee{}, store.ErrEmployeeNotFound
	}
	if err != nil {
		return types.Employee{}, fmt.Errorf("ByID: %w", err)
	}
	return emp, nil
}

func (s *EmployeeStore) ByBadge(ctx context.Context, tag string) (types.Employee, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE badge_tag = ? AND active = 1;`, tag)
	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return types.Employee{}, store.ErrEmployeeNotFound
	}
	if err != nil {
		return types.Employee{}, fmt.Errorf("ByBadge: %w", err)
	}
	return emp, nil
}

func (s *EmployeeStore) List(ctx context.Context, includeInactive bool) ([]types.Employee, error) {
	q := `SELECT ` + employeeColumns + ` FROM employees`
	if !includeInactive {
		q += ` WHERE active = 1`
	}
	q += ` ORDER BY name COLLATE NOCASE ASC;`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()

	var out []types.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("List scan: %w", err)
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *EmployeeStore) Rename(ctx context.Context, id, name string) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE employees SET name = ? WHERE employee_id = ?;`, name, id)
		if err != nil {
			return fmt.Errorf("Rename: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return store.ErrEmployeeNotFound
		}
		return nil
	})
}

func (s *EmployeeStore) Deactivate(ctx context.Context, id string) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE employees SET active = 0 WHERE employee_id = ?;`, id)
		if err != nil {
			return fmt.Errorf("Deactivate: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return store.ErrEmployeeNotFound
		}
		return nil
	})
}

func (s *EmployeeStore) AdminCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM employees WHERE is_admin = 1 AND active = 1;`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("AdminCount: %w", err)
	}
	return n, nil
}
