package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/stempeluhr/timeclock/internal/timeclock/store"
	"github.com/stempeluhr/timeclock/internal/timeclock/types"
)

var (
	ErrEmptyName     = errors.New("employee name cannot be empty")
	ErrNameTooLong   = errors.New("employee name too long")
	ErrBadgeTooShort = errors.New("badge tag too short")
)

const (
	maxNameLength  = 100
	minBadgeLength = 4
)

type EmployeeService struct {
	employees store.EmployeeStore
	logger    *log.Logger
	now       func() time.Time
}

func NewEmployeeService(employees store.EmployeeStore, logger *log.Logger) *EmployeeService {
	return &EmployeeService{employees: employees, logger: logger, now: time.Now}
}

// Register creates a new employee.  Badge tags are uppercased and must be
// unique among all employees ever created, deactivated ones included.
func (s *EmployeeService) Register(ctx context.Context, name, badgeTag string, isAdmin bool) (types.Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Employee{}, ErrEmptyName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return types.Employee{}, ErrNameTooLong
	}

	tag := strings.ToUpper(strings.TrimSpace(badgeTag))
	if len(tag) < minBadgeLength {
		return types.Employee{}, ErrBadgeTooShort
	}

	emp := types.Employee{
		ID:        uuid.NewString(),
		Name:      name,
		BadgeTag:  tag,
		IsAdmin:   isAdmin,
		Active:    true,
		CreatedAt: s.now().UTC(),
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return types.Employee{}, err
	}

	s.logger.Printf("employee registered: %s (%s)", emp.Name, emp.BadgeTag)
	return emp, nil
}

func (s *EmployeeService) Rename(ctx context.Context, id, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(newName) > maxNameLength {
		return ErrNameTooLong
	}
	if err := s.employees.Rename(ctx, id, newName); err != nil {
		return err
	}
	s.logger.Printf("employee %s renamed to %q", id, newName)
	return nil
}

// Deactivate soft-deletes the employee.  The ledger keeps every clock event
// so historical reports stay intact.
func (s *EmployeeService) Deactivate(ctx context.Context, id string) error {
	if err := s.employees.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Printf("employee %s deactivated", id)
	return nil
}

func (s *EmployeeService) ByBadge(ctx context.Context, badgeTag string) (types.Employee, error) {
	return s.employees.ByBadge(ctx, strings.ToUpper(strings.TrimSpace(badgeTag)))
}

func (s *EmployeeService) ByID(ctx context.Context, id string) (types.Employee, error) {
	return s.employees.ByID(ctx, id)
}

func (s *EmployeeService) List(ctx context.Context, includeInactive bool) ([]types.Employee, error) {
	return s.employees.List(ctx, includeInactive)
}

func (s *EmployeeService) AdminCount(ctx context.Context) (int, error) {
	return s.employees.AdminCount(ctx)
}
