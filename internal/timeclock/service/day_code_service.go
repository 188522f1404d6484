package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/stempeluhr/timeclock/internal/timeclock/store"
	"github.com/stempeluhr/timeclock/internal/timeclock/types"
)

var (
	ErrUnknownDayCode = errors.New("unknown day code")
	ErrBadDate        = errors.New("date must be YYYY-MM-DD")
)

// Upper-field day codes: A work, X day off, FT/F public holiday, K sick,
// U vacation, Mu/Mi military/civil service, D miscellaneous duty.
var validUpperCodes = map[string]struct{}{
	"A": {}, "X": {}, "FT": {}, "F": {}, "K": {},
	"U": {}, "Mu": {}, "Mi": {}, "D": {},
}

const dateLayout = "2006-01-02"

type DayCodeService struct {
	employees store.EmployeeStore
	dayCodes  store.DayCodeStore
	logger    *log.Logger
}

func NewDayCodeService(employees store.EmployeeStore, dayCodes store.DayCodeStore, logger *log.Logger) *DayCodeService {
	return &DayCodeService{employees: employees, dayCodes: dayCodes, logger: logger}
}

// Set creates or replaces the day-code entry for (employee, date).
func (s *DayCodeService) Set(ctx context.Context, employeeID, date, upperCode, lowerCode string, totalSeconds int64, notes string) (types.DayCode, error) {
	emp, err := s.employees.ByID(ctx, employeeID)
	if err != nil {
		return types.DayCode{}, err
	}
	if !emp.Active {
		return types.DayCode{}, ErrInactiveEmployee
	}
	if err := checkDate(date); err != nil {
		return types.DayCode{}, err
	}
	if upperCode != "" {
		if _, ok := validUpperCodes[upperCode]; !ok {
			return types.DayCode{}, ErrUnknownDayCode
		}
	}

	rec, err := s.dayCodes.Upsert(ctx, types.DayCode{
		EmployeeID:   emp.ID,
		Date:         date,
		UpperCode:    upperCode,
		LowerCode:    lowerCode,
		TotalSeconds: totalSeconds,
		Notes:        notes,
	})
	if err != nil {
		return types.DayCode{}, err
	}

	s.logger.Printf("day code set: %s %s [%s/%s]", emp.Name, date, upperCode, lowerCode)
	return rec, nil
}

func (s *DayCodeService) Get(ctx context.Context, employeeID, date string) (types.DayCode, bool, error) {
	if err := checkDate(date); err != nil {
		return types.DayCode{}, false, err
	}
	return s.dayCodes.Get(ctx, employeeID, date)
}

func (s *DayCodeService) Range(ctx context.Context, employeeID, fromDate, toDate string) ([]types.DayCode, error) {
	if err := checkDate(fromDate); err != nil {
		return nil, err
	}
	if err := checkDate(toDate); err != nil {
		return nil, err
	}
	return s.dayCodes.Range(ctx, employeeID, fromDate, toDate)
}

func (s *DayCodeService) Clear(ctx context.Context, employeeID, date string) error {
	if err := checkDate(date); err != nil {
		return err
	}
	return s.dayCodes.SoftDelete(ctx, employeeID, date)
}

func checkDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return ErrBadDate
	}
	return nil
}
