package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stempeluhr/timeclock/internal/timeclock/store"
	sqlitestore "github.com/stempeluhr/timeclock/internal/timeclock/store/sqlite"
	"github.com/stempeluhr/timeclock/internal/timeclock/types"
)

// ═══════════════════════════════════════════════════════════════════════════
// Upsert — insert then update on the same date
// ═══════════════════════════════════════════════════════════════════════════

func TestDayCodeStore_Upsert_InsertThenUpdate(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	seedEmployee(t, conn, "emp-1", "TAG00001")
	ds := sqlitestore.NewDayCodeStore(conn, w)

	rec, err := ds.Upsert(context.Background(), types.DayCode{
		EmployeeID:   "emp-1",
		Date:         "2026-03-02",
		UpperCode:    "A",
		TotalSeconds: 28800,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if rec.ID == 0 || rec.UpperCode != "A" || rec.TotalSeconds != 28800 {
		t.Errorf("unexpected record: %+v", rec)
	}

	// Second write for the same day replaces, it does not duplicate.
	rec2, err := ds.Upsert(context.Background(), types.DayCode{
		EmployeeID:   "emp-1",
		Date:         "2026-03-02",
		UpperCode:    "K",
		LowerCode:    "08:00",
		TotalSeconds: 0,
	})
	if err != nil {
		t.Fatalf("Upsert update: %v", err)
	}
	if rec2.ID != rec.ID {
		t.Errorf("upsert created a new row: %d vs %d", rec2.ID, rec.ID)
	}
	if rec2.UpperCode != "K" || rec2.LowerCode != "08:00" || rec2.TotalSeconds != 0 {
		t.Errorf("update not applied: %+v", rec2)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Range / SoftDelete
// ═══════════════════════════════════════════════════════════════════════════

func TestDayCodeStore_Range_OrderedAndBounded(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	seedEmployee(t, conn, "emp-1", "TAG00001")
	ds := sqlitestore.NewDayCodeStore(conn, w)

	for _, date := range []string{"2026-03-05", "2026-03-01", "2026-03-03"} {
		if _, err := ds.Upsert(context.Background(), types.DayCode{
			EmployeeID: "emp-1", Date: date, UpperCode: "A",
		}); err != nil {
			t.Fatalf("Upsert %s: %v", date, err)
		}
	}

	recs, err := ds.Range(context.Background(), "emp-1", "2026-03-01", "2026-03-03")
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Date != "2026-03-01" || recs[1].Date != "2026-03-03" {
		t.Errorf("not ascending by date: %+v", recs)
	}
}

func TestDayCodeStore_SoftDelete(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	seedEmployee(t, conn, "emp-1", "TAG00001")
	ds := sqlitestore.NewDayCodeStore(conn, w)

	if _, err := ds.Upsert(context.Background(), types.DayCode{
		EmployeeID: "emp-1", Date: "2026-03-02", UpperCode: "U",
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := ds.SoftDelete(context.Background(), "emp-1", "2026-03-02"); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if _, ok, err := ds.Get(context.Background(), "emp-1", "2026-03-02"); err != nil || ok {
		t.Fatalf("deleted record still visible: ok=%v err=%v", ok, err)
	}

	err := ds.SoftDelete(context.Background(), "emp-1", "2026-03-02")
	if !errors.Is(err, store.ErrDayCodeNotFound) {
		t.Fatalf("expected ErrDayCodeNotFound on repeat delete, got %v", err)
	}

	// Upsert after delete resurrects the row.
	rec, err := ds.Upsert(context.Background(), types.DayCode{
		EmployeeID: "emp-1", Date: "2026-03-02", UpperCode: "F",
	})
	if err != nil {
		t.Fatalf("Upsert after delete: %v", err)
	}
	if !rec.Active || rec.UpperCode != "F" {
		t.Errorf("resurrected record wrong: %+v", rec)
	}
}
