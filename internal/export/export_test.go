package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stempeluhr/timeclock/internal/timeclock/report"
	"github.com/stempeluhr/timeclock/internal/timeclock/types"
)

func TestFilename(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	got := Filename("Ada Lovelace", from, to, "csv")
	want := "WT_Report_Ada_Lovelace_20260301_20260331.csv"
	if got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}

func TestSafeName_StripsUnsafeRunes(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Ada Lovelace", "Ada_Lovelace"},
		{"K. O'Brien / Jr.", "K_OBrien__Jr"},
		{"../../etc/passwd", "etcpasswd"},
	}
	for _, tc := range cases {
		if got := safeName(tc.in); got != tc.want {
			t.Errorf("safeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDirectory_OverrideCreated(t *testing.T) {
	target := filepath.Join(t.TempDir(), "exports", "nested")

	got, err := Directory(target)
	if err != nil {
		t.Fatalf("Directory: %v", err)
	}
	if got != target {
		t.Errorf("Directory = %q, want %q", got, target)
	}
	if fi, err := os.Stat(got); err != nil || !fi.IsDir() {
		t.Errorf("export dir not created: %v", err)
	}
}

func TestWriteReportCSV(t *testing.T) {
	dir := t.TempDir()
	rep := report.Report{
		Employee: types.Employee{Name: "Ada"},
		From:     time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Sessions: []report.Session{{
			Start: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		}},
	}
	rep.Summary = report.Summarize(rep.Sessions)

	path, err := WriteReportCSV(dir, rep)
	if err != nil {
		t.Fatalf("WriteReportCSV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, "04:00:00") {
		t.Errorf("csv missing session duration:\n%s", body)
	}
}
