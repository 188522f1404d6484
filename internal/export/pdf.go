package export

import (
	"fmt"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/stempeluhr/timeclock/internal/timeclock/report"
)

// WriteReportPDF writes the report as a single-page-per-overflow PDF into
// dir and returns the file path.
func WriteReportPDF(dir string, rep report.Report) (string, error) {
	path := filepath.Join(dir, Filename(rep.Employee.Name, rep.From, rep.To, "pdf"))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Working Time Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s", rep.Employee.Name))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Badge: %s", rep.Employee.BadgeTag))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s",
		rep.From.Format("2006-01-02"), rep.To.Format("2006-01-02")))
	pdf.Ln(10)

	// Session table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(35, 7, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Clock In", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Clock Out", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Duration", "1", 1, "", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, sess := range rep.Sessions {
		pdf.CellFormat(35, 6, sess.Date(), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 6, sess.Start.Format("15:04:05"), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 6, sess.End.Format("15:04:05"), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 6, report.FormatHMS(sess.Seconds()), "1", 1, "", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Summary")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total: %s", report.FormatHMS(rep.Summary.TotalSeconds)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Days Worked: %d", rep.Summary.DaysWorked))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average per Day: %s",
		report.FormatHMS(rep.Summary.AverageSecondsPerDay())))

	if len(rep.DayCodes) > 0 {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, "Day Codes")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 10)
		for _, dc := range rep.DayCodes {
			pdf.Cell(0, 5, fmt.Sprintf("%s  [%s/%s]  %s",
				dc.Date, dc.UpperCode, dc.LowerCode, report.FormatHMS(dc.TotalSeconds)))
			pdf.Ln(5)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return path, nil
}
