package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RenderText produces the human-readable report shown on the admin screen.
func RenderText(rep Report) string {
	var b strings.Builder

	b.WriteString("WORKING TIME REPORT\n")
	fmt.Fprintf(&b, "Name: %s\n", rep.Employee.Name)
	fmt.Fprintf(&b, "Period: %s to %s\n\n",
		rep.From.Format("2006-01-02"), rep.To.Format("2006-01-02"))

	if len(rep.Sessions) == 0 {
		b.WriteString("No time entries found for this period.\n")
		return b.String()
	}

	sep := strings.Repeat("-", 56)
	b.WriteString(sep + "\n")
	fmt.Fprintf(&b, "%-12s %-10s %-10s %-10s\n", "Date", "Clock In", "Clock Out", "Duration")
	b.WriteString(sep + "\n")
	for _, sess := range rep.Sessions {
		fmt.Fprintf(&b, "%-12s %-10s %-10s %-10s\n",
			sess.Date(),
			sess.Start.Format("15:04:05"),
			sess.End.Format("15:04:05"),
			FormatHMS(sess.Seconds()))
	}
	b.WriteString(sep + "\n\n")

	b.WriteString("SUMMARY\n")
	fmt.Fprintf(&b, "Total Hours Worked: %s\n", FormatHMS(rep.Summary.TotalSeconds))
	fmt.Fprintf(&b, "Days Worked: %d\n", rep.Summary.DaysWorked)
	fmt.Fprintf(&b, "Average per Day: %s\n", FormatHMS(rep.Summary.AverageSecondsPerDay()))
	if rep.OpenSessions > 0 {
		fmt.Fprintf(&b, "Open Sessions: %d\n", rep.OpenSessions)
	}

	return b.String()
}

// RenderCSV writes the report in the layout the export pipeline ships to HR.
func RenderCSV(w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"Working Time Report"},
		{"Employee:", rep.Employee.Name},
		{"Badge:", rep.Employee.BadgeTag},
		{"Period:", rep.From.Format("2006-01-02") + " to " + rep.To.Format("2006-01-02")},
		{},
		{"Date", "Clock In", "Clock Out", "Duration"},
	}
	for _, sess := range rep.Sessions {
		rows = append(rows, []string{
			sess.Date(),
			sess.Start.Format("15:04:05"),
			sess.End.Format("15:04:05"),
			FormatHMS(sess.Seconds()),
		})
	}

	rows = append(rows,
		[]string{},
		[]string{"Summary"},
		[]string{"Total:", FormatHMS(rep.Summary.TotalSeconds)},
		[]string{"Days Worked:", strconv.Itoa(rep.Summary.DaysWorked)},
		[]string{"Average per Day:", FormatHMS(rep.Summary.AverageSecondsPerDay())},
	)

	if len(rep.DayCodes) > 0 {
		rows = append(rows, []string{}, []string{"Day Codes"},
			[]string{"Date", "Upper", "Lower", "Seconds", "Notes"})
		for _, dc := range rep.DayCodes {
			rows = append(rows, []string{
				dc.Date, dc.UpperCode, dc.LowerCode,
				strconv.FormatInt(dc.TotalSeconds, 10), dc.Notes,
			})
		}
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
