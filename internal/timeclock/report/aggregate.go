package report

import "fmt"

// Summary holds the aggregate figures for a set of sessions.  Durations are
// integer seconds throughout; nothing is rounded until formatting.
type Summary struct {
	TotalSeconds int64
	DaysWorked   int
}

// AverageSecondsPerDay rounds to the nearest second.  Rounding happens here,
// at presentation time, so multi-day sums never accumulate rounding error.
func (s Summary) AverageSecondsPerDay() int64 {
	if s.DaysWorked == 0 {
		return 0
	}
	d := int64(s.DaysWorked)
	return (s.TotalSeconds + d/2) / d
}

func Summarize(sessions []Session) Summary {
	var total int64
	days := make(map[string]struct{})
	for _, sess := range sessions {
		total += sess.Seconds()
		days[sess.Date()] = struct{}{}
	}
	return Summary{TotalSeconds: total, DaysWorked: len(days)}
}

type DayTotal struct {
	Date    string // YYYY-MM-DD
	Seconds int64
}

// DailyTotals sums session durations per attributed date, ordered by date.
// Sessions arrive chronologically, so insertion order is already sorted.
func DailyTotals(sessions []Session) []DayTotal {
	var out []DayTotal
	idx := make(map[string]int)
	for _, sess := range sessions {
		d := sess.Date()
		if i, ok := idx[d]; ok {
			out[i].Seconds += sess.Seconds()
			continue
		}
		idx[d] = len(out)
		out = append(out, DayTotal{Date: d, Seconds: sess.Seconds()})
	}
	return out
}

type MonthTotal struct {
	Month   string // YYYY-MM
	Seconds int64
}

func MonthlyTotals(sessions []Session) []MonthTotal {
	var out []MonthTotal
	idx := make(map[string]int)
	for _, sess := range sessions {
		m := sess.Start.Format("2006-01")
		if i, ok := idx[m]; ok {
			out[i].Seconds += sess.Seconds()
			continue
		}
		idx[m] = len(out)
		out = append(out, MonthTotal{Month: m, Seconds: sess.Seconds()})
	}
	return out
}

// FormatHMS renders a duration as HH:MM:SS using integer division.  Hours
// are not capped at 24; 90 minutes renders as "01:30:00".
func FormatHMS(totalSeconds int64) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
