package report

import (
	"math"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/schedule"
)

type DashboardStats struct {
	TotalUsers           int64
	TotalPendingRequests int64
	TotalClockIns        int64
	TotalMissedShifts    int64
}

// UserAttendance is the raw per-user aggregate over a period.
type UserAttendance struct {
	UserID          string
	FullName        string
	Email           string
	Role            string
	WorkDays        []schedule.WorkDay
	DaysPresent     int
	MissedShifts    int
	LateEntries     int
	EarlyDepartures int
	HoursWorked     float64
}

// Period is an inclusive range of calendar days in a company's timezone.
type Period struct {
	Start time.Time
	End   time.Time
}

// WeekOf returns Monday..Sunday of the week containing t, in t's location.
func WeekOf(t time.Time) Period {
	offset := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	return Period{Start: monday, End: monday.AddDate(0, 0, 6)}
}

// Bounds returns the half-open instant range [from, to) covering the period.
func (p Period) Bounds() (from, to time.Time) {
	return p.Start, p.End.AddDate(0, 0, 1)
}

// ScheduledDays counts the dates in the period that fall on one of the work days.
func (p Period) ScheduledDays(workDays []schedule.WorkDay) int {
	if len(workDays) == 0 {
		return 0
	}
	scheduled := make(map[time.Weekday]bool, len(workDays))
	for _, wd := range workDays {
		scheduled[wd.Day] = true
	}

	count := 0
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		if scheduled[d.Weekday()] {
			count++
		}
	}
	return count
}

// Percentage is present over scheduled days, capped at 100 and rounded to
// two decimals. Zero scheduled days yield zero.
func Percentage(present, scheduled int) float64 {
	if scheduled <= 0 {
		return 0
	}
	pct := float64(present) / float64(scheduled) * 100
	if pct > 100 {
		pct = 100
	}
	return math.Round(pct*100) / 100
}
