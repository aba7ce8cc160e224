package report

import (
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/validator"
)

type DashboardStatsResponse struct {
	TotalUsers           int64 `json:"total_users"`
	TotalPendingRequests int64 `json:"total_pending_requests"`
	TotalClockIns        int64 `json:"total_clock_ins"`
	TotalMissedShifts    int64 `json:"total_missed_shifts"`
}

func NewDashboardStatsResponse(s DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse(s)
}

type SummaryFilter struct {
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

// Period resolves the filter in loc. Missing bounds default to the current
// week (Monday..Sunday) of now.
func (f *SummaryFilter) Period(now time.Time, loc *time.Location) (Period, error) {
	var errs validator.ValidationErrors
	week := WeekOf(now.In(loc))
	period := week

	if f.StartDate != nil && *f.StartDate != "" {
		d, ok := validator.IsValidDate(*f.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
		period.Start = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	}
	if f.EndDate != nil && *f.EndDate != "" {
		d, ok := validator.IsValidDate(*f.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
		period.End = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	}
	if len(errs) > 0 {
		return Period{}, errs
	}

	if period.End.Before(period.Start) {
		return Period{}, validator.ValidationErrors{{
			Field:   "end_date",
			Message: ErrInvalidDateRange.Error(),
		}}
	}
	if period.End.Sub(period.Start) > 366*24*time.Hour {
		return Period{}, validator.ValidationErrors{{
			Field:   "end_date",
			Message: ErrRangeTooLong.Error(),
		}}
	}
	return period, nil
}

type AttendanceSummary struct {
	UserID               string  `json:"user_id"`
	FullName             string  `json:"full_name"`
	Email                string  `json:"email"`
	Role                 string  `json:"role"`
	ScheduledDays        int     `json:"scheduled_days"`
	DaysPresent          int     `json:"days_present"`
	MissedShifts         int     `json:"missed_shifts"`
	LateEntries          int     `json:"late_entries"`
	EarlyDepartures      int     `json:"early_departures"`
	HoursWorked          float64 `json:"hours_worked"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

func NewAttendanceSummary(u UserAttendance, p Period) AttendanceSummary {
	scheduled := p.ScheduledDays(u.WorkDays)
	return AttendanceSummary{
		UserID:               u.UserID,
		FullName:             u.FullName,
		Email:                u.Email,
		Role:                 u.Role,
		ScheduledDays:        scheduled,
		DaysPresent:          u.DaysPresent,
		MissedShifts:         u.MissedShifts,
		LateEntries:          u.LateEntries,
		EarlyDepartures:      u.EarlyDepartures,
		HoursWorked:          u.HoursWorked,
		AttendancePercentage: Percentage(u.DaysPresent, scheduled),
	}
}

type AttendanceSummaryResponse struct {
	StartDate   string              `json:"start_date"`
	EndDate     string              `json:"end_date"`
	Timezone    string              `json:"timezone"`
	GeneratedAt time.Time           `json:"generated_at"`
	Users       []AttendanceSummary `json:"users"`
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
