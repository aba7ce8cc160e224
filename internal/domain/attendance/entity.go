package attendance

import (
	"math"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/geo"
)

// Record is one clock-in/clock-out pair. A record with no clock-out time is
// the user's open session.
type Record struct {
	ID               string
	UserID           string
	CompanyID        string
	ClockInTime      time.Time
	ClockInLocation  geo.Point
	ClockOutTime     *time.Time
	ClockOutLocation *geo.Point
	IsLate           bool
	MissedShift      bool
	IsEarlyDeparture bool
	HoursWorked      *float64
	ScheduledStart   time.Time
	ScheduledEnd     time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Join
	UserFullName *string
	UserEmail    *string
}

// NewRecord opens a session at now against the shift window of the day.
func NewRecord(userID, companyID string, now time.Time, at geo.Point, window schedule.ShiftWindow) Record {
	return Record{
		UserID:          userID,
		CompanyID:       companyID,
		ClockInTime:     now,
		ClockInLocation: at,
		IsLate:          now.After(window.Start),
		MissedShift:     now.After(window.End),
		ScheduledStart:  window.Start,
		ScheduledEnd:    window.End,
	}
}

func (r *Record) IsOpen() bool {
	return r.ClockOutTime == nil
}

// Close sets the clock-out fields and the derived departure flags. It
// returns ErrNoOpenSession when the record was already closed.
func (r *Record) Close(now time.Time, at geo.Point) error {
	if !r.IsOpen() {
		return ErrNoOpenSession
	}

	hours := RoundHours(now.Sub(r.ClockInTime))
	loc := at
	r.ClockOutTime = &now
	r.ClockOutLocation = &loc
	r.IsEarlyDeparture = now.Before(r.ScheduledEnd)
	r.HoursWorked = &hours
	return nil
}

// ClockInQualifier is "(Missed shift)" or "(Late arrival)". Missed wins.
func (r *Record) ClockInQualifier() string {
	switch {
	case r.MissedShift:
		return QualifierMissedShift
	case r.IsLate:
		return QualifierLateArrival
	default:
		return ""
	}
}

func (r *Record) ClockOutQualifier() string {
	if r.IsEarlyDeparture {
		return QualifierEarlyDeparture
	}
	return ""
}

const (
	QualifierLateArrival    = "(Late arrival)"
	QualifierMissedShift    = "(Missed shift)"
	QualifierEarlyDeparture = "(Early departure)"
)

// RoundHours converts d to hours rounded to two decimals.
func RoundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
