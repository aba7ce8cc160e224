package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/validator"
)

// ClockInRequest is the body of a clock-in call. UserID comes from the token.
type ClockInRequest struct {
	UserID    string   `json:"-"`
	Longitude *float64 `json:"longitude" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"required"`
}

func (r *ClockInRequest) Validate() error {
	return validator.Struct(r)
}

// Point returns the position without range checks.
func (r *ClockInRequest) Point() geo.Point {
	return pointOf(r.Longitude, r.Latitude)
}

type ClockOutRequest struct {
	UserID    string   `json:"-"`
	Longitude *float64 `json:"longitude" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"required"`
}

func (r *ClockOutRequest) Validate() error {
	return validator.Struct(r)
}

func (r *ClockOutRequest) Point() geo.Point {
	return pointOf(r.Longitude, r.Latitude)
}

func pointOf(lon, lat *float64) geo.Point {
	var p geo.Point
	if lon != nil {
		p.Longitude = *lon
	}
	if lat != nil {
		p.Latitude = *lat
	}
	return p
}

type AttendanceResponse struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	UserFullName     *string    `json:"user_full_name,omitempty"`
	UserEmail        *string    `json:"user_email,omitempty"`
	CompanyID        string     `json:"company_id"`
	ClockInTime      time.Time  `json:"clock_in_time"`
	ClockInLocation  geo.Point  `json:"clock_in_location"`
	ClockOutTime     *time.Time `json:"clock_out_time"`
	ClockOutLocation *geo.Point `json:"clock_out_location"`
	IsLate           bool       `json:"is_late"`
	MissedShift      bool       `json:"missed_shift"`
	IsEarlyDeparture bool       `json:"is_early_departure"`
	HoursWorked      *float64   `json:"hours_worked"`
	ScheduledStart   time.Time  `json:"scheduled_start"`
	ScheduledEnd     time.Time  `json:"scheduled_end"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func NewAttendanceResponse(r Record) AttendanceResponse {
	return AttendanceResponse{
		ID:               r.ID,
		UserID:           r.UserID,
		UserFullName:     r.UserFullName,
		UserEmail:        r.UserEmail,
		CompanyID:        r.CompanyID,
		ClockInTime:      r.ClockInTime,
		ClockInLocation:  r.ClockInLocation,
		ClockOutTime:     r.ClockOutTime,
		ClockOutLocation: r.ClockOutLocation,
		IsLate:           r.IsLate,
		MissedShift:      r.MissedShift,
		IsEarlyDeparture: r.IsEarlyDeparture,
		HoursWorked:      r.HoursWorked,
		ScheduledStart:   r.ScheduledStart,
		ScheduledEnd:     r.ScheduledEnd,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// ClockEventResponse pairs the record with the human readable outcome.
type ClockEventResponse struct {
	Message string
	Record  AttendanceResponse
}

// eventMessage joins the base message and an optional qualifier.
func eventMessage(base, qualifier string) string {
	return strings.TrimSpace(base + " " + qualifier)
}

func NewClockInResponse(r Record) ClockEventResponse {
	return ClockEventResponse{
		Message: eventMessage("Clocked in successfully", r.ClockInQualifier()),
		Record:  NewAttendanceResponse(r),
	}
}

func NewClockOutResponse(r Record) ClockEventResponse {
	return ClockEventResponse{
		Message: eventMessage("Clocked out successfully", r.ClockOutQualifier()),
		Record:  NewAttendanceResponse(r),
	}
}

type AttendanceFilter struct {
	UserID    *string `json:"user_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.UserID != nil && !validator.IsValidUUID(*f.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id must be a valid UUID",
		})
	}

	var start, end time.Time
	if f.StartDate != nil {
		d, ok := validator.IsValidDate(*f.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
		start = d
	}
	if f.EndDate != nil {
		d, ok := validator.IsValidDate(*f.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
		end = d
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListAttendanceResponse is one page of attendance records.
type ListAttendanceResponse struct {
	TotalCount  int64
	Page        int
	Limit       int
	Attendances []AttendanceResponse
}
