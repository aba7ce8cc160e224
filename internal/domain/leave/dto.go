package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	UserID      string `json:"-"`
	RequestType string `json:"request_type" validate:"required,max=100"`
	Reason      string `json:"reason" validate:"required,max=500"`
	Note        string `json:"note" validate:"required,max=250"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
}

// Validate trims input and returns the parsed start and end dates.
func (r *CreateLeaveRequest) Validate() (start, end time.Time, err error) {
	r.RequestType = strings.TrimSpace(r.RequestType)
	r.Reason = strings.TrimSpace(r.Reason)
	r.Note = strings.TrimSpace(r.Note)

	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return time.Time{}, time.Time{}, err
		}
		errs = append(errs, fieldErrs...)
	}

	var startOK, endOK bool
	if r.StartDate != "" {
		if start, startOK = validator.IsValidDate(r.StartDate); !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.EndDate != "" {
		if end, endOK = validator.IsValidDate(r.EndDate); !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start, end, nil
}

type UpdateStatusRequest struct {
	ID        string `json:"-"`
	CompanyID string `json:"-"`
	AdminID   string `json:"-"`
	Status    string `json:"status" validate:"required,oneof=accepted declined"`
}

func (r *UpdateStatusRequest) Validate() error {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	return validator.Struct(r)
}

type LeaveFilter struct {
	Status *string `json:"status,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *LeaveFilter) Validate() error {
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
	if f.Status != nil {
		status := Status(strings.ToLower(*f.Status))
		switch status {
		case StatusPending, StatusAccepted, StatusDeclined:
			s := string(status)
			f.Status = &s
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, accepted, declined",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	UserFullName *string    `json:"user_full_name,omitempty"`
	UserEmail    *string    `json:"user_email,omitempty"`
	RequestType  string     `json:"request_type"`
	Reason       string     `json:"reason"`
	Note         string     `json:"note"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date"`
	Days         int        `json:"days"`
	Status       string     `json:"status"`
	ProcessedBy  *string    `json:"processed_by,omitempty"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func NewLeaveResponse(r Request) LeaveResponse {
	return LeaveResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		UserFullName: r.UserFullName,
		UserEmail:    r.UserEmail,
		RequestType:  r.RequestType,
		Reason:       r.Reason,
		Note:         r.Note,
		StartDate:    r.StartDate.Format("2006-01-02"),
		EndDate:      r.EndDate.Format("2006-01-02"),
		Days:         r.Days(),
		Status:       string(r.Status),
		ProcessedBy:  r.ProcessedBy,
		ProcessedAt:  r.ProcessedAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type ListLeaveResponse struct {
	TotalCount int64
	Page       int
	Limit      int
	Requests   []LeaveResponse
}
