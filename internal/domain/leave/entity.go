package leave

import (
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Request is a leave or time-off request raised by an employee.
type Request struct {
	ID          string
	UserID      string
	CompanyID   string
	RequestType string
	Reason      string
	Note        string

	// Calendar dates, stored at midnight UTC and inclusive on both ends.
	StartDate time.Time
	EndDate   time.Time

	Status      Status
	ProcessedBy *string
	ProcessedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	UserFullName *string
	UserEmail    *string
}

// Overlaps reports whether [start, end] shares at least one day with the request.
func (r *Request) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}

// Blocking reports whether the request still reserves its dates. Declined
// requests free them.
func (r *Request) Blocking() bool {
	return r.Status != StatusDeclined
}

// Decide moves a pending request to accepted or declined.
func (r *Request) Decide(status Status, adminID string, now time.Time) error {
	if status != StatusAccepted && status != StatusDeclined {
		return ErrInvalidStatus
	}
	if r.Status != StatusPending {
		return ErrLeaveRequestAlreadyProcessed
	}
	r.Status = status
	r.ProcessedBy = &adminID
	r.ProcessedAt = &now
	return nil
}

// Days is the inclusive number of calendar days covered.
func (r *Request) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}
