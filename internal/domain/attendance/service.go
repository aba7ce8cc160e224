package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn validates position, zone and schedule, then opens a session.
	ClockIn(ctx context.Context, req ClockInRequest) (ClockEventResponse, error)

	// ClockOut closes the open session of the user.
	ClockOut(ctx context.Context, req ClockOutRequest) (ClockEventResponse, error)

	// GetMyAttendance retrieves records of the authenticated user
	GetMyAttendance(ctx context.Context, userID string, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves records of a company (admin)
	ListAttendance(ctx context.Context, companyID string, filter AttendanceFilter) (ListAttendanceResponse, error)

	GetAttendance(ctx context.Context, companyID, id string) (AttendanceResponse, error)
}
