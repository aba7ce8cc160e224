package attendance

import (
	"context"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

// AttendanceRepository stores clock records. Implementations must keep at
// most one open record per user even under concurrent writers.
type AttendanceRepository interface {
	// Create inserts an open record. It returns ErrAlreadyClockedIn when the
	// user already has one.
	Create(ctx context.Context, record Record) (Record, error)

	// GetOpenSession returns ErrNoOpenSession when the user has none.
	GetOpenSession(ctx context.Context, userID string) (Record, error)

	// Close persists the clock-out fields of an open record in a single
	// conditional write. It returns ErrNoOpenSession if the record was
	// closed in the meantime.
	Close(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Record, error)

	List(ctx context.Context, companyID string, filter AttendanceFilter) ([]Record, int64, error)
	ListByUser(ctx context.Context, userID string, filter AttendanceFilter) ([]Record, int64, error)
}
