package report

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

type ReportRepository interface {
	DashboardStats(ctx context.Context, companyID string) (DashboardStats, error)
	// AttendanceByUser aggregates the records clocked in within [from, to) for
	// every employee of the company. Days present are counted per calendar
	// day in timezone.
	AttendanceByUser(ctx context.Context, companyID, timezone string, from, to time.Time) ([]UserAttendance, error)
}
