package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// DashboardStats implements report.ReportRepository.
func (r *reportRepositoryImpl) DashboardStats(ctx context.Context, companyID string) (report.DashboardStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE company_id = $1 AND role = $2),
			(SELECT COUNT(*) FROM leave_requests WHERE company_id = $1 AND status = 'pending'),
			(SELECT COUNT(*) FROM attendance_records WHERE company_id = $1),
			(SELECT COUNT(*) FROM attendance_records WHERE company_id = $1 AND missed_shift)`

	var stats report.DashboardStats
	err := q.QueryRow(ctx, query, companyID, user.RoleUser).Scan(
		&stats.TotalUsers,
		&stats.TotalPendingRequests,
		&stats.TotalClockIns,
		&stats.TotalMissedShifts,
	)
	if err != nil {
		return report.DashboardStats{}, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return stats, nil
}

// AttendanceByUser implements report.ReportRepository. Users without records
// in the range are returned with zero counters.
func (r *reportRepositoryImpl) AttendanceByUser(ctx context.Context, companyID, timezone string, from, to time.Time) ([]report.UserAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			u.id, u.full_name, u.email, u.role, u.work_days,
			COUNT(DISTINCT (a.clock_in_time AT TIME ZONE $2)::date),
			COUNT(a.id) FILTER (WHERE a.missed_shift),
			COUNT(a.id) FILTER (WHERE a.is_late),
			COUNT(a.id) FILTER (WHERE a.is_early_departure),
			COALESCE(SUM(a.hours_worked), 0)::float8
		FROM users u
		LEFT JOIN attendance_records a
			ON a.user_id = u.id
			AND a.company_id = u.company_id
			AND a.clock_in_time >= $3
			AND a.clock_in_time < $4
		WHERE u.company_id = $1
		GROUP BY u.id
		ORDER BY u.full_name, u.email`

	rows, err := q.Query(ctx, query, companyID, timezone, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate attendance: %w", err)
	}
	defer rows.Close()

	var result []report.UserAttendance
	for rows.Next() {
		var (
			ua       report.UserAttendance
			workDays []byte
		)
		if err := rows.Scan(
			&ua.UserID, &ua.FullName, &ua.Email, &ua.Role, &workDays,
			&ua.DaysPresent, &ua.MissedShifts, &ua.LateEntries, &ua.EarlyDepartures,
			&ua.HoursWorked,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance aggregate: %w", err)
		}
		if len(workDays) > 0 {
			if err := json.Unmarshal(workDays, &ua.WorkDays); err != nil {
				return nil, fmt.Errorf("failed to decode work days of user %s: %w", ua.UserID, err)
			}
		}
		result = append(result, ua)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
