package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/geo"
	"github.com/jackc/pgx/v5"
)

const openSessionConstraint = "uq_attendance_open_session"

type attendanceRepository struct {
	db *database.DB
	// Date filters of companies without a timezone are evaluated here.
	defaultTimezone string
}

func NewAttendanceRepository(db *database.DB, defaultTimezone string) attendance.AttendanceRepository {
	if defaultTimezone == "" {
		defaultTimezone = "UTC"
	}
	return &attendanceRepository{db: db, defaultTimezone: defaultTimezone}
}

const attendanceColumns = `
	a.id, a.user_id, a.company_id,
	a.clock_in_time, a.clock_in_longitude, a.clock_in_latitude,
	a.clock_out_time, a.clock_out_longitude, a.clock_out_latitude,
	a.is_late, a.missed_shift, a.is_early_departure, a.hours_worked,
	a.scheduled_start, a.scheduled_end, a.created_at, a.updated_at`

type attendanceRow struct {
	r         attendance.Record
	outLon    *float64
	outLat    *float64
	withUser  bool
	userName  *string
	userEmail *string
}

func (row *attendanceRow) dest() []any {
	r := &row.r
	d := []any{
		&r.ID, &r.UserID, &r.CompanyID,
		&r.ClockInTime, &r.ClockInLocation.Longitude, &r.ClockInLocation.Latitude,
		&r.ClockOutTime, &row.outLon, &row.outLat,
		&r.IsLate, &r.MissedShift, &r.IsEarlyDeparture, &r.HoursWorked,
		&r.ScheduledStart, &r.ScheduledEnd, &r.CreatedAt, &r.UpdatedAt,
	}
	if row.withUser {
		d = append(d, &row.userName, &row.userEmail)
	}
	return d
}

func (row *attendanceRow) record() attendance.Record {
	r := row.r
	if row.outLon != nil && row.outLat != nil {
		r.ClockOutLocation = &geo.Point{Longitude: *row.outLon, Latitude: *row.outLat}
	}
	r.UserFullName = row.userName
	r.UserEmail = row.userEmail
	return r
}

// Create implements attendance.AttendanceRepository. The insert is skipped
// when an open session exists, and the partial unique index on open sessions
// rejects the loser of two concurrent inserts.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records AS a (
			user_id, company_id, clock_in_time, clock_in_longitude, clock_in_latitude,
			is_late, missed_shift, scheduled_start, scheduled_end
		)
		SELECT $1::uuid, $2::uuid, $3::timestamptz, $4::float8, $5::float8,
			$6::boolean, $7::boolean, $8::timestamptz, $9::timestamptz
		WHERE NOT EXISTS (
			SELECT 1 FROM attendance_records o
			WHERE o.user_id = $1::uuid AND o.clock_out_time IS NULL
		)
		RETURNING ` + attendanceColumns

	var row attendanceRow
	err := q.QueryRow(ctx, query,
		record.UserID,
		record.CompanyID,
		record.ClockInTime,
		record.ClockInLocation.Longitude,
		record.ClockInLocation.Latitude,
		record.IsLate,
		record.MissedShift,
		record.ScheduledStart,
		record.ScheduledEnd,
	).Scan(row.dest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUniqueViolation(err, openSessionConstraint) {
			return attendance.Record{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return row.record(), nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, userID string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.user_id = $1 AND a.clock_out_time IS NULL
		LIMIT 1`

	var row attendanceRow
	if err := q.QueryRow(ctx, query, userID).Scan(row.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrNoOpenSession
		}
		return attendance.Record{}, fmt.Errorf("failed to get open session: %w", err)
	}
	return row.record(), nil
}

// Close implements attendance.AttendanceRepository.
func (a *attendanceRepository) Close(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	if record.ClockOutTime == nil || record.ClockOutLocation == nil {
		return attendance.Record{}, fmt.Errorf("record %s has no clock-out fields", record.ID)
	}

	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records AS a
		SET clock_out_time = $1,
			clock_out_longitude = $2,
			clock_out_latitude = $3,
			is_early_departure = $4,
			hours_worked = $5,
			updated_at = NOW()
		WHERE a.id = $6 AND a.clock_out_time IS NULL
		RETURNING ` + attendanceColumns

	var row attendanceRow
	err := q.QueryRow(ctx, query,
		*record.ClockOutTime,
		record.ClockOutLocation.Longitude,
		record.ClockOutLocation.Latitude,
		record.IsEarlyDeparture,
		record.HoursWorked,
		record.ID,
	).Scan(row.dest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrNoOpenSession
		}
		return attendance.Record{}, fmt.Errorf("failed to close attendance record: %w", err)
	}
	return row.record(), nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `, u.full_name, u.email
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1 AND a.company_id = $2`

	row := attendanceRow{withUser: true}
	if err := q.QueryRow(ctx, query, id, companyID).Scan(row.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return row.record(), nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, companyID string, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	where := []string{"a.company_id = $1"}
	args := []any{companyID}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where = append(where, fmt.Sprintf("a.user_id = $%d", len(args)))
	}
	return a.list(ctx, where, args, filter)
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	return a.list(ctx, []string{"a.user_id = $1"}, []any{userID}, filter)
}

// list applies the date range on the clock-in date as seen in the company
// timezone, newest first.
func (a *attendanceRepository) list(ctx context.Context, where []string, args []any, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	if filter.StartDate != nil || filter.EndDate != nil {
		args = append(args, a.defaultTimezone)
		localDate := fmt.Sprintf("(a.clock_in_time AT TIME ZONE COALESCE(c.timezone, $%d))::date", len(args))

		if filter.StartDate != nil {
			args = append(args, *filter.StartDate)
			where = append(where, fmt.Sprintf("%s >= $%d::date", localDate, len(args)))
		}
		if filter.EndDate != nil {
			args = append(args, *filter.EndDate)
			where = append(where, fmt.Sprintf("%s <= $%d::date", localDate, len(args)))
		}
	}

	from := `
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		JOIN companies c ON c.id = a.company_id
		WHERE ` + strings.Join(where, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*)`+from, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `SELECT ` + attendanceColumns + `, u.full_name, u.email` + from +
		fmt.Sprintf(" ORDER BY a.clock_in_time DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		row := attendanceRow{withUser: true}
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, row.record())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
