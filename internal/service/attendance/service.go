package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/config"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/lock"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	user.UserRepository
	company.CompanyRepository
	locker          lock.Locker
	cfg             config.AttendanceConfig
	defaultLocation *time.Location
	now             func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	companyRepo company.CompanyRepository,
	locker lock.Locker,
	cfg config.AttendanceConfig,
	defaultLocation *time.Location,
) attendance.AttendanceService {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		CompanyRepository:    companyRepo,
		locker:               locker,
		cfg:                  cfg,
		defaultLocation:      defaultLocation,
		now:                  time.Now,
	}
}

// clockContext is everything a clock event is validated against.
type clockContext struct {
	user    user.User
	company company.Company
	point   geo.Point
	check   geo.Check
	loc     *time.Location
}

// prepare validates the position and the geofence. Nothing is written.
func (a *AttendanceServiceImpl) prepare(ctx context.Context, userID string, point geo.Point) (clockContext, error) {
	if err := point.Validate(); err != nil {
		return clockContext{}, err
	}

	u, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return clockContext{}, user.ErrUserNotFound
		}
		return clockContext{}, fmt.Errorf("failed to get user: %w", err)
	}
	if u.CompanyID == nil || *u.CompanyID == "" {
		return clockContext{}, company.ErrCompanyNotFound
	}

	c, err := a.CompanyRepository.GetByID(ctx, *u.CompanyID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return clockContext{}, company.ErrCompanyNotFound
		}
		return clockContext{}, fmt.Errorf("failed to get company: %w", err)
	}

	zone, err := c.Zone(a.cfg.DefaultRadiusMeters)
	if err != nil {
		return clockContext{}, err
	}

	check, err := geo.ValidateWithinZone(point, zone)
	if err != nil {
		return clockContext{}, err
	}
	if !check.WithinZone {
		slog.Info("Clock event rejected outside zone",
			"user_id", userID,
			"company_id", c.ID,
			"distance_meters", check.RoundedDistance(),
			"radius_meters", zone.RadiusMeters,
		)
		return clockContext{}, &attendance.OutOfZoneError{
			DistanceMeters: check.DistanceMeters,
			RadiusMeters:   zone.RadiusMeters,
		}
	}

	return clockContext{
		user:    u,
		company: c,
		point:   point,
		check:   check,
		loc:     c.Location(a.defaultLocation),
	}, nil
}

// acquire serialises clock events of one user.
func (a *AttendanceServiceImpl) acquire(ctx context.Context, userID string) (func(), error) {
	wait := a.cfg.LockWait
	if wait <= 0 {
		wait = 5 * time.Second
	}
	lockCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	release, err := a.locker.Lock(lockCtx, "attendance:"+userID)
	if err != nil {
		// The caller went away; that is not contention.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, attendance.ErrClockInProgress
		}
		return nil, fmt.Errorf("failed to acquire clock lock: %w", err)
	}
	return release, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.ClockEventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockEventResponse{}, err
	}

	cc, err := a.prepare(ctx, req.UserID, req.Point())
	if err != nil {
		return attendance.ClockEventResponse{}, err
	}

	release, err := a.acquire(ctx, req.UserID)
	if err != nil {
		return attendance.ClockEventResponse{}, err
	}
	defer release()

	_, err = a.AttendanceRepository.GetOpenSession(ctx, req.UserID)
	switch {
	case err == nil:
		return attendance.ClockEventResponse{}, attendance.ErrAlreadyClockedIn
	case !errors.Is(err, attendance.ErrNoOpenSession):
		return attendance.ClockEventResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}

	nowLocal := a.now().In(cc.loc)
	window, err := schedule.ResolveTodayShift(cc.user.WorkDays, nowLocal)
	if err != nil {
		if errors.Is(err, schedule.ErrNotScheduled) {
			return attendance.ClockEventResponse{}, attendance.ErrNotScheduledToday
		}
		return attendance.ClockEventResponse{}, err
	}

	record := attendance.NewRecord(cc.user.ID, cc.company.ID, nowLocal, cc.point, window)
	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyClockedIn) {
			return attendance.ClockEventResponse{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.ClockEventResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	slog.Info("User clocked in",
		"user_id", created.UserID,
		"attendance_id", created.ID,
		"is_late", created.IsLate,
		"missed_shift", created.MissedShift,
		"distance_meters", cc.check.RoundedDistance(),
	)

	return attendance.NewClockInResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.ClockEventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockEventResponse{}, err
	}

	cc, err := a.prepare(ctx, req.UserID, req.Point())
	if err != nil {
		return attendance.ClockEventResponse{}, err
	}

	release, err := a.acquire(ctx, req.UserID)
	if err != nil {
		return attendance.ClockEventResponse{}, err
	}
	defer release()

	open, err := a.AttendanceRepository.GetOpenSession(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, attendance.ErrNoOpenSession) {
			return attendance.ClockEventResponse{}, attendance.ErrNoOpenSession
		}
		return attendance.ClockEventResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}

	if err := open.Close(a.now().In(cc.loc), cc.point); err != nil {
		return attendance.ClockEventResponse{}, err
	}

	closed, err := a.AttendanceRepository.Close(ctx, open)
	if err != nil {
		if errors.Is(err, attendance.ErrNoOpenSession) {
			return attendance.ClockEventResponse{}, attendance.ErrNoOpenSession
		}
		return attendance.ClockEventResponse{}, fmt.Errorf("failed to close attendance record: %w", err)
	}

	slog.Info("User clocked out",
		"user_id", closed.UserID,
		"attendance_id", closed.ID,
		"is_early_departure", closed.IsEarlyDeparture,
		"hours_worked", closed.HoursWorked,
	)

	return attendance.NewClockOutResponse(closed), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, userID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get my attendance: %w", err)
	}

	return newListResponse(records, total, filter), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, companyID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.List(ctx, companyID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	return newListResponse(records, total, filter), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, companyID, id string) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return attendance.NewAttendanceResponse(record), nil
}

func newListResponse(records []attendance.Record, total int64, filter attendance.AttendanceFilter) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceResponse(r))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Attendances: responses,
	}
}
