package attendance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/config"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/attendance"
	attendancemocks "github.com/cmlabs-hris/geoshift-backend-go/internal/domain/attendance/mocks"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/company"
	companymocks "github.com/cmlabs-hris/geoshift-backend-go/internal/domain/company/mocks"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/user"
	usermocks "github.com/cmlabs-hris/geoshift-backend-go/internal/domain/user/mocks"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testUserID    = "11111111-1111-1111-1111-111111111111"
	testCompanyID = "22222222-2222-2222-2222-222222222222"
)

// 2024-06-03 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2024, 6, 3, hour, minute, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func testCompany() company.Company {
	return company.Company{
		ID:           testCompanyID,
		AdminID:      "admin-1",
		Name:         "Acme",
		Longitude:    ptr(0.0),
		Latitude:     ptr(0.0),
		RadiusMeters: ptr(20.0),
		Timezone:     ptr("UTC"),
	}
}

func testUser(t *testing.T) user.User {
	t.Helper()
	wd, err := schedule.NewWorkDay("Monday", "09:00", "17:00")
	require.NoError(t, err)
	return user.User{
		ID:        testUserID,
		CompanyID: ptr(testCompanyID),
		Email:     "ada@example.com",
		FullName:  "Ada",
		Role:      user.RoleUser,
		WorkDays:  []schedule.WorkDay{wd},
	}
}

type fixture struct {
	svc     *AttendanceServiceImpl
	repo    *memoryAttendanceRepository
	users   *usermocks.MockUserRepository
	company *companymocks.MockCompanyRepository
	clock   *time.Time
}

func newFixture(t *testing.T, u user.User, c company.Company, locker lock.Locker) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	users := usermocks.NewMockUserRepository(ctrl)
	companies := companymocks.NewMockCompanyRepository(ctrl)
	users.EXPECT().GetByID(gomock.Any(), u.ID).Return(u, nil).AnyTimes()
	companies.EXPECT().GetByID(gomock.Any(), c.ID).Return(c, nil).AnyTimes()

	repo := &memoryAttendanceRepository{}
	f := &fixture{repo: repo, users: users, company: companies}
	f.svc = newService(repo, users, companies, locker)

	now := monday(9, 0)
	f.clock = &now
	f.svc.now = func() time.Time { return *f.clock }
	return f
}

func newService(repo attendance.AttendanceRepository, users user.UserRepository, companies company.CompanyRepository, locker lock.Locker) *AttendanceServiceImpl {
	return NewAttendanceService(repo, users, companies, locker, config.AttendanceConfig{
		DefaultRadiusMeters: geo.DefaultRadiusMeters,
		LockWait:            time.Second,
	}, time.UTC).(*AttendanceServiceImpl)
}

func clockIn(lon, lat float64) attendance.ClockInRequest {
	return attendance.ClockInRequest{UserID: testUserID, Longitude: &lon, Latitude: &lat}
}

func clockOut(lon, lat float64) attendance.ClockOutRequest {
	return attendance.ClockOutRequest{UserID: testUserID, Longitude: &lon, Latitude: &lat}
}

func TestClockIn_LateArrival(t *testing.T) {
	f := newFixture(t, testUser(t), testCompany(), lock.NewKeyedMutex())
	*f.clock = monday(9, 30)

	resp, err := f.svc.ClockIn(context.Background(), clockIn(0, 0.00001))
	require.NoError(t, err)

	assert.True(t, resp.Record.IsLate)
	assert.False(t, resp.Record.MissedShift)
	assert.Contains(t, resp.Message, "(Late arrival)")
	assert.True(t, resp.Record.ScheduledStart.Equal(monday(9, 0)))
	assert.True(t, resp.Record.ScheduledEnd.Equal(monday(17, 0)))
	assert.Nil(t, resp.Record.ClockOutTime)
}

func TestClockIn_MissedShiftTakesPriority(t *testing.T) {
	f := newFixture(t, testUser(t), testCompany(), lock.NewKeyedMutex())
	*f.clock = monday(17, 30)

	resp, err := f.svc.ClockIn(context.Background(), clockIn(0, 0))
	require.NoError(t, err)

	assert.True(t, resp.Record.MissedShift)
	assert.True(t, resp.Record.IsLate)
	assert.Contains(t, resp.Message, "(Missed shift)")
	assert.NotContains(t, resp.Message, "(Late arrival)")
}

func TestClockIn_OnTime(t *testing.T) {
	f := newFixture(t, testUser(t), testCompany(), lock.NewKeyedMutex())
	*f.clock = monday(9, 0)

	resp, err := f.svc.ClockIn(context.Background(), clockIn(0, 0))
	require.NoError(t, err)

	assert.False(t, resp.Record.IsLate)
	assert.False(t, resp.Record.MissedShift)
	assert.Equal(t, "Clocked in successfully", resp.Message)
}

func TestClockIn_NotScheduledToday(t *testing.T) {
	f := newFixture(t, testUser(t), testCompany(), lock.NewKeyedMutex())
	// 2024-06-05 is a Wednesday.
	*f.clock = time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC)

	_, err := f.svc.ClockIn(context.Background(), clockIn(0, 0))
	assert.ErrorIs(t, err, attendance.ErrNotScheduledToday)
	assert.Empty(t, f.repo.snapshot())
}

func TestClockIn_OutOfZone(t *testing.T) {
	f := newFixture(t, testUser(t), testCompany(), lock.NewKeyedMutex())

	_, err := f.svc.ClockIn(context.Background(), clockIn(0, 0.01))
	require.ErrorIs(t, err, attendance.ErrOutOfZone)

	var zoneErr *attendance.OutOfZoneError
	require.True(t, errors.As(err, &zoneErr))
	assert.InDelta(t, 1113, zoneErr.DistanceMeters, 0.5)
	assert.Equal(t, float64(20), zoneErr.RadiusMeters)
	assert.Equal(t, "You must be within 20 meters of your workplace. Current distance: 1113 meters.", err.Error())
	assert.Empty(t, f.repo.snapshot())
}

func TestClockIn_InvalidCoordinateFailsBeforeLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No expectations: any repository call fails the test.
	svc := newService(
		attendancemocks.NewMockAttendanceRepository(ctrl),
		usermocks.NewMockUserRepository(ctrl),
		companymocks.NewMockCompanyRepository(ctrl),
		lock.NewKeyedMutex(),
	)

	_, err := svc.ClockIn(context.Background(), clockIn(200, 0))
	require.ErrorIs(t, err, geo.ErrInvalidCoordinate)

	var coordErr *geo.CoordinateError
	require.True(t, errors.As(err, &coordErr))
	assert.Equal(t, "longitude", coordErr.Field)

	_, err = svc.ClockIn(context.Background(), clockIn(0, -91))
	require.True(t, errors.As(err, &coordErr))
	assert.Equal(t, "latitude", coordErr.Field)
}

func TestClockIn_ZoneNotConfigured(t *testing.T) {
	c := testCompany()
	c.Longitude, c.Latitude = nil, nil
	f := newFixture(t, testUser(t), c, lock.NewKeyedMutex())

	_, err := f.svc.ClockIn(context.Background(), clockIn(0, 0))
	assert.ErrorIs(t, err, company.ErrZoneNotConfigured)
}

func TestClockIn_DefaultRadiusWhenUnset(t *testing.T) {
	c := testCompany()
	c.RadiusMeters = nil
	f := newFixture(t, testUser(t), c, lock.NewKeyedMutex())

	// About 22 m north of the center.
	_, err := f.svc.ClockIn(context.Background(), clockIn(0, 0.0002))
	var zoneErr *attendance.OutOfZoneError
	require.True(t, errors.As(err, &zoneErr))
	assert.Equal(t, float64(geo.DefaultRadiusMeters), zoneErr.RadiusMeters)
}

func TestClockIn_UserWithoutCompany(t *testing.T) {
	u := testUser(t)
	u.CompanyID = nil
	f := newFixture(t, u, testCompany(), lock.NewKeyedMutex())

	_, err := f.svc.ClockIn(context.Background(), clockIn(0, 0))
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestClockIn_UserNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := usermocks.NewMockUserRepository(ctrl)
	users.EXPECT().GetByID(gomock.Any(), testUserID).Return(user.User{}, user.ErrUserNotFound).Times(1)

	svc := newService(&memoryAttendanceRepository{}, users, companymocks.NewMockCompanyRepository(ctrl), lock.NewKeyedMutex())
	_, err := svc.ClockIn(context.Background(), clockIn(0, 0))
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestClockIn_MissingFields(t *testing.T) {
	f := newFixture(t, testUser(t), testCompany(), lock.NewKeyedMutex())

	_, err := f.svc.ClockIn(context.Background(), attendance.ClockInRequest{UserID: testUserID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "longitude")
}

func TestClockIn_AlreadyClockedIn(t *testing.T) {
	f := newFixture(t, testUser(t), testCompany(), lock.NewKeyedMutex())

	_, err := f.svc.ClockIn(context.Background(), clockIn(0, 0))
	require.NoError(t, err)

	*f.clock = monday(9, 5)
	_, err = f.svc.ClockIn(context.Background(), clockIn(0, 0))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
	assert.Len(t, f.repo.snapshot(), 1)
}

func TestClockIn_ConcurrentRequestsOpenOneSession(t *testing.T) {
	lockers := map[string]lock.Locker{
		"keyed mutex":     lock.NewKeyedMutex(),
		"repository only": passthroughLocker{},
	}
	for name, locker := range lockers {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, testUser(t), testCompany(), locker)

			const n = 25
			var wg sync.WaitGroup
			errs := make([]error, n)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, errs[i] = f.svc.ClockIn(context.Background(), clockIn(0, 0))
				}(i)
			}
			wg.Wait()

			succeeded := 0
			for _, err := range errs {
				if err == nil {
					succeeded++
					continue
				}
				assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
			}
			assert.Equal(t, 1, succeeded)
			assert.Equal(t, 1, f.repo.openCount(testUserID))
		})
	}
}

func TestClockIn_LockHeldElsewhere(t *testing.T) {
	locker := lock.NewKeyedMutex()
	f := newFixture(t, testUser(t), testCompany(), locker)
	f.svc.cfg.LockWait = 20 * time.Millisecond

	release, err := locker.Lock(context.Background(), "attendance:"+testUserID)
	require.NoError(t, err)
	defer release()

	_, err = f.svc.ClockIn(context.Background(), clockIn(0, 0))
	assert.ErrorIs(t, err, attendance.ErrClockInProgress)
	assert.Empty(t, f.repo.snapshot())
}

func TestClockIn_CallerCancelledWhileWaiting(t *testing.T) {
	locker := lock.NewKeyedMutex()
	f := newFixture(t, testUser(t), testCompany(), locker)

	release, err := locker.Lock(context.Background(), "attendance:"+testUserID)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = f.svc.ClockIn(ctx, clockIn(0, 0))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, attendance.ErrClockInProgress)
	assert.Empty(t, f.repo.snapshot())
}

func TestClockOut_WithoutSessionChangesNothing(t *testing.T) {
	f := newFixture(t, testUser(t), testCompany(), lock.NewKeyedMutex())

	_, err := f.svc.ClockOut(context.Background(), clockOut(0, 0))
	assert.ErrorIs(t, err, attendance.ErrNoOpenSession)
	assert.Equal(t, 0, f.repo.closeCalls)
	assert.Empty(t, f.repo.snapshot())
}

func TestClockOut_EarlyDeparture(t *testing.T) {
	f := newFixture(t, testUser(t), testCompany(), lock.NewKeyedMutex())

	*f.clock = monday(9, 0)
	_, err := f.svc.ClockIn(context.Background(), clockIn(0, 0))
	require.NoError(t, err)

	*f.clock = monday(16, 0)
	resp, err := f.svc.ClockOut(context.Background(), clockOut(0, 0.00001))
	require.NoError(t, err)

	assert.True(t, resp.Record.IsEarlyDeparture)
	require.NotNil(t, resp.Record.HoursWorked)
	assert.Equal(t, 7.00, *resp.Record.HoursWorked)
	assert.Contains(t, resp.Message, "(Early departure)")
	require.NotNil(t, resp.Record.ClockOutLocation)
	assert.Equal(t, 0.00001, resp.Record.ClockOutLocation.Latitude)
	assert.Equal(t, 0, f.repo.openCount(testUserID))
}

func TestClockOut_RoundTripHours(t *testing.T) {
	f := newFixture(t, testUser(t), testCompany(), lock.NewKeyedMutex())

	in := monday(8, 47)
	*f.clock = in
	_, err := f.svc.ClockIn(context.Background(), clockIn(0, 0))
	require.NoError(t, err)

	out := time.Date(2024, 6, 3, 17, 7, 30, 0, time.UTC)
	*f.clock = out
	resp, err := f.svc.ClockOut(context.Background(), clockOut(0, 0))
	require.NoError(t, err)

	rec := resp.Record
	require.NotNil(t, rec.ClockOutTime)
	assert.True(t, rec.ClockOutTime.After(rec.ClockInTime))
	assert.Equal(t, 8.34, *rec.HoursWorked)
	assert.False(t, rec.IsEarlyDeparture)
	assert.Equal(t, "Clocked out successfully", resp.Message)

	// A closed record cannot be closed again.
	_, err = f.svc.ClockOut(context.Background(), clockOut(0, 0))
	assert.ErrorIs(t, err, attendance.ErrNoOpenSession)
}

func TestClockOut_OutOfZoneLeavesSessionOpen(t *testing.T) {
	f := newFixture(t, testUser(t), testCompany(), lock.NewKeyedMutex())

	_, err := f.svc.ClockIn(context.Background(), clockIn(0, 0))
	require.NoError(t, err)

	*f.clock = monday(17, 0)
	_, err = f.svc.ClockOut(context.Background(), clockOut(0, 0.01))
	assert.ErrorIs(t, err, attendance.ErrOutOfZone)
	assert.Equal(t, 1, f.repo.openCount(testUserID))
	assert.Equal(t, 0, f.repo.closeCalls)
}

func TestClockIn_CompanyTimezoneGovernsToday(t *testing.T) {
	u := testUser(t)
	tuesday, err := schedule.NewWorkDay("Tuesday", "08:00", "16:00")
	require.NoError(t, err)
	u.WorkDays = []schedule.WorkDay{tuesday}

	c := testCompany()
	c.Timezone = ptr("Asia/Tokyo")
	f := newFixture(t, u, c, lock.NewKeyedMutex())

	// Monday 23:30 UTC is Tuesday 08:30 in Tokyo.
	*f.clock = monday(23, 30)
	resp, err := f.svc.ClockIn(context.Background(), clockIn(0, 0))
	require.NoError(t, err)
	assert.True(t, resp.Record.IsLate)
	assert.Equal(t, "Asia/Tokyo", resp.Record.ScheduledStart.Location().String())
	assert.True(t, resp.Record.ScheduledStart.Equal(time.Date(2024, 6, 3, 23, 0, 0, 0, time.UTC)))
}

func TestClockIn_PersistenceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	u := testUser(t)
	c := testCompany()

	users := usermocks.NewMockUserRepository(ctrl)
	companies := companymocks.NewMockCompanyRepository(ctrl)
	repo := attendancemocks.NewMockAttendanceRepository(ctrl)

	dbErr := errors.New("connection reset")
	users.EXPECT().GetByID(gomock.Any(), u.ID).Return(u, nil).Times(1)
	companies.EXPECT().GetByID(gomock.Any(), c.ID).Return(c, nil).Times(1)
	repo.EXPECT().GetOpenSession(gomock.Any(), u.ID).Return(attendance.Record{}, attendance.ErrNoOpenSession).Times(1)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(attendance.Record{}, dbErr).Times(1)

	svc := newService(repo, users, companies, lock.NewKeyedMutex())
	svc.now = func() time.Time { return monday(9, 0) }

	_, err := svc.ClockIn(context.Background(), clockIn(0, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestClockOut_RaceLostAfterRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	u := testUser(t)
	c := testCompany()

	users := usermocks.NewMockUserRepository(ctrl)
	companies := companymocks.NewMockCompanyRepository(ctrl)
	repo := attendancemocks.NewMockAttendanceRepository(ctrl)

	open := attendance.NewRecord(u.ID, c.ID, monday(9, 0), geo.Point{}, schedule.ShiftWindow{
		Day: time.Monday, Start: monday(9, 0), End: monday(17, 0),
	})
	open.ID = "rec-1"

	users.EXPECT().GetByID(gomock.Any(), u.ID).Return(u, nil).Times(1)
	companies.EXPECT().GetByID(gomock.Any(), c.ID).Return(c, nil).Times(1)
	repo.EXPECT().GetOpenSession(gomock.Any(), u.ID).Return(open, nil).Times(1)
	repo.EXPECT().Close(gomock.Any(), gomock.Any()).Return(attendance.Record{}, attendance.ErrNoOpenSession).Times(1)

	svc := newService(repo, users, companies, lock.NewKeyedMutex())
	svc.now = func() time.Time { return monday(17, 0) }

	_, err := svc.ClockOut(context.Background(), clockOut(0, 0))
	assert.ErrorIs(t, err, attendance.ErrNoOpenSession)
}

func TestListAttendance_Pagination(t *testing.T) {
	f := newFixture(t, testUser(t), testCompany(), lock.NewKeyedMutex())
	_, err := f.svc.ClockIn(context.Background(), clockIn(0, 0))
	require.NoError(t, err)

	resp, err := f.svc.ListAttendance(context.Background(), testCompanyID, attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.Len(t, resp.Attendances, 1)

	mine, err := f.svc.GetMyAttendance(context.Background(), "someone-else", attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), mine.TotalCount)
	assert.NotNil(t, mine.Attendances)

	_, err = f.svc.GetAttendance(context.Background(), testCompanyID, "missing")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}
