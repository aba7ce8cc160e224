package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/config"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/jwt"
	authService "github.com/cmlabs-hris/geoshift-backend-go/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type fakeUserLookup struct {
	users map[string]user.User
}

func (f fakeUserLookup) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type fakeAttendanceService struct {
	attendance.AttendanceService
	clockInReq  attendance.ClockInRequest
	clockInResp attendance.ClockEventResponse
	clockOutErr error
	err         error
}

func (f *fakeAttendanceService) ClockIn(_ context.Context, req attendance.ClockInRequest) (attendance.ClockEventResponse, error) {
	f.clockInReq = req
	return f.clockInResp, f.err
}

func (f *fakeAttendanceService) ClockOut(_ context.Context, _ attendance.ClockOutRequest) (attendance.ClockEventResponse, error) {
	return attendance.ClockEventResponse{}, f.clockOutErr
}

type fakeReportService struct {
	report.ReportService
	companyID string
}

func (f *fakeReportService) DashboardStats(_ context.Context, companyID string) (report.DashboardStatsResponse, error) {
	f.companyID = companyID
	return report.DashboardStatsResponse{TotalUsers: 3, TotalClockIns: 2}, nil
}

func (f *fakeReportService) ExportAttendanceSummary(_ context.Context, companyID string, _ report.SummaryFilter) (report.ExportFile, error) {
	f.companyID = companyID
	return report.ExportFile{
		Filename:    "attendance-summary_2024-06-10_2024-06-16.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     []byte("xlsx"),
	}, nil
}

type fakeUserService struct {
	user.UserService
	deleted   []string
	updateReq user.UpdateUserRequest
	pwReq     user.ChangePasswordRequest
	err       error
}

func (f *fakeUserService) Update(_ context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	f.updateReq = req
	return user.UserResponse{ID: req.ID}, f.err
}

func (f *fakeUserService) Delete(_ context.Context, companyID, adminID, id string) error {
	f.deleted = []string{companyID, adminID, id}
	return f.err
}

func (f *fakeUserService) ChangePassword(_ context.Context, req user.ChangePasswordRequest) error {
	f.pwReq = req
	return f.err
}

type fakeNotificationService struct {
	notification.Service
	events chan notification.SSEEvent
}

func (f *fakeNotificationService) Subscribe(_ context.Context, _ string) (<-chan notification.SSEEvent, func()) {
	return f.events, func() {}
}

type testServer struct {
	router     http.Handler
	jwt        jwt.Service
	attendance *fakeAttendanceService
	users      *fakeUserService
	reports    *fakeReportService
	notifs     *fakeNotificationService
}

func newTestServer(t *testing.T, lookup fakeUserLookup) *testServer {
	t.Helper()
	cfg := &config.Config{App: config.AppConfig{
		Env:         "test",
		LogLevel:    "error",
		FrontendURL: "http://localhost:3000",
	}}

	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h")
	ts := &testServer{
		jwt:        jwtSvc,
		attendance: &fakeAttendanceService{},
		users:      &fakeUserService{},
		reports:    &fakeReportService{},
		notifs:     &fakeNotificationService{events: make(chan notification.SSEEvent, 1)},
	}

	ts.router = NewRouter(cfg, jwtSvc, lookup, Handlers{
		Auth:         NewAuthHandler(jwtSvc, authService.NewAuthService(nil, jwtSvc)),
		Company:      NewCompanyHandler(nil),
		User:         NewUserHandler(ts.users),
		Attendance:   NewAttendanceHandler(ts.attendance),
		Leave:        NewLeaveHandler(nil),
		Plan:         NewPlanHandler(nil),
		Report:       NewReportHandler(ts.reports),
		Notification: NewNotificationHandler(ts.notifs, jwtSvc),
	})
	return ts
}

func (ts *testServer) token(t *testing.T, u user.User) string {
	t.Helper()
	token, _, err := ts.jwt.GenerateAccessToken(u)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

var (
	testCompanyID = "0b9f4c1e-8d4b-4c55-9a55-7d3c2f1e0a01"
	testEmployee  = user.User{ID: "5a0c7f0e-2b1d-4b5e-8f3a-1c2d3e4f5a60", Email: "ada@example.com", Role: user.RoleUser, CompanyID: &testCompanyID}
	testAdmin     = user.User{ID: "9e8d7c6b-5a4f-4e3d-8c2b-1a0f9e8d7c6b", Email: "boss@example.com", Role: user.RoleAdmin, CompanyID: &testCompanyID}
)

func TestRouter_RequiresToken(t *testing.T) {
	ts := newTestServer(t, fakeUserLookup{})

	rec := ts.do(t, http.MethodGet, "/api/v1/user/attendance", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestRouter_AdminRoutesRejectEmployees(t *testing.T) {
	ts := newTestServer(t, fakeUserLookup{})

	rec := ts.do(t, http.MethodGet, "/api/v1/admin/dashboard-stats", ts.token(t, testEmployee), nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_AdminWithoutCompany(t *testing.T) {
	fresh := user.User{ID: "1f2e3d4c-5b6a-4978-8a6b-5c4d3e2f1a0b", Email: "new@example.com", Role: user.RoleAdmin}
	ts := newTestServer(t, fakeUserLookup{users: map[string]user.User{fresh.ID: fresh}})

	rec := ts.do(t, http.MethodGet, "/api/v1/admin/dashboard-stats", ts.token(t, fresh), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Register a company first", decodeEnvelope(t, rec).Error.Message)
}

func TestRouter_CompanyResolvedForStaleToken(t *testing.T) {
	// Token issued before the company existed.
	stale := testAdmin
	stale.CompanyID = nil
	ts := newTestServer(t, fakeUserLookup{users: map[string]user.User{testAdmin.ID: testAdmin}})

	rec := ts.do(t, http.MethodGet, "/api/v1/admin/dashboard-stats", ts.token(t, stale), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testCompanyID, ts.reports.companyID)

	var stats report.DashboardStatsResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &stats))
	assert.Equal(t, int64(3), stats.TotalUsers)
}

func TestClockIn_Created(t *testing.T) {
	ts := newTestServer(t, fakeUserLookup{})
	ts.attendance.clockInResp = attendance.ClockEventResponse{
		Message: "Clocked in successfully (Late arrival)",
		Record:  attendance.AttendanceResponse{ID: "rec-1", IsLate: true},
	}

	rec := ts.do(t, http.MethodPost, "/api/v1/user/clock-in", ts.token(t, testEmployee),
		map[string]float64{"longitude": 3.3792, "latitude": 6.5244})

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Clocked in successfully (Late arrival)", env.Message)
	assert.Equal(t, testEmployee.ID, ts.attendance.clockInReq.UserID)
	require.NotNil(t, ts.attendance.clockInReq.Longitude)
	assert.Equal(t, 3.3792, *ts.attendance.clockInReq.Longitude)
}

func TestClockIn_OutOfZone(t *testing.T) {
	ts := newTestServer(t, fakeUserLookup{})
	ts.attendance.err = &attendance.OutOfZoneError{DistanceMeters: 1113.2, RadiusMeters: 20}

	rec := ts.do(t, http.MethodPost, "/api/v1/user/clock-in", ts.token(t, testEmployee),
		map[string]float64{"longitude": 0.01, "latitude": 0})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "OUT_OF_ZONE", env.Error.Code)
	assert.Equal(t, "You must be within 20 meters of your workplace. Current distance: 1113 meters.", env.Error.Message)
}

func TestClockIn_MalformedBody(t *testing.T) {
	ts := newTestServer(t, fakeUserLookup{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/clock-in", strings.NewReader("{not json"))
	req.Header.Set("Authorization", "Bearer "+ts.token(t, testEmployee))
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.attendance.clockInReq.UserID)
}

func TestClockOut_NoOpenSession(t *testing.T) {
	ts := newTestServer(t, fakeUserLookup{})
	ts.attendance.clockOutErr = attendance.ErrNoOpenSession

	rec := ts.do(t, http.MethodPost, "/api/v1/user/clock-out", ts.token(t, testEmployee),
		map[string]float64{"longitude": 0, "latitude": 0})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogout_RevokesToken(t *testing.T) {
	ts := newTestServer(t, fakeUserLookup{})
	token := ts.token(t, testEmployee)

	rec := ts.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/user/attendance", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExportSummary_Attachment(t *testing.T) {
	ts := newTestServer(t, fakeUserLookup{})

	rec := ts.do(t, http.MethodGet, "/api/v1/admin/export-summary?start_date=2024-06-10", ts.token(t, testAdmin), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="attendance-summary_2024-06-10_2024-06-16.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "xlsx", rec.Body.String())
	assert.Equal(t, testCompanyID, ts.reports.companyID)
}

func TestStream_RejectsMissingAndAccessTokens(t *testing.T) {
	ts := newTestServer(t, fakeUserLookup{})

	rec := ts.do(t, http.MethodGet, "/api/v1/user/events", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/user/events?token="+ts.token(t, testEmployee), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStream_DeliversEvents(t *testing.T) {
	ts := newTestServer(t, fakeUserLookup{})
	server := httptest.NewServer(ts.router)
	defer server.Close()

	sseToken, _, err := ts.jwt.GenerateSSEToken(testEmployee.ID)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/user/events?token="+sseToken, nil)
	require.NoError(t, err)

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: connected\n", line)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, testEmployee.ID)
	_, _ = reader.ReadString('\n')

	ts.notifs.events <- notification.SSEEvent{
		Event: "notification",
		Data:  notification.NotificationResponse{ID: "n-1", Type: notification.TypeClockInReminder, Title: "Time to clock in"},
	}

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: notification\n", line)

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, `"title":"Time to clock in"`)
}

func TestRouter_AdminEditsUser(t *testing.T) {
	ts := newTestServer(t, fakeUserLookup{})
	target := "7c1d2e3f-4a5b-4c6d-8e7f-9a0b1c2d3e4f"

	rec := ts.do(t, http.MethodPut, "/api/v1/admin/users/"+target, ts.token(t, testEmployee), map[string]any{"full_name": "X"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/v1/admin/users/"+target, ts.token(t, testAdmin), map[string]any{
		"role":      "admin",
		"work_days": []map[string]any{{"day": "Monday", "shift": map[string]string{"start": "09:00", "end": "17:00"}}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, target, ts.users.updateReq.ID)
	assert.Equal(t, testCompanyID, ts.users.updateReq.CompanyID)
	assert.Equal(t, testAdmin.ID, ts.users.updateReq.AdminID)
	require.NotNil(t, ts.users.updateReq.Role)
	assert.Equal(t, "admin", *ts.users.updateReq.Role)
	require.NotNil(t, ts.users.updateReq.WorkDays)
	assert.Len(t, *ts.users.updateReq.WorkDays, 1)
}

func TestRouter_AdminDeletesUser(t *testing.T) {
	ts := newTestServer(t, fakeUserLookup{})
	target := "7c1d2e3f-4a5b-4c6d-8e7f-9a0b1c2d3e4f"

	rec := ts.do(t, http.MethodDelete, "/api/v1/admin/users/"+target, ts.token(t, testAdmin), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{testCompanyID, testAdmin.ID, target}, ts.users.deleted)

	ts.users.err = user.ErrCannotModifySelf
	rec = ts.do(t, http.MethodDelete, "/api/v1/admin/users/"+testAdmin.ID, ts.token(t, testAdmin), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ChangePasswordForBothRoles(t *testing.T) {
	ts := newTestServer(t, fakeUserLookup{})
	body := map[string]string{
		"current_password": "old-password",
		"new_password":     "new-password",
		"confirm_password": "new-password",
	}

	rec := ts.do(t, http.MethodPost, "/api/v1/user/passwords", ts.token(t, testEmployee), body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, testEmployee.ID, ts.users.pwReq.UserID)
	assert.Equal(t, "new-password", ts.users.pwReq.NewPassword)

	rec = ts.do(t, http.MethodPost, "/api/v1/admin/passwords", ts.token(t, testAdmin), body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, testAdmin.ID, ts.users.pwReq.UserID)

	ts.users.err = user.ErrCurrentPasswordWrong
	rec = ts.do(t, http.MethodPost, "/api/v1/user/passwords", ts.token(t, testEmployee), body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_CURRENT_PASSWORD", env.Error.Code)
}
