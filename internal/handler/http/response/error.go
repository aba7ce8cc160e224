package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/plan"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var coordErr *geo.CoordinateError
	if errors.As(err, &coordErr) {
		BadRequestError(w, "INVALID_COORDINATES", coordErr.Error(), map[string]string{coordErr.Field: coordErr.Error()})
		return
	}

	var zoneErr *attendance.OutOfZoneError
	if errors.As(err, &zoneErr) {
		BadRequestError(w, "OUT_OF_ZONE", zoneErr.Error(), nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		BadRequestError(w, "ALREADY_CLOCKED_IN", "You are already clocked in", nil)
	case errors.Is(err, attendance.ErrNotScheduledToday), errors.Is(err, schedule.ErrNotScheduled):
		BadRequestError(w, "NOT_SCHEDULED", "You are not scheduled to work today", nil)
	case errors.Is(err, attendance.ErrNoOpenSession):
		NotFound(w, "No active session to clock out")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrClockInProgress):
		Conflict(w, "Another clock event is in progress, please retry")

	// Company domain errors
	case errors.Is(err, company.ErrZoneNotConfigured):
		BadRequestError(w, "ZONE_NOT_CONFIGURED", "Company location not configured, please contact administrator", nil)
	case errors.Is(err, company.ErrInvalidStoredZone):
		slog.Error("Company zone failed validation", "error", err)
		InternalServerError(w, "Company location is misconfigured, please contact administrator")
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCompanyAlreadyRegistered):
		Conflict(w, "You already have a registered company")
	case errors.Is(err, company.ErrInvalidCompanyName), errors.Is(err, company.ErrInvalidTimezone):
		BadRequest(w, err.Error(), nil)

	// Schedule value errors
	case errors.Is(err, schedule.ErrInvalidClockTime), errors.Is(err, schedule.ErrInvalidWeekday),
		errors.Is(err, schedule.ErrDuplicateWorkDay), errors.Is(err, schedule.ErrShiftEndsBefore):
		ValidationError(w, map[string]string{"work_days": err.Error()})

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrSeatLimitReached):
		Conflict(w, "Employee limit of the current plan reached")
	case errors.Is(err, user.ErrCompanyIDRequired):
		BadRequest(w, "Register a company first", nil)
	case errors.Is(err, user.ErrCannotModifySelf), errors.Is(err, user.ErrCompanyOwnerProtected):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrCurrentPasswordWrong):
		BadRequestError(w, "INVALID_CURRENT_PASSWORD", "Current password is incorrect", nil)

	// Plan domain errors
	case errors.Is(err, plan.ErrPlanNotFound):
		NotFound(w, "Plan not found")
	case errors.Is(err, plan.ErrPlanNameExists):
		Conflict(w, "Plan with this name already exists")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestOverlap):
		Conflict(w, "A request already exists within this date range")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Report and notification errors
	case errors.Is(err, report.ErrInvalidDateRange), errors.Is(err, report.ErrRangeTooLong):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
