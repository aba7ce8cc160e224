package notification

import (
	"time"
)

// NotificationType doubles as the SSE event name.
type NotificationType string

const (
	TypeClockInReminder      NotificationType = "clock_in_reminder"
	TypeClockOutReminder     NotificationType = "clock_out_reminder"
	TypeLeaveRequestCreated  NotificationType = "leave_request_created"
	TypeLeaveRequestAccepted NotificationType = "leave_request_accepted"
	TypeLeaveRequestDeclined NotificationType = "leave_request_declined"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	CompanyID   *string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
