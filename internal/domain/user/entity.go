package user

import (
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/schedule"
)

type Role string

const (
	RoleAdmin Role = "admin" // Owns a company and manages its staff
	RoleUser  Role = "user"  // Regular employee
)

type User struct {
	ID           string
	CompanyID    *string
	Email        string
	FullName     string
	PasswordHash *string
	Role         Role
	WorkDays     []schedule.WorkDay
	Reminders    schedule.Reminders
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	CompanyTimezone *string
}

// IsAdmin checks if user manages a company
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasReminders reports whether any daily reminder is configured.
func (u *User) HasReminders() bool {
	return u.Reminders.ClockIn != nil || u.Reminders.ClockOut != nil
}
