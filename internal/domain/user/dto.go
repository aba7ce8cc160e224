package user

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string             `json:"id"`
	CompanyID *string            `json:"company_id,omitempty"`
	Email     string             `json:"email"`
	FullName  string             `json:"full_name"`
	Role      string             `json:"role"`
	WorkDays  []schedule.WorkDay `json:"work_days"`
	Reminders schedule.Reminders `json:"reminders"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func NewUserResponse(u User) UserResponse {
	workDays := u.WorkDays
	if workDays == nil {
		workDays = []schedule.WorkDay{}
	}
	return UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		WorkDays:  workDays,
		Reminders: u.Reminders,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type ListUserResponse struct {
	TotalCount int64
	Page       int
	Limit      int
	Users      []UserResponse
}

type UserFilter struct {
	Search *string `json:"search,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *UserFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateUserRequest represents request to provision a new employee
type CreateUserRequest struct {
	CompanyID string             `json:"-"`
	FullName  string             `json:"full_name" validate:"required,max=255"`
	Email     string             `json:"email" validate:"required,email"`
	Password  string             `json:"password" validate:"required,min=8"`
	WorkDays  []schedule.WorkDay `json:"work_days"`
	Reminders schedule.Reminders `json:"reminders"`
}

func (r *CreateUserRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	return validateWorkDays(r.WorkDays)
}

// UpdateProfileRequest updates the caller's own profile. Nil fields are kept.
type UpdateProfileRequest struct {
	FullName  *string             `json:"full_name,omitempty" validate:"omitempty,min=1,max=255"`
	WorkDays  *[]schedule.WorkDay `json:"work_days,omitempty"`
	Reminders *schedule.Reminders `json:"reminders,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.WorkDays != nil {
		return validateWorkDays(*r.WorkDays)
	}
	return nil
}

func validateWorkDays(workDays []schedule.WorkDay) error {
	if err := schedule.ValidateWorkDays(workDays); err != nil {
		return validator.ValidationErrors{{
			Field:   "work_days",
			Message: err.Error(),
		}}
	}
	return nil
}

// UpdateUserRequest is an admin edit of an employee. Nil fields are kept.
type UpdateUserRequest struct {
	ID        string              `json:"-"`
	CompanyID string              `json:"-"`
	AdminID   string              `json:"-"`
	Email     *string             `json:"email,omitempty" validate:"omitempty,email,max=254"`
	FullName  *string             `json:"full_name,omitempty" validate:"omitempty,min=1,max=255"`
	Role      *string             `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
	WorkDays  *[]schedule.WorkDay `json:"work_days,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
	}
	if r.FullName != nil {
		name := strings.TrimSpace(*r.FullName)
		r.FullName = &name
	}
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.WorkDays != nil {
		return validateWorkDays(*r.WorkDays)
	}
	return nil
}

// ChangePasswordRequest replaces the caller's password after checking the
// current one.
type ChangePasswordRequest struct {
	UserID          string `json:"-"`
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72,nefield=CurrentPassword"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

func (r *ChangePasswordRequest) Validate() error {
	return validator.Struct(r)
}
