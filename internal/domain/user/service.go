package user

import (
	"context"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/schedule"
)

type UserService interface {
	// Create provisions an employee inside the admin's company.
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	List(ctx context.Context, companyID string, filter UserFilter) (ListUserResponse, error)
	GetByID(ctx context.Context, companyID, id string) (UserResponse, error)
	GetProfile(ctx context.Context, id string) (UserResponse, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, companyID, adminID, id string) error
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	// ReminderStatus reports today's reminders of the user.
	ReminderStatus(ctx context.Context, id string) (schedule.ReminderStatus, error)
}
