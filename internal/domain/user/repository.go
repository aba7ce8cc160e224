package user

import (
	"context"
)

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	List(ctx context.Context, companyID string, filter UserFilter) ([]User, int64, error)
	CountByCompany(ctx context.Context, companyID string) (int64, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (User, error)
	// Update applies an admin edit to a user of companyID.
	Update(ctx context.Context, req UpdateUserRequest) (User, error)
	Delete(ctx context.Context, id, companyID string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// ListWithReminders returns every user that has at least one reminder
	// configured, joined with the timezone of their company.
	ListWithReminders(ctx context.Context) ([]User, error)
}
