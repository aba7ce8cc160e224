package company

import "context"

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	GetByAdminID(ctx context.Context, adminID string) (Company, error)
	// CreateForAdmin inserts the company and links the admin to it atomically.
	CreateForAdmin(ctx context.Context, newCompany Company) (Company, error)
	UpdateLocation(ctx context.Context, id string, req UpdateLocationRequest) (Company, error)
}
