package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/geo"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
	defaultRadius float64
}

func NewCompanyService(companyRepo company.CompanyRepository, defaultRadius float64) company.CompanyService {
	return &CompanyServiceImpl{
		CompanyRepository: companyRepo,
		defaultRadius:     defaultRadius,
	}
}

// Register implements company.CompanyService.
func (c *CompanyServiceImpl) Register(ctx context.Context, req company.RegisterCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	newCompany, err := company.New(req.AdminID, req.Name, req.Address, req.Location(), req.Radius, req.Timezone)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	newCompany.PlanID = req.PlanID

	_, err = c.CompanyRepository.GetByAdminID(ctx, req.AdminID)
	switch {
	case err == nil:
		return company.CompanyResponse{}, company.ErrCompanyAlreadyRegistered
	case !errors.Is(err, company.ErrCompanyNotFound):
		return company.CompanyResponse{}, fmt.Errorf("failed to get company by admin: %w", err)
	}

	created, err := c.CompanyRepository.CreateForAdmin(ctx, newCompany)
	if err != nil {
		if errors.Is(err, company.ErrCompanyAlreadyRegistered) {
			return company.CompanyResponse{}, err
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to create company: %w", err)
	}

	slog.Info("Company registered", "company_id", created.ID, "admin_id", created.AdminID, "has_location", created.HasLocation())
	return company.NewCompanyResponse(created), nil
}

// GetMy implements company.CompanyService.
func (c *CompanyServiceImpl) GetMy(ctx context.Context, adminID string) (company.CompanyResponse, error) {
	found, err := c.CompanyRepository.GetByAdminID(ctx, adminID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.CompanyResponse{}, company.ErrCompanyNotFound
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to get company by admin: %w", err)
	}
	return company.NewCompanyResponse(found), nil
}

// UpdateLocation implements company.CompanyService.
func (c *CompanyServiceImpl) UpdateLocation(ctx context.Context, req company.UpdateLocationRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	found, err := c.CompanyRepository.GetByAdminID(ctx, req.AdminID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.CompanyResponse{}, company.ErrCompanyNotFound
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to get company by admin: %w", err)
	}

	updated, err := c.CompanyRepository.UpdateLocation(ctx, found.ID, req)
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to update company location: %w", err)
	}

	slog.Info("Company location updated", "company_id", updated.ID, "longitude", req.Longitude, "latitude", req.Latitude)
	return company.NewCompanyResponse(updated), nil
}

// ResolveZone implements company.CompanyService.
func (c *CompanyServiceImpl) ResolveZone(ctx context.Context, companyID string) (geo.Zone, error) {
	found, err := c.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return geo.Zone{}, company.ErrCompanyNotFound
		}
		return geo.Zone{}, fmt.Errorf("failed to get company: %w", err)
	}
	return found.Zone(c.defaultRadius)
}
