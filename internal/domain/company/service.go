package company

import (
	"context"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/geo"
)

type CompanyService interface {
	Register(ctx context.Context, req RegisterCompanyRequest) (CompanyResponse, error)
	GetMy(ctx context.Context, adminID string) (CompanyResponse, error)
	UpdateLocation(ctx context.Context, req UpdateLocationRequest) (CompanyResponse, error)

	// ResolveZone returns the geofence of a company.
	ResolveZone(ctx context.Context, companyID string) (geo.Zone, error)
}
