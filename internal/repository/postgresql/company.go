package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

const companyColumns = `
	id, admin_id, name, address, longitude, latitude, radius_meters,
	timezone, plan_id, created_at, updated_at`

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID, &c.AdminID, &c.Name, &c.Address, &c.Longitude, &c.Latitude, &c.RadiusMeters,
		&c.Timezone, &c.PlanID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)
	return scanCompany(q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
}

// GetByAdminID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByAdminID(ctx context.Context, adminID string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)
	return scanCompany(q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE admin_id = $1`, adminID))
}

// CreateForAdmin implements company.CompanyRepository.
func (c *companyRepositoryImpl) CreateForAdmin(ctx context.Context, newCompany company.Company) (company.Company, error) {
	var created company.Company

	err := WithTransaction(ctx, c.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, c.db)

		query := `
			INSERT INTO companies (admin_id, name, address, longitude, latitude, radius_meters, timezone, plan_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING ` + companyColumns

		var err error
		created, err = scanCompany(q.QueryRow(ctx, query,
			newCompany.AdminID,
			newCompany.Name,
			newCompany.Address,
			newCompany.Longitude,
			newCompany.Latitude,
			newCompany.RadiusMeters,
			newCompany.Timezone,
			newCompany.PlanID,
		))
		if err != nil {
			if isUniqueViolation(err) {
				return company.ErrCompanyAlreadyRegistered
			}
			return fmt.Errorf("failed to insert company: %w", err)
		}

		tag, err := q.Exec(ctx, `UPDATE users SET company_id = $1, updated_at = NOW() WHERE id = $2`, created.ID, created.AdminID)
		if err != nil {
			return fmt.Errorf("failed to link admin to company: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("admin %s not found", created.AdminID)
		}
		return nil
	})
	if err != nil {
		return company.Company{}, err
	}

	return created, nil
}

// UpdateLocation implements company.CompanyRepository. Radius and address
// keep their stored value when omitted.
func (c *companyRepositoryImpl) UpdateLocation(ctx context.Context, id string, req company.UpdateLocationRequest) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE companies
		SET longitude = $1,
			latitude = $2,
			radius_meters = COALESCE($3, radius_meters),
			address = COALESCE($4, address),
			updated_at = NOW()
		WHERE id = $5
		RETURNING ` + companyColumns

	updated, err := scanCompany(q.QueryRow(ctx, query, req.Longitude, req.Latitude, req.Radius, req.Address, id))
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.Company{}, err
		}
		return company.Company{}, fmt.Errorf("failed to update location of company %s: %w", id, err)
	}
	return updated, nil
}
