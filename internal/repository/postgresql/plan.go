package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/plan"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type planRepositoryImpl struct {
	db *database.DB
}

func NewPlanRepository(db *database.DB) plan.PlanRepository {
	return &planRepositoryImpl{db: db}
}

const planColumns = `id, name, price, currency, duration, features, is_active, created_at, updated_at`

func planDest(p *plan.Plan) []any {
	return []any{&p.ID, &p.Name, &p.Price, &p.Currency, &p.Duration, &p.Features, &p.IsActive, &p.CreatedAt, &p.UpdatedAt}
}

// GetByID implements plan.PlanRepository.
func (r *planRepositoryImpl) GetByID(ctx context.Context, id string) (plan.Plan, error) {
	q := GetQuerier(ctx, r.db)

	var p plan.Plan
	if err := q.QueryRow(ctx, `SELECT `+planColumns+` FROM plans WHERE id = $1`, id).Scan(planDest(&p)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return plan.Plan{}, plan.ErrPlanNotFound
		}
		return plan.Plan{}, err
	}
	return p, nil
}

// List implements plan.PlanRepository.
func (r *planRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]plan.Plan, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + planColumns + ` FROM plans WHERE ($1 = FALSE OR is_active) ORDER BY price ASC, name ASC`
	rows, err := q.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []plan.Plan
	for rows.Next() {
		var p plan.Plan
		if err := rows.Scan(planDest(&p)...); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Create implements plan.PlanRepository.
func (r *planRepositoryImpl) Create(ctx context.Context, newPlan plan.Plan) (plan.Plan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO plans (name, price, currency, duration, features, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + planColumns

	var created plan.Plan
	err := q.QueryRow(ctx, query,
		newPlan.Name,
		newPlan.Price,
		newPlan.Currency,
		newPlan.Duration,
		newPlan.Features,
		newPlan.IsActive,
	).Scan(planDest(&created)...)
	if err != nil {
		if isUniqueViolation(err) {
			return plan.Plan{}, plan.ErrPlanNameExists
		}
		return plan.Plan{}, fmt.Errorf("failed to create plan: %w", err)
	}
	return created, nil
}
