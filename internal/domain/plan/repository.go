package plan

import "context"

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

type PlanRepository interface {
	GetByID(ctx context.Context, id string) (Plan, error)
	List(ctx context.Context, activeOnly bool) ([]Plan, error)
	Create(ctx context.Context, newPlan Plan) (Plan, error)
}
