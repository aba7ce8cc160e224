package plan

import "context"

type PlanService interface {
	List(ctx context.Context) ([]PlanResponse, error)
	Create(ctx context.Context, req CreatePlanRequest) (PlanResponse, error)
}
