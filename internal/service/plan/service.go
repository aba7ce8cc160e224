package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/plan"
)

type PlanServiceImpl struct {
	plan.PlanRepository
}

func NewPlanService(planRepo plan.PlanRepository) plan.PlanService {
	return &PlanServiceImpl{PlanRepository: planRepo}
}

// List implements plan.PlanService.
func (s *PlanServiceImpl) List(ctx context.Context) ([]plan.PlanResponse, error) {
	plans, err := s.PlanRepository.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	responses := make([]plan.PlanResponse, 0, len(plans))
	for _, p := range plans {
		responses = append(responses, plan.NewPlanResponse(p))
	}
	return responses, nil
}

// Create implements plan.PlanService.
// Subtle: this method shadows the method (PlanRepository).Create of PlanServiceImpl.PlanRepository.
func (s *PlanServiceImpl) Create(ctx context.Context, req plan.CreatePlanRequest) (plan.PlanResponse, error) {
	if err := req.Validate(); err != nil {
		return plan.PlanResponse{}, err
	}

	created, err := s.PlanRepository.Create(ctx, plan.Plan{
		Name:     req.Name,
		Price:    req.Price,
		Currency: req.Currency,
		Duration: req.Duration,
		Features: req.Features,
		IsActive: true,
	})
	if err != nil {
		if errors.Is(err, plan.ErrPlanNameExists) {
			return plan.PlanResponse{}, plan.ErrPlanNameExists
		}
		return plan.PlanResponse{}, fmt.Errorf("failed to create plan: %w", err)
	}

	slog.Info("Plan created", "plan_id", created.ID, "name", created.Name)
	return plan.NewPlanResponse(created), nil
}
