package http

import (
	"net/http"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/plan"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/handler/http/response"
)

type PlanHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
}

type planHandlerImpl struct {
	planService plan.PlanService
}

func NewPlanHandler(planService plan.PlanService) PlanHandler {
	return &planHandlerImpl{planService: planService}
}

// List implements PlanHandler.
func (h *planHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.planService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements PlanHandler.
func (h *planHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req plan.CreatePlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.planService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Plan created successfully", result)
}
