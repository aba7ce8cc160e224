package plan

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PlanResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Duration  string          `json:"duration"`
	Features  string          `json:"features"`
	SeatLimit *int            `json:"seat_limit,omitempty"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewPlanResponse(p Plan) PlanResponse {
	resp := PlanResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Currency:  p.Currency,
		Duration:  p.Duration,
		Features:  p.Features,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if limit, ok := p.SeatLimit(); ok {
		resp.SeatLimit = &limit
	}
	return resp
}

type CreatePlanRequest struct {
	Name     string          `json:"name" validate:"required,oneof='Free Plan' 'Standard Plan' 'Premium Plan' 'Enterprise Plan'"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency" validate:"omitempty,len=3"`
	Duration string          `json:"duration" validate:"omitempty,oneof=Month Year"`
	Features string          `json:"features" validate:"required"`
}

func (r *CreatePlanRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	if r.Price.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "price",
			Message: "price must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	if r.Currency == "" {
		r.Currency = "NGN"
	}
	r.Currency = strings.ToUpper(r.Currency)
	if r.Duration == "" {
		r.Duration = "Month"
	}
	return nil
}
