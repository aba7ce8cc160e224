package plan

import "errors"

var (
	ErrPlanNotFound   = errors.New("plan not found")
	ErrPlanNameExists = errors.New("plan with this name already exists")
)
