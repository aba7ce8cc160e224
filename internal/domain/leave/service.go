package leave

import "context"

type LeaveService interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	ListMine(ctx context.Context, userID string, filter LeaveFilter) (ListLeaveResponse, error)
	List(ctx context.Context, companyID string, filter LeaveFilter) (ListLeaveResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (LeaveResponse, error)
}
