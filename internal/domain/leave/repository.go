package leave

import "context"

//go:generate mockgen -source=repository.go -destination=mocks/repository_mock.go -package=mocks

type LeaveRequestRepository interface {
	// Create inserts the request unless a blocking request of the same user
	// overlaps its dates, in which case ErrLeaveRequestOverlap is returned.
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id, companyID string) (Request, error)
	List(ctx context.Context, companyID string, filter LeaveFilter) ([]Request, int64, error)
	ListByUser(ctx context.Context, userID string, filter LeaveFilter) ([]Request, int64, error)
	// UpdateStatus persists a decision only while the stored row is still
	// pending; otherwise ErrLeaveRequestAlreadyProcessed.
	UpdateStatus(ctx context.Context, req Request) (Request, error)
}
