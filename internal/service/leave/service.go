package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/user"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	user.UserRepository
	company.CompanyRepository
	notifier notification.Notifier
	now      func() time.Time
}

func NewLeaveService(leaveRepo leave.LeaveRequestRepository, userRepo user.UserRepository, companyRepo company.CompanyRepository, notifier notification.Notifier) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRepo,
		UserRepository:         userRepo,
		CompanyRepository:      companyRepo,
		notifier:               notifier,
		now:                    time.Now,
	}
}

// Create implements leave.LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	start, end, err := req.Validate()
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	requester, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return leave.LeaveResponse{}, user.ErrUserNotFound
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	if requester.CompanyID == nil {
		return leave.LeaveResponse{}, user.ErrCompanyIDRequired
	}

	created, err := s.LeaveRequestRepository.Create(ctx, leave.Request{
		UserID:      requester.ID,
		CompanyID:   *requester.CompanyID,
		RequestType: req.RequestType,
		Reason:      req.Reason,
		Note:        req.Note,
		StartDate:   start,
		EndDate:     end,
		Status:      leave.StatusPending,
	})
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestOverlap) {
			return leave.LeaveResponse{}, leave.ErrLeaveRequestOverlap
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("Leave request created", "request_id", created.ID, "user_id", created.UserID, "start_date", req.StartDate, "end_date", req.EndDate)
	created.UserFullName = &requester.FullName
	s.notifyAdmin(ctx, created)
	return leave.NewLeaveResponse(created), nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, userID string, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	requests, total, err := s.LeaveRequestRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return newListResponse(requests, total, filter), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, companyID string, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	requests, total, err := s.LeaveRequestRepository.List(ctx, companyID, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return newListResponse(requests, total, filter), nil
}

// GetByID implements leave.LeaveService.
func (s *LeaveServiceImpl) GetByID(ctx context.Context, companyID, id string) (leave.LeaveResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveResponse{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}
	return leave.NewLeaveResponse(request), nil
}

// UpdateStatus implements leave.LeaveService. The requester is notified once
// the decision is stored.
func (s *LeaveServiceImpl) UpdateStatus(ctx context.Context, req leave.UpdateStatusRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, req.ID, req.CompanyID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveResponse{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	if err := request.Decide(leave.Status(req.Status), req.AdminID, s.now()); err != nil {
		return leave.LeaveResponse{}, err
	}

	updated, err := s.LeaveRequestRepository.UpdateStatus(ctx, request)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed) {
			return leave.LeaveResponse{}, leave.ErrLeaveRequestAlreadyProcessed
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	s.notifyRequester(ctx, updated)

	slog.Info("Leave request processed", "request_id", updated.ID, "status", updated.Status, "admin_id", req.AdminID)
	return leave.NewLeaveResponse(updated), nil
}

// notifyAdmin tells the company admin about a new request. Failures are
// logged; the request itself is already stored.
func (s *LeaveServiceImpl) notifyAdmin(ctx context.Context, r leave.Request) {
	c, err := s.CompanyRepository.GetByID(ctx, r.CompanyID)
	if err != nil {
		slog.Warn("Failed to resolve company admin for leave notification", "request_id", r.ID, "company_id", r.CompanyID, "error", err)
		return
	}

	requester := r.UserID
	if r.UserFullName != nil && *r.UserFullName != "" {
		requester = *r.UserFullName
	}

	companyID := r.CompanyID
	err = s.notifier.Notify(ctx, notification.CreateNotificationRequest{
		CompanyID:   &companyID,
		RecipientID: c.AdminID,
		Type:        notification.TypeLeaveRequestCreated,
		Title:       "New leave request",
		Message:     fmt.Sprintf("%s requested %s from %s to %s.", requester, r.RequestType, r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02")),
		Data: map[string]interface{}{
			"request_id":   r.ID,
			"request_type": r.RequestType,
			"user_id":      r.UserID,
		},
	})
	if err != nil {
		slog.Warn("Failed to notify company admin", "request_id", r.ID, "admin_id", c.AdminID, "error", err)
	}
}

func (s *LeaveServiceImpl) notifyRequester(ctx context.Context, r leave.Request) {
	notifType := notification.TypeLeaveRequestAccepted
	if r.Status == leave.StatusDeclined {
		notifType = notification.TypeLeaveRequestDeclined
	}

	companyID := r.CompanyID
	err := s.notifier.Notify(ctx, notification.CreateNotificationRequest{
		CompanyID:   &companyID,
		RecipientID: r.UserID,
		Type:        notifType,
		Title:       "Leave request " + string(r.Status),
		Message:     fmt.Sprintf("Your %s request (%s to %s) was %s.", r.RequestType, r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"), r.Status),
		Data: map[string]interface{}{
			"request_id":   r.ID,
			"request_type": r.RequestType,
			"status":       string(r.Status),
		},
	})
	if err != nil {
		slog.Warn("Failed to notify leave requester", "request_id", r.ID, "user_id", r.UserID, "error", err)
	}
}

func newListResponse(requests []leave.Request, total int64, filter leave.LeaveFilter) leave.ListLeaveResponse {
	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveResponse(r))
	}

	return leave.ListLeaveResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   responses,
	}
}
