package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/plan"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/password"
)

type UserServiceImpl struct {
	user.UserRepository
	company.CompanyRepository
	plan.PlanRepository

	// Used for reminder checks of users whose company has no timezone.
	defaultLocation *time.Location
	now             func() time.Time
}

func NewUserService(userRepo user.UserRepository, companyRepo company.CompanyRepository, planRepo plan.PlanRepository, defaultLocation *time.Location) user.UserService {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	return &UserServiceImpl{
		UserRepository:    userRepo,
		CompanyRepository: companyRepo,
		PlanRepository:    planRepo,
		defaultLocation:   defaultLocation,
		now:               time.Now,
	}
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if req.CompanyID == "" {
		return user.UserResponse{}, user.ErrCompanyIDRequired
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if err := s.checkSeatLimit(ctx, req.CompanyID); err != nil {
		return user.UserResponse{}, err
	}

	_, err := s.UserRepository.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return user.UserResponse{}, user.ErrUserEmailExists
	case !errors.Is(err, user.ErrUserNotFound):
		return user.UserResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	companyID := req.CompanyID
	created, err := s.UserRepository.Create(ctx, user.User{
		CompanyID:    &companyID,
		Email:        req.Email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: &hash,
		Role:         user.RoleUser,
		WorkDays:     req.WorkDays,
		Reminders:    req.Reminders,
	})
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) {
			return user.UserResponse{}, user.ErrUserEmailExists
		}
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User created", "user_id", created.ID, "company_id", companyID)
	return user.NewUserResponse(created), nil
}

// checkSeatLimit rejects a new employee when the company's plan caps the
// number of employees and the cap is already reached.
func (s *UserServiceImpl) checkSeatLimit(ctx context.Context, companyID string) error {
	c, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to get company: %w", err)
	}
	if c.PlanID == nil {
		return nil
	}

	p, err := s.PlanRepository.GetByID(ctx, *c.PlanID)
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			slog.Warn("Company references a missing plan, skipping seat limit", "company_id", companyID, "plan_id", *c.PlanID)
			return nil
		}
		return fmt.Errorf("failed to get plan: %w", err)
	}

	limit, ok := p.SeatLimit()
	if !ok {
		return nil
	}

	count, err := s.UserRepository.CountByCompany(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count >= int64(limit) {
		return user.ErrSeatLimitReached
	}
	return nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, companyID string, filter user.UserFilter) (user.ListUserResponse, error) {
	if err := filter.Validate(); err != nil {
		return user.ListUserResponse{}, err
	}

	users, total, err := s.UserRepository.List(ctx, companyID, filter)
	if err != nil {
		return user.ListUserResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}

	return user.ListUserResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Users:      responses,
	}, nil
}

// GetByID implements user.UserService. Users of other companies are reported
// as not found.
func (s *UserServiceImpl) GetByID(ctx context.Context, companyID, id string) (user.UserResponse, error) {
	found, err := s.companyMember(ctx, companyID, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(found), nil
}

// UpdateProfile implements user.UserService.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id string, req user.UpdateProfileRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)
		req.FullName = &trimmed
	}

	updated, err := s.UserRepository.UpdateProfile(ctx, id, req)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to update profile: %w", err)
	}

	slog.Debug("Profile updated", "user_id", id)
	return user.NewUserResponse(updated), nil
}

// GetProfile implements user.UserService.
func (s *UserServiceImpl) GetProfile(ctx context.Context, id string) (user.UserResponse, error) {
	found, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user.NewUserResponse(found), nil
}

// ReminderStatus implements user.UserService. Today is evaluated in the
// timezone of the user's company.
func (s *UserServiceImpl) ReminderStatus(ctx context.Context, id string) (schedule.ReminderStatus, error) {
	found, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return schedule.ReminderStatus{}, user.ErrUserNotFound
		}
		return schedule.ReminderStatus{}, fmt.Errorf("failed to get user: %w", err)
	}

	loc := s.defaultLocation
	if found.CompanyID != nil {
		c, err := s.CompanyRepository.GetByID(ctx, *found.CompanyID)
		if err != nil && !errors.Is(err, company.ErrCompanyNotFound) {
			return schedule.ReminderStatus{}, fmt.Errorf("failed to get company: %w", err)
		}
		if err == nil {
			loc = c.Location(s.defaultLocation)
		}
	}

	return schedule.CheckReminders(found.WorkDays, found.Reminders, s.now().In(loc)), nil
}

// companyMember loads user id and reports it as not found unless it belongs
// to companyID.
func (s *UserServiceImpl) companyMember(ctx context.Context, companyID, id string) (user.User, error) {
	found, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	if found.CompanyID == nil || *found.CompanyID != companyID {
		return user.User{}, user.ErrUserNotFound
	}
	return found, nil
}

// guardPrivileged rejects demoting or deleting the acting admin or the
// company owner.
func (s *UserServiceImpl) guardPrivileged(ctx context.Context, companyID, adminID, targetID string) error {
	if targetID == adminID {
		return user.ErrCannotModifySelf
	}
	c, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to get company: %w", err)
	}
	if c.AdminID == targetID {
		return user.ErrCompanyOwnerProtected
	}
	return nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if req.CompanyID == "" {
		return user.UserResponse{}, user.ErrCompanyIDRequired
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	target, err := s.companyMember(ctx, req.CompanyID, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Role != nil && user.Role(*req.Role) != target.Role {
		if err := s.guardPrivileged(ctx, req.CompanyID, req.AdminID, target.ID); err != nil {
			return user.UserResponse{}, err
		}
		// A demoted admin takes an employee seat.
		if user.Role(*req.Role) == user.RoleUser {
			if err := s.checkSeatLimit(ctx, req.CompanyID); err != nil {
				return user.UserResponse{}, err
			}
		}
	}

	if req.Email != nil && *req.Email != target.Email {
		_, err := s.UserRepository.GetByEmail(ctx, *req.Email)
		switch {
		case err == nil:
			return user.UserResponse{}, user.ErrUserEmailExists
		case !errors.Is(err, user.ErrUserNotFound):
			return user.UserResponse{}, fmt.Errorf("failed to get user by email: %w", err)
		}
	}

	updated, err := s.UserRepository.Update(ctx, req)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) || errors.Is(err, user.ErrUserEmailExists) {
			return user.UserResponse{}, err
		}
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	slog.Info("User updated by admin", "user_id", updated.ID, "admin_id", req.AdminID, "role", updated.Role)
	return user.NewUserResponse(updated), nil
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, companyID, adminID, id string) error {
	if companyID == "" {
		return user.ErrCompanyIDRequired
	}
	if _, err := s.companyMember(ctx, companyID, id); err != nil {
		return err
	}
	if err := s.guardPrivileged(ctx, companyID, adminID, id); err != nil {
		return err
	}

	if err := s.UserRepository.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("User deleted", "user_id", id, "company_id", companyID, "admin_id", adminID)
	return nil
}

// ChangePassword implements user.UserService.
func (s *UserServiceImpl) ChangePassword(ctx context.Context, req user.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	found, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if found.PasswordHash == nil {
		return user.ErrCurrentPasswordWrong
	}
	if err := password.Compare(*found.PasswordHash, req.CurrentPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return user.ErrCurrentPasswordWrong
		}
		return fmt.Errorf("failed to check current password: %w", err)
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.UserRepository.UpdatePassword(ctx, found.ID, hash); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("Password changed", "user_id", found.ID)
	return nil
}
