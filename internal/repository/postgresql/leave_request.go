package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveColumns = `
	lr.id, lr.user_id, lr.company_id, lr.request_type, lr.reason, COALESCE(lr.note, ''),
	lr.start_date, lr.end_date, lr.status, lr.processed_by, lr.processed_at,
	lr.created_at, lr.updated_at`

func leaveDest(r *leave.Request, withUser bool) []any {
	d := []any{
		&r.ID, &r.UserID, &r.CompanyID, &r.RequestType, &r.Reason, &r.Note,
		&r.StartDate, &r.EndDate, &r.Status, &r.ProcessedBy, &r.ProcessedAt,
		&r.CreatedAt, &r.UpdatedAt,
	}
	if withUser {
		d = append(d, &r.UserFullName, &r.UserEmail)
	}
	return d
}

// Create implements leave.LeaveRequestRepository. Requests of the same user
// are serialised with a transaction-scoped advisory lock so the overlap
// check and the insert cannot interleave.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	var created leave.Request

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, req.UserID); err != nil {
			return fmt.Errorf("failed to lock leave requests of user: %w", err)
		}

		var overlapping bool
		err := q.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM leave_requests
				WHERE user_id = $1
				  AND status <> $2
				  AND start_date <= $4
				  AND end_date >= $3
			)`, req.UserID, leave.StatusDeclined, req.StartDate, req.EndDate).Scan(&overlapping)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leave requests: %w", err)
		}
		if overlapping {
			return leave.ErrLeaveRequestOverlap
		}

		query := `
			INSERT INTO leave_requests AS lr (
				user_id, company_id, request_type, reason, note, start_date, end_date, status
			) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
			RETURNING ` + leaveColumns

		return q.QueryRow(ctx, query,
			req.UserID,
			req.CompanyID,
			req.RequestType,
			req.Reason,
			req.Note,
			req.StartDate,
			req.EndDate,
			leave.StatusPending,
		).Scan(leaveDest(&created, false)...)
	})
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestOverlap) {
			return leave.Request{}, err
		}
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id, companyID string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `, u.full_name, u.email
		FROM leave_requests lr
		JOIN users u ON u.id = lr.user_id
		WHERE lr.id = $1 AND lr.company_id = $2`

	var found leave.Request
	if err := q.QueryRow(ctx, query, id, companyID).Scan(leaveDest(&found, true)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return found, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, companyID string, filter leave.LeaveFilter) ([]leave.Request, int64, error) {
	return r.list(ctx, "lr.company_id = $1", companyID, filter)
}

// ListByUser implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByUser(ctx context.Context, userID string, filter leave.LeaveFilter) ([]leave.Request, int64, error) {
	return r.list(ctx, "lr.user_id = $1", userID, filter)
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, scope string, scopeID string, filter leave.LeaveFilter) ([]leave.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := scope
	args := []any{scopeID}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND lr.status = $%d", len(args))
	}

	from := `
		FROM leave_requests lr
		JOIN users u ON u.id = lr.user_id
		WHERE ` + where

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*)`+from, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `SELECT ` + leaveColumns + `, u.full_name, u.email` + from +
		fmt.Sprintf(" ORDER BY lr.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		var lr leave.Request
		if err := rows.Scan(leaveDest(&lr, true)...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests AS lr
		SET status = $1, processed_by = $2, processed_at = $3, updated_at = NOW()
		FROM users u
		WHERE lr.id = $4 AND lr.company_id = $5 AND lr.status = $6 AND u.id = lr.user_id
		RETURNING ` + leaveColumns + `, u.full_name, u.email`

	var updated leave.Request
	err := q.QueryRow(ctx, query,
		req.Status,
		req.ProcessedBy,
		req.ProcessedAt,
		req.ID,
		req.CompanyID,
		leave.StatusPending,
	).Scan(leaveDest(&updated, true)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveRequestAlreadyProcessed
		}
		return leave.Request{}, fmt.Errorf("failed to update leave request status: %w", err)
	}
	return updated, nil
}
