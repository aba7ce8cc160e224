package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

const notificationInsertColumns = 9

// Create implements notification.Repository.
func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) error {
	return r.CreateBatch(ctx, []notification.Notification{n})
}

// CreateBatch inserts all notifications with a single multi-row statement.
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(notifications))
	valueArgs := make([]interface{}, 0, len(notifications)*notificationInsertColumns)

	for i, n := range notifications {
		if n.ID == "" {
			n.ID = uuid.New().String()
		}

		var dataJSON []byte
		if n.Data != nil {
			var err error
			dataJSON, err = json.Marshal(n.Data)
			if err != nil {
				return fmt.Errorf("failed to marshal notification data: %w", err)
			}
		}

		placeholders := make([]string, notificationInsertColumns)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", i*notificationInsertColumns+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ", ")+")")
		valueArgs = append(valueArgs,
			n.ID,
			n.CompanyID,
			n.RecipientID,
			string(n.Type),
			n.Title,
			n.Message,
			dataJSON,
			n.IsRead,
			n.CreatedAt,
		)
	}

	query := `
		INSERT INTO notifications (id, company_id, recipient_id, type, title, message, data, is_read, created_at)
		VALUES ` + strings.Join(valueStrings, ", ")

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to batch create notifications: %w", err)
	}
	return nil
}

// ListByUser implements notification.Repository.
func (r *notificationRepository) ListByUser(ctx context.Context, userID string, filter notification.ListFilter) ([]notification.Notification, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "recipient_id = $1"
	if filter.UnreadOnly {
		where += " AND is_read = FALSE"
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE `+where, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT id, company_id, recipient_id, type, title, message, data, is_read, read_at, created_at
		FROM notifications
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := q.Query(ctx, query, userID, filter.Limit, (filter.Page-1)*filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications, err := collectNotifications(rows)
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func collectNotifications(rows pgx.Rows) ([]notification.Notification, error) {
	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		var dataJSON []byte
		if err := rows.Scan(
			&n.ID, &n.CompanyID, &n.RecipientID, &n.Type, &n.Title, &n.Message,
			&dataJSON, &n.IsRead, &n.ReadAt, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		if len(dataJSON) > 0 {
			if err := json.Unmarshal(dataJSON, &n.Data); err != nil {
				return nil, fmt.Errorf("failed to unmarshal notification data: %w", err)
			}
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// CountUnread implements notification.Repository.
func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead implements notification.Repository. Ids of other recipients are
// skipped; already read ones still count as matched.
func (r *notificationRepository) MarkAsRead(ctx context.Context, userID string, ids []string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = COALESCE(read_at, NOW())
		WHERE recipient_id = $1 AND id = ANY($2::uuid[])`, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MarkAllAsRead implements notification.Repository.
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE recipient_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications as read: %w", err)
	}
	return tag.RowsAffected(), nil
}
