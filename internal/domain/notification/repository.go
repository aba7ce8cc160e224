package notification

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, n Notification) error
	CreateBatch(ctx context.Context, notifications []Notification) error
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Notification, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	// MarkAsRead returns the number of notifications that changed state.
	MarkAsRead(ctx context.Context, userID string, ids []string) (int64, error)
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
}
