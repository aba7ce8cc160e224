package notification

import (
	"context"
)

// Notifier queues a notification. It is stored and then pushed to the
// recipient's open event streams.
type Notifier interface {
	Notify(ctx context.Context, req CreateNotificationRequest) error
}

type Service interface {
	Notifier

	List(ctx context.Context, userID string, filter ListFilter) (NotificationListResponse, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, userID string) error

	// SSE subscription
	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())

	// Stop flushes pending notifications and stops the workers.
	Stop()
}
