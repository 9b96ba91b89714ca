package ports

import (
	"context"
	"time"

	"event_planner/model"
)

type MessageRepo interface {
	Create(ctx context.Context, m *model.Message) error
	Thread(ctx context.Context, userId uint) ([]model.Message, error)
	// MarkRead flags unread messages of the thread written by senderRole.
	MarkRead(ctx context.Context, userId uint, senderRole string) (int64, error)
	UnreadCount(ctx context.Context, userId uint, senderRole string) (int64, error)
	Conversations(ctx context.Context) ([]model.Conversation, error)
}

type NotificationRepo interface {
	Create(ctx context.Context, n *model.Notification) error
	List(ctx context.Context, userId uint, page model.Pagination) ([]model.Notification, int64, error)
	UnreadCount(ctx context.Context, userId uint) (int64, error)
	MarkRead(ctx context.Context, userId, id uint, at time.Time) error
	MarkAllRead(ctx context.Context, userId uint, at time.Time) (int64, error)
}
