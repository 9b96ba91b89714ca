package repository

import (
	"context"
	"fmt"
	"time"

	"event_planner/constants"
	"event_planner/model"
	"event_planner/utils"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *model.Message) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (r *MessageRepository) Thread(ctx context.Context, userId uint) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("load thread: %w", err)
	}
	return messages, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, userId uint, senderRole string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("user_id = ? AND sender_role = ? AND is_read = ?", userId, senderRole, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, fmt.Errorf("mark thread read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *MessageRepository) UnreadCount(ctx context.Context, userId uint, senderRole string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("user_id = ? AND sender_role = ? AND is_read = ?", userId, senderRole, false).
		Count(&count).Error
	return count, err
}

// Conversations lists every user who wrote at least once, unread first, then most recent.
func (r *MessageRepository) Conversations(ctx context.Context) ([]model.Conversation, error) {
	var rows []model.Conversation
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id AS user_id,
		       u.full_name,
		       u.email,
		       COUNT(*) FILTER (WHERE m.sender_role = ? AND m.is_read = false) AS unread_count,
		       (ARRAY_AGG(m.content ORDER BY m.created_at DESC, m.id DESC))[1] AS last_message,
		       MAX(m.created_at) AS last_message_at
		FROM messages m
		JOIN users u ON u.id = m.user_id
		GROUP BY u.id, u.full_name, u.email
		HAVING COUNT(*) FILTER (WHERE m.sender_role = ?) > 0
		ORDER BY unread_count DESC, last_message_at DESC
	`, constants.SENDER_USER, constants.SENDER_USER).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return rows, nil
}

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) List(ctx context.Context, userId uint, page model.Pagination) ([]model.Notification, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Notification{}).Where("user_id = ?", userId)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}
	var items []model.Notification
	query = utils.ApplyPagination(query.Order("created_at DESC, id DESC"), page.Limit, page.Page)
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return items, total, nil
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userId uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userId, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userId, id uint, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userId).
		Updates(map[string]any{"is_read": true, "read_at": at})
	if res.Error != nil {
		return fmt.Errorf("mark notification read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return constants.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userId uint, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userId, false).
		Updates(map[string]any{"is_read": true, "read_at": at})
	return res.RowsAffected, res.Error
}
