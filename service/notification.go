package service

import (
	"context"
	"fmt"
	"time"

	"event_planner/model"
	"event_planner/realtime"
	"event_planner/service/ports"

	"github.com/rs/zerolog"
)

type NotificationService struct {
	repo   ports.NotificationRepo
	broker realtime.Broker
	log    zerolog.Logger
	now    func() time.Time
}

func NewNotificationService(repo ports.NotificationRepo, broker realtime.Broker, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, broker: broker, log: log, now: time.Now}
}

// Notify stores a notification and pushes it to the user's bell. A failed push is only logged.
func (s *NotificationService) Notify(ctx context.Context, userId uint, kind, title, body string, link *string) (*model.Notification, error) {
	n := &model.Notification{
		UserId: userId,
		Kind:   kind,
		Title:  title,
		Body:   body,
		Link:   link,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("notify user %d: %w", userId, err)
	}
	publish(ctx, s.broker, s.log, realtime.NotificationsTopic(userId), realtime.KindInsert, "notifications", n)
	return n, nil
}

func (s *NotificationService) List(ctx context.Context, userId uint, page model.Pagination) ([]model.Notification, int64, error) {
	return s.repo.List(ctx, userId, page)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userId uint) (int64, error) {
	return s.repo.UnreadCount(ctx, userId)
}

func (s *NotificationService) MarkRead(ctx context.Context, userId, id uint) error {
	return s.repo.MarkRead(ctx, userId, id, s.now())
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userId uint) (int64, error) {
	return s.repo.MarkAllRead(ctx, userId, s.now())
}

func publish(ctx context.Context, broker realtime.Broker, log zerolog.Logger, topic, kind, table string, record any) {
	ev, err := realtime.NewEvent(topic, kind, table, record)
	if err == nil {
		err = broker.Publish(ctx, ev)
	}
	if err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("realtime publish failed")
	}
}
