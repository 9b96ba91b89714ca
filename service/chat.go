package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"event_planner/constants"
	"event_planner/model"
	"event_planner/realtime"
	"event_planner/service/ports"

	"github.com/rs/zerolog"
)

type ChatService struct {
	messages      ports.MessageRepo
	users         ports.UserRepo
	notifications *NotificationService
	broker        realtime.Broker
	log           zerolog.Logger
}

func NewChatService(
	messages ports.MessageRepo,
	users ports.UserRepo,
	notifications *NotificationService,
	broker realtime.Broker,
	log zerolog.Logger,
) *ChatService {
	return &ChatService{
		messages:      messages,
		users:         users,
		notifications: notifications,
		broker:        broker,
		log:           log,
	}
}

func (s *ChatService) insert(ctx context.Context, msg *model.Message) error {
	msg.Content = strings.TrimSpace(msg.Content)
	if msg.Content == "" {
		return fmt.Errorf("%w: empty message", constants.ErrValidation)
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return err
	}
	publish(ctx, s.broker, s.log, realtime.TopicMessages, realtime.KindInsert, "messages", msg)
	publish(ctx, s.broker, s.log, realtime.UserMessagesTopic(msg.UserId), realtime.KindInsert, "messages", msg)
	return nil
}

// Send posts a message from a user to staff.
func (s *ChatService) Send(ctx context.Context, userId uint, content string) (*model.Message, error) {
	msg := &model.Message{
		UserId:     userId,
		SenderId:   userId,
		SenderRole: constants.SENDER_USER,
		Content:    content,
	}
	if err := s.insert(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// MyThread returns the user's conversation and marks staff replies read.
func (s *ChatService) MyThread(ctx context.Context, userId uint) ([]model.Message, error) {
	if _, err := s.messages.MarkRead(ctx, userId, constants.SENDER_ADMIN); err != nil {
		return nil, err
	}
	return s.messages.Thread(ctx, userId)
}

func (s *ChatService) MyUnread(ctx context.Context, userId uint) (int64, error) {
	return s.messages.UnreadCount(ctx, userId, constants.SENDER_ADMIN)
}

// SortConversations orders by unread count, then by latest message, both descending.
func SortConversations(list []model.Conversation) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].UnreadCount != list[j].UnreadCount {
			return list[i].UnreadCount > list[j].UnreadCount
		}
		return list[i].LastMessageAt.After(list[j].LastMessageAt)
	})
}

func (s *ChatService) Conversations(ctx context.Context) ([]model.Conversation, error) {
	list, err := s.messages.Conversations(ctx)
	if err != nil {
		return nil, err
	}
	SortConversations(list)
	return list, nil
}

// OpenThread loads a user's conversation for staff and marks the user's messages read.
func (s *ChatService) OpenThread(ctx context.Context, userId uint) ([]model.Message, error) {
	if _, err := s.users.GetByID(ctx, userId); err != nil {
		return nil, err
	}
	if _, err := s.messages.MarkRead(ctx, userId, constants.SENDER_USER); err != nil {
		return nil, err
	}
	return s.messages.Thread(ctx, userId)
}

// Reply posts a staff message into userId's thread and rings their bell.
func (s *ChatService) Reply(ctx context.Context, staffId, userId uint, content string) (*model.Message, error) {
	if _, err := s.users.GetByID(ctx, userId); err != nil {
		return nil, err
	}
	msg := &model.Message{
		UserId:     userId,
		SenderId:   staffId,
		SenderRole: constants.SENDER_ADMIN,
		Content:    content,
	}
	if err := s.insert(ctx, msg); err != nil {
		return nil, err
	}
	link := "/dashboard/messages"
	if _, err := s.notifications.Notify(ctx, userId, constants.NOTIFY_CHAT_REPLY, "New reply from our team", preview(msg.Content), &link); err != nil {
		s.log.Error().Err(err).Uint("userId", userId).Msg("reply notification failed")
	}
	return msg, nil
}

func preview(content string) string {
	const limit = 80
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit]) + "..."
}
