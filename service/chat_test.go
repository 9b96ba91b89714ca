package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"event_planner/constants"
	"event_planner/model"
	"event_planner/realtime"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatFixture struct {
	users         *fakeUserRepo
	messages      *fakeMessageRepo
	notifications *fakeNotificationRepo
	broker        *realtime.MemoryBroker
	svc           *ChatService
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	f := &chatFixture{
		users:         newFakeUserRepo(),
		notifications: &fakeNotificationRepo{},
		broker:        realtime.NewMemoryBroker(),
	}
	f.messages = &fakeMessageRepo{users: f.users}
	notify := NewNotificationService(f.notifications, f.broker, zerolog.Nop())
	f.svc = NewChatService(f.messages, f.users, notify, f.broker, zerolog.Nop())
	t.Cleanup(func() { f.broker.Close() })
	return f
}

func TestSortConversations(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	list := []model.Conversation{
		{UserId: 1, UnreadCount: 0, LastMessageAt: base.Add(3 * time.Hour)},
		{UserId: 2, UnreadCount: 2, LastMessageAt: base},
		{UserId: 3, UnreadCount: 2, LastMessageAt: base.Add(time.Hour)},
		{UserId: 4, UnreadCount: 5, LastMessageAt: base.Add(-time.Hour)},
		{UserId: 5, UnreadCount: 0, LastMessageAt: base.Add(4 * time.Hour)},
	}
	SortConversations(list)

	var order []uint
	for _, c := range list {
		order = append(order, c.UserId)
	}
	assert.Equal(t, []uint{4, 3, 2, 5, 1}, order)
}

func TestSendPublishesToBothTopics(t *testing.T) {
	f := newChatFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	user := f.users.add("ana@example.com", constants.ROLE_USER)

	all, stopAll, err := f.broker.Subscribe(ctx, realtime.TopicMessages)
	require.NoError(t, err)
	defer stopAll()
	mine, stopMine, err := f.broker.Subscribe(ctx, realtime.UserMessagesTopic(user.ID))
	require.NoError(t, err)
	defer stopMine()

	msg, err := f.svc.Send(ctx, user.ID, "  Hello there  ")
	require.NoError(t, err)
	assert.Equal(t, "Hello there", msg.Content)
	assert.Equal(t, constants.SENDER_USER, msg.SenderRole)

	for _, ch := range []<-chan realtime.Event{all, mine} {
		select {
		case ev := <-ch:
			var got model.Message
			require.NoError(t, ev.Decode(&got))
			assert.Equal(t, realtime.KindInsert, ev.Kind)
			assert.Equal(t, "Hello there", got.Content)
		case <-time.After(time.Second):
			t.Fatal("no realtime event")
		}
	}

	_, err = f.svc.Send(ctx, user.ID, "   ")
	assert.ErrorIs(t, err, constants.ErrValidation)
}

func TestStaffReadingMarksUserMessagesRead(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()
	ana := f.users.add("ana@example.com", constants.ROLE_USER)
	ben := f.users.add("ben@example.com", constants.ROLE_USER)

	_, err := f.svc.Send(ctx, ana.ID, "first")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, ana.ID, "second")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, ben.ID, "hi")
	require.NoError(t, err)

	list, err := f.svc.Conversations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ana.ID, list[0].UserId)
	assert.Equal(t, int64(2), list[0].UnreadCount)
	assert.Equal(t, "ana@example.com", list[0].Email)

	thread, err := f.svc.OpenThread(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "first", thread[0].Content)

	list, err = f.svc.Conversations(ctx)
	require.NoError(t, err)
	assert.Equal(t, ben.ID, list[0].UserId)
	for _, c := range list {
		if c.UserId == ana.ID {
			assert.Zero(t, c.UnreadCount)
		}
	}

	_, err = f.svc.OpenThread(ctx, 999)
	assert.ErrorIs(t, err, constants.ErrUserNotFound)
}

func TestReplyNotifiesUser(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()
	staff := f.users.add("staff@example.com", constants.ROLE_ADMIN)
	ana := f.users.add("ana@example.com", constants.ROLE_USER)

	long := strings.Repeat("x", 120)
	reply, err := f.svc.Reply(ctx, staff.ID, ana.ID, long)
	require.NoError(t, err)
	assert.Equal(t, constants.SENDER_ADMIN, reply.SenderRole)
	assert.Equal(t, ana.ID, reply.UserId)
	assert.Equal(t, staff.ID, reply.SenderId)

	notes := f.notifications.forUser(ana.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, constants.NOTIFY_CHAT_REPLY, notes[0].Kind)
	assert.Equal(t, strings.Repeat("x", 80)+"...", notes[0].Body)

	unread, err := f.svc.MyUnread(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	thread, err := f.svc.MyThread(ctx, ana.ID)
	require.NoError(t, err)
	assert.Len(t, thread, 1)
	unread, err = f.svc.MyUnread(ctx, ana.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	_, err = f.svc.Reply(ctx, staff.ID, 999, "hello")
	assert.ErrorIs(t, err, constants.ErrUserNotFound)
}
