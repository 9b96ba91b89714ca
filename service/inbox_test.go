package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"event_planner/constants"
	"event_planner/model"
	"event_planner/realtime"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePanel struct {
	mu      sync.Mutex
	reloads int
	opened  []uint
	replies []string
}

func (p *fakePanel) Conversations(context.Context) ([]model.Conversation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reloads++
	return []model.Conversation{{UserId: 1}}, nil
}

func (p *fakePanel) OpenThread(_ context.Context, userId uint) ([]model.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opened = append(p.opened, userId)
	return []model.Message{{UserId: userId, SenderRole: constants.SENDER_USER, Content: "earlier"}}, nil
}

func (p *fakePanel) Reply(_ context.Context, staffId, userId uint, content string) (*model.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replies = append(p.replies, content)
	return &model.Message{UserId: userId, SenderId: staffId, SenderRole: constants.SENDER_ADMIN, Content: content}, nil
}

func (p *fakePanel) counts() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reloads, len(p.replies)
}

type inboxHarness struct {
	panel  *fakePanel
	inbox  *Inbox
	frames chan Frame
	cancel context.CancelFunc
	done   chan error
}

func newInboxHarness(t *testing.T) *inboxHarness {
	t.Helper()
	h := &inboxHarness{panel: &fakePanel{}, frames: make(chan Frame, 64), done: make(chan error, 1)}
	h.inbox = NewInbox(h.panel, 99, func(f Frame) error {
		h.frames <- f
		return nil
	}, zerolog.Nop())
	return h
}

func (h *inboxHarness) start(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.done <- h.inbox.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-h.done
	})
}

func (h *inboxHarness) next(t *testing.T) Frame {
	t.Helper()
	select {
	case f := <-h.frames:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
		return Frame{}
	}
}

func (h *inboxHarness) expect(t *testing.T, types ...string) []Frame {
	t.Helper()
	out := make([]Frame, 0, len(types))
	for _, want := range types {
		f := h.next(t)
		require.Equal(t, want, f.Type, "frames so far: %+v", out)
		out = append(out, f)
	}
	return out
}

func messageEvent(t *testing.T, userId uint, role, content string) realtime.Event {
	t.Helper()
	ev, err := realtime.NewEvent(realtime.TopicMessages, realtime.KindInsert, "messages",
		model.Message{UserId: userId, SenderId: userId, SenderRole: role, Content: content})
	require.NoError(t, err)
	return ev
}

func TestInboxCoalescesReloads(t *testing.T) {
	h := newInboxHarness(t)
	for i := 0; i < 5; i++ {
		require.True(t, h.inbox.Deliver(messageEvent(t, 7, constants.SENDER_USER, "ping")))
	}
	h.start(t)

	h.expect(t, FrameConversations,
		FrameToast, FrameToast, FrameToast, FrameToast, FrameToast,
		FrameConversations)

	reloads, _ := h.panel.counts()
	assert.Equal(t, 2, reloads)
}

func TestInboxAppendsToOpenThread(t *testing.T) {
	h := newInboxHarness(t)
	h.start(t)
	h.expect(t, FrameConversations)

	h.inbox.Command(Command{Action: CommandSelect, UserId: 5})
	frames := h.expect(t, FrameThread, FrameConversations)
	assert.Equal(t, uint(5), frames[0].UserId)
	assert.Len(t, frames[0].Messages, 1)

	h.inbox.Deliver(messageEvent(t, 5, constants.SENDER_ADMIN, "from colleague"))
	h.inbox.Deliver(messageEvent(t, 5, constants.SENDER_USER, "thanks"))
	frames = h.expect(t, FrameMessage, FrameMessage, FrameConversations)
	assert.Equal(t, "from colleague", frames[0].Message.Content)
	assert.Equal(t, "thanks", frames[1].Message.Content)
}

func TestInboxMuteSuppressesToasts(t *testing.T) {
	h := newInboxHarness(t)
	h.start(t)
	h.expect(t, FrameConversations)

	h.inbox.Command(Command{Action: CommandMute, UserId: 3})
	state := h.expect(t, FrameState)[0]
	assert.True(t, state.Muted)
	assert.False(t, state.Blocked)

	h.inbox.Deliver(messageEvent(t, 3, constants.SENDER_USER, "muted"))
	h.expect(t, FrameConversations)

	h.inbox.Deliver(messageEvent(t, 4, constants.SENDER_USER, "loud"))
	toast := h.expect(t, FrameToast, FrameConversations)[0]
	assert.Equal(t, uint(4), toast.UserId)

	h.inbox.Command(Command{Action: CommandUnmute, UserId: 3})
	assert.False(t, h.expect(t, FrameState)[0].Muted)
	h.inbox.Deliver(messageEvent(t, 3, constants.SENDER_USER, "back"))
	h.expect(t, FrameToast, FrameConversations)
}

func TestInboxBlockRefusesReplyButKeepsReceiving(t *testing.T) {
	h := newInboxHarness(t)
	h.start(t)
	h.expect(t, FrameConversations)

	h.inbox.Command(Command{Action: CommandSelect, UserId: 5})
	h.expect(t, FrameThread, FrameConversations)
	h.inbox.Command(Command{Action: CommandBlock, UserId: 5})
	assert.True(t, h.expect(t, FrameState)[0].Blocked)

	h.inbox.Command(Command{Action: CommandReply, Content: "hello"})
	errFrame := h.expect(t, FrameError)[0]
	assert.Equal(t, constants.THREAD_BLOCKED, errFrame.Error)

	h.inbox.Deliver(messageEvent(t, 5, constants.SENDER_USER, "still here"))
	msg := h.expect(t, FrameMessage, FrameConversations)[0]
	assert.Equal(t, "still here", msg.Message.Content)

	h.inbox.Command(Command{Action: CommandUnblock, UserId: 5})
	h.expect(t, FrameState)
	h.inbox.Command(Command{Action: CommandReply, Content: "hello"})
	h.inbox.Command(Command{Action: CommandMute, UserId: 5})
	h.expect(t, FrameState)

	_, replies := h.panel.counts()
	assert.Equal(t, 1, replies)
}

func TestInboxReplyNeedsSelection(t *testing.T) {
	h := newInboxHarness(t)
	h.start(t)
	h.expect(t, FrameConversations)

	h.inbox.Command(Command{Action: CommandReply, Content: "hello"})
	assert.NotEmpty(t, h.expect(t, FrameError)[0].Error)
	h.inbox.Command(Command{Action: "dance"})
	h.expect(t, FrameError)
}

func TestInboxStopsAcceptingAfterRun(t *testing.T) {
	h := newInboxHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.inbox.Run(ctx) }()
	h.expect(t, FrameConversations)
	cancel()
	require.NoError(t, <-done)

	assert.False(t, h.inbox.Deliver(messageEvent(t, 1, constants.SENDER_USER, "late")))
	assert.False(t, h.inbox.Command(Command{Action: CommandMute, UserId: 1}))
}
