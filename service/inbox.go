package service

import (
	"context"
	"errors"

	"event_planner/constants"
	"event_planner/model"
	"event_planner/realtime"

	"github.com/rs/zerolog"
)

const inboxBuffer = 128

// ChatPanel is what the staff inbox needs from the chat service.
type ChatPanel interface {
	Conversations(ctx context.Context) ([]model.Conversation, error)
	OpenThread(ctx context.Context, userId uint) ([]model.Message, error)
	Reply(ctx context.Context, staffId, userId uint, content string) (*model.Message, error)
}

const (
	CommandSelect  = "select"
	CommandMute    = "mute"
	CommandUnmute  = "unmute"
	CommandBlock   = "block"
	CommandUnblock = "unblock"
	CommandReply   = "reply"
)

// Command is a request sent by the staff client over its socket.
type Command struct {
	Action  string `json:"action"`
	UserId  uint   `json:"userId"`
	Content string `json:"content"`
}

const (
	FrameConversations = "conversations"
	FrameThread        = "thread"
	FrameMessage       = "message"
	FrameToast         = "toast"
	FrameState         = "state"
	FrameError         = "error"
)

// Frame is one update pushed to the staff client.
type Frame struct {
	Type          string               `json:"type"`
	UserId        uint                 `json:"userId,omitempty"`
	Conversations []model.Conversation `json:"conversations,omitempty"`
	Messages      []model.Message      `json:"messages,omitempty"`
	Message       *model.Message       `json:"message,omitempty"`
	Muted         bool                 `json:"muted"`
	Blocked       bool                 `json:"blocked"`
	Error         string               `json:"error,omitempty"`
}

type inboxItem struct {
	event   *realtime.Event
	command *Command
}

// Inbox drives one staff chat panel. Message events and client commands share a single queue and are
// handled by one goroutine in arrival order. Conversation reloads requested while the queue is busy
// collapse into one reload once it drains. Mute and block exist only for the life of the panel.
type Inbox struct {
	chat    ChatPanel
	staffId uint
	send    func(Frame) error
	log     zerolog.Logger

	queue chan inboxItem
	done  chan struct{}

	selected      uint
	muted         map[uint]bool
	blocked       map[uint]bool
	reloadPending bool
}

func NewInbox(chat ChatPanel, staffId uint, send func(Frame) error, log zerolog.Logger) *Inbox {
	return &Inbox{
		chat:    chat,
		staffId: staffId,
		send:    send,
		log:     log.With().Uint("staffId", staffId).Logger(),
		queue:   make(chan inboxItem, inboxBuffer),
		done:    make(chan struct{}),
		muted:   make(map[uint]bool),
		blocked: make(map[uint]bool),
	}
}

// Deliver queues a realtime event. It returns false once the inbox has stopped.
func (b *Inbox) Deliver(ev realtime.Event) bool {
	return b.enqueue(inboxItem{event: &ev})
}

// Command queues a client command. It returns false once the inbox has stopped.
func (b *Inbox) Command(cmd Command) bool {
	return b.enqueue(inboxItem{command: &cmd})
}

func (b *Inbox) enqueue(item inboxItem) bool {
	select {
	case <-b.done:
		return false
	default:
	}
	select {
	case b.queue <- item:
		return true
	case <-b.done:
		return false
	}
}

// Run processes the queue until ctx ends or sending a frame fails.
func (b *Inbox) Run(ctx context.Context) error {
	defer close(b.done)

	if err := b.reload(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case item := <-b.queue:
			var err error
			if item.event != nil {
				err = b.handleEvent(ctx, *item.event)
			} else {
				err = b.handleCommand(ctx, *item.command)
			}
			if err != nil {
				return err
			}
			if b.reloadPending && len(b.queue) == 0 {
				if err := b.reload(ctx); err != nil {
					return err
				}
			}
		}
	}
}

func (b *Inbox) reload(ctx context.Context) error {
	b.reloadPending = false
	list, err := b.chat.Conversations(ctx)
	if err != nil {
		b.log.Error().Err(err).Msg("reload conversations")
		return b.send(Frame{Type: FrameError, Error: constants.ERROR_INTERNAL_ERROR})
	}
	return b.send(Frame{Type: FrameConversations, Conversations: list})
}

func (b *Inbox) handleEvent(_ context.Context, ev realtime.Event) error {
	if ev.Table != "messages" || ev.Kind != realtime.KindInsert {
		return nil
	}
	var msg model.Message
	if err := ev.Decode(&msg); err != nil {
		b.log.Warn().Err(err).Msg("drop undecodable message event")
		return nil
	}

	if msg.UserId == b.selected {
		if err := b.send(Frame{Type: FrameMessage, UserId: msg.UserId, Message: &msg}); err != nil {
			return err
		}
	}
	if !msg.FromUser() {
		return nil
	}
	b.reloadPending = true
	if msg.UserId != b.selected && !b.muted[msg.UserId] {
		return b.send(Frame{Type: FrameToast, UserId: msg.UserId, Message: &msg})
	}
	return nil
}

func (b *Inbox) handleCommand(ctx context.Context, cmd Command) error {
	switch cmd.Action {
	case CommandSelect:
		messages, err := b.chat.OpenThread(ctx, cmd.UserId)
		if err != nil {
			return b.sendError(err)
		}
		b.selected = cmd.UserId
		b.reloadPending = true
		return b.send(Frame{
			Type:     FrameThread,
			UserId:   cmd.UserId,
			Messages: messages,
			Muted:    b.muted[cmd.UserId],
			Blocked:  b.blocked[cmd.UserId],
		})
	case CommandMute, CommandUnmute:
		b.muted[cmd.UserId] = cmd.Action == CommandMute
		return b.sendState(cmd.UserId)
	case CommandBlock, CommandUnblock:
		b.blocked[cmd.UserId] = cmd.Action == CommandBlock
		return b.sendState(cmd.UserId)
	case CommandReply:
		if b.selected == 0 {
			return b.sendError(errors.New("no conversation selected"))
		}
		if b.blocked[b.selected] {
			return b.sendError(constants.ErrThreadBlocked)
		}
		if _, err := b.chat.Reply(ctx, b.staffId, b.selected, cmd.Content); err != nil {
			return b.sendError(err)
		}
		return nil
	}
	return b.sendError(errors.New("unknown action " + cmd.Action))
}

func (b *Inbox) sendState(userId uint) error {
	return b.send(Frame{Type: FrameState, UserId: userId, Muted: b.muted[userId], Blocked: b.blocked[userId]})
}

func (b *Inbox) sendError(err error) error {
	msg := err.Error()
	switch {
	case errors.Is(err, constants.ErrThreadBlocked):
		msg = constants.THREAD_BLOCKED
	case errors.Is(err, constants.ErrUserNotFound):
		msg = constants.NOT_FOUND
	case errors.Is(err, constants.ErrValidation):
		msg = constants.VALIDATION_FAILED
	}
	return b.send(Frame{Type: FrameError, Error: msg})
}
