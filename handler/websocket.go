package handler

import (
	"context"

	"event_planner/middleware"
	"event_planner/model"
	"event_planner/realtime"
	"event_planner/service"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const streamBuffer = 64

// UpgradeOnly rejects plain HTTP requests on websocket routes.
func UpgradeOnly(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// UserStream pushes the caller's chat messages, notifications and session changes.
func (h *Handler) UserStream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()
		claim, ok := conn.Locals(middleware.LocalUser).(model.TokenClaim)
		if !ok {
			return
		}
		log := h.log.With().Uint("userId", claim.UserId).Str("stream", "user").Logger()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		merged := make(chan realtime.Event, streamBuffer)
		topics := []string{
			realtime.UserMessagesTopic(claim.UserId),
			realtime.NotificationsTopic(claim.UserId),
			realtime.SessionTopic(claim.UserId),
		}
		for _, topic := range topics {
			events, stop, err := h.broker.Subscribe(ctx, topic)
			if err != nil {
				log.Error().Err(err).Str("topic", topic).Msg("subscribe failed")
				return
			}
			defer stop()
			go func() {
				for ev := range events {
					select {
					case merged <- ev:
					case <-ctx.Done():
						return
					}
				}
			}()
		}

		// the client only listens; a read error means it went away
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-merged:
				if err := conn.WriteJSON(ev); err != nil {
					log.Debug().Err(err).Msg("write failed")
					return
				}
				if ev.Kind == realtime.KindSignOut {
					return
				}
			}
		}
	})
}

// StaffInbox runs one staff chat panel over the socket. Commands arrive as JSON from the client and
// frames go back from the inbox loop, which is the only writer.
func (h *Handler) StaffInbox() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()
		claim, ok := conn.Locals(middleware.LocalUser).(model.TokenClaim)
		if !ok {
			return
		}
		log := h.log.With().Uint("staffId", claim.UserId).Str("stream", "inbox").Logger()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, stop, err := h.broker.Subscribe(ctx, realtime.TopicMessages)
		if err != nil {
			log.Error().Err(err).Msg("subscribe failed")
			return
		}
		defer stop()

		inbox := service.NewInbox(h.chat, claim.UserId, func(f service.Frame) error {
			return conn.WriteJSON(f)
		}, log)

		go func() {
			for ev := range events {
				if !inbox.Deliver(ev) {
					return
				}
			}
		}()
		go func() {
			defer cancel()
			for {
				var cmd service.Command
				if err := conn.ReadJSON(&cmd); err != nil {
					return
				}
				if !inbox.Command(cmd) {
					return
				}
			}
		}()

		if err := inbox.Run(ctx); err != nil {
			log.Debug().Err(err).Msg("inbox stopped")
		}
	})
}
