package handler

import (
	"event_planner/middleware"
	"event_planner/model"
	"event_planner/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) MyMessages(c *fiber.Ctx) error {
	messages, err := h.chat.MyThread(c.UserContext(), middleware.UserId(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, messages)
}

func (h *Handler) SendMessage(c *fiber.Ctx) error {
	in, ok := input[model.SendMessageInput](c, "inputMessage")
	if !ok {
		return missingInput(c, "inputMessage")
	}
	msg, err := h.chat.Send(c.UserContext(), middleware.UserId(c), in.Content)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, msg)
}

func (h *Handler) MyUnreadMessages(c *fiber.Ctx) error {
	unread, err := h.chat.MyUnread(c.UserContext(), middleware.UserId(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, model.UnreadCount{Unread: unread})
}

func (h *Handler) Conversations(c *fiber.Ctx) error {
	list, err := h.chat.Conversations(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, list)
}

func (h *Handler) Thread(c *fiber.Ctx) error {
	messages, err := h.chat.OpenThread(c.UserContext(), paramId(c, "userId"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, messages)
}

func (h *Handler) Reply(c *fiber.Ctx) error {
	in, ok := input[model.SendMessageInput](c, "inputMessage")
	if !ok {
		return missingInput(c, "inputMessage")
	}
	msg, err := h.chat.Reply(c.UserContext(), middleware.UserId(c), paramId(c, "userId"), in.Content)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, msg)
}
