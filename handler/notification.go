package handler

import (
	"event_planner/middleware"
	"event_planner/model"
	"event_planner/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Notifications(c *fiber.Ctx) error {
	page, ok := input[model.Pagination](c, "inputPagination")
	if !ok {
		return missingInput(c, "inputPagination")
	}
	items, total, err := h.notifications.List(c.UserContext(), middleware.UserId(c), page)
	if err != nil {
		return h.handleError(c, err)
	}
	return listResponse(c, items, page, total)
}

func (h *Handler) UnreadNotifications(c *fiber.Ctx) error {
	unread, err := h.notifications.UnreadCount(c.UserContext(), middleware.UserId(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, model.UnreadCount{Unread: unread})
}

func (h *Handler) ReadNotification(c *fiber.Ctx) error {
	if err := h.notifications.MarkRead(c.UserContext(), middleware.UserId(c), paramId(c, "id")); err != nil {
		return h.handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ReadAllNotifications(c *fiber.Ctx) error {
	count, err := h.notifications.MarkAllRead(c.UserContext(), middleware.UserId(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"updated": count})
}
