package handler

import (
	"event_planner/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Analytics(c *fiber.Ctx) error {
	out, err := h.stats.Analytics(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, out)
}
