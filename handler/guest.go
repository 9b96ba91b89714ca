package handler

import (
	"bytes"
	"fmt"

	"event_planner/middleware"
	"event_planner/model"
	"event_planner/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListGuests(c *fiber.Ctx) error {
	filter, ok := input[model.GuestFilter](c, "inputGuestFilter")
	if !ok {
		return missingInput(c, "inputGuestFilter")
	}
	guests, err := h.guests.List(c.UserContext(), middleware.UserId(c), paramId(c, "id"), filter)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, guests)
}

func (h *Handler) CreateGuest(c *fiber.Ctx) error {
	in, ok := input[model.GuestInput](c, "inputGuest")
	if !ok {
		return missingInput(c, "inputGuest")
	}
	guest, err := h.guests.Create(c.UserContext(), middleware.UserId(c), paramId(c, "id"), in)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, guest)
}

func (h *Handler) GetGuest(c *fiber.Ctx) error {
	guest, err := h.guests.Get(c.UserContext(), middleware.UserId(c), paramId(c, "id"), paramId(c, "guestId"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, guest)
}

func (h *Handler) UpdateGuest(c *fiber.Ctx) error {
	in, ok := input[model.GuestInput](c, "inputGuest")
	if !ok {
		return missingInput(c, "inputGuest")
	}
	guest, err := h.guests.Update(c.UserContext(), middleware.UserId(c), paramId(c, "id"), paramId(c, "guestId"), in)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, guest)
}

func (h *Handler) DeleteGuest(c *fiber.Ctx) error {
	if err := h.guests.Delete(c.UserContext(), middleware.UserId(c), paramId(c, "id"), paramId(c, "guestId")); err != nil {
		return h.handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) GuestSummary(c *fiber.Ctx) error {
	summary, err := h.guests.Summary(c.UserContext(), middleware.UserId(c), paramId(c, "id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, summary)
}

// ExportGuests streams the (optionally status-filtered) list as a CSV download.
func (h *Handler) ExportGuests(c *fiber.Ctx) error {
	filter, ok := input[model.GuestFilter](c, "inputGuestFilter")
	if !ok {
		return missingInput(c, "inputGuestFilter")
	}
	var buf bytes.Buffer
	name, err := h.guests.ExportCSV(c.UserContext(), middleware.UserId(c), paramId(c, "id"), filter, &buf)
	if err != nil {
		return h.handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

func (h *Handler) GetInvitation(c *fiber.Ctx) error {
	inv, err := h.guests.Invitation(c.UserContext(), c.Params("token"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, inv)
}

func (h *Handler) RespondInvitation(c *fiber.Ctx) error {
	in, ok := input[model.RSVPInput](c, "inputRSVP")
	if !ok {
		return missingInput(c, "inputRSVP")
	}
	inv, err := h.guests.Respond(c.UserContext(), c.Params("token"), in)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, inv)
}
