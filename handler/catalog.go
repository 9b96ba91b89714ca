package handler

import (
	"errors"

	"event_planner/catalog"
	"event_planner/constants"
	"event_planner/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Packages(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, catalog.Packages())
}

func (h *Handler) Package(c *fiber.Ctx) error {
	pkg, ok := catalog.FindPackage(c.Params("slug"))
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, constants.ErrPackageNotFound)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, pkg)
}

func (h *Handler) Services(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, catalog.Services())
}

func (h *Handler) Venues(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, catalog.Venues())
}

func (h *Handler) Venue(c *fiber.Ctx) error {
	venue, ok := catalog.FindVenue(c.Params("id"))
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, errors.New("venue not found"))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, venue)
}
