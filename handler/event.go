package handler

import (
	"event_planner/middleware"
	"event_planner/model"
	"event_planner/utils"
	"event_planner/wizard"

	"github.com/gofiber/fiber/v2"
)

// EvaluateWizard tells the client which step to render for the posted form.
func (h *Handler) EvaluateWizard(c *fiber.Ctx) error {
	in, ok := input[wizard.EvaluateInput](c, "inputWizardEvaluate")
	if !ok {
		return missingInput(c, "inputWizardEvaluate")
	}
	eval, err := wizard.Evaluate(in.Form, in.Step)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, eval)
}

func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	form, ok := input[wizard.FormState](c, "inputEventForm")
	if !ok {
		return missingInput(c, "inputEventForm")
	}
	event, err := h.events.Submit(c.UserContext(), middleware.UserId(c), form)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, event)
}

func (h *Handler) MyEvents(c *fiber.Ctx) error {
	filter, ok := input[model.EventFilter](c, "inputEventFilter")
	if !ok {
		return missingInput(c, "inputEventFilter")
	}
	events, total, err := h.events.ListMine(c.UserContext(), middleware.UserId(c), filter)
	if err != nil {
		return h.handleError(c, err)
	}
	return listResponse(c, events, filter.Pagination, total)
}

func (h *Handler) MyEvent(c *fiber.Ctx) error {
	event, err := h.events.GetMine(c.UserContext(), middleware.UserId(c), paramId(c, "id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func (h *Handler) UpdateMyEvent(c *fiber.Ctx) error {
	form, ok := input[wizard.FormState](c, "inputEventForm")
	if !ok {
		return missingInput(c, "inputEventForm")
	}
	event, err := h.events.Edit(c.UserContext(), middleware.UserId(c), paramId(c, "id"), form)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func (h *Handler) DeleteMyEvent(c *fiber.Ctx) error {
	if err := h.events.DeleteMine(c.UserContext(), middleware.UserId(c), paramId(c, "id")); err != nil {
		return h.handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ListEvents(c *fiber.Ctx) error {
	filter, ok := input[model.EventFilter](c, "inputEventFilter")
	if !ok {
		return missingInput(c, "inputEventFilter")
	}
	events, total, err := h.events.List(c.UserContext(), filter)
	if err != nil {
		return h.handleError(c, err)
	}
	return listResponse(c, events, filter.Pagination, total)
}

func (h *Handler) GetEvent(c *fiber.Ctx) error {
	event, err := h.events.Get(c.UserContext(), paramId(c, "id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func (h *Handler) EventByCode(c *fiber.Ctx) error {
	event, err := h.events.GetByReference(c.UserContext(), c.Params("code"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func (h *Handler) SetEventStatus(c *fiber.Ctx) error {
	in, ok := input[model.UpdateEventStatusInput](c, "inputEventStatus")
	if !ok {
		return missingInput(c, "inputEventStatus")
	}
	event, err := h.events.SetStatus(c.UserContext(), paramId(c, "id"), in.Status)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func (h *Handler) SetEventPackage(c *fiber.Ctx) error {
	in, ok := input[model.UpdateEventPackageInput](c, "inputEventPackage")
	if !ok {
		return missingInput(c, "inputEventPackage")
	}
	event, err := h.events.SetPackage(c.UserContext(), paramId(c, "id"), in.PackageName)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func (h *Handler) SetEventServices(c *fiber.Ctx) error {
	in, ok := input[model.UpdateEventServicesInput](c, "inputEventServices")
	if !ok {
		return missingInput(c, "inputEventServices")
	}
	event, err := h.events.SetServices(c.UserContext(), paramId(c, "id"), in.ServiceIds)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func (h *Handler) DeleteEvent(c *fiber.Ctx) error {
	if err := h.events.Delete(c.UserContext(), paramId(c, "id")); err != nil {
		return h.handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ConvertEvent moves a finished event into the portfolio as a draft.
func (h *Handler) ConvertEvent(c *fiber.Ctx) error {
	in, ok := input[model.ConvertEventInput](c, "inputConvertEvent")
	if !ok {
		return missingInput(c, "inputConvertEvent")
	}
	item, err := h.events.ConvertToGallery(c.UserContext(), paramId(c, "id"), in)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, item)
}
