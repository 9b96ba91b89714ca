package validate

import (
	"event_planner/model"
	"event_planner/wizard"

	"github.com/gofiber/fiber/v2"
)

// EventForm accepts the wizard state; completeness is checked when the event is assembled.
func EventForm() fiber.Handler {
	return body[wizard.FormState]("inputEventForm")
}

func WizardEvaluate() fiber.Handler {
	return body[wizard.EvaluateInput]("inputWizardEvaluate")
}

func EventFilter() fiber.Handler {
	return query[model.EventFilter]("inputEventFilter")
}

func UpdateEventStatus() fiber.Handler {
	return body[model.UpdateEventStatusInput]("inputEventStatus")
}

func UpdateEventPackage() fiber.Handler {
	return body[model.UpdateEventPackageInput]("inputEventPackage")
}

func UpdateEventServices() fiber.Handler {
	return body[model.UpdateEventServicesInput]("inputEventServices")
}

func ConvertEvent() fiber.Handler {
	return body[model.ConvertEventInput]("inputConvertEvent")
}
