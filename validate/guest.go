package validate

import (
	"event_planner/model"

	"github.com/gofiber/fiber/v2"
)

func Guest() fiber.Handler {
	return body[model.GuestInput]("inputGuest")
}

func GuestFilter() fiber.Handler {
	return query[model.GuestFilter]("inputGuestFilter")
}

func RSVP() fiber.Handler {
	return body[model.RSVPInput]("inputRSVP")
}
