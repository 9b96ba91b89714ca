package validate

import (
	"event_planner/model"

	"github.com/gofiber/fiber/v2"
)

func SendMessage() fiber.Handler {
	return body[model.SendMessageInput]("inputMessage")
}
