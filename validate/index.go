package validate

import (
	"errors"
	"strconv"

	"event_planner/constants"
	"event_planner/model"
	"event_planner/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.ParseUint(params, 10, 64)
		if err != nil || valueKey == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		// Save input to context locals
		c.Locals(key, uint(valueKey))

		return c.Next()
	}
}

// body parses the JSON body into T, validates it and stores it under key.
func body[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, constants.VALIDATION_FAILED, err)
		}

		c.Locals(key, input)
		return c.Next()
	}
}

// query parses the query string into T and stores it under key.
func query[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T

		if err := c.QueryParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, constants.VALIDATION_FAILED, err)
		}

		c.Locals(key, input)
		return c.Next()
	}
}

func Pagination() fiber.Handler {
	return query[model.Pagination]("inputPagination")
}
