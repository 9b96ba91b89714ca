package handler

import (
	"errors"

	"event_planner/constants"
	"event_planner/model"
	"event_planner/realtime"
	"event_planner/service"
	"event_planner/utils"
	"event_planner/wizard"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type Handler struct {
	auth          *service.AuthService
	events        *service.EventService
	guests        *service.GuestService
	gallery       *service.GalleryService
	chat          *service.ChatService
	notifications *service.NotificationService
	stats         *service.StatsService
	broker        realtime.Broker
	log           zerolog.Logger
	secureCookies bool
}

type Deps struct {
	Auth          *service.AuthService
	Events        *service.EventService
	Guests        *service.GuestService
	Gallery       *service.GalleryService
	Chat          *service.ChatService
	Notifications *service.NotificationService
	Stats         *service.StatsService
	Broker        realtime.Broker
	Log           zerolog.Logger
	SecureCookies bool
}

func New(d Deps) *Handler {
	return &Handler{
		auth:          d.Auth,
		events:        d.Events,
		guests:        d.Guests,
		gallery:       d.Gallery,
		chat:          d.Chat,
		notifications: d.Notifications,
		stats:         d.Stats,
		broker:        d.Broker,
		log:           d.Log,
		secureCookies: d.SecureCookies,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}

func NotFound(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, errors.New("route "+c.Method()+" "+c.Path()+" not found"))
}

// handleError turns a service error into the response the client expects.
func (h *Handler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, constants.ErrDuplicateEvent):
		return utils.ErrorResponseWithFlag(c, fiber.StatusConflict, constants.DUPLICATE_EVENT, err, "duplicate")
	case errors.Is(err, constants.ErrEmailTaken):
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.USER_ALREADY_REGISTERED, err)
	case errors.Is(err, constants.ErrInvalidCredentials):
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_LOGIN_CREDENTIALS, err)
	case errors.Is(err, constants.ErrInvalidToken):
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, err)
	case errors.Is(err, constants.ErrInvalidRecoveryCode):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_RECOVERY_CODE, err)
	case errors.Is(err, constants.ErrForbidden), errors.Is(err, constants.ErrRoleLookup):
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.FORBIDDEN, err)
	case errors.Is(err, constants.ErrUserNotFound),
		errors.Is(err, constants.ErrEventNotFound),
		errors.Is(err, constants.ErrGuestNotFound),
		errors.Is(err, constants.ErrGalleryNotFound),
		errors.Is(err, constants.ErrPackageNotFound),
		errors.Is(err, constants.ErrNotificationNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND, err)
	case errors.Is(err, wizard.ErrCannotProceed):
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, constants.WIZARD_INCOMPLETE, err)
	case errors.Is(err, wizard.ErrUnknownStep):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	case errors.Is(err, constants.ErrValidation), errors.Is(err, constants.ErrExclusiveField):
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, constants.VALIDATION_FAILED, err)
	case errors.Is(err, constants.ErrThreadBlocked):
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.THREAD_BLOCKED, err)
	}
	h.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
}

// input reads a value stored by a validate middleware.
func input[T any](c *fiber.Ctx, key string) (T, bool) {
	v, ok := c.Locals(key).(T)
	return v, ok
}

func missingInput(c *fiber.Ctx, key string) error {
	return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("missing "+key))
}

func paramId(c *fiber.Ctx, key string) uint {
	id, _ := c.Locals(key).(uint)
	return id
}

func listResponse(c *fiber.Ctx, rows any, page model.Pagination, total int64) error {
	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       rows,
		Limit:      page.Limit,
		Page:       page.Page,
		TotalCount: total,
	})
}
