package middleware

import (
	"context"
	"errors"
	"slices"
	"strings"

	"event_planner/constants"
	"event_planner/model"
	"event_planner/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"

	LocalUser = "user"
	localRole = "role"
)

// Authenticator is the slice of the auth service the middleware relies on.
type Authenticator interface {
	Authenticate(token string) (model.TokenClaim, error)
	RoleOf(ctx context.Context, userId uint) (string, error)
}

// tokenFrom reads the access token from the cookie, then the Authorization header,
// then the token query parameter browsers use for websocket upgrades.
func tokenFrom(c *fiber.Ctx) string {
	if token := c.Cookies(AccessCookie); token != "" {
		return token
	}
	if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.Query("token")
}

func Protected(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFrom(c)
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MISSING_TOKEN, errors.New("no token"))
		}

		claim, err := auth.Authenticate(token)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, err)
		}

		c.Locals(LocalUser, claim)
		return c.Next()
	}
}

// RequireRole re-reads the caller's role from storage on every request. When the lookup fails the
// request is refused; it is never treated as a plain user.
func RequireRole(auth Authenticator, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, ok := Claim(c)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MISSING_TOKEN, errors.New("no session"))
		}

		role, err := auth.RoleOf(c.UserContext(), claim.UserId)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.FORBIDDEN, err)
		}
		if !slices.Contains(roles, role) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.FORBIDDEN, constants.ErrForbidden)
		}

		c.Locals(localRole, role)
		return c.Next()
	}
}

// Claim returns the token claim stored by Protected.
func Claim(c *fiber.Ctx) (model.TokenClaim, bool) {
	claim, ok := c.Locals(LocalUser).(model.TokenClaim)
	return claim, ok
}

// UserId returns the signed-in user's id, zero when there is none.
func UserId(c *fiber.Ctx) uint {
	claim, _ := Claim(c)
	return claim.UserId
}
