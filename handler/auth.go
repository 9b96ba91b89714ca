package handler

import (
	"errors"
	"time"

	"event_planner/constants"
	"event_planner/middleware"
	"event_planner/model"
	"event_planner/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) setSessionCookies(c *fiber.Ctx, tokens model.TokenData) {
	issuer := h.auth.Tokens()
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessCookie,
		Value:    tokens.AccessToken,
		Expires:  time.Now().Add(issuer.AccessTTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.secureCookies,
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     middleware.RefreshCookie,
		Value:    tokens.RefreshToken,
		Expires:  time.Now().Add(issuer.RefreshTTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.secureCookies,
		Path:     "/",
	})
}

func (h *Handler) clearSessionCookies(c *fiber.Ctx) {
	for _, name := range []string{middleware.AccessCookie, middleware.RefreshCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   h.secureCookies,
			Path:     "/",
		})
	}
}

func (h *Handler) SignUp(c *fiber.Ctx) error {
	in, ok := input[model.SignUpInput](c, "inputSignUp")
	if !ok {
		return missingInput(c, "inputSignUp")
	}
	user, err := h.auth.SignUp(c.UserContext(), in)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, user)
}

func (h *Handler) SignIn(c *fiber.Ctx) error {
	in, ok := input[model.SignInInput](c, "inputSignIn")
	if !ok {
		return missingInput(c, "inputSignIn")
	}
	session, tokens, err := h.auth.SignIn(c.UserContext(), in)
	if err != nil {
		return h.handleError(c, err)
	}
	h.setSessionCookies(c, tokens)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"session": session,
		"tokens":  tokens,
	})
}

func (h *Handler) Refresh(c *fiber.Ctx) error {
	token := c.Cookies(middleware.RefreshCookie)
	if token == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = c.BodyParser(&body)
		token = body.RefreshToken
	}
	if token == "" {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MISSING_TOKEN, errors.New("refresh token not found"))
	}

	session, tokens, err := h.auth.Refresh(c.UserContext(), token)
	if err != nil {
		h.clearSessionCookies(c)
		return h.handleError(c, err)
	}
	h.setSessionCookies(c, tokens)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"session": session,
		"tokens":  tokens,
	})
}

// SignOut always clears the cookies; a still-valid token also announces the sign-out.
func (h *Handler) SignOut(c *fiber.Ctx) error {
	token := c.Cookies(middleware.AccessCookie)
	if token != "" {
		if claim, err := h.auth.Authenticate(token); err == nil {
			h.auth.SignOut(c.UserContext(), claim.UserId)
		}
	}
	h.clearSessionCookies(c)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "signed out"})
}

func (h *Handler) Recover(c *fiber.Ctx) error {
	in, ok := input[model.RecoverInput](c, "inputRecover")
	if !ok {
		return missingInput(c, "inputRecover")
	}
	if err := h.auth.RequestRecovery(c.UserContext(), in.Email); err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": constants.RECOVERY_CODE_SENT})
}

func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	in, ok := input[model.ResetPasswordInput](c, "inputResetPassword")
	if !ok {
		return missingInput(c, "inputResetPassword")
	}
	if err := h.auth.ResetPassword(c.UserContext(), in); err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "password updated"})
}

func (h *Handler) Me(c *fiber.Ctx) error {
	session, err := h.auth.Me(c.UserContext(), middleware.UserId(c))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, session)
}

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	filter, ok := input[model.UserFilter](c, "inputUserFilter")
	if !ok {
		return missingInput(c, "inputUserFilter")
	}
	users, total, err := h.auth.ListUsers(c.UserContext(), filter)
	if err != nil {
		return h.handleError(c, err)
	}
	return listResponse(c, users, filter.Pagination, total)
}

func (h *Handler) UpdateUserRole(c *fiber.Ctx) error {
	in, ok := input[model.UpdateRoleInput](c, "inputUpdateRole")
	if !ok {
		return missingInput(c, "inputUpdateRole")
	}
	user, err := h.auth.SetRole(c.UserContext(), middleware.UserId(c), paramId(c, "id"), in.Role)
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}
