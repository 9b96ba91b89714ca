package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"event_planner/constants"
	"event_planner/helper"
	"event_planner/model"
	"event_planner/realtime"
	"event_planner/service/ports"

	"github.com/rs/zerolog"
)

const (
	recoveryCodeLength = 6
	recoveryCodeTTL    = 10 * time.Minute
	// wrong guesses allowed before a recovery code is burned
	recoveryMaxAttempts = 5
)

type AuthService struct {
	users  ports.UserRepo
	codes  ports.ResetCodeRepo
	tokens *helper.TokenIssuer
	mailer ports.Mailer
	broker realtime.Broker
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(
	users ports.UserRepo,
	codes ports.ResetCodeRepo,
	tokens *helper.TokenIssuer,
	mailer ports.Mailer,
	broker realtime.Broker,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		codes:  codes,
		tokens: tokens,
		mailer: mailer,
		broker: broker,
		log:    log,
		now:    time.Now,
	}
}

// RedirectFor maps a role to the console the client lands on. Unknown roles fail.
func RedirectFor(role string) (string, error) {
	switch role {
	case constants.ROLE_USER:
		return constants.PATH_USER_DASHBOARD, nil
	case constants.ROLE_ADMIN:
		return constants.PATH_ADMIN, nil
	case constants.ROLE_SUPER_ADMIN:
		return constants.PATH_SUPER_ADMIN, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", constants.ErrRoleLookup, role)
}

func (s *AuthService) Tokens() *helper.TokenIssuer { return s.tokens }

func (s *AuthService) SignUp(ctx context.Context, input model.SignUpInput) (*model.User, error) {
	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: hash,
		FullName: strings.TrimSpace(input.FullName),
		Phone:    strings.TrimSpace(input.Phone),
		Role:     constants.ROLE_USER,
	}
	if _, err := s.users.GetByEmail(ctx, user.Email); err == nil {
		return nil, constants.ErrEmailTaken
	} else if !errors.Is(err, constants.ErrUserNotFound) {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info().Uint("userId", user.ID).Msg("user signed up")
	return user, nil
}

func (s *AuthService) SignIn(ctx context.Context, input model.SignInInput) (*model.Session, model.TokenData, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, constants.ErrUserNotFound) {
			return nil, model.TokenData{}, constants.ErrInvalidCredentials
		}
		return nil, model.TokenData{}, err
	}
	if !helper.CheckPasswordHash(input.Password, user.Password) {
		return nil, model.TokenData{}, constants.ErrInvalidCredentials
	}

	session, err := sessionOf(user)
	if err != nil {
		return nil, model.TokenData{}, err
	}
	tokens, err := s.issue(user)
	if err != nil {
		return nil, model.TokenData{}, err
	}
	publish(ctx, s.broker, s.log, realtime.SessionTopic(user.ID), realtime.KindSignIn, "sessions", session)
	return session, tokens, nil
}

// Refresh re-reads the user so role changes take effect on the next token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.Session, model.TokenData, error) {
	claim, err := s.tokens.ParseToken(refreshToken, helper.TokenRefresh)
	if err != nil {
		return nil, model.TokenData{}, err
	}
	user, err := s.users.GetByID(ctx, claim.UserId)
	if err != nil {
		if errors.Is(err, constants.ErrUserNotFound) {
			return nil, model.TokenData{}, constants.ErrInvalidToken
		}
		return nil, model.TokenData{}, err
	}
	session, err := sessionOf(user)
	if err != nil {
		return nil, model.TokenData{}, err
	}
	tokens, err := s.issue(user)
	if err != nil {
		return nil, model.TokenData{}, err
	}
	return session, tokens, nil
}

func (s *AuthService) SignOut(ctx context.Context, userId uint) {
	publish(ctx, s.broker, s.log, realtime.SessionTopic(userId), realtime.KindSignOut, "sessions", map[string]uint{"userId": userId})
}

// Authenticate verifies an access token.
func (s *AuthService) Authenticate(token string) (model.TokenClaim, error) {
	return s.tokens.ParseToken(token, helper.TokenAccess)
}

func (s *AuthService) Me(ctx context.Context, userId uint) (*model.Session, error) {
	user, err := s.users.GetByID(ctx, userId)
	if err != nil {
		return nil, err
	}
	return sessionOf(user)
}

// RoleOf reads the current role from storage. Any failure is reported as a lookup error so callers
// deny access instead of assuming the plain user role.
func (s *AuthService) RoleOf(ctx context.Context, userId uint) (string, error) {
	user, err := s.users.GetByID(ctx, userId)
	if err != nil {
		return "", fmt.Errorf("%w: %v", constants.ErrRoleLookup, err)
	}
	if !slices.Contains(constants.ROLES, user.Role) {
		return "", fmt.Errorf("%w: unknown role %q", constants.ErrRoleLookup, user.Role)
	}
	return user.Role, nil
}

// RequestRecovery mails a one-time code. Unknown emails succeed silently.
func (s *AuthService) RequestRecovery(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, constants.ErrUserNotFound) {
			return nil
		}
		return err
	}

	code, err := helper.GenerateOTP(recoveryCodeLength)
	if err != nil {
		return err
	}
	hash, err := helper.HashPassword(code)
	if err != nil {
		return fmt.Errorf("hash recovery code: %w", err)
	}
	record := &model.PasswordResetCode{
		UserId:    user.ID,
		CodeHash:  hash,
		ExpiresAt: s.now().Add(recoveryCodeTTL),
	}
	if err := s.codes.Create(ctx, record); err != nil {
		return fmt.Errorf("store recovery code: %w", err)
	}
	if err := s.mailer.SendRecoveryCode(ctx, user.Email, user.FullName, code); err != nil {
		return fmt.Errorf("mail recovery code: %w", err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, input model.ResetPasswordInput) error {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, constants.ErrUserNotFound) {
			return constants.ErrInvalidRecoveryCode
		}
		return err
	}
	record, err := s.codes.Latest(ctx, user.ID)
	if err != nil {
		return err
	}
	now := s.now()
	if now.After(record.ExpiresAt) {
		return constants.ErrInvalidRecoveryCode
	}
	if !helper.CheckPasswordHash(input.Code, record.CodeHash) {
		if err := s.codes.RecordFailure(ctx, record.ID, recoveryMaxAttempts, now); err != nil {
			return fmt.Errorf("record recovery attempt: %w", err)
		}
		return constants.ErrInvalidRecoveryCode
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	if err := s.codes.MarkUsed(ctx, record.ID, now); err != nil {
		return fmt.Errorf("consume recovery code: %w", err)
	}
	s.log.Info().Uint("userId", user.ID).Msg("password reset")
	return nil
}

func (s *AuthService) ListUsers(ctx context.Context, filter model.UserFilter) ([]model.User, int64, error) {
	return s.users.List(ctx, filter)
}

// SetRole changes another user's role. Changing your own role is refused.
func (s *AuthService) SetRole(ctx context.Context, actorId, targetId uint, role string) (*model.User, error) {
	if actorId == targetId {
		return nil, fmt.Errorf("%w: cannot change your own role", constants.ErrForbidden)
	}
	if !slices.Contains(constants.ROLES, role) {
		return nil, fmt.Errorf("%w: unknown role %q", constants.ErrValidation, role)
	}
	if err := s.users.UpdateRole(ctx, targetId, role); err != nil {
		return nil, err
	}
	s.log.Info().Uint("actorId", actorId).Uint("userId", targetId).Str("role", role).Msg("role changed")
	return s.users.GetByID(ctx, targetId)
}

func (s *AuthService) issue(user *model.User) (model.TokenData, error) {
	claim := model.TokenClaim{UserId: user.ID, Email: user.Email, Role: user.Role}
	access, err := s.tokens.GenerateAccessToken(claim)
	if err != nil {
		return model.TokenData{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(claim)
	if err != nil {
		return model.TokenData{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return model.TokenData{AccessToken: access, RefreshToken: refresh}, nil
}

func sessionOf(user *model.User) (*model.Session, error) {
	redirect, err := RedirectFor(user.Role)
	if err != nil {
		return nil, err
	}
	return &model.Session{User: *user, Redirect: redirect}, nil
}

// PurgeRecoveryCodes drops expired and consumed recovery codes.
func (s *AuthService) PurgeRecoveryCodes(ctx context.Context) (int64, error) {
	return s.codes.DeleteExpired(ctx, s.now())
}
