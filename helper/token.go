package helper

import (
	"fmt"
	"time"

	"event_planner/constants"
	"event_planner/model"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (t *TokenIssuer) AccessTTL() time.Duration  { return t.accessTTL }
func (t *TokenIssuer) RefreshTTL() time.Duration { return t.refreshTTL }

func (t *TokenIssuer) GenerateAccessToken(claim model.TokenClaim) (string, error) {
	return t.sign(claim, TokenAccess, t.accessTTL)
}

func (t *TokenIssuer) GenerateRefreshToken(claim model.TokenClaim) (string, error) {
	return t.sign(claim, TokenRefresh, t.refreshTTL)
}

func (t *TokenIssuer) sign(claim model.TokenClaim, kind string, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["userId"] = claim.UserId
	claims["email"] = claim.Email
	claims["role"] = claim.Role
	claims["type"] = kind
	claims["exp"] = time.Now().Add(ttl).Unix()

	return token.SignedString(t.secret)
}

// ParseToken verifies the signature, expiry and token type and returns the embedded claim.
func (t *TokenIssuer) ParseToken(tokenString, kind string) (model.TokenClaim, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return model.TokenClaim{}, constants.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != kind {
		return model.TokenClaim{}, constants.ErrInvalidToken
	}
	userId, ok := claims["userId"].(float64)
	if !ok || userId <= 0 {
		return model.TokenClaim{}, constants.ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return model.TokenClaim{UserId: uint(userId), Email: email, Role: role}, nil
}
