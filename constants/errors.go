package constants

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrGuestNotFound   = errors.New("guest not found")
	ErrGalleryNotFound = errors.New("gallery item not found")
	ErrPackageNotFound = errors.New("package not found")

	ErrNotificationNotFound = errors.New("notification not found")
)

var (
	ErrEmailTaken          = errors.New("User already registered")
	ErrInvalidCredentials  = errors.New("Invalid login credentials")
	ErrInvalidRecoveryCode = errors.New("invalid or expired recovery code")
	ErrInvalidToken        = errors.New("invalid token")
	ErrForbidden           = errors.New("forbidden")
	ErrRoleLookup          = errors.New("role lookup failed")
)

var (
	ErrDuplicateEvent = errors.New("duplicate event for the same type, date and time")
	ErrExclusiveField = errors.New("exact value and range are mutually exclusive")
	ErrThreadBlocked  = errors.New("thread is blocked")
)

var (
	ErrValidation = errors.New("validation error")
)
