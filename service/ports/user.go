package ports

import (
	"context"
	"time"

	"event_planner/model"
)

type UserRepo interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, filter model.UserFilter) ([]model.User, int64, error)
	UpdateRole(ctx context.Context, id uint, role string) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

type ResetCodeRepo interface {
	Create(ctx context.Context, code *model.PasswordResetCode) error
	Latest(ctx context.Context, userId uint) (*model.PasswordResetCode, error)
	MarkUsed(ctx context.Context, id uint, at time.Time) error
	// RecordFailure counts a wrong guess and consumes the code once maxAttempts is reached.
	RecordFailure(ctx context.Context, id uint, maxAttempts int, at time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
