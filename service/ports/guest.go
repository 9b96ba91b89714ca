package ports

import (
	"context"
	"time"

	"event_planner/model"
)

type GuestRepo interface {
	Create(ctx context.Context, g *model.Guest) error
	GetByID(ctx context.Context, eventId, id uint) (*model.Guest, error)
	GetByToken(ctx context.Context, token string) (*model.Guest, error)
	List(ctx context.Context, eventId uint, filter model.GuestFilter) ([]model.Guest, error)
	Save(ctx context.Context, g *model.Guest) error
	Delete(ctx context.Context, eventId, id uint) error
	MarkInvited(ctx context.Context, id uint, at time.Time) error
}
