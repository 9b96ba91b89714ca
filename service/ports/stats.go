package ports

import (
	"context"
	"time"

	"event_planner/model"
)

type StatsRepo interface {
	EventsByStatus(ctx context.Context) ([]model.StatusCount, error)
	EventsPerMonth(ctx context.Context, since time.Time) ([]model.MonthCount, error)
	PackagePopularity(ctx context.Context) ([]model.PackageCount, error)
	ConfirmedBudget(ctx context.Context) (float64, error)
	CountEventsCreated(ctx context.Context, from, to time.Time) (int64, error)
	GuestTotals(ctx context.Context) (model.GuestTotals, error)
	GalleryTotals(ctx context.Context) (model.GalleryTotals, error)
	UsersByRole(ctx context.Context) ([]model.StatusCount, error)
	UnreadUserMessages(ctx context.Context) (int64, error)
}
