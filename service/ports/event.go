package ports

import (
	"context"
	"time"

	"event_planner/model"
)

type EventRepo interface {
	// Atomic runs fn inside one transaction holding an exclusive lock on lockKey.
	Atomic(ctx context.Context, lockKey string, fn func(repo EventRepo) error) error
	CountDuplicates(ctx context.Context, key model.DuplicateKey) (int64, error)
	Create(ctx context.Context, e *model.Event) error
	Save(ctx context.Context, e *model.Event) error
	GetByID(ctx context.Context, id uint) (*model.Event, error)
	GetByReference(ctx context.Context, code string) (*model.Event, error)
	List(ctx context.Context, filter model.EventFilter) ([]model.Event, int64, error)
	UpdateColumns(ctx context.Context, id uint, values map[string]any) error
	Delete(ctx context.Context, id uint) error
	// MoveToGallery creates item from the event and removes the event with its guests in one transaction.
	MoveToGallery(ctx context.Context, eventId uint, item *model.GalleryItem) error
	ListOnDate(ctx context.Context, date time.Time, statuses []string) ([]model.Event, error)
}
