package ports

import (
	"context"

	"event_planner/model"
)

type GalleryRepo interface {
	Create(ctx context.Context, item *model.GalleryItem) error
	GetByID(ctx context.Context, id uint) (*model.GalleryItem, error)
	GetBySlug(ctx context.Context, slug string) (*model.GalleryItem, error)
	List(ctx context.Context, filter model.GalleryFilter) ([]model.GalleryItem, int64, error)
	Save(ctx context.Context, item *model.GalleryItem) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
	IncrementLikes(ctx context.Context, id uint) (int64, error)
}
