package repository

import (
	"context"
	"fmt"

	"event_planner/constants"
	"event_planner/model"
	"event_planner/utils"

	"gorm.io/gorm"
)

type GalleryRepository struct {
	db *gorm.DB
}

func NewGalleryRepo(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

func (r *GalleryRepository) Create(ctx context.Context, item *model.GalleryItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		itemSlug, err := uniqueSlug(tx, &model.GalleryItem{}, item.Title)
		if err != nil {
			return err
		}
		item.Slug = itemSlug
		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("create gallery item: %w", err)
		}
		return nil
	})
}

func (r *GalleryRepository) GetByID(ctx context.Context, id uint) (*model.GalleryItem, error) {
	var item model.GalleryItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err, constants.ErrGalleryNotFound)
	}
	return &item, nil
}

func (r *GalleryRepository) GetBySlug(ctx context.Context, slug string) (*model.GalleryItem, error) {
	var item model.GalleryItem
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&item).Error; err != nil {
		return nil, notFound(err, constants.ErrGalleryNotFound)
	}
	return &item, nil
}

func (r *GalleryRepository) List(ctx context.Context, filter model.GalleryFilter) ([]model.GalleryItem, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.GalleryItem{})
	if filter.Status != nil && *filter.Status != "" {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Category != nil && *filter.Category != "" {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Style != nil && *filter.Style != "" {
		query = query.Where("style = ?", *filter.Style)
	}
	if filter.SearchKey != "" {
		pattern := likePattern(filter.SearchKey)
		query = query.Where("title ILIKE ? OR client_names ILIKE ? OR location ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count gallery: %w", err)
	}
	var items []model.GalleryItem
	query = utils.ApplyPagination(query.Order("published_at DESC NULLS LAST, created_at DESC"), filter.Limit, filter.Page)
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("list gallery: %w", err)
	}
	return items, total, nil
}

func (r *GalleryRepository) Save(ctx context.Context, item *model.GalleryItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.GalleryItem
		if err := tx.Select("id", "title", "slug").First(&current, item.ID).Error; err != nil {
			return notFound(err, constants.ErrGalleryNotFound)
		}
		if current.Title != item.Title {
			itemSlug, err := uniqueSlug(tx.Where("id <> ?", item.ID).Session(&gorm.Session{}), &model.GalleryItem{}, item.Title)
			if err != nil {
				return err
			}
			item.Slug = itemSlug
		}
		if err := tx.Save(item).Error; err != nil {
			return fmt.Errorf("save gallery item: %w", err)
		}
		return nil
	})
}

func (r *GalleryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.GalleryItem{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete gallery item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return constants.ErrGalleryNotFound
	}
	return nil
}

func (r *GalleryRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.GalleryItem{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *GalleryRepository) IncrementLikes(ctx context.Context, id uint) (int64, error) {
	var likes int64
	res := r.db.WithContext(ctx).Raw(
		`UPDATE gallery_items SET likes = likes + 1 WHERE id = ? AND status = ? RETURNING likes`,
		id, constants.GALLERY_PUBLISHED,
	).Scan(&likes)
	if res.Error != nil {
		return 0, fmt.Errorf("like gallery item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, constants.ErrGalleryNotFound
	}
	return likes, nil
}
