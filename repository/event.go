package repository

import (
	"context"
	"fmt"
	"time"

	"event_planner/constants"
	"event_planner/model"
	"event_planner/service/ports"
	"event_planner/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Atomic serialises callers sharing lockKey with a transaction-scoped advisory lock.
func (r *EventRepository) Atomic(ctx context.Context, lockKey string, fn func(repo ports.EventRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", lockKey).Error; err != nil {
			return fmt.Errorf("advisory lock: %w", err)
		}
		return fn(&EventRepository{db: tx})
	})
}

func (r *EventRepository) CountDuplicates(ctx context.Context, key model.DuplicateKey) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("user_id = ? AND event_type = ? AND event_date = ? AND event_time = ? AND date_flexible = ?",
			key.UserId, key.EventType, key.Date.Format(constants.DATE_LAYOUT), key.Time, false)
	if key.ExcludeId != 0 {
		query = query.Where("id <> ?", key.ExcludeId)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count duplicate events: %w", err)
	}
	return count, nil
}

func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) Save(ctx context.Context, e *model.Event) error {
	if err := r.db.WithContext(ctx).Omit("User").Save(e).Error; err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uint) (*model.Event, error) {
	var e model.Event
	if err := r.db.WithContext(ctx).Preload("User").First(&e, id).Error; err != nil {
		return nil, notFound(err, constants.ErrEventNotFound)
	}
	return &e, nil
}

func (r *EventRepository) GetByReference(ctx context.Context, code string) (*model.Event, error) {
	var e model.Event
	err := r.db.WithContext(ctx).Preload("User").Where("reference_code = ?", code).First(&e).Error
	if err != nil {
		return nil, notFound(err, constants.ErrEventNotFound)
	}
	return &e, nil
}

func (r *EventRepository) List(ctx context.Context, filter model.EventFilter) ([]model.Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Event{})
	if filter.UserId != nil {
		query = query.Where("user_id = ?", *filter.UserId)
	}
	if filter.Status != nil && *filter.Status != "" {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.EventType != nil && *filter.EventType != "" {
		query = query.Where("event_type = ?", *filter.EventType)
	}
	if filter.SearchKey != "" {
		pattern := likePattern(filter.SearchKey)
		query = query.Where("reference_code ILIKE ? OR event_type ILIKE ? OR venue_location ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	var events []model.Event
	query = utils.ApplyPagination(query.Preload("User").Order("created_at DESC"), filter.Limit, filter.Page)
	if err := query.Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (r *EventRepository) UpdateColumns(ctx context.Context, id uint, values map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.Event{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return fmt.Errorf("update event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return constants.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.Guest{}).Error; err != nil {
			return fmt.Errorf("delete guests: %w", err)
		}
		res := tx.Delete(&model.Event{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete event: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return constants.ErrEventNotFound
		}
		return nil
	})
}

func (r *EventRepository) MoveToGallery(ctx context.Context, eventId uint, item *model.GalleryItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event model.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventId).Error; err != nil {
			return notFound(err, constants.ErrEventNotFound)
		}
		itemSlug, err := uniqueSlug(tx, &model.GalleryItem{}, item.Title)
		if err != nil {
			return err
		}
		item.Slug = itemSlug
		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("create gallery item: %w", err)
		}
		if err := tx.Where("event_id = ?", eventId).Delete(&model.Guest{}).Error; err != nil {
			return fmt.Errorf("delete guests: %w", err)
		}
		if err := tx.Delete(&model.Event{}, eventId).Error; err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		return nil
	})
}

func (r *EventRepository) ListOnDate(ctx context.Context, date time.Time, statuses []string) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("event_date = ? AND status IN ?", date.Format(constants.DATE_LAYOUT), statuses).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list events on %s: %w", date.Format(constants.DATE_LAYOUT), err)
	}
	return events, nil
}
