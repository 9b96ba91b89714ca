package repository

import (
	"context"
	"fmt"
	"time"

	"event_planner/constants"
	"event_planner/model"

	"gorm.io/gorm"
)

type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepo(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

func (r *GuestRepository) Create(ctx context.Context, g *model.Guest) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("create guest: %w", err)
	}
	return nil
}

func (r *GuestRepository) GetByID(ctx context.Context, eventId, id uint) (*model.Guest, error) {
	var g model.Guest
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventId).First(&g, id).Error; err != nil {
		return nil, notFound(err, constants.ErrGuestNotFound)
	}
	return &g, nil
}

func (r *GuestRepository) GetByToken(ctx context.Context, token string) (*model.Guest, error) {
	var g model.Guest
	if err := r.db.WithContext(ctx).Preload("Event").Where("rsvp_token = ?", token).First(&g).Error; err != nil {
		return nil, notFound(err, constants.ErrGuestNotFound)
	}
	return &g, nil
}

func (r *GuestRepository) List(ctx context.Context, eventId uint, filter model.GuestFilter) ([]model.Guest, error) {
	query := r.db.WithContext(ctx).Where("event_id = ?", eventId)
	if filter.RSVPStatus != nil && *filter.RSVPStatus != "" {
		query = query.Where("rsvp_status = ?", *filter.RSVPStatus)
	}
	if filter.GroupLabel != nil && *filter.GroupLabel != "" {
		query = query.Where("group_label = ?", *filter.GroupLabel)
	}
	if filter.SearchKey != "" {
		pattern := likePattern(filter.SearchKey)
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var guests []model.Guest
	if err := query.Order("name ASC, id ASC").Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}

func (r *GuestRepository) Save(ctx context.Context, g *model.Guest) error {
	if err := r.db.WithContext(ctx).Omit("Event").Save(g).Error; err != nil {
		return fmt.Errorf("save guest: %w", err)
	}
	return nil
}

func (r *GuestRepository) Delete(ctx context.Context, eventId, id uint) error {
	res := r.db.WithContext(ctx).Where("event_id = ?", eventId).Delete(&model.Guest{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete guest: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return constants.ErrGuestNotFound
	}
	return nil
}

func (r *GuestRepository) MarkInvited(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Guest{}).Where("id = ?", id).Update("invited_at", at).Error
}
