package repository

import (
	"context"
	"fmt"
	"time"

	"event_planner/constants"
	"event_planner/model"

	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) EventsByStatus(ctx context.Context) ([]model.StatusCount, error) {
	var rows []model.StatusCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) AS count
		FROM events
		GROUP BY status
		ORDER BY status
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("events by status: %w", err)
	}
	return rows, nil
}

func (r *StatsRepository) EventsPerMonth(ctx context.Context, since time.Time) ([]model.MonthCount, error) {
	var rows []model.MonthCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT TO_CHAR(DATE_TRUNC('month', created_at), 'YYYY-MM') AS month, COUNT(*) AS count
		FROM events
		WHERE created_at >= ?
		GROUP BY 1
		ORDER BY 1
	`, since).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("events per month: %w", err)
	}
	return rows, nil
}

func (r *StatsRepository) PackagePopularity(ctx context.Context) ([]model.PackageCount, error) {
	var rows []model.PackageCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(package_name, 'Custom') AS package_name, COUNT(*) AS count
		FROM events
		GROUP BY 1
		ORDER BY count DESC, package_name
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("package popularity: %w", err)
	}
	return rows, nil
}

func (r *StatsRepository) ConfirmedBudget(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(budget_amount), 0)
		FROM events
		WHERE status IN ?
	`, []string{constants.EVENT_CONFIRMED, constants.EVENT_ACTIVE}).Scan(&total).Error
	return total, err
}

func (r *StatsRepository) CountEventsCreated(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *StatsRepository) GuestTotals(ctx context.Context) (model.GuestTotals, error) {
	var totals model.GuestTotals
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS guests,
		       COUNT(*) FILTER (WHERE rsvp_status = ?) AS attending,
		       COUNT(*) FILTER (WHERE rsvp_status = ?) AS declined,
		       COUNT(*) FILTER (WHERE rsvp_status = ?) AS pending
		FROM guests
	`, constants.RSVP_ATTENDING, constants.RSVP_DECLINED, constants.RSVP_PENDING).Scan(&totals).Error
	return totals, err
}

func (r *StatsRepository) GalleryTotals(ctx context.Context) (model.GalleryTotals, error) {
	var totals model.GalleryTotals
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FILTER (WHERE status = ?) AS published,
		       COUNT(*) FILTER (WHERE status = ?) AS drafts,
		       COALESCE(SUM(views), 0) AS views,
		       COALESCE(SUM(likes), 0) AS likes
		FROM gallery_items
	`, constants.GALLERY_PUBLISHED, constants.GALLERY_DRAFT).Scan(&totals).Error
	return totals, err
}

func (r *StatsRepository) UsersByRole(ctx context.Context) ([]model.StatusCount, error) {
	var rows []model.StatusCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT role AS status, COUNT(*) AS count
		FROM users
		GROUP BY role
		ORDER BY role
	`).Scan(&rows).Error
	return rows, err
}

func (r *StatsRepository) UnreadUserMessages(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("sender_role = ? AND is_read = ?", constants.SENDER_USER, false).
		Count(&count).Error
	return count, err
}
