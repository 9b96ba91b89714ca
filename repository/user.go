package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"event_planner/constants"
	"event_planner/model"
	"event_planner/utils"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return constants.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err, constants.ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		return nil, notFound(err, constants.ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, filter model.UserFilter) ([]model.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.User{})
	if filter.Role != nil && *filter.Role != "" {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.SearchKey != "" {
		pattern := likePattern(filter.SearchKey)
		query = query.Where("email ILIKE ? OR full_name ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	var users []model.User
	query = utils.ApplyPagination(query.Order("created_at DESC"), filter.Limit, filter.Page)
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint, role string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return fmt.Errorf("update role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return constants.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return constants.ErrUserNotFound
	}
	return nil
}

type ResetCodeRepository struct {
	db *gorm.DB
}

func NewResetCodeRepo(db *gorm.DB) *ResetCodeRepository {
	return &ResetCodeRepository{db: db}
}

func (r *ResetCodeRepository) Create(ctx context.Context, code *model.PasswordResetCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *ResetCodeRepository) Latest(ctx context.Context, userId uint) (*model.PasswordResetCode, error) {
	var code model.PasswordResetCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND used_at IS NULL", userId).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		return nil, notFound(err, constants.ErrInvalidRecoveryCode)
	}
	return &code, nil
}

func (r *ResetCodeRepository) MarkUsed(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.PasswordResetCode{}).Where("id = ?", id).Update("used_at", at).Error
}

func (r *ResetCodeRepository) RecordFailure(ctx context.Context, id uint, maxAttempts int, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.PasswordResetCode{}).
		Where("id = ? AND used_at IS NULL", id).
		Updates(map[string]any{
			"attempts": gorm.Expr("attempts + 1"),
			"used_at":  gorm.Expr("CASE WHEN attempts + 1 >= ? THEN ?::timestamptz ELSE NULL END", maxAttempts, at),
		}).Error
}

func (r *ResetCodeRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR used_at IS NOT NULL", before).
		Delete(&model.PasswordResetCode{})
	return res.RowsAffected, res.Error
}
