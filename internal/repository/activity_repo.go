package repository

import (
	"context"

	"github.com/Pessima-byte/Estommy-sub002/internal/dto"
	"github.com/Pessima-byte/Estommy-sub002/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository interface {
	// CreateTx inserts within the caller's transaction so the audit row
	// commits or rolls back with the mutation it describes.
	CreateTx(tx *gorm.DB, a *model.Activity) error
	List(ctx context.Context, filter dto.ActivityFilter) ([]model.Activity, int64, error)
}

type activityRepo struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) ActivityRepository { return &activityRepo{db: db} }

func (r *activityRepo) CreateTx(tx *gorm.DB, a *model.Activity) error {
	return tx.Create(a).Error
}

func (r *activityRepo) List(ctx context.Context, filter dto.ActivityFilter) ([]model.Activity, int64, error) {
	var activities []model.Activity
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Activity{})
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		q = q.Where("entity_id = ?", filter.EntityID)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&activities).Error
	return activities, total, err
}
