package repository

import (
	"context"

	"github.com/Pessima-byte/Estommy-sub002/internal/dto"
	"github.com/Pessima-byte/Estommy-sub002/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreditRepository interface {
	CreateTx(tx *gorm.DB, c *model.Credit) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Credit, error)
	FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Credit, error)
	List(ctx context.Context, filter dto.CreditFilter) ([]model.Credit, int64, error)
	UpdateTx(tx *gorm.DB, c *model.Credit) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	// SumOutstanding recomputes the debt ledger's source of truth:
	// Σ(amount − amount_paid) over the customer's non-cleared credits.
	SumOutstanding(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)

	DB() *gorm.DB
}

type creditRepo struct{ db *gorm.DB }

func NewCreditRepository(db *gorm.DB) CreditRepository { return &creditRepo{db: db} }

func (r *creditRepo) CreateTx(tx *gorm.DB, c *model.Credit) error {
	return tx.Create(c).Error
}

func (r *creditRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Credit, error) {
	var c model.Credit
	err := r.db.WithContext(ctx).Preload("Customer").First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *creditRepo) FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Credit, error) {
	var c model.Credit
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *creditRepo) List(ctx context.Context, filter dto.CreditFilter) ([]model.Credit, int64, error) {
	var credits []model.Credit
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Credit{})
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DueBefore != "" {
		q = q.Where("due_date < ?", filter.DueBefore)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Customer").
		Order("due_date ASC").Limit(filter.Limit).Offset(offset).Find(&credits).Error
	return credits, total, err
}

func (r *creditRepo) UpdateTx(tx *gorm.DB, c *model.Credit) error {
	return tx.Save(c).Error
}

func (r *creditRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Credit{}, "id = ?", id).Error
}

func (r *creditRepo) SumOutstanding(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	var out struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&model.Credit{}).
		Select("COALESCE(SUM(amount - amount_paid), 0) AS total").
		Where("customer_id = ? AND status <> ?", customerID, model.CreditCleared).
		Scan(&out).Error
	return out.Total, err
}

func (r *creditRepo) DB() *gorm.DB { return r.db }
