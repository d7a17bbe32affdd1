package repository

import (
	"context"

	"docmarket/internal/model"

	"gorm.io/gorm"
)

type EarningsRepository interface {
	Create(ctx context.Context, tx *gorm.DB, earnings *model.Earnings) error
	ListBySeller(ctx context.Context, sellerID string) ([]*model.Earnings, error)
}

type earningsRepoImpl struct {
	db *gorm.DB
}

func NewEarningsRepository(db *gorm.DB) EarningsRepository {
	return &earningsRepoImpl{
		db: db,
	}
}

func (r *earningsRepoImpl) Create(ctx context.Context, tx *gorm.DB, earnings *model.Earnings) error {
	return tx.WithContext(ctx).Create(earnings).Error
}

func (r *earningsRepoImpl) ListBySeller(ctx context.Context, sellerID string) ([]*model.Earnings, error) {
	var earnings []*model.Earnings
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&earnings).Error

	if err != nil {
		return nil, err
	}

	return earnings, nil
}
