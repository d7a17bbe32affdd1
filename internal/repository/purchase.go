package repository

import (
	"context"
	"time"

	"docmarket/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, purchase *model.Purchase) error
	FindByBuyerAndProduct(ctx context.Context, buyerID, productID string) (*model.Purchase, error)
	Delete(ctx context.Context, purchaseID string) error
	MarkPaidByOrderRef(ctx context.Context, tx *gorm.DB, orderRef, paymentRef string) (*model.Purchase, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]*model.Purchase, error)
}

type purchaseRepoImpl struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepoImpl{
		db: db,
	}
}

func (r *purchaseRepoImpl) Create(ctx context.Context, tx *gorm.DB, purchase *model.Purchase) error {
	return tx.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepoImpl) FindByBuyerAndProduct(ctx context.Context, buyerID, productID string) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND product_id = ?", buyerID, productID).
		First(&purchase).Error

	if err != nil {
		return nil, err
	}

	return &purchase, nil
}

func (r *purchaseRepoImpl) Delete(ctx context.Context, purchaseID string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", purchaseID).
		Delete(&model.Purchase{}).Error
}

// MarkPaidByOrderRef flips a pending purchase to paid in a single
// conditional update keyed by the gateway order reference. The status
// predicate is the idempotency guard: a redelivered webhook finds no
// pending row and gets gorm.ErrRecordNotFound back.
func (r *purchaseRepoImpl) MarkPaidByOrderRef(ctx context.Context, tx *gorm.DB, orderRef, paymentRef string) (*model.Purchase, error) {
	result := tx.WithContext(ctx).Model(&model.Purchase{}).
		Where("gateway_order_id = ? AND status = ?", orderRef, model.PurchasePending).
		Updates(map[string]interface{}{
			"status":             model.PurchasePaid,
			"gateway_payment_id": paymentRef,
			"updated_at":         time.Now(),
		})

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var purchase model.Purchase
	err := tx.WithContext(ctx).
		Where("gateway_order_id = ?", orderRef).
		First(&purchase).Error

	if err != nil {
		return nil, err
	}

	return &purchase, nil
}

func (r *purchaseRepoImpl) ListByBuyer(ctx context.Context, buyerID string) ([]*model.Purchase, error) {
	var purchases []*model.Purchase
	err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&purchases).Error

	if err != nil {
		return nil, err
	}

	return purchases, nil
}
