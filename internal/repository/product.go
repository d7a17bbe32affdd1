package repository

import (
	"context"

	"docmarket/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, tx *gorm.DB, productID string) (*model.Product, error)
	FindByShortCode(ctx context.Context, shortCode string) (*model.Product, error)
	ShortCodeExists(ctx context.Context, shortCode string) (bool, error)
	ListActive(ctx context.Context) ([]*model.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*model.Product, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID takes the caller's handle so settlement reads stay inside the
// settlement transaction; non-transactional callers pass the pooled DB.
func (r *productRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, productID string) (*model.Product, error) {
	var product model.Product
	err := tx.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindByShortCode(ctx context.Context, shortCode string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("short_code = ?", shortCode).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) ShortCodeExists(ctx context.Context, shortCode string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("short_code = ?", shortCode).
		Count(&count).Error

	return count > 0, err
}

func (r *productRepoImpl) ListActive(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("active = ? AND in_review = ?", true, false).
		Order("created_at DESC").
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) ListBySeller(ctx context.Context, sellerID string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}
