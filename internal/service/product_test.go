package service

import (
	"context"
	"testing"

	"docmarket/internal/apperr"
	"docmarket/internal/dto"
	"docmarket/internal/model"
	"docmarket/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	db := setupDB(t)
	seller := seedUser(t, db, "seller@example.com")
	svc := NewProductService(repository.NewProductRepository(db))

	product, err := svc.CreateProduct(context.Background(), seller.ID, &dto.CreateProductRequest{
		Title: "Tax guide 2026",
		Price: "19.99",
	})
	require.NoError(t, err)
	require.Len(t, product.ShortCode, 8)
	require.Equal(t, seller.ID, product.SellerID)
	require.True(t, product.Active)

	got, err := svc.GetByShortCode(context.Background(), product.ShortCode)
	require.NoError(t, err)
	require.Equal(t, product.ID, got.ID)
}

func TestCreateProductValidation(t *testing.T) {
	db := setupDB(t)
	seller := seedUser(t, db, "seller@example.com")
	svc := NewProductService(repository.NewProductRepository(db))

	_, err := svc.CreateProduct(context.Background(), seller.ID, &dto.CreateProductRequest{
		Title: "", Price: "1.00",
	})
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindValidation, appErr.Kind)

	_, err = svc.CreateProduct(context.Background(), seller.ID, &dto.CreateProductRequest{
		Title: "Doc", Price: "-1.00",
	})
	appErr, ok = apperr.As(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindValidation, appErr.Kind)

	_, err = svc.CreateProduct(context.Background(), seller.ID, &dto.CreateProductRequest{
		Title: "Doc", Price: "abc",
	})
	appErr, ok = apperr.As(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindValidation, appErr.Kind)
}

func TestListActiveExcludesHiddenProducts(t *testing.T) {
	db := setupDB(t)
	seller := seedUser(t, db, "seller@example.com")
	svc := NewProductService(repository.NewProductRepository(db))

	visible := seedProduct(t, db, seller.ID, "5.00")

	hidden := seedProduct(t, db, seller.ID, "5.00")
	require.NoError(t, db.Model(&model.Product{}).Where("id = ?", hidden.ID).Update("active", false).Error)

	review := seedProduct(t, db, seller.ID, "5.00")
	require.NoError(t, db.Model(&model.Product{}).Where("id = ?", review.ID).Update("in_review", true).Error)

	products, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, visible.ID, products[0].ID)

	mine, err := svc.ListMine(context.Background(), seller.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3, "seller sees own hidden products")
}
