package repository

import (
	"context"
	"errors"
	"testing"

	"docmarket/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Purchase{},
		&model.Earnings{},
		&model.WebhookEvent{},
	))

	return db
}

func pendingPurchase(buyerID, productID, orderRef string) *model.Purchase {
	return &model.Purchase{
		ID:             uuid.NewString(),
		BuyerID:        buyerID,
		ProductID:      productID,
		GatewayOrderID: orderRef,
		Amount:         decimal.RequireFromString("10.00"),
		Status:         model.PurchasePending,
	}
}

func TestMarkPaidByOrderRefIsSingleShot(t *testing.T) {
	db := setupDB(t)
	repo := NewPurchaseRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, db, pendingPurchase("buyer", "product", "order_1")))

	purchase, err := repo.MarkPaidByOrderRef(ctx, db, "order_1", "pay_1")
	require.NoError(t, err)
	require.Equal(t, model.PurchasePaid, purchase.Status)
	require.Equal(t, "pay_1", purchase.GatewayPaymentID)

	// second delivery finds no pending row
	_, err = repo.MarkPaidByOrderRef(ctx, db, "order_1", "pay_1")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// unknown order behaves the same way
	_, err = repo.MarkPaidByOrderRef(ctx, db, "order_nope", "pay_x")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestBuyerProductUniqueIndex(t *testing.T) {
	db := setupDB(t)
	repo := NewPurchaseRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, db, pendingPurchase("buyer", "product", "order_1")))

	err := repo.Create(ctx, db, pendingPurchase("buyer", "product", "order_2"))
	require.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	// same buyer, different product is fine
	require.NoError(t, repo.Create(ctx, db, pendingPurchase("buyer", "product2", "order_3")))
}

func TestEarningsUniquePerPurchase(t *testing.T) {
	db := setupDB(t)
	purchaseRepo := NewPurchaseRepository(db)
	earningsRepo := NewEarningsRepository(db)
	ctx := context.Background()

	p := pendingPurchase("buyer", "product", "order_1")
	require.NoError(t, purchaseRepo.Create(ctx, db, p))

	e := &model.Earnings{
		ID:           uuid.NewString(),
		PurchaseID:   p.ID,
		SellerID:     "seller",
		Total:        decimal.RequireFromString("10.00"),
		PlatformFee:  decimal.RequireFromString("1.00"),
		SellerAmount: decimal.RequireFromString("9.00"),
	}
	require.NoError(t, earningsRepo.Create(ctx, db, e))

	dup := *e
	dup.ID = uuid.NewString()
	err := earningsRepo.Create(ctx, db, &dup)
	require.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}
