package service

import (
	"context"
	"testing"

	"docmarket/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
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

type fakeGateway struct {
	createOrderFn func(ctx context.Context, amountMinorUnits int64, currency, receipt string) (string, error)
	verifyFn      func(rawBody []byte, signature string) bool
	createCalls   int
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (string, error) {
	f.createCalls++
	if f.createOrderFn != nil {
		return f.createOrderFn(ctx, amountMinorUnits, currency, receipt)
	}
	return "order_test", nil
}

func (f *fakeGateway) VerifyWebhookSignature(rawBody []byte, signature string) bool {
	if f.verifyFn != nil {
		return f.verifyFn(rawBody, signature)
	}
	return true
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, sellerID, price string) *model.Product {
	t.Helper()

	product := &model.Product{
		ID:        uuid.NewString(),
		SellerID:  sellerID,
		ShortCode: uuid.NewString()[:8],
		Title:     "test doc",
		Price:     decimal.RequireFromString(price),
		Active:    true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
