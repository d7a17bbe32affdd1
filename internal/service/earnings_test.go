package service

import (
	"context"
	"testing"

	"docmarket/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestListSellerEarnings(t *testing.T) {
	db := setupDB(t)
	seller, _, _ := seedPendingPurchase(t, db, "order_earn", "100.00")
	settlement := newSettlementService(db, "0.10")

	body := capturedEventBody("evt_earn", "order_earn", "pay_earn")
	_, err := settlement.HandlePaymentConfirmation(context.Background(), body, signBody(body))
	require.NoError(t, err)

	svc := NewEarningsService(repository.NewEarningsRepository(db))

	earnings, err := svc.ListSellerEarnings(context.Background(), seller.ID)
	require.NoError(t, err)
	require.Len(t, earnings, 1)
	require.True(t, earnings[0].Total.Equal(decimal.RequireFromString("100.00")))
	require.True(t, earnings[0].PlatformFee.Equal(decimal.RequireFromString("10.00")))
	require.True(t, earnings[0].SellerAmount.Equal(decimal.RequireFromString("90.00")))

	other, err := svc.ListSellerEarnings(context.Background(), "someone-else")
	require.NoError(t, err)
	require.Empty(t, other)
}
