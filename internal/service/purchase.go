package service

import (
	"context"
	"errors"
	"fmt"

	"docmarket/internal/apperr"
	"docmarket/internal/client"
	"docmarket/internal/dto"
	"docmarket/internal/model"
	"docmarket/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PurchaseService drives a purchase from initiation to the hand-off point:
// free products settle immediately, paid products get a gateway order and a
// pending row that only the webhook pipeline may promote.
type PurchaseService interface {
	InitiatePurchase(ctx context.Context, buyerID, productID string) (*dto.InitiatePurchaseResponse, error)
	ListLibrary(ctx context.Context, buyerID string) ([]*dto.PurchaseResponse, error)
}

type purchaseServiceImpl struct {
	db            *gorm.DB
	gatewayClient client.GatewayClient
	currency      string
	log           *zap.Logger
	productRepo   repository.ProductRepository
	purchaseRepo  repository.PurchaseRepository
	earningsRepo  repository.EarningsRepository
}

func NewPurchaseService(
	db *gorm.DB,
	gatewayClient client.GatewayClient,
	currency string,
	log *zap.Logger,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	earningsRepo repository.EarningsRepository,
) PurchaseService {
	return &purchaseServiceImpl{
		db:            db,
		gatewayClient: gatewayClient,
		currency:      currency,
		log:           log,
		productRepo:   productRepo,
		purchaseRepo:  purchaseRepo,
		earningsRepo:  earningsRepo,
	}
}

func (s *purchaseServiceImpl) InitiatePurchase(ctx context.Context, buyerID, productID string) (*dto.InitiatePurchaseResponse, error) {
	product, err := s.productRepo.FindByID(ctx, s.db, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product")
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if product.SellerID == buyerID {
		return nil, apperr.Conflict("cannot purchase your own product")
	}

	existing, err := s.purchaseRepo.FindByBuyerAndProduct(ctx, buyerID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find existing purchase: %w", err)
	}

	if existing != nil {
		if existing.Status == model.PurchasePaid {
			return nil, apperr.Conflict("product already owned")
		}

		// Abandoned checkout: drop the stale pending/failed row so the
		// buyer can start over. Loses history of the abandoned attempt.
		if err := s.purchaseRepo.Delete(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("delete stale purchase: %w", err)
		}
	}

	if product.Price.IsZero() {
		return s.acquireFree(ctx, buyerID, product)
	}

	return s.createGatewayOrder(ctx, buyerID, product)
}

// acquireFree settles a zero-price product on the spot: a paid purchase and
// a zero-valued earnings row, no gateway round trip.
func (s *purchaseServiceImpl) acquireFree(ctx context.Context, buyerID string, product *model.Product) (*dto.InitiatePurchaseResponse, error) {
	purchase := &model.Purchase{
		ID:        uuid.NewString(),
		BuyerID:   buyerID,
		ProductID: product.ID,
		Amount:    decimal.Zero,
		Status:    model.PurchasePaid,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.purchaseRepo.Create(ctx, tx, purchase); err != nil {
			return fmt.Errorf("store purchase: %w", err)
		}

		earnings := &model.Earnings{
			ID:           uuid.NewString(),
			PurchaseID:   purchase.ID,
			SellerID:     product.SellerID,
			Total:        decimal.Zero,
			PlatformFee:  decimal.Zero,
			SellerAmount: decimal.Zero,
		}
		if err := s.earningsRepo.Create(ctx, tx, earnings); err != nil {
			return fmt.Errorf("store earnings: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("purchase already in progress")
		}
		return nil, err
	}

	s.log.Info("free product acquired",
		zap.String("purchase_id", purchase.ID),
		zap.String("product_id", product.ID),
	)

	return &dto.InitiatePurchaseResponse{
		Free:       true,
		PurchaseID: purchase.ID,
	}, nil
}

func (s *purchaseServiceImpl) createGatewayOrder(ctx context.Context, buyerID string, product *model.Product) (*dto.InitiatePurchaseResponse, error) {
	amountMinor := product.Price.Shift(2).Round(0).IntPart()

	orderRef, err := s.gatewayClient.CreateOrder(ctx, amountMinor, s.currency, product.ShortCode)
	if err != nil {
		return nil, apperr.Gateway(fmt.Errorf("create order: %w", err))
	}

	purchase := &model.Purchase{
		ID:             uuid.NewString(),
		BuyerID:        buyerID,
		ProductID:      product.ID,
		GatewayOrderID: orderRef,
		Amount:         product.Price,
		Status:         model.PurchasePending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.purchaseRepo.Create(ctx, tx, purchase)
	})
	if err != nil {
		// The unique index on (buyer_id, product_id) is the real guard
		// against two concurrent checkouts; the loser lands here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("purchase already in progress")
		}
		return nil, fmt.Errorf("store purchase: %w", err)
	}

	s.log.Info("gateway order created",
		zap.String("purchase_id", purchase.ID),
		zap.String("order_ref", orderRef),
		zap.Int64("amount_minor", amountMinor),
	)

	return &dto.InitiatePurchaseResponse{
		OrderReference:   orderRef,
		AmountMinorUnits: amountMinor,
		Currency:         s.currency,
	}, nil
}

func (s *purchaseServiceImpl) ListLibrary(ctx context.Context, buyerID string) ([]*dto.PurchaseResponse, error) {
	purchases, err := s.purchaseRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	out := make([]*dto.PurchaseResponse, len(purchases))
	for i, p := range purchases {
		out[i] = &dto.PurchaseResponse{
			ID:        p.ID,
			ProductID: p.ProductID,
			Amount:    p.Amount,
			Status:    p.Status,
		}
	}

	return out, nil
}
