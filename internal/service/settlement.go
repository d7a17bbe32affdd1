package service

import (
	"context"
	"encoding/json"
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

// Gateway event type that settles a purchase. Everything else is ignored.
const eventPaymentCaptured = "payment.captured"

// SettlementService is the only path by which a paid purchase becomes
// trusted: it consumes signed gateway webhooks, promotes the pending row
// and writes the commission split. Client-reported "I paid" callbacks are
// never accepted.
type SettlementService interface {
	HandlePaymentConfirmation(ctx context.Context, rawBody []byte, signature string) (*dto.ConfirmationResult, error)
}

type settlementServiceImpl struct {
	db               *gorm.DB
	gatewayClient    client.GatewayClient
	commissionRate   decimal.Decimal
	log              *zap.Logger
	productRepo      repository.ProductRepository
	purchaseRepo     repository.PurchaseRepository
	earningsRepo     repository.EarningsRepository
	webhookEventRepo repository.WebhookEventRepository
}

func NewSettlementService(
	db *gorm.DB,
	gatewayClient client.GatewayClient,
	commissionRate decimal.Decimal,
	log *zap.Logger,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	earningsRepo repository.EarningsRepository,
	webhookEventRepo repository.WebhookEventRepository,
) SettlementService {
	return &settlementServiceImpl{
		db:               db,
		gatewayClient:    gatewayClient,
		commissionRate:   commissionRate,
		log:              log,
		productRepo:      productRepo,
		purchaseRepo:     purchaseRepo,
		earningsRepo:     earningsRepo,
		webhookEventRepo: webhookEventRepo,
	}
}

func (s *settlementServiceImpl) HandlePaymentConfirmation(ctx context.Context, rawBody []byte, signature string) (*dto.ConfirmationResult, error) {
	// The HMAC runs over the exact bytes received on the wire. Parsing
	// first and re-serializing would silently break verification.
	if !s.gatewayClient.VerifyWebhookSignature(rawBody, signature) {
		return nil, apperr.InvalidSignature()
	}

	var event model.GatewayWebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, apperr.Validation("malformed webhook payload")
	}

	if event.EventType != eventPaymentCaptured {
		s.log.Debug("webhook event ignored", zap.String("event_type", event.EventType))
		return &dto.ConfirmationResult{Status: dto.ConfirmationIgnored}, nil
	}

	orderRef := event.Payload.Payment.OrderID
	paymentRef := event.Payload.Payment.ID
	if orderRef == "" || paymentRef == "" {
		return nil, apperr.Validation("webhook payload missing order or payment reference")
	}

	// Cheap dedupe on the event id; the conditional update below remains
	// the guarantee for retries that arrive under a fresh id.
	seen, err := s.webhookEventRepo.Exists(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("check webhook event: %w", err)
	}
	if seen {
		return &dto.ConfirmationResult{Status: dto.ConfirmationAlreadyProcessed}, nil
	}

	var purchaseID string
	alreadyProcessed := false

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		purchase, err := s.purchaseRepo.MarkPaidByOrderRef(ctx, tx, orderRef, paymentRef)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Redelivered event or unknown order. Gateways retry
				// webhooks; both cases are a harmless no-op.
				alreadyProcessed = true
				return nil
			}
			return fmt.Errorf("mark purchase paid: %w", err)
		}
		purchaseID = purchase.ID

		product, err := s.productRepo.FindByID(ctx, tx, purchase.ProductID)
		if err != nil {
			return fmt.Errorf("find product for settlement: %w", err)
		}

		earnings := splitCommission(purchase, product.SellerID, s.commissionRate)
		if err := s.earningsRepo.Create(ctx, tx, earnings); err != nil {
			return fmt.Errorf("store earnings: %w", err)
		}

		if err := s.webhookEventRepo.MarkProcessed(ctx, tx, event.ID, event.EventType); err != nil {
			return fmt.Errorf("record webhook event: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if alreadyProcessed {
		return &dto.ConfirmationResult{Status: dto.ConfirmationAlreadyProcessed}, nil
	}

	s.log.Info("purchase settled",
		zap.String("purchase_id", purchaseID),
		zap.String("order_ref", orderRef),
	)

	return &dto.ConfirmationResult{
		Status:     dto.ConfirmationSuccess,
		PurchaseID: purchaseID,
	}, nil
}

// splitCommission computes the platform fee as rate x total rounded to the
// cent; the seller gets the remainder so the two legs always sum exactly to
// the total.
func splitCommission(purchase *model.Purchase, sellerID string, rate decimal.Decimal) *model.Earnings {
	fee := purchase.Amount.Mul(rate).Round(2)
	sellerAmount := purchase.Amount.Sub(fee)

	return &model.Earnings{
		ID:           uuid.NewString(),
		PurchaseID:   purchase.ID,
		SellerID:     sellerID,
		Total:        purchase.Amount,
		PlatformFee:  fee,
		SellerAmount: sellerAmount,
	}
}
