package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseStatus = string

const (
	PurchasePending PurchaseStatus = "pending"
	PurchasePaid    PurchaseStatus = "paid"
	PurchaseFailed  PurchaseStatus = "failed"
)

type User struct {
	ID           string `gorm:"primaryKey;size:36;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:128;not null"`
	DisplayName  string `gorm:"size:128"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Products  []Product  `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE"`
	Purchases []Purchase `gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE"`
}

type Product struct {
	ID          string `gorm:"primaryKey;size:36;not null"`
	SellerID    string `gorm:"size:36;index;not null"`
	ShortCode   string `gorm:"size:32;uniqueIndex;not null"`
	Title       string `gorm:"size:255;not null"`
	Description string
	// Price in major currency units, 2 decimal places. Zero means free.
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Active    bool            `gorm:"not null;default:true"`
	InReview  bool            `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Purchases []Purchase `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// Purchase is one buyer's attempt to acquire one product. The composite
// unique index on (buyer_id, product_id) is what stops two concurrent
// checkouts from both inserting a row; application-level checks only
// narrow the window.
type Purchase struct {
	ID        string `gorm:"primaryKey;size:36;not null"`
	BuyerID   string `gorm:"size:36;not null;uniqueIndex:idx_purchases_buyer_product"`
	ProductID string `gorm:"size:36;not null;uniqueIndex:idx_purchases_buyer_product"`
	// Gateway references are absent for free acquisitions; the payment
	// reference stays empty until the captured webhook arrives.
	GatewayOrderID   string          `gorm:"size:64;index"`
	GatewayPaymentID string          `gorm:"size:64"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status           PurchaseStatus  `gorm:"size:16;index;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Earnings *Earnings `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

// Earnings is the immutable commission split for a settled purchase.
// One row per purchase, written only by the settlement processor.
type Earnings struct {
	ID           string          `gorm:"primaryKey;size:36;not null"`
	PurchaseID   string          `gorm:"size:36;uniqueIndex;not null"`
	SellerID     string          `gorm:"size:36;index;not null"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PlatformFee  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SellerAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt    time.Time
}

type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
