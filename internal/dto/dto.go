package dto

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type CreateProductRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

type ProductResponse struct {
	ID        string          `json:"id"`
	SellerID  string          `json:"seller_id"`
	ShortCode string          `json:"short_code"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Active    bool            `json:"active"`
}

type InitiatePurchaseRequest struct {
	ProductID string `json:"product_id"`
}

// InitiatePurchaseResponse covers both checkout paths: Free is set for
// zero-price acquisitions, the gateway fields for everything else.
type InitiatePurchaseResponse struct {
	Free             bool   `json:"free"`
	PurchaseID       string `json:"purchase_id,omitempty"`
	OrderReference   string `json:"order_reference,omitempty"`
	AmountMinorUnits int64  `json:"amount_minor_units,omitempty"`
	Currency         string `json:"currency,omitempty"`
}

type ConfirmationStatus string

const (
	ConfirmationIgnored          ConfirmationStatus = "ignored"
	ConfirmationAlreadyProcessed ConfirmationStatus = "already_processed"
	ConfirmationSuccess          ConfirmationStatus = "success"
)

type ConfirmationResult struct {
	Status     ConfirmationStatus `json:"status"`
	PurchaseID string             `json:"purchase_id,omitempty"`
}

type EarningsResponse struct {
	PurchaseID   string          `json:"purchase_id"`
	Total        decimal.Decimal `json:"total"`
	PlatformFee  decimal.Decimal `json:"platform_fee"`
	SellerAmount decimal.Decimal `json:"seller_amount"`
}

type PurchaseResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
}
