package model

type GatewayPaymentEntity struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type GatewayEventPayload struct {
	Payment GatewayPaymentEntity `json:"payment"`
}

type GatewayWebhookEvent struct {
	ID        string              `json:"id"`
	EventType string              `json:"event"`
	CreatedAt int64               `json:"created_at"`
	Payload   GatewayEventPayload `json:"payload"`
}
