package handler

import (
	"io"
	"net/http"

	"docmarket/internal/service"

	"github.com/labstack/echo/v4"
)

// Signature header set by the payment gateway on webhook deliveries.
const signatureHeader = "X-Gateway-Signature"

type WebhookHandler struct {
	settlementService service.SettlementService
}

func NewWebhookHandler(settlementService service.SettlementService) *WebhookHandler {
	return &WebhookHandler{
		settlementService: settlementService,
	}
}

// GatewayWebhook hands the raw, unparsed body to the settlement service.
// The body must not be decoded here or the signature check breaks.
func (h *WebhookHandler) GatewayWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	result, err := h.settlementService.HandlePaymentConfirmation(ctx, body, c.Request().Header.Get(signatureHeader))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
