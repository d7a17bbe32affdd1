package handler

import (
	"net/http"

	"docmarket/internal/middleware"
	"docmarket/internal/service"

	"github.com/labstack/echo/v4"
)

type EarningsHandler struct {
	earningsService service.EarningsService
}

func NewEarningsHandler(earningsService service.EarningsService) *EarningsHandler {
	return &EarningsHandler{
		earningsService: earningsService,
	}
}

func (h *EarningsHandler) ListMyEarnings(c echo.Context) error {
	ctx := c.Request().Context()
	sellerID := middleware.UserID(c)

	earnings, err := h.earningsService.ListSellerEarnings(ctx, sellerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, earnings)
}
