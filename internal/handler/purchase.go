package handler

import (
	"net/http"

	"docmarket/internal/dto"
	"docmarket/internal/middleware"
	"docmarket/internal/service"

	"github.com/labstack/echo/v4"
)

type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

func (h *PurchaseHandler) InitiatePurchase(c echo.Context) error {
	ctx := c.Request().Context()
	buyerID := middleware.UserID(c)

	var req dto.InitiatePurchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.ProductID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	result, err := h.purchaseService.InitiatePurchase(ctx, buyerID, req.ProductID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *PurchaseHandler) GetLibrary(c echo.Context) error {
	ctx := c.Request().Context()
	buyerID := middleware.UserID(c)

	purchases, err := h.purchaseService.ListLibrary(ctx, buyerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, purchases)
}
