package handler

import (
	"net/http"

	"docmarket/internal/dto"
	"docmarket/internal/middleware"
	"docmarket/internal/service"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	sellerID := middleware.UserID(c)

	var req dto.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	product, err := h.productService.CreateProduct(ctx, sellerID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.productService.GetByShortCode(ctx, c.Param("shortCode"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productService.ListActive(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	ctx := c.Request().Context()
	sellerID := middleware.UserID(c)

	products, err := h.productService.ListMine(ctx, sellerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, products)
}
