package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"docmarket/internal/apperr"
	"docmarket/internal/dto"
	"docmarket/internal/model"
	"docmarket/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(ctx context.Context, sellerID string, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByShortCode(ctx context.Context, shortCode string) (*dto.ProductResponse, error)
	ListActive(ctx context.Context) ([]*dto.ProductResponse, error)
	ListMine(ctx context.Context, sellerID string) ([]*dto.ProductResponse, error)
}

type productServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
	}
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, sellerID string, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, apperr.Validation("price must be a decimal number")
	}
	if price.IsNegative() {
		return nil, apperr.Validation("price must not be negative")
	}

	shortCode, err := s.uniqueShortCode(ctx)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		SellerID:    sellerID,
		ShortCode:   shortCode,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Price:       price.Round(2),
		Active:      true,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("short code collision, retry")
		}
		return nil, fmt.Errorf("store product: %w", err)
	}

	return toProductResponse(product), nil
}

func (s *productServiceImpl) GetByShortCode(ctx context.Context, shortCode string) (*dto.ProductResponse, error) {
	product, err := s.productRepo.FindByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product")
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	return toProductResponse(product), nil
}

func (s *productServiceImpl) ListActive(ctx context.Context) ([]*dto.ProductResponse, error) {
	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return toProductResponses(products), nil
}

func (s *productServiceImpl) ListMine(ctx context.Context, sellerID string) ([]*dto.ProductResponse, error) {
	products, err := s.productRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list seller products: %w", err)
	}

	return toProductResponses(products), nil
}

const shortCodeAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"

// uniqueShortCode draws random 8-char codes until one is free. The unique
// index on short_code still backstops a concurrent winner.
func (s *productServiceImpl) uniqueShortCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := randomShortCode(8)
		if err != nil {
			return "", fmt.Errorf("generate short code: %w", err)
		}

		exists, err := s.productRepo.ShortCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check short code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}

	return "", fmt.Errorf("could not find a free short code")
}

func randomShortCode(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	out := make([]byte, n)
	for i, b := range buf {
		out[i] = shortCodeAlphabet[int(b)%len(shortCodeAlphabet)]
	}

	return string(out), nil
}

func toProductResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		SellerID:  p.SellerID,
		ShortCode: p.ShortCode,
		Title:     p.Title,
		Price:     p.Price,
		Active:    p.Active,
	}
}

func toProductResponses(products []*model.Product) []*dto.ProductResponse {
	out := make([]*dto.ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}
