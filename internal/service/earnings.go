package service

import (
	"context"
	"fmt"

	"docmarket/internal/dto"
	"docmarket/internal/repository"
)

type EarningsService interface {
	ListSellerEarnings(ctx context.Context, sellerID string) ([]*dto.EarningsResponse, error)
}

type earningsServiceImpl struct {
	earningsRepo repository.EarningsRepository
}

func NewEarningsService(earningsRepo repository.EarningsRepository) EarningsService {
	return &earningsServiceImpl{
		earningsRepo: earningsRepo,
	}
}

func (s *earningsServiceImpl) ListSellerEarnings(ctx context.Context, sellerID string) ([]*dto.EarningsResponse, error) {
	earnings, err := s.earningsRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list earnings: %w", err)
	}

	out := make([]*dto.EarningsResponse, len(earnings))
	for i, e := range earnings {
		out[i] = &dto.EarningsResponse{
			PurchaseID:   e.PurchaseID,
			Total:        e.Total,
			PlatformFee:  e.PlatformFee,
			SellerAmount: e.SellerAmount,
		}
	}

	return out, nil
}
