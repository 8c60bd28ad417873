package service

import (
	"context"

	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/internal/domain/repository"
	"github.com/sangkips/salonpos-api/pkg/apperror"
)

// PaymentModeService exposes the payment mode registry
type PaymentModeService struct {
	modeRepo repository.PaymentModeRepository
}

// NewPaymentModeService creates a new payment mode service
func NewPaymentModeService(modeRepo repository.PaymentModeRepository) *PaymentModeService {
	return &PaymentModeService{modeRepo: modeRepo}
}

// ListActive returns the modes a tender may use, in display order
func (s *PaymentModeService) ListActive(ctx context.Context) ([]entity.PaymentMode, error) {
	modes, err := s.modeRepo.ListActive(ctx)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return modes, nil
}
