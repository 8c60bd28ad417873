package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
)

// InstrumentRepository defines the interface for coupon, gift card, promo
// and referral code operations
type InstrumentRepository interface {
	Create(ctx context.Context, instrument *entity.Instrument) error
	// GetByCode returns nil when no live instrument has the code
	GetByCode(ctx context.Context, companyID uuid.UUID, kind enum.DiscountKind, code string) (*entity.Instrument, error)
	IsUsedBy(ctx context.Context, instrumentID, customerID uuid.UUID) (bool, error)
	// RecordUsage fails with CODE_ALREADY_USED if the customer already consumed it
	RecordUsage(ctx context.Context, usage *entity.InstrumentUsage) error
	// DecrementQuantity fails with CODE_EXHAUSTED when nothing is left
	DecrementQuantity(ctx context.Context, id uuid.UUID) error
}

// PaymentModeRepository defines the interface for the payment mode registry
type PaymentModeRepository interface {
	Create(ctx context.Context, mode *entity.PaymentMode) error
	ListActive(ctx context.Context) ([]entity.PaymentMode, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.PaymentMode, error)
}

// LoyaltyRuleRepository defines the interface for loyalty schedules
type LoyaltyRuleRepository interface {
	Save(ctx context.Context, rule *entity.LoyaltyRule) error
	ListByOutlet(ctx context.Context, outletID uuid.UUID) ([]entity.LoyaltyRule, error)
}
