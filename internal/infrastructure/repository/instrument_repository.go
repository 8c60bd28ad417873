package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/salonpos-api/internal/domain/repository"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type instrumentRepository struct {
	db *gorm.DB
}

// NewInstrumentRepository creates a new instrument repository
func NewInstrumentRepository(db *gorm.DB) domainRepo.InstrumentRepository {
	return &instrumentRepository{db: db}
}

func (r *instrumentRepository) Create(ctx context.Context, instrument *entity.Instrument) error {
	return conn(ctx, r.db).Create(instrument).Error
}

func (r *instrumentRepository) GetByCode(ctx context.Context, companyID uuid.UUID, kind enum.DiscountKind, code string) (*entity.Instrument, error) {
	var instrument entity.Instrument
	err := conn(ctx, r.db).Scopes(CompanyScope(companyID), NotDeleted).
		Where("kind = ? AND code = ?", kind, code).
		First(&instrument).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &instrument, err
}

func (r *instrumentRepository) IsUsedBy(ctx context.Context, instrumentID, customerID uuid.UUID) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.InstrumentUsage{}).
		Where("instrument_id = ? AND customer_id = ?", instrumentID, customerID).
		Count(&count).Error
	return count > 0, err
}

func (r *instrumentRepository) RecordUsage(ctx context.Context, usage *entity.InstrumentUsage) error {
	err := conn(ctx, r.db).Create(usage).Error
	if isDuplicate(err) {
		return apperror.NewBusinessRuleError(apperror.ReasonCodeAlreadyUsed, "Code has already been used by this customer")
	}
	return err
}

// DecrementQuantity uses: UPDATE instruments SET quantity = quantity - 1 WHERE id = ? AND quantity > 0
func (r *instrumentRepository) DecrementQuantity(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Model(&entity.Instrument{}).
		Where("id = ? AND quantity IS NOT NULL AND quantity > 0", id).
		Update("quantity", gorm.Expr("quantity - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewBusinessRuleError(apperror.ReasonCodeExhausted, "Code has no remaining uses")
	}
	return nil
}

type paymentModeRepository struct {
	db *gorm.DB
}

// NewPaymentModeRepository creates a new payment mode repository
func NewPaymentModeRepository(db *gorm.DB) domainRepo.PaymentModeRepository {
	return &paymentModeRepository{db: db}
}

func (r *paymentModeRepository) Create(ctx context.Context, mode *entity.PaymentMode) error {
	return conn(ctx, r.db).Create(mode).Error
}

func (r *paymentModeRepository) ListActive(ctx context.Context) ([]entity.PaymentMode, error) {
	var modes []entity.PaymentMode
	err := conn(ctx, r.db).Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&modes).Error
	return modes, err
}

func (r *paymentModeRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.PaymentMode, error) {
	out := make(map[uuid.UUID]entity.PaymentMode, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var modes []entity.PaymentMode
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&modes).Error; err != nil {
		return nil, err
	}
	for _, m := range modes {
		out[m.ID] = m
	}
	return out, nil
}

type loyaltyRuleRepository struct {
	db *gorm.DB
}

// NewLoyaltyRuleRepository creates a new loyalty rule repository
func NewLoyaltyRuleRepository(db *gorm.DB) domainRepo.LoyaltyRuleRepository {
	return &loyaltyRuleRepository{db: db}
}

// Save inserts the outlet's rule for the weekday or replaces its rates, then
// reloads it so rule carries the stored ID
func (r *loyaltyRuleRepository) Save(ctx context.Context, rule *entity.LoyaltyRule) error {
	db := conn(ctx, r.db)
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "outlet_id"}, {Name: "day_of_week"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"spend_amount", "earn_points", "redeem_points", "redeem_amount", "is_active", "updated_at",
		}),
	}).Create(rule).Error
	if err != nil {
		return err
	}
	var stored entity.LoyaltyRule
	if err := db.Where("outlet_id = ? AND day_of_week = ?", rule.OutletID, rule.DayOfWeek).First(&stored).Error; err != nil {
		return err
	}
	*rule = stored
	return nil
}

func (r *loyaltyRuleRepository) ListByOutlet(ctx context.Context, outletID uuid.UUID) ([]entity.LoyaltyRule, error) {
	var rules []entity.LoyaltyRule
	err := conn(ctx, r.db).
		Where("outlet_id = ? AND is_active = ?", outletID, true).
		Order("day_of_week ASC").
		Find(&rules).Error
	return rules, err
}
