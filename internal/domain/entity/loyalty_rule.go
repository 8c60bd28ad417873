package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LoyaltyRule is one day of an outlet's loyalty schedule. DayOfWeek follows
// time.Weekday (0 = Sunday).
type LoyaltyRule struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	OutletID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_loyalty_rules_outlet_day" json:"outlet_id"`
	DayOfWeek    int             `gorm:"not null;uniqueIndex:idx_loyalty_rules_outlet_day" json:"day_of_week"`
	SpendAmount  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"spend_amount"`
	EarnPoints   int64           `gorm:"not null" json:"earn_points"`
	RedeemPoints int64           `gorm:"not null" json:"redeem_points"`
	RedeemAmount decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"redeem_amount"`
	IsActive     bool            `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new loyalty rule
func (r *LoyaltyRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LoyaltyRule model
func (LoyaltyRule) TableName() string {
	return "loyalty_rules"
}

// Schedule converts the rule into its pricing form
func (r LoyaltyRule) Schedule() pricing.LoyaltySchedule {
	return pricing.LoyaltySchedule{
		SpendAmount:  r.SpendAmount,
		EarnPoints:   r.EarnPoints,
		RedeemPoints: r.RedeemPoints,
		RedeemAmount: r.RedeemAmount,
	}
}
