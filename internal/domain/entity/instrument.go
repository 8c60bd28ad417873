package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Instrument is a code-based discount: coupon, gift card, promo code or referral code
type Instrument struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID          uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_instruments_company_kind_code" json:"company_id"`
	Kind               enum.DiscountKind `gorm:"size:20;not null;uniqueIndex:idx_instruments_company_kind_code" json:"kind"`
	Code               string            `gorm:"size:100;not null;uniqueIndex:idx_instruments_company_kind_code" json:"code"`
	Name               string            `gorm:"size:255" json:"name"`
	DiscountType       enum.DiscountType `gorm:"not null;default:0" json:"discount_type"`
	Value              decimal.Decimal   `gorm:"type:decimal(20,4);not null;default:0" json:"value"`
	IsActive           bool              `gorm:"not null" json:"is_active"`
	ValidUntil         *time.Time        `json:"valid_until,omitempty"`
	Quantity           *int              `json:"quantity,omitempty"` // nil means unlimited
	ReferrerCustomerID *uuid.UUID        `gorm:"type:uuid;index" json:"referrer_customer_id,omitempty"`
	Status             enum.RecordStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`

	// Relationships
	Usages []InstrumentUsage `gorm:"foreignKey:InstrumentID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new instrument
func (i *Instrument) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = enum.RecordStatusActive
	}
	return nil
}

// TableName returns the table name for the Instrument model
func (Instrument) TableName() string {
	return "instruments"
}

// InstrumentUsage records that a customer consumed an instrument
type InstrumentUsage struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InstrumentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_instrument_usages_customer" json:"instrument_id"`
	CustomerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_instrument_usages_customer" json:"customer_id"`
	InvoiceID    uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new usage
func (u *InstrumentUsage) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InstrumentUsage model
func (InstrumentUsage) TableName() string {
	return "instrument_usages"
}
