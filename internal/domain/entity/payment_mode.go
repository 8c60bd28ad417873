package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentMode is a way of settling an invoice: cash, card, bank transfer...
// Only cash modes may give change.
type PaymentMode struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:100;unique;not null" json:"name"`
	IsCash    bool      `gorm:"not null" json:"is_cash"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new payment mode
func (p *PaymentMode) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentMode model
func (PaymentMode) TableName() string {
	return "payment_modes"
}
