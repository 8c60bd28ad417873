package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer is a client of the company. The wallet fields are only changed
// through atomic increments in the repository.
type Customer struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"company_id"`
	Name           string            `gorm:"size:255;not null" json:"name"`
	Email          *string           `gorm:"size:255" json:"email,omitempty"`
	Phone          *string           `gorm:"size:50" json:"phone,omitempty"`
	LoyaltyPoints  int64             `gorm:"not null;default:0" json:"loyalty_points"`
	CashBackAmount decimal.Decimal   `gorm:"type:decimal(20,4);not null;default:0" json:"cash_back_amount"`
	Status         enum.RecordStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = enum.RecordStatusActive
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// Wallet is the redeemable balance view of a customer
type Wallet struct {
	CustomerID     uuid.UUID       `json:"customer_id"`
	LoyaltyPoints  int64           `json:"loyalty_points"`
	CashBackAmount decimal.Decimal `json:"cash_back_amount"`
}

// Wallet returns the customer's current balances
func (c *Customer) Wallet() Wallet {
	return Wallet{
		CustomerID:     c.ID,
		LoyaltyPoints:  c.LoyaltyPoints,
		CashBackAmount: c.CashBackAmount,
	}
}
