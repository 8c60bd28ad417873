package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Register is one open/close cycle of an outlet's cash drawer. The partial
// unique index keeps at most one open register per outlet.
type Register struct {
	ID                  uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID           uuid.UUID           `gorm:"type:uuid;not null;index" json:"company_id"`
	OutletID            uuid.UUID           `gorm:"type:uuid;not null;index;index:idx_registers_open_outlet,unique,where:status = 'open'" json:"outlet_id"`
	Status              enum.RegisterStatus `gorm:"size:20;not null" json:"status"`
	OpeningBalance      decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"opening_balance"`
	OpenedAt            time.Time           `gorm:"not null" json:"opened_at"`
	OpenedBy            uuid.UUID           `gorm:"type:uuid;not null" json:"opened_by"`
	ClosedAt            *time.Time          `json:"closed_at,omitempty"`
	ClosedBy            *uuid.UUID          `gorm:"type:uuid" json:"closed_by,omitempty"`
	ManualCashCount     decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"manual_cash_count"`
	BankDeposit         decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"bank_deposit"`
	TotalCashUsage      decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"total_cash_usage"`
	CarryForwardBalance decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"carry_forward_balance"`
	CloseNote           *string             `gorm:"type:text" json:"close_note,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`

	// Relationships
	ModeTotals   []RegisterModeTotal  `gorm:"foreignKey:RegisterID" json:"mode_totals,omitempty"`
	CloseEntries []RegisterCloseEntry `gorm:"foreignKey:RegisterID" json:"close_entries,omitempty"`
	CashUsages   []CashUsage          `gorm:"foreignKey:RegisterID" json:"cash_usages,omitempty"`
}

// BeforeCreate generates a UUID before creating a new register
func (r *Register) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Register model
func (Register) TableName() string {
	return "registers"
}

// RegisterPosting records a tender amount moved into a register by an invoice
type RegisterPosting struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	RegisterID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"register_id"`
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	PaymentModeID uuid.UUID       `gorm:"type:uuid;not null" json:"payment_mode_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new posting
func (p *RegisterPosting) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RegisterPosting model
func (RegisterPosting) TableName() string {
	return "register_postings"
}

// RegisterModeTotal is the running automatic total of a payment mode
type RegisterModeTotal struct {
	RegisterID    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"register_id"`
	PaymentModeID uuid.UUID       `gorm:"type:uuid;primaryKey" json:"payment_mode_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName returns the table name for the RegisterModeTotal model
func (RegisterModeTotal) TableName() string {
	return "register_mode_totals"
}

// RegisterCloseEntry is the reconciliation line of a payment mode at close
type RegisterCloseEntry struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	RegisterID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"register_id"`
	PaymentModeID   uuid.UUID       `gorm:"type:uuid;not null" json:"payment_mode_id"`
	PaymentModeName string          `gorm:"size:100" json:"payment_mode_name"`
	IsCash          bool            `gorm:"not null" json:"is_cash"`
	AutomaticTotal  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"automatic_total"`
	ManualCount     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"manual_count"`
	Discrepancy     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"discrepancy"`
	Reason          *string         `gorm:"type:text" json:"reason,omitempty"`
}

// BeforeCreate generates a UUID before creating a new close entry
func (e *RegisterCloseEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RegisterCloseEntry model
func (RegisterCloseEntry) TableName() string {
	return "register_close_entries"
}

// CashUsage is cash taken out of the drawer for an expense
type CashUsage struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	RegisterID uuid.UUID       `gorm:"type:uuid;not null;index" json:"register_id"`
	OutletID   uuid.UUID       `gorm:"type:uuid;not null" json:"outlet_id"`
	Reason     string          `gorm:"size:255;not null" json:"reason"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	ProofRef   *string         `gorm:"size:255" json:"proof_ref,omitempty"`
	CreatedBy  uuid.UUID       `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new cash usage
func (u *CashUsage) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashUsage model
func (CashUsage) TableName() string {
	return "cash_usages"
}
