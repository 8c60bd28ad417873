package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceLog is an immutable snapshot of an invoice taken before an edit
type InvoiceLog struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID        uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	CompanyID        uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	OutletID         uuid.UUID `gorm:"type:uuid;not null" json:"outlet_id"`
	EditedBy         uuid.UUID `gorm:"type:uuid;not null" json:"edited_by"`
	IsPaymentChanged bool      `gorm:"not null" json:"is_payment_changed"`
	Snapshot         Invoice   `gorm:"type:jsonb;serializer:json" json:"snapshot"`
	CreatedAt        time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new invoice log
func (l *InvoiceLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceLog model
func (InvoiceLog) TableName() string {
	return "invoice_logs"
}
