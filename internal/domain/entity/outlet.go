package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Outlet is a physical shop of a company. Invoices, registers and loyalty
// schedules are all scoped to an outlet.
type Outlet struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID         `gorm:"type:uuid;not null;index" json:"company_id"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Settings  OutletSettings    `gorm:"type:jsonb" json:"settings"`
	Status    enum.RecordStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new outlet
func (o *Outlet) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = enum.RecordStatusActive
	}
	return nil
}

// TableName returns the table name for the Outlet model
func (Outlet) TableName() string {
	return "outlets"
}

// OutletSettings holds per-outlet configuration
type OutletSettings struct {
	InvoicePrefix string `json:"invoice_prefix,omitempty"`
	Timezone      string `json:"timezone,omitempty"`
	Currency      string `json:"currency,omitempty"`
}

// Location returns the outlet's timezone, UTC when unset or unknown
func (s OutletSettings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Scan implements the sql.Scanner interface for OutletSettings
func (s *OutletSettings) Scan(value interface{}) error {
	if value == nil {
		*s = OutletSettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan OutletSettings: unsupported type")
	}

	return json.Unmarshal(bytes, s)
}

// Value implements the driver.Valuer interface for OutletSettings
func (s OutletSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}
