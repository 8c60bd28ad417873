package entity

import (
	"time"

	"github.com/google/uuid"
)

// OutletSequence holds the last invoice number issued by an outlet
type OutletSequence struct {
	OutletID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	LastNumber int64     `gorm:"not null;default:0"`
	UpdatedAt  time.Time
}

// TableName returns the table name for the OutletSequence model
func (OutletSequence) TableName() string {
	return "outlet_sequences"
}
