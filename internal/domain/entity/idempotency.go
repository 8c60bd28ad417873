package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyScope is who a replayable request belongs to. Keys issued by a
// till are unique per outlet and user, matching the invoice-level key.
type IdempotencyScope struct {
	OutletID uuid.UUID
	UserID   uuid.UUID
}

// IdempotencyKey is the stored response of a processed POST. A retry with the
// same key inside its scope replays it until ExpiresAt.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OutletID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_keys_scope"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_keys_scope"`
	Key          string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_keys_scope"`
	Endpoint     string    `gorm:"size:255;not null"`
	RequestHash  string    `gorm:"size:64;not null"`
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// Matches reports whether a retry hit the same endpoint with the same body
func (i *IdempotencyKey) Matches(endpoint, requestHash string) bool {
	return i.Endpoint == endpoint && i.RequestHash == requestHash
}
