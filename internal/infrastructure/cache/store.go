package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store keeps JSON encoded objects with an expiry
type Store interface {
	// GetObject decodes the value under key into dest. It reports false when
	// the key is missing or expired.
	GetObject(ctx context.Context, key string, dest any) (bool, error)
	SetObject(ctx context.Context, key string, obj any, exp time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// LoyaltyRulesKey is where an outlet's loyalty schedule is cached
func LoyaltyRulesKey(outletID uuid.UUID) string {
	return fmt.Sprintf("loyalty_rules:%s", outletID)
}

// DraftKey is where a saved cart lives
func DraftKey(companyID, draftID uuid.UUID) string {
	return fmt.Sprintf("draft:%s:%s", companyID, draftID)
}
