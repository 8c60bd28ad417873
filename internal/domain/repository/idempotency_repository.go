package repository

import (
	"context"
	"time"

	"github.com/sangkips/salonpos-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses of POST requests
type IdempotencyRepository interface {
	// Find returns the unexpired record for key in scope, or nil
	Find(ctx context.Context, scope entity.IdempotencyScope, key string) (*entity.IdempotencyKey, error)
	// Save stores record unless an unexpired one already holds its key.
	// stored is false when a concurrent request got there first.
	Save(ctx context.Context, record *entity.IdempotencyKey) (stored bool, err error)
	// DeleteExpired purges records that expired before now
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
