package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/salonpos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/salonpos-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idempotencyRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db, now: time.Now}
}

func (r *idempotencyRepository) Find(ctx context.Context, scope entity.IdempotencyScope, key string) (*entity.IdempotencyKey, error) {
	var record entity.IdempotencyKey
	err := conn(ctx, r.db).
		Where("outlet_id = ? AND user_id = ? AND key = ?", scope.OutletID, scope.UserID, key).
		Where("expires_at > ?", r.now()).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Save inserts the record, or takes over a row whose key has expired but
// was not purged yet
func (r *idempotencyRepository) Save(ctx context.Context, record *entity.IdempotencyKey) (bool, error) {
	now := r.now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	res := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "outlet_id"}, {Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"endpoint", "request_hash", "response_code", "response_body", "created_at", "expires_at",
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "idempotency_keys.expires_at <= ?", Vars: []interface{}{now}},
		}},
	}).Create(record)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := conn(ctx, r.db).
		Where("expires_at <= ?", now).
		Delete(&entity.IdempotencyKey{})
	return res.RowsAffected, res.Error
}
