package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	domainRepo "github.com/sangkips/salonpos-api/internal/domain/repository"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"gorm.io/gorm"
)

type txKey struct{}

// conn returns the transaction carried by ctx, or db when there is none.
// Every repository query goes through it so that work started inside
// Transactor.WithinTransaction stays on one connection.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// CompanyScope returns a GORM scope that filters by company.
// A missing company matches nothing rather than everything.
func CompanyScope(companyID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if companyID == uuid.Nil {
			return db.Where("1 = 0")
		}
		return db.Where("company_id = ?", companyID)
	}
}

// NotDeleted excludes soft-deleted catalog records
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", enum.RecordStatusDeleted)
}

// QuerySpecScope applies the filters of a QuerySpec. Column names come
// from code, never from the client.
func QuerySpecScope(spec domainRepo.QuerySpec) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		keys := make([]string, 0, len(spec.Equals))
		for k := range spec.Equals {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			db = db.Where(k+" = ?", spec.Equals[k])
		}

		if spec.Search != "" && len(spec.SearchColumns) > 0 {
			pattern := "%" + strings.ToLower(spec.Search) + "%"
			clauses := make([]string, len(spec.SearchColumns))
			args := make([]interface{}, len(spec.SearchColumns))
			for i, col := range spec.SearchColumns {
				clauses[i] = "LOWER(" + col + ") LIKE ?"
				args[i] = pattern
			}
			db = db.Where("("+strings.Join(clauses, " OR ")+")", args...)
		}

		if spec.DateColumn != "" {
			if spec.DateFrom != nil {
				db = db.Where(spec.DateColumn+" >= ?", *spec.DateFrom)
			}
			if spec.DateTo != nil {
				db = db.Where(spec.DateColumn+" <= ?", *spec.DateTo)
			}
		}
		return db
	}
}
