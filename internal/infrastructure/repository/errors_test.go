package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	business := apperror.NewBusinessRuleError(apperror.ReasonCodeAlreadyUsed, "used")

	tests := []struct {
		name string
		err  error
		want apperror.Kind
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, apperror.KindConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, apperror.KindConflict},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, apperror.KindConflict},
		{"unique violation", &pgconn.PgError{Code: "23505"}, apperror.KindConflict},
		{"wrapped unique violation", fmt.Errorf("insert invoice: %w", &pgconn.PgError{Code: "23505"}), apperror.KindConflict},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, apperror.KindConflict},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, apperror.KindStorage},
		{"connection lost", errors.New("connection reset by peer"), apperror.KindStorage},
		{"business rule passes through", business, apperror.KindBusinessRule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)
			if kind := apperror.KindOf(got); kind != tt.want {
				t.Fatalf("KindOf(translateError(%v)) = %q, want %q", tt.err, kind, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("translated error does not wrap %v", tt.err)
			}
		})
	}

	if translateError(nil) != nil {
		t.Errorf("translateError(nil) should be nil")
	}
	if got := translateError(business); got != business {
		t.Errorf("application errors should be returned unchanged, got %v", got)
	}
}
