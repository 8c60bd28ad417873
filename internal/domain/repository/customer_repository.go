package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CustomerRepository defines the interface for customer and wallet operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*entity.Customer, error)
	List(ctx context.Context, companyID uuid.UUID, spec QuerySpec, params *pagination.PaginationParams) ([]entity.Customer, int64, error)
	// DebitCashBack atomically takes amount from the wallet, failing with
	// INSUFFICIENT_BALANCE when the balance is lower
	DebitCashBack(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	// DebitLoyaltyPoints atomically takes points from the wallet
	DebitLoyaltyPoints(ctx context.Context, id uuid.UUID, points int64) error
	// CreditWallet atomically adds earned points and cashback
	CreditWallet(ctx context.Context, id uuid.UUID, points int64, cashBack decimal.Decimal) error
}

// OutletRepository defines the interface for outlet lookups
type OutletRepository interface {
	Create(ctx context.Context, outlet *entity.Outlet) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*entity.Outlet, error)
}
