package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/pkg/pagination"
)

// RegisterRepository defines the interface for register ledger operations
type RegisterRepository interface {
	// Create opens a register, failing with ALREADY_OPEN when the outlet has one
	Create(ctx context.Context, register *entity.Register) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*entity.Register, error)
	// GetOpen returns the outlet's open register or nil. lock takes a row
	// lock for the rest of the transaction.
	GetOpen(ctx context.Context, outletID uuid.UUID, lock bool) (*entity.Register, error)
	GetLastClosed(ctx context.Context, outletID uuid.UUID) (*entity.Register, error)
	List(ctx context.Context, companyID uuid.UUID, spec QuerySpec, params *pagination.PaginationParams) ([]entity.Register, int64, error)
	// AddPosting records the posting and atomically bumps the mode total
	AddPosting(ctx context.Context, posting *entity.RegisterPosting) error
	ModeTotals(ctx context.Context, registerID uuid.UUID) ([]entity.RegisterModeTotal, error)
	CreateCashUsage(ctx context.Context, usage *entity.CashUsage) error
	ListCashUsages(ctx context.Context, registerID uuid.UUID) ([]entity.CashUsage, error)
	// Close stores the close figures of an open register with its entries,
	// failing with NO_OPEN_REGISTER if it was closed concurrently
	Close(ctx context.Context, register *entity.Register, entries []entity.RegisterCloseEntry) error
}
