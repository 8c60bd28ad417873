package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// Create persists the invoice with its items, taxes, discounts and tenders
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*entity.Invoice, error)
	GetByIdempotencyKey(ctx context.Context, outletID uuid.UUID, key string) (*entity.Invoice, error)
	List(ctx context.Context, companyID uuid.UUID, spec QuerySpec, params *pagination.PaginationParams) ([]entity.Invoice, int64, error)
	// ReplacePayment stores new settlement figures and swaps the tender rows
	ReplacePayment(ctx context.Context, invoice *entity.Invoice, tenders []entity.InvoiceTender) error
	// MarkVoid voids an active invoice, failing with INVOICE_VOID otherwise
	MarkVoid(ctx context.Context, id uuid.UUID, note string, by uuid.UUID, at time.Time) error
}

// InvoiceLogRepository defines the interface for invoice edit snapshots
type InvoiceLogRepository interface {
	Create(ctx context.Context, log *entity.InvoiceLog) error
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceLog, error)
}

// SequenceRepository hands out per-outlet invoice numbers
type SequenceRepository interface {
	// Next atomically increments and returns the outlet's invoice counter
	Next(ctx context.Context, outletID uuid.UUID) (int64, error)
}
