package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/salonpos-api/internal/domain/repository"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/sangkips/salonpos-api/pkg/pagination"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

var invoiceSorts = newSortable("invoice_date DESC, invoice_number DESC",
	"invoice_date", "invoice_number", "total_amount", "balance_due", "created_at")

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *invoiceRepository) preloaded(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).
		Preload("Customer").
		Preload("Items", byPosition).
		Preload("Taxes").
		Preload("Discounts").
		Preload("Tenders", byPosition)
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return conn(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.preloaded(ctx).Scopes(CompanyScope(companyID)).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByIdempotencyKey(ctx context.Context, outletID uuid.UUID, key string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.preloaded(ctx).
		Where("outlet_id = ? AND idempotency_key = ?", outletID, key).
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) List(ctx context.Context, companyID uuid.UUID, spec domainRepo.QuerySpec, params *pagination.PaginationParams) ([]entity.Invoice, int64, error) {
	query := conn(ctx, r.db).Model(&entity.Invoice{}).Scopes(CompanyScope(companyID))
	return Paginate[entity.Invoice](query, spec, params, invoiceSorts, "Customer")
}

func (r *invoiceRepository) ReplacePayment(ctx context.Context, invoice *entity.Invoice, tenders []entity.InvoiceTender) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Invoice{}).
			Where("id = ? AND status = ?", invoice.ID, enum.InvoiceStatusActive).
			Updates(map[string]interface{}{
				"total_received": invoice.TotalReceived,
				"amount_paid":    invoice.AmountPaid,
				"balance_due":    invoice.BalanceDue,
				"given_change":   invoice.GivenChange,
				"payment_status": invoice.PaymentStatus,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NewBusinessRuleError(apperror.ReasonInvoiceVoid, "Invoice is void")
		}

		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&entity.InvoiceTender{}).Error; err != nil {
			return err
		}
		if len(tenders) == 0 {
			return nil
		}
		for i := range tenders {
			tenders[i].InvoiceID = invoice.ID
		}
		return tx.Create(&tenders).Error
	})
}

func (r *invoiceRepository) MarkVoid(ctx context.Context, id uuid.UUID, note string, by uuid.UUID, at time.Time) error {
	result := conn(ctx, r.db).Model(&entity.Invoice{}).
		Where("id = ? AND status = ?", id, enum.InvoiceStatusActive).
		Updates(map[string]interface{}{
			"status":    enum.InvoiceStatusVoid,
			"void_note": note,
			"voided_at": at,
			"voided_by": by,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewBusinessRuleError(apperror.ReasonInvoiceVoid, "Invoice is already void")
	}
	return nil
}

type invoiceLogRepository struct {
	db *gorm.DB
}

// NewInvoiceLogRepository creates a new invoice log repository
func NewInvoiceLogRepository(db *gorm.DB) domainRepo.InvoiceLogRepository {
	return &invoiceLogRepository{db: db}
}

func (r *invoiceLogRepository) Create(ctx context.Context, log *entity.InvoiceLog) error {
	return conn(ctx, r.db).Create(log).Error
}

func (r *invoiceLogRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceLog, error) {
	var logs []entity.InvoiceLog
	err := conn(ctx, r.db).Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new invoice number sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next increments the counter in one statement so concurrent commits never
// read the same value
func (r *sequenceRepository) Next(ctx context.Context, outletID uuid.UUID) (int64, error) {
	var next int64
	err := conn(ctx, r.db).Raw(
		`INSERT INTO outlet_sequences (outlet_id, last_number, updated_at) VALUES (?, 1, ?)
		ON CONFLICT (outlet_id) DO UPDATE SET last_number = outlet_sequences.last_number + 1, updated_at = excluded.updated_at
		RETURNING last_number`,
		outletID, time.Now(),
	).Scan(&next).Error
	return next, err
}
