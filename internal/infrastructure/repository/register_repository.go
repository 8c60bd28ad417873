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
	"gorm.io/gorm/clause"
)

type registerRepository struct {
	db *gorm.DB
}

// NewRegisterRepository creates a new register repository
func NewRegisterRepository(db *gorm.DB) domainRepo.RegisterRepository {
	return &registerRepository{db: db}
}

var registerSorts = newSortable("opened_at DESC", "opened_at", "closed_at", "carry_forward_balance")

func (r *registerRepository) Create(ctx context.Context, register *entity.Register) error {
	err := conn(ctx, r.db).Create(register).Error
	if isDuplicate(err) {
		return apperror.NewBusinessRuleError(apperror.ReasonAlreadyOpen, "A register is already open for this outlet")
	}
	return err
}

func (r *registerRepository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*entity.Register, error) {
	var register entity.Register
	err := conn(ctx, r.db).
		Preload("ModeTotals").
		Preload("CloseEntries").
		Preload("CashUsages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Scopes(CompanyScope(companyID)).
		First(&register, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &register, err
}

func (r *registerRepository) GetOpen(ctx context.Context, outletID uuid.UUID, lock bool) (*entity.Register, error) {
	var register entity.Register
	query := conn(ctx, r.db).Where("outlet_id = ? AND status = ?", outletID, enum.RegisterStatusOpen)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.First(&register).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &register, err
}

func (r *registerRepository) GetLastClosed(ctx context.Context, outletID uuid.UUID) (*entity.Register, error) {
	var register entity.Register
	err := conn(ctx, r.db).
		Where("outlet_id = ? AND status = ?", outletID, enum.RegisterStatusClosed).
		Order("closed_at DESC").
		First(&register).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &register, err
}

func (r *registerRepository) List(ctx context.Context, companyID uuid.UUID, spec domainRepo.QuerySpec, params *pagination.PaginationParams) ([]entity.Register, int64, error) {
	query := conn(ctx, r.db).Model(&entity.Register{}).Scopes(CompanyScope(companyID))
	return Paginate[entity.Register](query, spec, params, registerSorts)
}

// AddPosting increments the mode total with
// INSERT ... ON CONFLICT (register_id, payment_mode_id) DO UPDATE SET amount = amount + excluded.amount
func (r *registerRepository) AddPosting(ctx context.Context, posting *entity.RegisterPosting) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(posting).Error; err != nil {
			return err
		}
		total := entity.RegisterModeTotal{
			RegisterID:    posting.RegisterID,
			PaymentModeID: posting.PaymentModeID,
			Amount:        posting.Amount,
			UpdatedAt:     time.Now(),
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "register_id"}, {Name: "payment_mode_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"amount":     gorm.Expr("register_mode_totals.amount + excluded.amount"),
				"updated_at": gorm.Expr("excluded.updated_at"),
			}),
		}).Create(&total).Error
	})
}

func (r *registerRepository) ModeTotals(ctx context.Context, registerID uuid.UUID) ([]entity.RegisterModeTotal, error) {
	var totals []entity.RegisterModeTotal
	err := conn(ctx, r.db).Where("register_id = ?", registerID).Find(&totals).Error
	return totals, err
}

func (r *registerRepository) CreateCashUsage(ctx context.Context, usage *entity.CashUsage) error {
	return conn(ctx, r.db).Create(usage).Error
}

func (r *registerRepository) ListCashUsages(ctx context.Context, registerID uuid.UUID) ([]entity.CashUsage, error) {
	var usages []entity.CashUsage
	err := conn(ctx, r.db).Where("register_id = ?", registerID).
		Order("created_at ASC").
		Find(&usages).Error
	return usages, err
}

func (r *registerRepository) Close(ctx context.Context, register *entity.Register, entries []entity.RegisterCloseEntry) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Register{}).
			Where("id = ? AND status = ?", register.ID, enum.RegisterStatusOpen).
			Updates(map[string]interface{}{
				"status":                enum.RegisterStatusClosed,
				"closed_at":             register.ClosedAt,
				"closed_by":             register.ClosedBy,
				"manual_cash_count":     register.ManualCashCount,
				"bank_deposit":          register.BankDeposit,
				"total_cash_usage":      register.TotalCashUsage,
				"carry_forward_balance": register.CarryForwardBalance,
				"close_note":            register.CloseNote,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NewBusinessRuleError(apperror.ReasonNoOpenRegister, "No open register for this outlet")
		}
		if len(entries) == 0 {
			return nil
		}
		for i := range entries {
			entries[i].RegisterID = register.ID
		}
		return tx.Create(&entries).Error
	})
}
