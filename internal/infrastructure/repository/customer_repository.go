package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/salonpos-api/internal/domain/repository"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/sangkips/salonpos-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

var customerSorts = newSortable("name ASC", "name", "created_at", "loyalty_points", "cash_back_amount")

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return conn(ctx, r.db).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).Scopes(CompanyScope(companyID), NotDeleted).
		First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) List(ctx context.Context, companyID uuid.UUID, spec domainRepo.QuerySpec, params *pagination.PaginationParams) ([]entity.Customer, int64, error) {
	query := conn(ctx, r.db).Model(&entity.Customer{}).Scopes(CompanyScope(companyID), NotDeleted)
	return Paginate[entity.Customer](query, spec, params, customerSorts)
}

// DebitCashBack uses: UPDATE customers SET cash_back_amount = cash_back_amount - ? WHERE id = ? AND cash_back_amount >= ?
func (r *customerRepository) DebitCashBack(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}
	result := conn(ctx, r.db).Model(&entity.Customer{}).
		Where("id = ? AND cash_back_amount >= ?", id, amount).
		Update("cash_back_amount", gorm.Expr("cash_back_amount - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewBusinessRuleError(apperror.ReasonInsufficientBalance, "Customer cashback balance is insufficient")
	}
	return nil
}

func (r *customerRepository) DebitLoyaltyPoints(ctx context.Context, id uuid.UUID, points int64) error {
	if points <= 0 {
		return nil
	}
	result := conn(ctx, r.db).Model(&entity.Customer{}).
		Where("id = ? AND loyalty_points >= ?", id, points).
		Update("loyalty_points", gorm.Expr("loyalty_points - ?", points))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewBusinessRuleError(apperror.ReasonInsufficientBalance, "Customer loyalty points are insufficient")
	}
	return nil
}

func (r *customerRepository) CreditWallet(ctx context.Context, id uuid.UUID, points int64, cashBack decimal.Decimal) error {
	if points <= 0 && !cashBack.IsPositive() {
		return nil
	}
	return conn(ctx, r.db).Model(&entity.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"loyalty_points":   gorm.Expr("loyalty_points + ?", points),
			"cash_back_amount": gorm.Expr("cash_back_amount + ?", cashBack),
		}).Error
}

type outletRepository struct {
	db *gorm.DB
}

// NewOutletRepository creates a new outlet repository
func NewOutletRepository(db *gorm.DB) domainRepo.OutletRepository {
	return &outletRepository{db: db}
}

func (r *outletRepository) Create(ctx context.Context, outlet *entity.Outlet) error {
	return conn(ctx, r.db).Create(outlet).Error
}

func (r *outletRepository) GetByID(ctx context.Context, companyID, id uuid.UUID) (*entity.Outlet, error) {
	var outlet entity.Outlet
	err := conn(ctx, r.db).Scopes(CompanyScope(companyID), NotDeleted).
		First(&outlet, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &outlet, err
}
