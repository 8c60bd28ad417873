package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/internal/domain/repository"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/sangkips/salonpos-api/pkg/pagination"
)

// CustomerService handles customer lookups and wallet views
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name  string
	Email *string
	Phone *string
}

// CreateCustomer registers a customer with an empty wallet
func (s *CustomerService) CreateCustomer(ctx context.Context, rc entity.RequestContext, input *CreateCustomerInput) (*entity.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.Invalid("name", "is required")
	}

	customer := &entity.Customer{
		CompanyID: rc.CompanyID,
		Name:      name,
		Email:     input.Email,
		Phone:     input.Phone,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, apperror.Storage(err)
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, rc entity.RequestContext, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, rc.CompanyID, id)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// Wallet returns the redeemable balances of a customer
func (s *CustomerService) Wallet(ctx context.Context, rc entity.RequestContext, id uuid.UUID) (*entity.Wallet, error) {
	customer, err := s.GetCustomer(ctx, rc, id)
	if err != nil {
		return nil, err
	}
	wallet := customer.Wallet()
	return &wallet, nil
}

// ListCustomers lists the company's customers
func (s *CustomerService) ListCustomers(ctx context.Context, rc entity.RequestContext, spec repository.QuerySpec, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Customer], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	customers, total, err := s.customerRepo.List(ctx, rc.CompanyID, spec, params)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return pagination.NewPaginatedResult(customers, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
