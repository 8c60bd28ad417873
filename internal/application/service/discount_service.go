package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"github.com/sangkips/salonpos-api/internal/domain/pricing"
	"github.com/sangkips/salonpos-api/internal/domain/repository"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ScheduleSource looks up the loyalty rule in force for an outlet and weekday
type ScheduleSource interface {
	Schedule(ctx context.Context, outletID uuid.UUID, weekday time.Weekday) (*pricing.LoyaltySchedule, error)
}

// DiscountService resolves a discount selection against the instrument and
// wallet collaborators, then consumes what was applied at commit
type DiscountService struct {
	instrumentRepo repository.InstrumentRepository
	customerRepo   repository.CustomerRepository
	schedules      ScheduleSource
}

// NewDiscountService creates a new discount service
func NewDiscountService(
	instrumentRepo repository.InstrumentRepository,
	customerRepo repository.CustomerRepository,
	schedules ScheduleSource,
) *DiscountService {
	return &DiscountService{
		instrumentRepo: instrumentRepo,
		customerRepo:   customerRepo,
		schedules:      schedules,
	}
}

// DiscountInput is what the stack needs beyond the caller's selection
type DiscountInput struct {
	CompanyID       uuid.UUID
	OutletID        uuid.UUID
	CustomerID      *uuid.UUID
	ItemTotalIncTax decimal.Decimal
	Shipping        decimal.Decimal
	Selection       pricing.Selection
	Now             time.Time
	Location        *time.Location
}

// ResolvedDiscounts is a computed stack plus what must be consumed to honour it
type ResolvedDiscounts struct {
	Result     pricing.StackResult
	Customer   *entity.Customer
	instrument *entity.Instrument
}

// CustomerID returns the customer the discounts belong to, or uuid.Nil
func (r *ResolvedDiscounts) CustomerID() uuid.UUID {
	if r.Customer == nil {
		return uuid.Nil
	}
	return r.Customer.ID
}

// Resolve looks everything up and runs the stack without mutating anything
func (s *DiscountService) Resolve(ctx context.Context, in DiscountInput) (*ResolvedDiscounts, error) {
	kind, code, err := in.Selection.CodeRequest()
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedDiscounts{}
	if in.CustomerID != nil && *in.CustomerID != uuid.Nil {
		customer, err := s.customerRepo.GetByID(ctx, in.CompanyID, *in.CustomerID)
		if err != nil {
			return nil, apperror.Storage(err)
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		resolved.Customer = customer
	}
	if resolved.Customer == nil && !in.Selection.IsEmpty() {
		return nil, apperror.Invalid("customer_id", "is required to apply discounts")
	}

	stackIn := pricing.StackInput{
		ItemTotalIncTax: in.ItemTotalIncTax,
		Shipping:        in.Shipping,
		CustomerID:      resolved.CustomerID(),
		Now:             in.Now,
	}

	if kind != "" {
		instrument, err := s.instrumentRepo.GetByCode(ctx, in.CompanyID, kind, code)
		if err != nil {
			return nil, apperror.Storage(err)
		}
		if instrument == nil {
			return nil, apperror.NewBusinessRuleError(apperror.ReasonCodeNotFound,
				fmt.Sprintf("%s %q not found", kind.Label(), code))
		}
		used, err := s.instrumentRepo.IsUsedBy(ctx, instrument.ID, resolved.CustomerID())
		if err != nil {
			return nil, apperror.Storage(err)
		}
		stackIn.Code = &pricing.CodeInstrument{
			ID:                 instrument.ID,
			Kind:               instrument.Kind,
			Code:               instrument.Code,
			DiscountType:       instrument.DiscountType,
			Value:              instrument.Value,
			Status:             instrument.Status,
			IsActive:           instrument.IsActive,
			ValidUntil:         instrument.ValidUntil,
			Remaining:          instrument.Quantity,
			UsedByCustomer:     used,
			ReferrerCustomerID: instrument.ReferrerCustomerID,
		}
		resolved.instrument = instrument
	}

	if in.Selection.UseCashBack {
		stackIn.CashBack = &pricing.CashBackRequest{
			Wallet: resolved.Customer.CashBackAmount,
			Amount: in.Selection.CashBackAmount,
		}
	}

	if in.Selection.UseLoyaltyPoints {
		loc := in.Location
		if loc == nil {
			loc = time.UTC
		}
		schedule, err := s.schedules.Schedule(ctx, in.OutletID, in.Now.In(loc).Weekday())
		if err != nil {
			return nil, apperror.Storage(err)
		}
		stackIn.Loyalty = &pricing.LoyaltyRequest{
			Points:   resolved.Customer.LoyaltyPoints,
			Schedule: schedule,
		}
	}

	result, err := pricing.Stack(stackIn)
	if err != nil {
		return nil, err
	}
	resolved.Result = result
	return resolved, nil
}

// Consume applies the side effects of a resolved stack. It must run inside
// the commit transaction; every step is a conditional write that fails with
// the matching business rule when a concurrent commit got there first.
func (s *DiscountService) Consume(ctx context.Context, resolved *ResolvedDiscounts, invoiceID uuid.UUID) error {
	customerID := resolved.CustomerID()

	if app := resolved.Result.CodeApplication(); app != nil && resolved.instrument != nil {
		if err := s.instrumentRepo.RecordUsage(ctx, &entity.InstrumentUsage{
			InstrumentID: resolved.instrument.ID,
			CustomerID:   customerID,
			InvoiceID:    invoiceID,
		}); err != nil {
			return err
		}
		if resolved.instrument.Quantity != nil {
			if err := s.instrumentRepo.DecrementQuantity(ctx, resolved.instrument.ID); err != nil {
				return err
			}
		}
	}

	if amount := resolved.Result.AmountFor(enum.DiscountKindCashBack); amount.IsPositive() {
		if err := s.customerRepo.DebitCashBack(ctx, customerID, amount); err != nil {
			return err
		}
	}
	if points := resolved.Result.PointsUsed(); points > 0 {
		if err := s.customerRepo.DebitLoyaltyPoints(ctx, customerID, points); err != nil {
			return err
		}
	}
	return nil
}
