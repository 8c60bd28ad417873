package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/config"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"github.com/sangkips/salonpos-api/internal/domain/pricing"
	"github.com/sangkips/salonpos-api/internal/domain/repository"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/sangkips/salonpos-api/pkg/lock"
	"github.com/sangkips/salonpos-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// RegisterService handles the open/close cycle of an outlet's cash register
type RegisterService struct {
	transactor   repository.Transactor
	registerRepo repository.RegisterRepository
	modeRepo     repository.PaymentModeRepository
	locker       lock.Locker
	cfg          config.EngineConfig
	log          *logrus.Logger
	now          func() time.Time
}

// NewRegisterService creates a new register service
func NewRegisterService(
	transactor repository.Transactor,
	registerRepo repository.RegisterRepository,
	modeRepo repository.PaymentModeRepository,
	locker lock.Locker,
	cfg config.EngineConfig,
	log *logrus.Logger,
) *RegisterService {
	return &RegisterService{
		transactor:   transactor,
		registerRepo: registerRepo,
		modeRepo:     modeRepo,
		locker:       locker,
		cfg:          cfg,
		log:          log,
		now:          time.Now,
	}
}

// CashUsageInput is cash taken out of the drawer
type CashUsageInput struct {
	Reason   string
	Amount   decimal.Decimal
	ProofRef *string
}

func (in CashUsageInput) validate(prefix string) []apperror.FieldError {
	var errs []apperror.FieldError
	if strings.TrimSpace(in.Reason) == "" {
		errs = append(errs, apperror.FieldError{Field: prefix + "reason", Message: "is required"})
	}
	if !in.Amount.IsPositive() {
		errs = append(errs, apperror.FieldError{Field: prefix + "amount", Message: "must be greater than zero"})
	}
	return errs
}

// ModeCount is the amount counted by hand for one payment mode
type ModeCount struct {
	PaymentModeID uuid.UUID
	Amount        decimal.Decimal
	Reason        string
}

// CloseInput represents the close register input
type CloseInput struct {
	Counts      []ModeCount
	BankDeposit decimal.Decimal
	CashUsages  []CashUsageInput
	Note        *string
}

// CurrentRegister is the outlet's open register, if any, and the opening
// balance suggested for the next one
type CurrentRegister struct {
	Register                *entity.Register `json:"register"`
	SuggestedOpeningBalance decimal.Decimal  `json:"suggested_opening_balance"`
}

// Open starts a new cycle for the caller's outlet
func (s *RegisterService) Open(ctx context.Context, rc entity.RequestContext, openingBalance decimal.Decimal) (*entity.Register, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	if openingBalance.IsNegative() {
		return nil, apperror.Invalid("opening_balance", "must not be negative")
	}

	register := &entity.Register{
		CompanyID:      rc.CompanyID,
		OutletID:       rc.OutletID,
		Status:         enum.RegisterStatusOpen,
		OpeningBalance: pricing.Round(openingBalance),
		OpenedBy:       rc.UserID,
	}
	err := withLock(ctx, s.locker, outletLockKey(rc.OutletID), s.cfg.LockTTL, func() error {
		return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			open, err := s.registerRepo.GetOpen(ctx, rc.OutletID, false)
			if err != nil {
				return err
			}
			if open != nil {
				return apperror.NewBusinessRuleError(apperror.ReasonAlreadyOpen, "A register is already open for this outlet")
			}
			register.OpenedAt = s.now()
			return s.registerRepo.Create(ctx, register)
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"register_id":     register.ID,
		"outlet_id":       rc.OutletID,
		"opening_balance": register.OpeningBalance.String(),
	}).Info("register opened")
	return register, nil
}

// Current returns the open register with its running totals
func (s *RegisterService) Current(ctx context.Context, rc entity.RequestContext) (*CurrentRegister, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	open, err := s.registerRepo.GetOpen(ctx, rc.OutletID, false)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if open != nil {
		register, err := s.Get(ctx, rc, open.ID)
		if err != nil {
			return nil, err
		}
		return &CurrentRegister{Register: register, SuggestedOpeningBalance: decimal.Zero}, nil
	}

	last, err := s.registerRepo.GetLastClosed(ctx, rc.OutletID)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	current := &CurrentRegister{SuggestedOpeningBalance: decimal.Zero}
	if last != nil {
		current.SuggestedOpeningBalance = last.CarryForwardBalance
	}
	return current, nil
}

// RecordCashUsage books cash taken out of the open drawer
func (s *RegisterService) RecordCashUsage(ctx context.Context, rc entity.RequestContext, input CashUsageInput) (*entity.CashUsage, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	if errs := input.validate(""); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	var usage *entity.CashUsage
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		register, err := s.registerRepo.GetOpen(ctx, rc.OutletID, true)
		if err != nil {
			return err
		}
		if register == nil {
			return apperror.NewBusinessRuleError(apperror.ReasonNoOpenRegister, "No register is open for this outlet")
		}
		usage = s.cashUsage(rc, register.ID, input)
		return s.registerRepo.CreateCashUsage(ctx, usage)
	})
	if err != nil {
		return nil, err
	}
	return usage, nil
}

func (s *RegisterService) cashUsage(rc entity.RequestContext, registerID uuid.UUID, in CashUsageInput) *entity.CashUsage {
	return &entity.CashUsage{
		RegisterID: registerID,
		OutletID:   rc.OutletID,
		Reason:     strings.TrimSpace(in.Reason),
		Amount:     pricing.Round(in.Amount),
		ProofRef:   in.ProofRef,
		CreatedBy:  rc.UserID,
	}
}

func (in CloseInput) validate() error {
	var errs []apperror.FieldError
	seen := make(map[uuid.UUID]bool, len(in.Counts))
	for i, c := range in.Counts {
		field := fmt.Sprintf("counts[%d].", i)
		if c.PaymentModeID == uuid.Nil {
			errs = append(errs, apperror.FieldError{Field: field + "payment_mode_id", Message: "is required"})
		} else if seen[c.PaymentModeID] {
			errs = append(errs, apperror.FieldError{Field: field + "payment_mode_id", Message: "payment mode appears more than once"})
		}
		seen[c.PaymentModeID] = true
		if c.Amount.IsNegative() {
			errs = append(errs, apperror.FieldError{Field: field + "amount", Message: "must not be negative"})
		}
	}
	if in.BankDeposit.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "bank_deposit", Message: "must not be negative"})
	}
	for i, u := range in.CashUsages {
		errs = append(errs, u.validate(fmt.Sprintf("cash_usages[%d].", i))...)
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

// Close reconciles the open register against the manual counts and closes it.
// A mode without a manual count is counted as zero.
func (s *RegisterService) Close(ctx context.Context, rc entity.RequestContext, input CloseInput) (*entity.Register, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	var registerID uuid.UUID
	err := withLock(ctx, s.locker, outletLockKey(rc.OutletID), s.cfg.LockTTL, func() error {
		return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			register, err := s.registerRepo.GetOpen(ctx, rc.OutletID, true)
			if err != nil {
				return err
			}
			if register == nil {
				return apperror.NewBusinessRuleError(apperror.ReasonNoOpenRegister, "No register is open for this outlet")
			}
			registerID = register.ID
			return s.closeOnce(ctx, rc, register, input)
		})
	})
	if err != nil {
		return nil, err
	}

	register, err := s.Get(ctx, rc, registerID)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"register_id":   register.ID,
		"outlet_id":     rc.OutletID,
		"manual_cash":   register.ManualCashCount.String(),
		"bank_deposit":  register.BankDeposit.String(),
		"carry_forward": register.CarryForwardBalance.String(),
	}).Info("register closed")
	return register, nil
}

func (s *RegisterService) closeOnce(ctx context.Context, rc entity.RequestContext, register *entity.Register, input CloseInput) error {
	totals, err := s.registerRepo.ModeTotals(ctx, register.ID)
	if err != nil {
		return err
	}
	automatic := make(map[uuid.UUID]decimal.Decimal, len(totals))
	for _, t := range totals {
		automatic[t.PaymentModeID] = t.Amount
	}
	counts := make(map[uuid.UUID]ModeCount, len(input.Counts))
	for _, c := range input.Counts {
		counts[c.PaymentModeID] = c
	}

	modes, err := s.closeModes(ctx, automatic, counts)
	if err != nil {
		return err
	}

	entries := make([]entity.RegisterCloseEntry, 0, len(modes))
	var missing []string
	manualCash := decimal.Zero
	for _, mode := range modes {
		count := counts[mode.ID]
		auto := pricing.Round(automatic[mode.ID])
		manual := pricing.Round(count.Amount)
		entry := entity.RegisterCloseEntry{
			RegisterID:      register.ID,
			PaymentModeID:   mode.ID,
			PaymentModeName: mode.Name,
			IsCash:          mode.IsCash,
			AutomaticTotal:  auto,
			ManualCount:     manual,
			Discrepancy:     manual.Sub(auto),
		}
		if reason := strings.TrimSpace(count.Reason); reason != "" {
			entry.Reason = &reason
		} else if !entry.Discrepancy.IsZero() {
			missing = append(missing, mode.Name)
		}
		if mode.IsCash {
			manualCash = manualCash.Add(manual)
		}
		entries = append(entries, entry)
	}
	if len(missing) > 0 {
		return apperror.NewBusinessRuleError(apperror.ReasonReasonRequired,
			fmt.Sprintf("A reason is required for the discrepancy on: %s", strings.Join(missing, ", ")))
	}

	deposit := pricing.Round(input.BankDeposit)
	if deposit.GreaterThan(manualCash) {
		return apperror.NewBusinessRuleError(apperror.ReasonBankDepositExceedsCash,
			fmt.Sprintf("Bank deposit %s exceeds the counted cash %s", deposit.StringFixed(2), manualCash.StringFixed(2)))
	}

	for _, in := range input.CashUsages {
		if err := s.registerRepo.CreateCashUsage(ctx, s.cashUsage(rc, register.ID, in)); err != nil {
			return err
		}
	}
	usages, err := s.registerRepo.ListCashUsages(ctx, register.ID)
	if err != nil {
		return err
	}
	totalUsage := decimal.Zero
	for _, u := range usages {
		totalUsage = totalUsage.Add(u.Amount)
	}

	now := s.now()
	register.ClosedAt = &now
	register.ClosedBy = &rc.UserID
	register.ManualCashCount = manualCash
	register.BankDeposit = deposit
	register.TotalCashUsage = pricing.Round(totalUsage)
	register.CarryForwardBalance = decimal.Max(decimal.Zero, manualCash.Sub(deposit).Sub(totalUsage))
	register.CloseNote = input.Note
	return s.registerRepo.Close(ctx, register, entries)
}

// closeModes lists every mode that needs a close entry: active modes, plus
// inactive ones that still carry a total or a count
func (s *RegisterService) closeModes(ctx context.Context, automatic map[uuid.UUID]decimal.Decimal, counts map[uuid.UUID]ModeCount) ([]entity.PaymentMode, error) {
	active, err := s.modeRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]entity.PaymentMode, len(active))
	for _, m := range active {
		byID[m.ID] = m
	}

	var extra []uuid.UUID
	for id := range automatic {
		if _, ok := byID[id]; !ok {
			extra = append(extra, id)
		}
	}
	for id := range counts {
		if _, ok := byID[id]; !ok {
			extra = append(extra, id)
		}
	}
	if len(extra) > 0 {
		found, err := s.modeRepo.GetByIDs(ctx, extra)
		if err != nil {
			return nil, err
		}
		for _, id := range extra {
			mode, ok := found[id]
			if !ok {
				return nil, apperror.NewBusinessRuleError(apperror.ReasonUnknownPaymentMode,
					fmt.Sprintf("Payment mode %s is unknown", id))
			}
			byID[id] = mode
		}
	}

	modes := make([]entity.PaymentMode, 0, len(byID))
	for _, m := range byID {
		modes = append(modes, m)
	}
	sort.Slice(modes, func(i, j int) bool {
		if modes[i].SortOrder != modes[j].SortOrder {
			return modes[i].SortOrder < modes[j].SortOrder
		}
		return modes[i].Name < modes[j].Name
	})
	return modes, nil
}

// Get returns a register with its totals, close entries and cash usages
func (s *RegisterService) Get(ctx context.Context, rc entity.RequestContext, id uuid.UUID) (*entity.Register, error) {
	register, err := s.registerRepo.GetByID(ctx, rc.CompanyID, id)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if register == nil {
		return nil, apperror.NewNotFoundError("Register")
	}
	return register, nil
}

// List returns a page of the company's registers
func (s *RegisterService) List(ctx context.Context, rc entity.RequestContext, spec repository.QuerySpec, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Register], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	registers, total, err := s.registerRepo.List(ctx, rc.CompanyID, spec, params)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return pagination.NewPaginatedResult(registers, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
