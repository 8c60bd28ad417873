package service

import (
	"context"
	"errors"
	"fmt"
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
	"github.com/sangkips/salonpos-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// InvoiceRepositories groups the persistence collaborators of InvoiceService
type InvoiceRepositories struct {
	Transactor  repository.Transactor
	Invoices    repository.InvoiceRepository
	InvoiceLogs repository.InvoiceLogRepository
	Sequences   repository.SequenceRepository
	Registers   repository.RegisterRepository
	Modes       repository.PaymentModeRepository
	Outlets     repository.OutletRepository
	Customers   repository.CustomerRepository
}

// InvoiceService runs the invoice lifecycle: preview, commit, payment edit and void
type InvoiceService struct {
	repos     InvoiceRepositories
	discounts *DiscountService
	earn      pricing.EarnPolicy
	locker    lock.Locker
	cfg       config.EngineConfig
	log       *logrus.Logger
	now       func() time.Time
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	repos InvoiceRepositories,
	discounts *DiscountService,
	earn pricing.EarnPolicy,
	locker lock.Locker,
	cfg config.EngineConfig,
	log *logrus.Logger,
) *InvoiceService {
	return &InvoiceService{
		repos:     repos,
		discounts: discounts,
		earn:      earn,
		locker:    locker,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// PreviewInput represents a cart to be priced
type PreviewInput struct {
	CustomerID      *uuid.UUID
	Items           []pricing.LineItem
	ShippingCharges decimal.Decimal
	Discounts       pricing.Selection
}

// TenderInput is a payment submitted against an invoice
type TenderInput struct {
	PaymentModeID uuid.UUID
	Amount        decimal.Decimal
}

// CommitInput represents the commit invoice input
type CommitInput struct {
	PreviewInput
	Tenders        []TenderInput
	IdempotencyKey string
	Note           *string
}

// PreviewResult is the priced cart. Nothing is persisted.
type PreviewResult struct {
	Items                 []PricedLine          `json:"items"`
	Subtotal              decimal.Decimal       `json:"subtotal"`
	TaxBuckets            []pricing.TaxBucket   `json:"tax_buckets"`
	TotalTax              decimal.Decimal       `json:"total_tax"`
	ItemTotalIncTax       decimal.Decimal       `json:"item_total_inc_tax"`
	ShippingCharges       decimal.Decimal       `json:"shipping_charges"`
	Discounts             []pricing.Application `json:"discounts"`
	CouponDiscount        decimal.Decimal       `json:"coupon_discount"`
	GiftCardDiscount      decimal.Decimal       `json:"gift_card_discount"`
	PromoCodeDiscount     decimal.Decimal       `json:"promo_code_discount"`
	ReferralDiscount      decimal.Decimal       `json:"referral_discount"`
	LoyaltyPointsDiscount decimal.Decimal       `json:"loyalty_points_discount"`
	LoyaltyPointsUsed     int64                 `json:"loyalty_points_used"`
	UsedCashBackAmount    decimal.Decimal       `json:"used_cash_back_amount"`
	TotalDiscount         decimal.Decimal       `json:"total_discount"`
	TotalAmount           decimal.Decimal       `json:"total_amount"`
	PointsToAdd           int64                 `json:"points_to_add"`
	TotalCashBack         decimal.Decimal       `json:"total_cash_back"`
}

// PricedLine is a line item with its derived amounts
type PricedLine struct {
	ItemID      uuid.UUID       `json:"item_id"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxType     string          `json:"tax_type"`
	TaxPercent  decimal.Decimal `json:"tax_percent"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	PriceIncTax decimal.Decimal `json:"price_inc_tax"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// CommitResult is the committed invoice. Replayed is set when the
// idempotency key matched an earlier commit.
type CommitResult struct {
	Invoice  *entity.Invoice
	Replayed bool
}

type outletContext struct {
	prefix   string
	location *time.Location
}

type pricedCart struct {
	input    PreviewInput
	tax      pricing.TaxResult
	resolved *ResolvedDiscounts
	points   int64
	cashBack decimal.Decimal
}

func (c *pricedCart) result() *PreviewResult {
	stack := c.resolved.Result
	lines := make([]PricedLine, len(c.input.Items))
	for i, item := range c.input.Items {
		lines[i] = PricedLine{
			ItemID:      item.ItemID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TaxType:     item.TaxType,
			TaxPercent:  item.TaxPercent,
			TaxAmount:   item.TaxAmount(),
			PriceIncTax: item.PriceIncTax(),
			LineTotal:   item.LineTotal(),
		}
	}
	return &PreviewResult{
		Items:                 lines,
		Subtotal:              c.tax.Subtotal,
		TaxBuckets:            c.tax.Buckets,
		TotalTax:              c.tax.TotalTax,
		ItemTotalIncTax:       c.tax.ItemTotalIncTax,
		ShippingCharges:       c.input.ShippingCharges,
		Discounts:             stack.Applications,
		CouponDiscount:        stack.AmountFor(enum.DiscountKindCoupon),
		GiftCardDiscount:      stack.AmountFor(enum.DiscountKindGiftCard),
		PromoCodeDiscount:     stack.AmountFor(enum.DiscountKindPromo),
		ReferralDiscount:      stack.AmountFor(enum.DiscountKindReferral),
		LoyaltyPointsDiscount: stack.AmountFor(enum.DiscountKindLoyalty),
		LoyaltyPointsUsed:     stack.PointsUsed(),
		UsedCashBackAmount:    stack.AmountFor(enum.DiscountKindCashBack),
		TotalDiscount:         stack.TotalDiscount,
		TotalAmount:           stack.TotalAmount,
		PointsToAdd:           c.points,
		TotalCashBack:         c.cashBack,
	}
}

func (s *InvoiceService) outlet(ctx context.Context, rc entity.RequestContext) (outletContext, error) {
	oc := outletContext{prefix: s.cfg.InvoicePrefix, location: time.UTC}
	outlet, err := s.repos.Outlets.GetByID(ctx, rc.CompanyID, rc.OutletID)
	if err != nil {
		return oc, apperror.Storage(err)
	}
	if outlet != nil {
		oc.location = outlet.Settings.Location()
		if outlet.Settings.InvoicePrefix != "" {
			oc.prefix = outlet.Settings.InvoicePrefix
		}
	}
	return oc, nil
}

// price runs tax, discounts and earning. It never writes.
func (s *InvoiceService) price(ctx context.Context, rc entity.RequestContext, oc outletContext, in PreviewInput, now time.Time) (*pricedCart, error) {
	if len(in.Items) == 0 {
		return nil, apperror.Invalid("items", "at least one item is required")
	}
	tax, err := pricing.ComputeTax(in.Items)
	if err != nil {
		return nil, err
	}

	resolved, err := s.discounts.Resolve(ctx, DiscountInput{
		CompanyID:       rc.CompanyID,
		OutletID:        rc.OutletID,
		CustomerID:      in.CustomerID,
		ItemTotalIncTax: tax.ItemTotalIncTax,
		Shipping:        in.ShippingCharges,
		Selection:       in.Discounts,
		Now:             now,
		Location:        oc.location,
	})
	if err != nil {
		return nil, err
	}

	cart := &pricedCart{input: in, tax: tax, resolved: resolved, cashBack: decimal.Zero}
	if customerID := resolved.CustomerID(); customerID != uuid.Nil {
		spend := pricing.EarnableSpend(resolved.Result.TotalAmount, in.ShippingCharges)
		points, err := s.earn.PointsEarned(ctx, customerID, rc.OutletID, now.In(oc.location).Weekday(), spend)
		if err != nil {
			return nil, apperror.Storage(err)
		}
		cart.points = points
		cart.cashBack = pricing.CashBackEarned(in.Items, tax.ItemTotalIncTax, spend)
	}
	return cart, nil
}

// Preview prices a cart without consuming any instrument or touching any wallet
func (s *InvoiceService) Preview(ctx context.Context, rc entity.RequestContext, input PreviewInput) (*PreviewResult, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	oc, err := s.outlet(ctx, rc)
	if err != nil {
		return nil, err
	}
	cart, err := s.price(ctx, rc, oc, input, s.now())
	if err != nil {
		return nil, err
	}
	return cart.result(), nil
}

// Commit prices the cart again, consumes discounts, settles tenders, numbers
// the invoice and posts it to the open register, all in one transaction.
// A retry with the same idempotency key returns the first invoice.
func (s *InvoiceService) Commit(ctx context.Context, rc entity.RequestContext, input CommitInput) (*CommitResult, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	input.IdempotencyKey = strings.TrimSpace(input.IdempotencyKey)

	if existing, err := s.replay(ctx, rc, input.IdempotencyKey); err != nil || existing != nil {
		return existing, err
	}

	oc, err := s.outlet(ctx, rc)
	if err != nil {
		return nil, err
	}

	var result *CommitResult
	err = s.withRetry(ctx, "Commit", func() error {
		return s.underOutletLock(ctx, rc.OutletID, func() error {
			existing, err := s.replay(ctx, rc, input.IdempotencyKey)
			if err != nil {
				return err
			}
			if existing != nil {
				result = existing
				return nil
			}
			invoice, err := s.commitOnce(ctx, rc, oc, input)
			if err != nil {
				return err
			}
			result = &CommitResult{Invoice: invoice}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if !result.Replayed {
		s.log.WithFields(logrus.Fields{
			"invoice_id": result.Invoice.ID,
			"invoice_no": result.Invoice.InvoiceNo,
			"outlet_id":  rc.OutletID,
			"total":      result.Invoice.TotalAmount.String(),
		}).Info("invoice committed")
	}
	return result, nil
}

func (s *InvoiceService) replay(ctx context.Context, rc entity.RequestContext, key string) (*CommitResult, error) {
	if key == "" {
		return nil, nil
	}
	existing, err := s.repos.Invoices.GetByIdempotencyKey(ctx, rc.OutletID, key)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if existing == nil {
		return nil, nil
	}
	return &CommitResult{Invoice: existing, Replayed: true}, nil
}

func (s *InvoiceService) commitOnce(ctx context.Context, rc entity.RequestContext, oc outletContext, input CommitInput) (*entity.Invoice, error) {
	var invoiceID uuid.UUID
	err := s.repos.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		register, err := s.repos.Registers.GetOpen(ctx, rc.OutletID, true)
		if err != nil {
			return err
		}
		if register == nil {
			return apperror.NewBusinessRuleError(apperror.ReasonRegisterNotOpen, "No register is open for this outlet")
		}

		now := s.now()
		cart, err := s.price(ctx, rc, oc, input.PreviewInput, now)
		if err != nil {
			return err
		}

		settlement, tenders, err := s.settle(ctx, cart.resolved.Result.TotalAmount, input.Tenders)
		if err != nil {
			return err
		}

		number, err := s.repos.Sequences.Next(ctx, rc.OutletID)
		if err != nil {
			return err
		}

		invoice := buildInvoice(rc, register.ID, cart, settlement, tenders, now)
		invoice.InvoiceNumber = number
		invoice.InvoiceNo = utils.GenerateInvoiceNo(oc.prefix, number)
		invoice.Note = input.Note
		if input.IdempotencyKey != "" {
			key := input.IdempotencyKey
			invoice.IdempotencyKey = &key
		}
		if err := s.repos.Invoices.Create(ctx, invoice); err != nil {
			return err
		}

		if err := s.discounts.Consume(ctx, cart.resolved, invoice.ID); err != nil {
			return err
		}

		retained := settlement.RetainedByMode()
		for _, t := range invoice.Tenders {
			if err := s.post(ctx, register.ID, invoice.ID, t.PaymentModeID, retained[t.PaymentModeID]); err != nil {
				return err
			}
		}

		if customerID := cart.resolved.CustomerID(); customerID != uuid.Nil {
			if err := s.repos.Customers.CreditWallet(ctx, customerID, invoice.PointsEarned, invoice.CashBackEarned); err != nil {
				return err
			}
		}
		invoiceID = invoice.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.load(ctx, rc.CompanyID, invoiceID)
}

// settle resolves the payment modes of the tenders and allocates them
func (s *InvoiceService) settle(ctx context.Context, total decimal.Decimal, inputs []TenderInput) (pricing.Settlement, []entity.InvoiceTender, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, t := range inputs {
		if t.PaymentModeID != uuid.Nil {
			ids = append(ids, t.PaymentModeID)
		}
	}
	modes, err := s.repos.Modes.GetByIDs(ctx, ids)
	if err != nil {
		return pricing.Settlement{}, nil, err
	}

	tenders := make([]pricing.Tender, len(inputs))
	for i, t := range inputs {
		mode, ok := modes[t.PaymentModeID]
		if t.PaymentModeID != uuid.Nil && (!ok || !mode.IsActive) {
			return pricing.Settlement{}, nil, apperror.NewBusinessRuleError(apperror.ReasonUnknownPaymentMode,
				fmt.Sprintf("Payment mode %s is unknown or inactive", t.PaymentModeID))
		}
		tenders[i] = pricing.Tender{PaymentModeID: t.PaymentModeID, IsCash: mode.IsCash, Amount: t.Amount}
	}

	settlement, err := pricing.Allocate(total, tenders)
	if err != nil {
		return pricing.Settlement{}, nil, err
	}

	rows := make([]entity.InvoiceTender, len(settlement.Tenders))
	for i, t := range settlement.Tenders {
		rows[i] = entity.InvoiceTender{
			Position:        i,
			PaymentModeID:   t.PaymentModeID,
			PaymentModeName: modes[t.PaymentModeID].Name,
			IsCash:          t.IsCash,
			Amount:          t.Amount,
			Retained:        t.Retained,
		}
	}
	return settlement, rows, nil
}

func (s *InvoiceService) post(ctx context.Context, registerID, invoiceID, modeID uuid.UUID, amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}
	return s.repos.Registers.AddPosting(ctx, &entity.RegisterPosting{
		RegisterID:    registerID,
		InvoiceID:     invoiceID,
		PaymentModeID: modeID,
		Amount:        amount,
	})
}

func buildInvoice(rc entity.RequestContext, registerID uuid.UUID, cart *pricedCart, settlement pricing.Settlement, tenders []entity.InvoiceTender, now time.Time) *entity.Invoice {
	stack := cart.resolved.Result
	invoice := &entity.Invoice{
		CompanyID:             rc.CompanyID,
		OutletID:              rc.OutletID,
		RegisterID:            registerID,
		EmployeeID:            rc.UserID,
		InvoiceDate:           now,
		Subtotal:              cart.tax.Subtotal,
		TotalTax:              cart.tax.TotalTax,
		ItemTotalIncTax:       cart.tax.ItemTotalIncTax,
		ShippingCharges:       cart.input.ShippingCharges,
		TotalDiscount:         stack.TotalDiscount,
		TotalAmount:           stack.TotalAmount,
		CouponDiscount:        stack.AmountFor(enum.DiscountKindCoupon),
		GiftCardDiscount:      stack.AmountFor(enum.DiscountKindGiftCard),
		PromoCodeDiscount:     stack.AmountFor(enum.DiscountKindPromo),
		ReferralDiscount:      stack.AmountFor(enum.DiscountKindReferral),
		LoyaltyPointsDiscount: stack.AmountFor(enum.DiscountKindLoyalty),
		LoyaltyPointsUsed:     stack.PointsUsed(),
		UsedCashBackAmount:    stack.AmountFor(enum.DiscountKindCashBack),
		TotalReceived:         settlement.TotalReceived,
		AmountPaid:            settlement.AmountPaid,
		BalanceDue:            settlement.BalanceDue,
		GivenChange:           settlement.GivenChange,
		PaymentStatus:         settlement.PaymentStatus,
		PointsEarned:          cart.points,
		CashBackEarned:        cart.cashBack,
		Status:                enum.InvoiceStatusActive,
		Tenders:               tenders,
	}
	if id := cart.resolved.CustomerID(); id != uuid.Nil {
		invoice.CustomerID = &id
	}

	for i, item := range cart.input.Items {
		invoice.Items = append(invoice.Items, entity.InvoiceItem{
			Position:        i,
			ItemID:          item.ItemID,
			Name:            item.Name,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			TaxID:           item.TaxID,
			TaxType:         item.TaxType,
			TaxPercent:      item.TaxPercent,
			TaxAmount:       item.TaxAmount(),
			PriceIncTax:     item.PriceIncTax(),
			LineTotal:       item.LineTotal(),
			CashBackPercent: item.CashBackPercent,
		})
	}
	for _, b := range cart.tax.Buckets {
		invoice.Taxes = append(invoice.Taxes, entity.InvoiceTax{TaxType: b.TaxType, Amount: b.Amount})
	}
	for _, a := range stack.Applications {
		d := entity.InvoiceDiscount{
			Kind:         a.Kind,
			InstrumentID: a.InstrumentID,
			Amount:       a.Amount,
			PointsUsed:   a.PointsUsed,
		}
		if a.Code != "" {
			code := a.Code
			d.Code = &code
		}
		invoice.Discounts = append(invoice.Discounts, d)
	}
	return invoice
}

// EditPayment replaces the tenders of an active invoice. The prior state is
// logged first and the per-mode difference is posted to the outlet's currently
// open register, even when the register the invoice was settled into has
// since been closed. The closed register's totals are never touched.
func (s *InvoiceService) EditPayment(ctx context.Context, rc entity.RequestContext, invoiceID uuid.UUID, tenders []TenderInput) (*entity.Invoice, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	var outletID uuid.UUID
	err := s.withRetry(ctx, "EditPayment", func() error {
		current, err := s.load(ctx, rc.CompanyID, invoiceID)
		if err != nil {
			return err
		}
		outletID = current.OutletID
		return s.underOutletLock(ctx, outletID, func() error {
			return s.repos.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
				return s.editOnce(ctx, rc, invoiceID, tenders)
			})
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"invoice_id": invoiceID,
		"outlet_id":  outletID,
		"edited_by":  rc.UserID,
	}).Info("invoice payment edited")
	return s.load(ctx, rc.CompanyID, invoiceID)
}

func (s *InvoiceService) editOnce(ctx context.Context, rc entity.RequestContext, invoiceID uuid.UUID, inputs []TenderInput) error {
	invoice, err := s.repos.Invoices.GetByID(ctx, rc.CompanyID, invoiceID)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	if invoice.IsVoid() {
		return apperror.NewBusinessRuleError(apperror.ReasonInvoiceVoid, "Invoice is void")
	}

	register, err := s.repos.Registers.GetOpen(ctx, invoice.OutletID, true)
	if err != nil {
		return err
	}
	if register == nil {
		return apperror.NewBusinessRuleError(apperror.ReasonRegisterNotOpen, "No register is open for this outlet")
	}

	settlement, tenders, err := s.settle(ctx, invoice.TotalAmount, inputs)
	if err != nil {
		return err
	}

	if err := s.repos.InvoiceLogs.Create(ctx, &entity.InvoiceLog{
		InvoiceID:        invoice.ID,
		CompanyID:        invoice.CompanyID,
		OutletID:         invoice.OutletID,
		EditedBy:         rc.UserID,
		IsPaymentChanged: true,
		Snapshot:         *invoice,
	}); err != nil {
		return err
	}

	delta := make(map[uuid.UUID]decimal.Decimal)
	var order []uuid.UUID
	track := func(id uuid.UUID, amount decimal.Decimal) {
		if _, ok := delta[id]; !ok {
			order = append(order, id)
		}
		delta[id] = delta[id].Add(amount)
	}
	for _, t := range invoice.Tenders {
		track(t.PaymentModeID, t.Retained.Neg())
	}
	for _, t := range tenders {
		track(t.PaymentModeID, t.Retained)
	}

	invoice.TotalReceived = settlement.TotalReceived
	invoice.AmountPaid = settlement.AmountPaid
	invoice.BalanceDue = settlement.BalanceDue
	invoice.GivenChange = settlement.GivenChange
	invoice.PaymentStatus = settlement.PaymentStatus
	if err := s.repos.Invoices.ReplacePayment(ctx, invoice, tenders); err != nil {
		return err
	}

	for _, modeID := range order {
		if err := s.post(ctx, register.ID, invoice.ID, modeID, delta[modeID]); err != nil {
			return err
		}
	}
	return nil
}

// Void marks an invoice void. Wallet movements and instrument consumption
// stay as they are.
func (s *InvoiceService) Void(ctx context.Context, rc entity.RequestContext, invoiceID uuid.UUID, note string) (*entity.Invoice, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, apperror.Invalid("note", "a void note is required")
	}

	err := s.repos.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		invoice, err := s.repos.Invoices.GetByID(ctx, rc.CompanyID, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}
		return s.repos.Invoices.MarkVoid(ctx, invoice.ID, note, rc.UserID, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"invoice_id": invoiceID,
		"voided_by":  rc.UserID,
	}).Info("invoice voided")
	return s.load(ctx, rc.CompanyID, invoiceID)
}

// Get returns an invoice with its lines, taxes, discounts and tenders
func (s *InvoiceService) Get(ctx context.Context, rc entity.RequestContext, invoiceID uuid.UUID) (*entity.Invoice, error) {
	return s.load(ctx, rc.CompanyID, invoiceID)
}

func (s *InvoiceService) load(ctx context.Context, companyID, invoiceID uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.repos.Invoices.GetByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// List returns a page of the company's invoices
func (s *InvoiceService) List(ctx context.Context, rc entity.RequestContext, spec repository.QuerySpec, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	invoices, total, err := s.repos.Invoices.List(ctx, rc.CompanyID, spec, params)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return pagination.NewPaginatedResult(invoices, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// ListLogs returns the edit snapshots of an invoice, oldest first
func (s *InvoiceService) ListLogs(ctx context.Context, rc entity.RequestContext, invoiceID uuid.UUID) ([]entity.InvoiceLog, error) {
	if _, err := s.load(ctx, rc.CompanyID, invoiceID); err != nil {
		return nil, err
	}
	logs, err := s.repos.InvoiceLogs.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return logs, nil
}

func (s *InvoiceService) underOutletLock(ctx context.Context, outletID uuid.UUID, fn func() error) error {
	return withLock(ctx, s.locker, outletLockKey(outletID), s.cfg.LockTTL, fn)
}

// outletLockKey serializes commits, payment edits and register open/close of one outlet
func outletLockKey(outletID uuid.UUID) string {
	return "outlet:" + outletID.String()
}

func (s *InvoiceService) withRetry(ctx context.Context, op string, fn func() error) error {
	return retryConflicts(ctx, s.log, op, s.cfg.CommitRetries, fn)
}

// withLock runs fn while holding key. A lock that cannot be obtained is a
// concurrency conflict.
func withLock(ctx context.Context, locker lock.Locker, key string, ttl time.Duration, fn func() error) error {
	unlock, err := locker.Obtain(ctx, key, ttl)
	if errors.Is(err, lock.ErrNotObtained) {
		return apperror.NewConcurrencyError("Another operation is in progress for this outlet", err)
	}
	if err != nil {
		return apperror.NewConcurrencyError("Could not obtain outlet lock", err)
	}
	defer func() { _ = unlock(context.WithoutCancel(ctx)) }()
	return fn()
}

// retryConflicts reruns fn while it fails with a concurrency conflict, up to retries extra attempts
func retryConflicts(ctx context.Context, log *logrus.Logger, op string, retries int, fn func() error) error {
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil || !apperror.IsConflict(err) || attempt >= retries {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"operation": op,
			"attempt":   attempt + 1,
		}).WithError(err).Warn("concurrency conflict, retrying")
		time.Sleep(time.Duration(attempt+1) * 20 * time.Millisecond)
	}
}
