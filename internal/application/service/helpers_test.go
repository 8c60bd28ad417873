package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/config"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"github.com/sangkips/salonpos-api/internal/domain/pricing"
	"github.com/sangkips/salonpos-api/internal/infrastructure/cache"
	"github.com/sangkips/salonpos-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/salonpos-api/internal/infrastructure/repository"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/sangkips/salonpos-api/pkg/lock"
	"github.com/sangkips/salonpos-api/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Wednesday
var testClock = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

type harness struct {
	t   *testing.T
	ctx context.Context
	db  *gorm.DB
	rc  entity.RequestContext

	invoices  *InvoiceService
	registers *RegisterService
	customers *CustomerService
	discounts *DiscountService
	policy    *ScheduleEarnPolicy
	store     *cache.MemoryStore

	cash entity.PaymentMode
	card entity.PaymentMode
	bank entity.PaymentMode
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db, logger.Discard()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.SeedDefaultData(db, logger.Discard()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := setupTestDB(t)
	log := logger.Discard()
	cfg := config.EngineConfig{
		LockTTL:         30 * time.Second,
		LockWait:        5 * time.Second,
		CommitRetries:   3,
		DraftTTL:        time.Hour,
		LoyaltyCacheTTL: time.Minute,
		InvoicePrefix:   "INV",
	}

	customerRepo := infraRepo.NewCustomerRepository(db)
	instrumentRepo := infraRepo.NewInstrumentRepository(db)
	modeRepo := infraRepo.NewPaymentModeRepository(db)
	registerRepo := infraRepo.NewRegisterRepository(db)
	transactor := infraRepo.NewTransactor(db)
	locker := lock.NewLocalLocker(cfg.LockWait)
	store := cache.NewMemoryStore()

	policy := NewScheduleEarnPolicy(infraRepo.NewLoyaltyRuleRepository(db), store, cfg.LoyaltyCacheTTL, log)
	discounts := NewDiscountService(instrumentRepo, customerRepo, policy)
	invoices := NewInvoiceService(InvoiceRepositories{
		Transactor:  transactor,
		Invoices:    infraRepo.NewInvoiceRepository(db),
		InvoiceLogs: infraRepo.NewInvoiceLogRepository(db),
		Sequences:   infraRepo.NewSequenceRepository(db),
		Registers:   registerRepo,
		Modes:       modeRepo,
		Outlets:     infraRepo.NewOutletRepository(db),
		Customers:   customerRepo,
	}, discounts, policy, locker, cfg, log)
	registers := NewRegisterService(transactor, registerRepo, modeRepo, locker, cfg, log)
	invoices.now = func() time.Time { return testClock }
	registers.now = func() time.Time { return testClock }

	h := &harness{
		t:   t,
		ctx: context.Background(),
		db:  db,
		rc: entity.RequestContext{
			UserID:    uuid.New(),
			OutletID:  uuid.New(),
			CompanyID: uuid.New(),
		},
		invoices:  invoices,
		registers: registers,
		customers: NewCustomerService(customerRepo),
		discounts: discounts,
		policy:    policy,
		store:     store,
	}
	h.cash = h.mode("Cash")
	h.card = h.mode("Card")
	h.bank = h.mode("Bank Transfer")
	return h
}

func (h *harness) mode(name string) entity.PaymentMode {
	h.t.Helper()
	var m entity.PaymentMode
	if err := h.db.Where("name = ?", name).First(&m).Error; err != nil {
		h.t.Fatalf("payment mode %s: %v", name, err)
	}
	return m
}

func (h *harness) openRegister(balance string) *entity.Register {
	h.t.Helper()
	r, err := h.registers.Open(h.ctx, h.rc, d(balance))
	if err != nil {
		h.t.Fatalf("Open() error = %v", err)
	}
	return r
}

func (h *harness) customer(cashBack string, points int64) *entity.Customer {
	h.t.Helper()
	c := &entity.Customer{
		CompanyID:      h.rc.CompanyID,
		Name:           "Amina",
		LoyaltyPoints:  points,
		CashBackAmount: d(cashBack),
	}
	if err := h.db.Create(c).Error; err != nil {
		h.t.Fatalf("create customer: %v", err)
	}
	return c
}

func (h *harness) coupon(code string, mutate func(*entity.Instrument)) *entity.Instrument {
	h.t.Helper()
	i := &entity.Instrument{
		CompanyID:    h.rc.CompanyID,
		Kind:         enum.DiscountKindCoupon,
		Code:         code,
		Name:         "Spring offer",
		DiscountType: enum.DiscountTypePercent,
		Value:        d("10"),
		IsActive:     true,
	}
	if mutate != nil {
		mutate(i)
	}
	if err := h.db.Create(i).Error; err != nil {
		h.t.Fatalf("create instrument: %v", err)
	}
	return i
}

func (h *harness) loyaltyRule(weekday time.Weekday) {
	h.t.Helper()
	rule := &entity.LoyaltyRule{
		CompanyID:    h.rc.CompanyID,
		OutletID:     h.rc.OutletID,
		DayOfWeek:    int(weekday),
		SpendAmount:  d("10"),
		EarnPoints:   1,
		RedeemPoints: 10,
		RedeemAmount: d("1"),
		IsActive:     true,
	}
	if err := h.db.Create(rule).Error; err != nil {
		h.t.Fatalf("create loyalty rule: %v", err)
	}
}

func (h *harness) reloadCustomer(id uuid.UUID) *entity.Customer {
	h.t.Helper()
	var c entity.Customer
	if err := h.db.First(&c, "id = ?", id).Error; err != nil {
		h.t.Fatalf("reload customer: %v", err)
	}
	return &c
}

func (h *harness) modeTotal(registerID, modeID uuid.UUID) decimal.Decimal {
	h.t.Helper()
	var total entity.RegisterModeTotal
	err := h.db.Where("register_id = ? AND payment_mode_id = ?", registerID, modeID).First(&total).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero
	}
	if err != nil {
		h.t.Fatalf("mode total: %v", err)
	}
	return total.Amount
}

func (h *harness) count(model any, query string, args ...any) int64 {
	h.t.Helper()
	var n int64
	q := h.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		h.t.Fatalf("count: %v", err)
	}
	return n
}

func (h *harness) commit(in CommitInput) *entity.Invoice {
	h.t.Helper()
	res, err := h.invoices.Commit(h.ctx, h.rc, in)
	if err != nil {
		h.t.Fatalf("Commit() error = %v", err)
	}
	return res.Invoice
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// hundredItem prices at exactly 100.00 including 16% VAT
func hundredItem() pricing.LineItem {
	return pricing.LineItem{
		ItemID:     uuid.MustParse("1d7d6e33-3a86-4c52-8c4a-6b4b9b7e0a01"),
		Name:       "Hot stone massage",
		Quantity:   1,
		UnitPrice:  d("86.21"),
		TaxType:    "VAT",
		TaxPercent: d("16"),
	}
}

func flatItem(price string) pricing.LineItem {
	return pricing.LineItem{
		ItemID:    uuid.New(),
		Name:      "Service",
		Quantity:  1,
		UnitPrice: d(price),
		TaxType:   "Exempt",
	}
}

func tender(mode entity.PaymentMode, amount string) TenderInput {
	return TenderInput{PaymentModeID: mode.ID, Amount: d(amount)}
}

func assertReason(t *testing.T, err error, want apperror.Reason) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", want)
	}
	if got := apperror.ReasonOf(err); got != want {
		t.Fatalf("reason = %q, want %q (err: %v)", got, want, err)
	}
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Errorf("%s = %s, want %s", name, got.String(), want)
	}
}
