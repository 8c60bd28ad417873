package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

var now = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func coupon(discountType enum.DiscountType, value string) *CodeInstrument {
	return &CodeInstrument{
		ID:           uuid.New(),
		Kind:         enum.DiscountKindCoupon,
		Code:         "SPA10",
		DiscountType: discountType,
		Value:        d(value),
		Status:       enum.RecordStatusActive,
		IsActive:     true,
	}
}

func TestStackPercentCoupon(t *testing.T) {
	res, err := Stack(StackInput{
		ItemTotalIncTax: d("100"),
		Shipping:        decimal.Zero,
		CustomerID:      uuid.New(),
		Code:            coupon(enum.DiscountTypePercent, "10"),
		Now:             now,
	})
	if err != nil {
		t.Fatalf("Stack() error = %v", err)
	}
	if got := res.AmountFor(enum.DiscountKindCoupon); !got.Equal(d("10")) {
		t.Errorf("coupon discount = %s, want 10", got)
	}
	if !res.TotalAmount.Equal(d("90")) {
		t.Errorf("TotalAmount = %s, want 90", res.TotalAmount)
	}
}

func TestStackFlatCouponCappedAtBase(t *testing.T) {
	res, err := Stack(StackInput{
		ItemTotalIncTax: d("40"),
		Shipping:        d("5"),
		CustomerID:      uuid.New(),
		Code:            coupon(enum.DiscountTypeFlat, "60"),
		Now:             now,
	})
	if err != nil {
		t.Fatalf("Stack() error = %v", err)
	}
	if !res.TotalDiscount.Equal(d("40")) {
		t.Errorf("TotalDiscount = %s, want 40", res.TotalDiscount)
	}
	if !res.TotalAmount.Equal(d("5")) {
		t.Errorf("TotalAmount = %s, want 5 (shipping only)", res.TotalAmount)
	}
}

func TestStackCodeIneligible(t *testing.T) {
	customer := uuid.New()
	expired := now.Add(-time.Hour)
	zero := 0

	tests := []struct {
		name   string
		mutate func(c *CodeInstrument)
		reason apperror.Reason
	}{
		{"deleted", func(c *CodeInstrument) { c.Status = enum.RecordStatusDeleted }, apperror.ReasonCodeNotFound},
		{"inactive", func(c *CodeInstrument) { c.IsActive = false }, apperror.ReasonCodeInactive},
		{"expired", func(c *CodeInstrument) { c.ValidUntil = &expired }, apperror.ReasonCodeExpired},
		{"used by customer", func(c *CodeInstrument) { c.UsedByCustomer = true }, apperror.ReasonCodeAlreadyUsed},
		{"exhausted", func(c *CodeInstrument) { c.Remaining = &zero }, apperror.ReasonCodeExhausted},
		{"own referral", func(c *CodeInstrument) {
			c.Kind = enum.DiscountKindReferral
			c.ReferrerCustomerID = &customer
		}, apperror.ReasonCodeNotApplicable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := coupon(enum.DiscountTypePercent, "10")
			tt.mutate(c)
			_, err := Stack(StackInput{ItemTotalIncTax: d("100"), CustomerID: customer, Code: c, Now: now})
			if got := apperror.ReasonOf(err); got != tt.reason {
				t.Errorf("reason = %q, want %q (err %v)", got, tt.reason, err)
			}
		})
	}
}

func TestStackValidUntilBoundary(t *testing.T) {
	c := coupon(enum.DiscountTypeFlat, "5")
	valid := now
	c.ValidUntil = &valid
	if _, err := Stack(StackInput{ItemTotalIncTax: d("50"), CustomerID: uuid.New(), Code: c, Now: now}); err != nil {
		t.Errorf("instrument valid until now should still apply, got %v", err)
	}
}

func TestStackCashBack(t *testing.T) {
	five := d("5")
	tooMuch := d("500")
	tests := []struct {
		name    string
		wallet  string
		amount  *decimal.Decimal
		want    string
		wantErr apperror.Reason
	}{
		{"full wallet", "30", nil, "30", ""},
		{"explicit amount", "30", &five, "5", ""},
		{"capped at remaining", "300", nil, "90", ""},
		{"capped at wallet", "20", &tooMuch, "20", ""},
		{"empty wallet", "0", nil, "", apperror.ReasonInsufficientBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Stack(StackInput{
				ItemTotalIncTax: d("100"),
				CustomerID:      uuid.New(),
				Code:            coupon(enum.DiscountTypePercent, "10"),
				CashBack:        &CashBackRequest{Wallet: d(tt.wallet), Amount: tt.amount},
				Now:             now,
			})
			if tt.wantErr != "" {
				if apperror.ReasonOf(err) != tt.wantErr {
					t.Fatalf("reason = %q, want %q", apperror.ReasonOf(err), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Stack() error = %v", err)
			}
			if got := res.AmountFor(enum.DiscountKindCashBack); !got.Equal(d(tt.want)) {
				t.Errorf("cashback = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStackLoyalty(t *testing.T) {
	schedule := &LoyaltySchedule{SpendAmount: d("100"), EarnPoints: 10, RedeemPoints: 10, RedeemAmount: d("1")}

	t.Run("full redemption", func(t *testing.T) {
		res, err := Stack(StackInput{
			ItemTotalIncTax: d("100"),
			CustomerID:      uuid.New(),
			Loyalty:         &LoyaltyRequest{Points: 250, Schedule: schedule},
			Now:             now,
		})
		if err != nil {
			t.Fatalf("Stack() error = %v", err)
		}
		if got := res.AmountFor(enum.DiscountKindLoyalty); !got.Equal(d("25")) {
			t.Errorf("loyalty discount = %s, want 25", got)
		}
		if res.PointsUsed() != 250 {
			t.Errorf("PointsUsed() = %d, want 250", res.PointsUsed())
		}
	})

	t.Run("capped after cashback", func(t *testing.T) {
		res, err := Stack(StackInput{
			ItemTotalIncTax: d("100"),
			CustomerID:      uuid.New(),
			CashBack:        &CashBackRequest{Wallet: d("95")},
			Loyalty:         &LoyaltyRequest{Points: 250, Schedule: schedule},
			Now:             now,
		})
		if err != nil {
			t.Fatalf("Stack() error = %v", err)
		}
		if got := res.AmountFor(enum.DiscountKindLoyalty); !got.Equal(d("5")) {
			t.Errorf("loyalty discount = %s, want 5", got)
		}
		if res.PointsUsed() != 50 {
			t.Errorf("PointsUsed() = %d, want 50", res.PointsUsed())
		}
		if !res.TotalAmount.IsZero() {
			t.Errorf("TotalAmount = %s, want 0", res.TotalAmount)
		}
	})

	t.Run("no points", func(t *testing.T) {
		_, err := Stack(StackInput{ItemTotalIncTax: d("100"), Loyalty: &LoyaltyRequest{Points: 0, Schedule: schedule}, Now: now})
		if apperror.ReasonOf(err) != apperror.ReasonInsufficientBalance {
			t.Errorf("reason = %q, want INSUFFICIENT_BALANCE", apperror.ReasonOf(err))
		}
	})

	t.Run("no schedule today", func(t *testing.T) {
		_, err := Stack(StackInput{ItemTotalIncTax: d("100"), Loyalty: &LoyaltyRequest{Points: 100}, Now: now})
		if apperror.ReasonOf(err) != apperror.ReasonInsufficientBalance {
			t.Errorf("reason = %q, want INSUFFICIENT_BALANCE", apperror.ReasonOf(err))
		}
	})
}

func TestStackBounds(t *testing.T) {
	schedule := &LoyaltySchedule{SpendAmount: d("10"), EarnPoints: 1, RedeemPoints: 1, RedeemAmount: d("1")}
	totals := []string{"0", "0.01", "17.35", "100", "2500.5"}
	shippings := []string{"0", "3.5", "40"}
	for _, total := range totals {
		for _, ship := range shippings {
			res, err := Stack(StackInput{
				ItemTotalIncTax: d(total),
				Shipping:        d(ship),
				CustomerID:      uuid.New(),
				Code:            coupon(enum.DiscountTypeFlat, "1000"),
				CashBack:        &CashBackRequest{Wallet: d("1000")},
				Loyalty:         &LoyaltyRequest{Points: 100000, Schedule: schedule},
				Now:             now,
			})
			if err != nil {
				t.Fatalf("Stack(%s, %s) error = %v", total, ship, err)
			}
			gross := d(total).Add(d(ship))
			if res.TotalDiscount.GreaterThan(gross) {
				t.Errorf("Stack(%s, %s): discount %s exceeds gross %s", total, ship, res.TotalDiscount, gross)
			}
			if res.TotalAmount.IsNegative() {
				t.Errorf("Stack(%s, %s): negative total %s", total, ship, res.TotalAmount)
			}
		}
	}
}

func TestSelectionCodeRequest(t *testing.T) {
	kind, code, err := Selection{GiftCardCode: "  GC-1 "}.CodeRequest()
	if err != nil || kind != enum.DiscountKindGiftCard || code != "GC-1" {
		t.Errorf("CodeRequest() = %q, %q, %v", kind, code, err)
	}

	_, _, err = Selection{CouponCode: "A", PromoCode: "B"}.CodeRequest()
	if apperror.ReasonOf(err) != apperror.ReasonMultipleCodes {
		t.Errorf("reason = %q, want MULTIPLE_CODES", apperror.ReasonOf(err))
	}

	if !(Selection{}).IsEmpty() {
		t.Errorf("empty selection should report IsEmpty")
	}
}
