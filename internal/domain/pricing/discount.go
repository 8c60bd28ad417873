package pricing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Selection is the discount choice made at the till
type Selection struct {
	CouponCode       string
	GiftCardCode     string
	PromoCode        string
	ReferralCode     string
	UseLoyaltyPoints bool
	UseCashBack      bool
	CashBackAmount   *decimal.Decimal
}

// CodeRequest returns the single code-based instrument requested, if any
func (s Selection) CodeRequest() (enum.DiscountKind, string, error) {
	var kind enum.DiscountKind
	var code string
	count := 0
	for _, c := range []struct {
		kind enum.DiscountKind
		code string
	}{
		{enum.DiscountKindCoupon, s.CouponCode},
		{enum.DiscountKindGiftCard, s.GiftCardCode},
		{enum.DiscountKindPromo, s.PromoCode},
		{enum.DiscountKindReferral, s.ReferralCode},
	} {
		trimmed := strings.TrimSpace(c.code)
		if trimmed == "" {
			continue
		}
		count++
		kind, code = c.kind, trimmed
	}
	if count > 1 {
		return "", "", apperror.NewBusinessRuleError(apperror.ReasonMultipleCodes,
			"Only one of coupon, gift card, promo or referral code can be applied")
	}
	return kind, code, nil
}

// IsEmpty reports whether no discount was requested
func (s Selection) IsEmpty() bool {
	kind, _, err := s.CodeRequest()
	return err == nil && kind == "" && !s.UseLoyaltyPoints && !s.UseCashBack
}

// CashBackRequest asks to redeem wallet cashback. A nil Amount redeems as much as possible.
type CashBackRequest struct {
	Wallet decimal.Decimal
	Amount *decimal.Decimal
}

// LoyaltyRequest asks to redeem loyalty points. Schedule is nil when the
// outlet has no rule for the day.
type LoyaltyRequest struct {
	Points   int64
	Schedule *LoyaltySchedule
}

// StackInput is everything the discount stack needs, already resolved
type StackInput struct {
	ItemTotalIncTax decimal.Decimal
	Shipping        decimal.Decimal
	CustomerID      uuid.UUID
	Code            *CodeInstrument
	CashBack        *CashBackRequest
	Loyalty         *LoyaltyRequest
	Now             time.Time
}

// Application is one discount applied to an invoice
type Application struct {
	Kind         enum.DiscountKind `json:"kind"`
	InstrumentID *uuid.UUID        `json:"instrument_id,omitempty"`
	Code         string            `json:"code,omitempty"`
	Amount       decimal.Decimal   `json:"amount"`
	PointsUsed   int64             `json:"points_used,omitempty"`
}

// StackResult is the discount breakdown and the resulting payable total
type StackResult struct {
	Applications  []Application   `json:"applications"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// AmountFor returns the discount given by kind, zero if not applied
func (r StackResult) AmountFor(kind enum.DiscountKind) decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Applications {
		if a.Kind == kind {
			total = total.Add(a.Amount)
		}
	}
	return total
}

// PointsUsed returns the loyalty points consumed by the redemption
func (r StackResult) PointsUsed() int64 {
	var points int64
	for _, a := range r.Applications {
		points += a.PointsUsed
	}
	return points
}

// CodeApplication returns the code-based application, if any
func (r StackResult) CodeApplication() *Application {
	for i := range r.Applications {
		if r.Applications[i].Kind.IsCodeBased() {
			return &r.Applications[i]
		}
	}
	return nil
}

// Stack applies the code-based instrument, then cashback, then loyalty
// points. Each step is capped at what is left to pay after the previous ones.
func Stack(in StackInput) (StackResult, error) {
	if in.Shipping.IsNegative() {
		return StackResult{}, apperror.Invalid("shipping_charges", "must not be negative")
	}
	if in.ItemTotalIncTax.IsNegative() {
		return StackResult{}, apperror.Invalid("items", "item total must not be negative")
	}

	gross := in.ItemTotalIncTax.Add(in.Shipping)
	result := StackResult{Applications: []Application{}, TotalDiscount: decimal.Zero}
	remaining := func() decimal.Decimal {
		return positive(gross.Sub(result.TotalDiscount))
	}
	apply := func(a Application) {
		result.Applications = append(result.Applications, a)
		result.TotalDiscount = result.TotalDiscount.Add(a.Amount)
	}

	if c := in.Code; c != nil {
		if !c.Kind.IsCodeBased() {
			return StackResult{}, apperror.Invalid("code", "instrument is not code based")
		}
		if err := c.Check(in.CustomerID, in.Now).Err(); err != nil {
			return StackResult{}, err
		}
		id := c.ID
		apply(Application{
			Kind:         c.Kind,
			InstrumentID: &id,
			Code:         c.Code,
			Amount:       c.Amount(in.ItemTotalIncTax),
		})
	}

	if cb := in.CashBack; cb != nil {
		if cb.Amount != nil && cb.Amount.IsNegative() {
			return StackResult{}, apperror.Invalid("cash_back_amount", "must not be negative")
		}
		if !cb.Wallet.IsPositive() {
			return StackResult{}, apperror.NewBusinessRuleError(apperror.ReasonInsufficientBalance,
				"Customer has no cashback balance")
		}
		want := cb.Wallet
		if cb.Amount != nil {
			want = *cb.Amount
		}
		amount := Round(decimal.Min(want, cb.Wallet, remaining()))
		if amount.IsPositive() {
			apply(Application{Kind: enum.DiscountKindCashBack, Amount: amount})
		}
	}

	if lr := in.Loyalty; lr != nil {
		if lr.Points <= 0 {
			return StackResult{}, apperror.NewBusinessRuleError(apperror.ReasonInsufficientBalance,
				"Customer has no loyalty points")
		}
		if lr.Schedule == nil || !lr.Schedule.Redeemable() {
			return StackResult{}, apperror.NewBusinessRuleError(apperror.ReasonInsufficientBalance,
				"Loyalty points cannot be redeemed at this outlet today")
		}
		value := Round(lr.Schedule.RedemptionValue(lr.Points))
		amount := decimal.Min(value, remaining())
		if amount.IsPositive() {
			points := lr.Points
			if amount.LessThan(value) {
				points = min(lr.Schedule.PointsForValue(amount), lr.Points)
			}
			apply(Application{Kind: enum.DiscountKindLoyalty, Amount: amount, PointsUsed: points})
		}
	}

	result.TotalDiscount = Round(result.TotalDiscount)
	result.TotalAmount = Round(positive(gross.Sub(result.TotalDiscount)))
	return result, nil
}
