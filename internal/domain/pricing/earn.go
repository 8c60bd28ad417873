package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EarnPolicy decides how many loyalty points a spend earns
type EarnPolicy interface {
	PointsEarned(ctx context.Context, customerID, outletID uuid.UUID, weekday time.Weekday, spend decimal.Decimal) (int64, error)
}

// LoyaltySchedule is the earn and redeem rate of a single day.
// Every SpendAmount spent earns EarnPoints; RedeemPoints are worth RedeemAmount.
type LoyaltySchedule struct {
	SpendAmount  decimal.Decimal
	EarnPoints   int64
	RedeemPoints int64
	RedeemAmount decimal.Decimal
}

// PointsFor returns the points earned by spend
func (s LoyaltySchedule) PointsFor(spend decimal.Decimal) int64 {
	if !s.SpendAmount.IsPositive() || s.EarnPoints <= 0 || !spend.IsPositive() {
		return 0
	}
	blocks := spend.Div(s.SpendAmount).Floor().IntPart()
	return blocks * s.EarnPoints
}

// Redeemable reports whether points can be exchanged under this schedule
func (s LoyaltySchedule) Redeemable() bool {
	return s.RedeemPoints > 0 && s.RedeemAmount.IsPositive()
}

// RedemptionValue is the money value of points
func (s LoyaltySchedule) RedemptionValue(points int64) decimal.Decimal {
	if !s.Redeemable() || points <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(points).Mul(s.RedeemAmount).Div(decimal.NewFromInt(s.RedeemPoints))
}

// PointsForValue is the number of points needed to cover value, rounded up
func (s LoyaltySchedule) PointsForValue(value decimal.Decimal) int64 {
	if !s.Redeemable() || !value.IsPositive() {
		return 0
	}
	return value.Mul(decimal.NewFromInt(s.RedeemPoints)).Div(s.RedeemAmount).Ceil().IntPart()
}

// EarnableSpend is the part of the payable total that earns rewards.
// Shipping does not earn.
func EarnableSpend(totalAmount, shipping decimal.Decimal) decimal.Decimal {
	return positive(totalAmount.Sub(shipping))
}

// CashBackEarned applies each line's cashback percent to its share of spend.
// Lines are scaled down by the ratio of spend to the undiscounted item total.
func CashBackEarned(items []LineItem, itemTotalIncTax, spend decimal.Decimal) decimal.Decimal {
	if !itemTotalIncTax.IsPositive() || !spend.IsPositive() {
		return decimal.Zero
	}
	ratio := decimal.Min(spend.Div(itemTotalIncTax), decimal.NewFromInt(1))
	total := decimal.Zero
	for _, item := range items {
		if !item.CashBackPercent.IsPositive() {
			continue
		}
		total = total.Add(PercentOf(item.TotalIncTax(), item.CashBackPercent).Mul(ratio))
	}
	return Round(total)
}
