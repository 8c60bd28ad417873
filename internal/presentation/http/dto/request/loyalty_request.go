package request

import (
	"github.com/sangkips/salonpos-api/internal/application/service"
	"github.com/shopspring/decimal"
)

// LoyaltyRuleRequest sets the earn and redeem rates of one weekday
type LoyaltyRuleRequest struct {
	SpendAmount  decimal.Decimal `json:"spend_amount"`
	EarnPoints   int64           `json:"earn_points" binding:"min=0"`
	RedeemPoints int64           `json:"redeem_points" binding:"min=0"`
	RedeemAmount decimal.Decimal `json:"redeem_amount"`
	IsActive     *bool           `json:"is_active"`
}

// ToInput converts the request for the given weekday; rules are active unless switched off
func (r *LoyaltyRuleRequest) ToInput(day int) service.LoyaltyRuleInput {
	return service.LoyaltyRuleInput{
		DayOfWeek:    day,
		SpendAmount:  r.SpendAmount,
		EarnPoints:   r.EarnPoints,
		RedeemPoints: r.RedeemPoints,
		RedeemAmount: r.RedeemAmount,
		IsActive:     r.IsActive == nil || *r.IsActive,
	}
}
