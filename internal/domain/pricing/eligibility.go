package pricing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Eligibility is the typed outcome of checking whether an instrument can be redeemed
type Eligibility struct {
	Eligible bool
	Reason   apperror.Reason
	Message  string
}

// Eligible is the passing result
func Eligible() Eligibility {
	return Eligibility{Eligible: true}
}

// Ineligible builds a failing result
func Ineligible(reason apperror.Reason, message string) Eligibility {
	return Eligibility{Reason: reason, Message: message}
}

// Err converts a failing result into a business rule error
func (e Eligibility) Err() error {
	if e.Eligible {
		return nil
	}
	return apperror.NewBusinessRuleError(e.Reason, e.Message)
}

// CodeInstrument is the pricing view of a coupon, gift card, promo code or referral code
type CodeInstrument struct {
	ID                 uuid.UUID
	Kind               enum.DiscountKind
	Code               string
	DiscountType       enum.DiscountType
	Value              decimal.Decimal
	Status             enum.RecordStatus
	IsActive           bool
	ValidUntil         *time.Time
	Remaining          *int
	UsedByCustomer     bool
	ReferrerCustomerID *uuid.UUID
}

// Check validates the instrument for a customer at the given time. Checks run
// in a fixed order so the first failing rule is reported.
func (c CodeInstrument) Check(customerID uuid.UUID, now time.Time) Eligibility {
	label := c.Kind.Label()
	switch {
	case c.Status == enum.RecordStatusDeleted:
		return Ineligible(apperror.ReasonCodeNotFound, fmt.Sprintf("%s %q not found", label, c.Code))
	case !c.IsActive:
		return Ineligible(apperror.ReasonCodeInactive, fmt.Sprintf("%s %q is not active", label, c.Code))
	case c.ValidUntil != nil && c.ValidUntil.Before(now):
		return Ineligible(apperror.ReasonCodeExpired, fmt.Sprintf("%s %q has expired", label, c.Code))
	case c.UsedByCustomer:
		return Ineligible(apperror.ReasonCodeAlreadyUsed, fmt.Sprintf("%s %q has already been used by this customer", label, c.Code))
	case c.Remaining != nil && *c.Remaining <= 0:
		return Ineligible(apperror.ReasonCodeExhausted, fmt.Sprintf("%s %q has no remaining uses", label, c.Code))
	case c.Kind == enum.DiscountKindReferral && c.ReferrerCustomerID != nil && *c.ReferrerCustomerID == customerID:
		return Ineligible(apperror.ReasonCodeNotApplicable, "Customers cannot redeem their own referral code")
	}
	return Eligible()
}

// Amount is the discount the instrument gives on base, never more than base
func (c CodeInstrument) Amount(base decimal.Decimal) decimal.Decimal {
	base = positive(base)
	value := positive(c.Value)
	var amount decimal.Decimal
	switch c.DiscountType {
	case enum.DiscountTypePercent:
		amount = Round(PercentOf(base, value))
	default:
		amount = value
	}
	return decimal.Min(amount, base)
}
