package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Tender is a payment offered against a total
type Tender struct {
	PaymentModeID uuid.UUID
	IsCash        bool
	Amount        decimal.Decimal
}

// AllocatedTender is a tender and the part of it that stays in the drawer
type AllocatedTender struct {
	Tender
	Retained decimal.Decimal
}

// Settlement is the outcome of matching tenders to a total
type Settlement struct {
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	TotalReceived decimal.Decimal    `json:"total_received"`
	AmountPaid    decimal.Decimal    `json:"amount_paid"`
	BalanceDue    decimal.Decimal    `json:"balance_due"`
	GivenChange   decimal.Decimal    `json:"given_change"`
	PaymentStatus enum.PaymentStatus `json:"payment_status"`
	Tenders       []AllocatedTender  `json:"-"`
}

// RetainedByMode sums the drawer amounts per payment mode
func (s Settlement) RetainedByMode() map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal, len(s.Tenders))
	for _, t := range s.Tenders {
		out[t.PaymentModeID] = out[t.PaymentModeID].Add(t.Retained)
	}
	return out
}

// Allocate settles tenders against total. Receiving more than the total is
// only allowed when the excess can be handed back from cash tenders.
func Allocate(total decimal.Decimal, tenders []Tender) (Settlement, error) {
	if total.IsNegative() {
		return Settlement{}, apperror.Invalid("total_amount", "must not be negative")
	}

	var errs []apperror.FieldError
	seen := make(map[uuid.UUID]bool, len(tenders))
	received := decimal.Zero
	cash := decimal.Zero
	for i, t := range tenders {
		if t.PaymentModeID == uuid.Nil {
			errs = append(errs, apperror.FieldError{Field: fmt.Sprintf("tenders[%d].payment_mode_id", i), Message: "is required"})
		} else if seen[t.PaymentModeID] {
			errs = append(errs, apperror.FieldError{Field: fmt.Sprintf("tenders[%d].payment_mode_id", i), Message: "payment mode appears more than once"})
		}
		seen[t.PaymentModeID] = true
		if t.Amount.IsNegative() {
			errs = append(errs, apperror.FieldError{Field: fmt.Sprintf("tenders[%d].amount", i), Message: "must not be negative"})
		}
		received = received.Add(t.Amount)
		if t.IsCash {
			cash = cash.Add(t.Amount)
		}
	}
	if len(errs) > 0 {
		return Settlement{}, apperror.NewValidationError(errs)
	}

	s := Settlement{
		TotalAmount:   total,
		TotalReceived: received,
		AmountPaid:    decimal.Min(received, total),
		BalanceDue:    decimal.Zero,
		GivenChange:   decimal.Zero,
	}
	switch received.Cmp(total) {
	case -1:
		s.BalanceDue = total.Sub(received)
	case 1:
		excess := received.Sub(total)
		if excess.GreaterThan(cash) {
			return Settlement{}, apperror.NewBusinessRuleError(apperror.ReasonOverpaymentNotAllowed,
				"Amount received exceeds the total and the excess cannot be given back as cash change")
		}
		s.GivenChange = excess
	}

	switch {
	case s.BalanceDue.IsPositive() && s.AmountPaid.IsPositive():
		s.PaymentStatus = enum.PaymentStatusPartial
	case s.AmountPaid.IsZero() && total.IsPositive():
		s.PaymentStatus = enum.PaymentStatusUnpaid
	default:
		s.PaymentStatus = enum.PaymentStatusPaid
	}

	// change comes out of the cash tenders, last one first
	s.Tenders = make([]AllocatedTender, len(tenders))
	change := s.GivenChange
	for i := len(tenders) - 1; i >= 0; i-- {
		t := tenders[i]
		retained := t.Amount
		if t.IsCash && change.IsPositive() {
			taken := decimal.Min(change, t.Amount)
			retained = t.Amount.Sub(taken)
			change = change.Sub(taken)
		}
		s.Tenders[i] = AllocatedTender{Tender: t, Retained: retained}
	}
	return s, nil
}
