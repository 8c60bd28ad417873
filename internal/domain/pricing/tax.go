package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// LineItem is a product or service line as priced at the till
type LineItem struct {
	ItemID          uuid.UUID
	Name            string
	Quantity        int
	UnitPrice       decimal.Decimal
	TaxID           *uuid.UUID
	TaxType         string
	TaxPercent      decimal.Decimal
	CashBackPercent decimal.Decimal
}

// LineTotal is unit price times quantity, before tax
func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// TaxAmount is the tax charged on the whole line, rounded to cents
func (l LineItem) TaxAmount() decimal.Decimal {
	return Round(PercentOf(l.LineTotal(), l.TaxPercent))
}

// PriceIncTax is the tax-inclusive unit price
func (l LineItem) PriceIncTax() decimal.Decimal {
	return Round(l.UnitPrice.Add(PercentOf(l.UnitPrice, l.TaxPercent)))
}

// TotalIncTax is the tax-inclusive line total
func (l LineItem) TotalIncTax() decimal.Decimal {
	return l.LineTotal().Add(l.TaxAmount())
}

func (l LineItem) validate(index int) []apperror.FieldError {
	var errs []apperror.FieldError
	field := func(name string) string { return fmt.Sprintf("items[%d].%s", index, name) }
	if l.Quantity < 1 {
		errs = append(errs, apperror.FieldError{Field: field("quantity"), Message: "must be at least 1"})
	}
	if l.UnitPrice.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: field("unit_price"), Message: "must not be negative"})
	}
	if l.TaxPercent.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: field("tax_percent"), Message: "must not be negative"})
	}
	if l.CashBackPercent.IsNegative() || l.CashBackPercent.GreaterThan(hundred) {
		errs = append(errs, apperror.FieldError{Field: field("cash_back_percent"), Message: "must be between 0 and 100"})
	}
	return errs
}

// TaxBucket aggregates the tax of every line sharing a tax type
type TaxBucket struct {
	TaxType string          `json:"tax_type"`
	Amount  decimal.Decimal `json:"amount"`
}

// TaxResult is the outcome of ComputeTax
type TaxResult struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	TotalTax        decimal.Decimal `json:"total_tax"`
	ItemTotalIncTax decimal.Decimal `json:"item_total_inc_tax"`
	Buckets         []TaxBucket     `json:"tax_buckets"`
}

// ComputeTax prices the items. Buckets keep the order in which each tax type
// first appears.
func ComputeTax(items []LineItem) (TaxResult, error) {
	var errs []apperror.FieldError
	for i, item := range items {
		errs = append(errs, item.validate(i)...)
	}
	if len(errs) > 0 {
		return TaxResult{}, apperror.NewValidationError(errs)
	}

	result := TaxResult{
		Subtotal: decimal.Zero,
		TotalTax: decimal.Zero,
		Buckets:  []TaxBucket{},
	}
	index := make(map[string]int)
	for _, item := range items {
		tax := item.TaxAmount()
		result.Subtotal = result.Subtotal.Add(item.LineTotal())
		result.TotalTax = result.TotalTax.Add(tax)

		pos, ok := index[item.TaxType]
		if !ok {
			pos = len(result.Buckets)
			index[item.TaxType] = pos
			result.Buckets = append(result.Buckets, TaxBucket{TaxType: item.TaxType, Amount: decimal.Zero})
		}
		result.Buckets[pos].Amount = result.Buckets[pos].Amount.Add(tax)
	}

	result.Subtotal = Round(result.Subtotal)
	result.TotalTax = Round(result.TotalTax)
	result.ItemTotalIncTax = result.Subtotal.Add(result.TotalTax)
	return result, nil
}
