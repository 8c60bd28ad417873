package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/application/service"
	"github.com/sangkips/salonpos-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// LineItemRequest is a cart line as sent by the till
type LineItemRequest struct {
	ItemID          uuid.UUID       `json:"item_id" binding:"required"`
	Name            string          `json:"name" binding:"max=255"`
	Quantity        int             `json:"quantity" binding:"required,min=1"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TaxID           *uuid.UUID      `json:"tax_id"`
	TaxType         string          `json:"tax_type" binding:"max=100"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	CashBackPercent decimal.Decimal `json:"cash_back_percent"`
}

// DiscountRequest selects the discounts to apply
type DiscountRequest struct {
	CouponCode       string           `json:"coupon_code"`
	GiftCardCode     string           `json:"gift_card_code"`
	PromoCode        string           `json:"promo_code"`
	ReferralCode     string           `json:"referral_code"`
	UseLoyaltyPoints bool             `json:"use_loyalty_points"`
	UseCashBack      bool             `json:"use_cash_back"`
	CashBackAmount   *decimal.Decimal `json:"cash_back_amount"`
}

// PreviewInvoiceRequest represents a cart to price
type PreviewInvoiceRequest struct {
	CustomerID      *uuid.UUID        `json:"customer_id"`
	Items           []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingCharges decimal.Decimal   `json:"shipping_charges"`
	Discounts       DiscountRequest   `json:"discounts"`
}

// TenderRequest is one payment against an invoice
type TenderRequest struct {
	PaymentModeID uuid.UUID       `json:"payment_mode_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
}

// CommitInvoiceRequest represents an invoice commit request
type CommitInvoiceRequest struct {
	PreviewInvoiceRequest
	Tenders []TenderRequest `json:"tenders" binding:"dive"`
	Note    *string         `json:"note" binding:"omitempty,max=1000"`
}

// EditPaymentRequest replaces the tenders of an invoice
type EditPaymentRequest struct {
	Tenders []TenderRequest `json:"tenders" binding:"required,dive"`
}

// VoidInvoiceRequest represents a void request
type VoidInvoiceRequest struct {
	Note string `json:"note" binding:"required,max=1000"`
}

// InvoiceFilterRequest represents invoice list filters
type InvoiceFilterRequest struct {
	Search        string `form:"search"`
	CustomerID    string `form:"customer_id"`
	RegisterID    string `form:"register_id"`
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}

// ToPreviewInput converts the request into the service input
func (r *PreviewInvoiceRequest) ToPreviewInput() service.PreviewInput {
	items := make([]pricing.LineItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = pricing.LineItem{
			ItemID:          it.ItemID,
			Name:            it.Name,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			TaxID:           it.TaxID,
			TaxType:         it.TaxType,
			TaxPercent:      it.TaxPercent,
			CashBackPercent: it.CashBackPercent,
		}
	}
	return service.PreviewInput{
		CustomerID:      r.CustomerID,
		Items:           items,
		ShippingCharges: r.ShippingCharges,
		Discounts: pricing.Selection{
			CouponCode:       r.Discounts.CouponCode,
			GiftCardCode:     r.Discounts.GiftCardCode,
			PromoCode:        r.Discounts.PromoCode,
			ReferralCode:     r.Discounts.ReferralCode,
			UseLoyaltyPoints: r.Discounts.UseLoyaltyPoints,
			UseCashBack:      r.Discounts.UseCashBack,
			CashBackAmount:   r.Discounts.CashBackAmount,
		},
	}
}

// ToCommitInput converts the request into the service input
func (r *CommitInvoiceRequest) ToCommitInput(idempotencyKey string) service.CommitInput {
	return service.CommitInput{
		PreviewInput:   r.ToPreviewInput(),
		Tenders:        ToTenderInputs(r.Tenders),
		IdempotencyKey: idempotencyKey,
		Note:           r.Note,
	}
}

// ToTenderInputs converts tender requests into service inputs
func ToTenderInputs(tenders []TenderRequest) []service.TenderInput {
	out := make([]service.TenderInput, len(tenders))
	for i, t := range tenders {
		out[i] = service.TenderInput{PaymentModeID: t.PaymentModeID, Amount: t.Amount}
	}
	return out
}
