package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/application/service"
	"github.com/shopspring/decimal"
)

// SaveDraftRequest parks a cart. An ID updates an existing draft.
type SaveDraftRequest struct {
	ID              *uuid.UUID          `json:"id"`
	CustomerID      *uuid.UUID          `json:"customer_id"`
	Items           []service.DraftItem `json:"items" binding:"required,min=1"`
	ShippingCharges decimal.Decimal     `json:"shipping_charges"`
	CouponCode      string              `json:"coupon_code"`
	GiftCardCode    string              `json:"gift_card_code"`
	PromoCode       string              `json:"promo_code"`
	ReferralCode    string              `json:"referral_code"`
	Note            *string             `json:"note" binding:"omitempty,max=1000"`
}

// ToDraft converts the request into a draft
func (r *SaveDraftRequest) ToDraft() *service.Draft {
	draft := &service.Draft{
		CustomerID:      r.CustomerID,
		Items:           r.Items,
		ShippingCharges: r.ShippingCharges,
		CouponCode:      r.CouponCode,
		GiftCardCode:    r.GiftCardCode,
		PromoCode:       r.PromoCode,
		ReferralCode:    r.ReferralCode,
		Note:            r.Note,
	}
	if r.ID != nil {
		draft.ID = *r.ID
	}
	return draft
}
