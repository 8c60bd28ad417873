package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/internal/infrastructure/cache"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// DraftItem is a cart line as the till holds it before pricing
type DraftItem struct {
	ItemID          uuid.UUID       `json:"item_id"`
	Name            string          `json:"name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TaxID           *uuid.UUID      `json:"tax_id,omitempty"`
	TaxType         string          `json:"tax_type"`
	TaxPercent      decimal.Decimal `json:"tax_percent"`
	CashBackPercent decimal.Decimal `json:"cash_back_percent"`
}

// Draft is a parked cart. Totals are never stored; a draft is priced by preview.
type Draft struct {
	ID              uuid.UUID       `json:"id"`
	OutletID        uuid.UUID       `json:"outlet_id"`
	CustomerID      *uuid.UUID      `json:"customer_id,omitempty"`
	Items           []DraftItem     `json:"items"`
	ShippingCharges decimal.Decimal `json:"shipping_charges"`
	CouponCode      string          `json:"coupon_code,omitempty"`
	GiftCardCode    string          `json:"gift_card_code,omitempty"`
	PromoCode       string          `json:"promo_code,omitempty"`
	ReferralCode    string          `json:"referral_code,omitempty"`
	Note            *string         `json:"note,omitempty"`
	CreatedBy       uuid.UUID       `json:"created_by"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// DraftService parks carts in the cache store
type DraftService struct {
	store cache.Store
	ttl   time.Duration
}

// NewDraftService creates a new draft service
func NewDraftService(store cache.Store, ttl time.Duration) *DraftService {
	return &DraftService{store: store, ttl: ttl}
}

// Save stores the draft, assigning an ID to new ones
func (s *DraftService) Save(ctx context.Context, rc entity.RequestContext, draft *Draft) (*Draft, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	if draft.ID == uuid.Nil {
		draft.ID = uuid.New()
	}
	draft.OutletID = rc.OutletID
	draft.CreatedBy = rc.UserID
	draft.UpdatedAt = time.Now()
	if err := s.store.SetObject(ctx, cache.DraftKey(rc.CompanyID, draft.ID), draft, s.ttl); err != nil {
		return nil, apperror.Storage(err)
	}
	return draft, nil
}

// Get loads a draft of the caller's company
func (s *DraftService) Get(ctx context.Context, rc entity.RequestContext, id uuid.UUID) (*Draft, error) {
	var draft Draft
	found, err := s.store.GetObject(ctx, cache.DraftKey(rc.CompanyID, id), &draft)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if !found {
		return nil, apperror.NewNotFoundError("Draft")
	}
	return &draft, nil
}

// Delete removes a draft; deleting a missing draft is not an error
func (s *DraftService) Delete(ctx context.Context, rc entity.RequestContext, id uuid.UUID) error {
	if err := s.store.Delete(ctx, cache.DraftKey(rc.CompanyID, id)); err != nil {
		return apperror.Storage(err)
	}
	return nil
}
