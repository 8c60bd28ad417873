package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DiscountKind identifies the instrument a discount was drawn from
type DiscountKind string

const (
	DiscountKindCoupon   DiscountKind = "coupon"
	DiscountKindGiftCard DiscountKind = "giftcard"
	DiscountKindPromo    DiscountKind = "promo"
	DiscountKindReferral DiscountKind = "referral"
	DiscountKindLoyalty  DiscountKind = "loyalty"
	DiscountKindCashBack DiscountKind = "cashback"
)

// IsCodeBased reports whether the kind is redeemed with a code
func (k DiscountKind) IsCodeBased() bool {
	switch k {
	case DiscountKindCoupon, DiscountKindGiftCard, DiscountKindPromo, DiscountKindReferral:
		return true
	}
	return false
}

// Label is the human name used in messages
func (k DiscountKind) Label() string {
	switch k {
	case DiscountKindCoupon:
		return "Coupon"
	case DiscountKindGiftCard:
		return "Gift card"
	case DiscountKindPromo:
		return "Promo code"
	case DiscountKindReferral:
		return "Referral code"
	case DiscountKindLoyalty:
		return "Loyalty points"
	case DiscountKindCashBack:
		return "Cashback"
	}
	return string(k)
}

func (k DiscountKind) String() string {
	return string(k)
}

func (k DiscountKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(k))
}

func (k *DiscountKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch DiscountKind(str) {
	case DiscountKindCoupon, DiscountKindGiftCard, DiscountKindPromo, DiscountKindReferral,
		DiscountKindLoyalty, DiscountKindCashBack:
		*k = DiscountKind(str)
		return nil
	}
	return fmt.Errorf("unknown discount kind %q", str)
}

func (k DiscountKind) Value() (driver.Value, error) {
	return string(k), nil
}

func (k *DiscountKind) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*k = DiscountKind(v)
	case []byte:
		*k = DiscountKind(string(v))
	}
	return nil
}
