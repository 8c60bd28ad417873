package enum

import (
	"encoding/json"
	"testing"
)

func TestInvoiceStatusJSON(t *testing.T) {
	data, err := json.Marshal(InvoiceStatusVoid)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"void"` {
		t.Errorf("got %s, want \"void\"", data)
	}

	var s InvoiceStatus
	if err := json.Unmarshal([]byte(`1`), &s); err != nil || s != InvoiceStatusVoid {
		t.Errorf("numeric unmarshal = %v, %v", s, err)
	}
}

func TestDiscountKindRejectsUnknown(t *testing.T) {
	var k DiscountKind
	if err := json.Unmarshal([]byte(`"voucher"`), &k); err == nil {
		t.Errorf("expected error for unknown kind")
	}
	if err := json.Unmarshal([]byte(`"giftcard"`), &k); err != nil || k != DiscountKindGiftCard {
		t.Errorf("got %v, %v", k, err)
	}
}

func TestDiscountKindIsCodeBased(t *testing.T) {
	tests := []struct {
		kind DiscountKind
		want bool
	}{
		{DiscountKindCoupon, true},
		{DiscountKindGiftCard, true},
		{DiscountKindPromo, true},
		{DiscountKindReferral, true},
		{DiscountKindLoyalty, false},
		{DiscountKindCashBack, false},
	}
	for _, tt := range tests {
		if got := tt.kind.IsCodeBased(); got != tt.want {
			t.Errorf("%s.IsCodeBased() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestDiscountTypeAcceptsPercentageAlias(t *testing.T) {
	var d DiscountType
	if err := json.Unmarshal([]byte(`"percentage"`), &d); err != nil || d != DiscountTypePercent {
		t.Errorf("got %v, %v", d, err)
	}
}

func TestParseStatuses(t *testing.T) {
	if s, ok := ParseInvoiceStatus("void"); !ok || s != InvoiceStatusVoid {
		t.Errorf("ParseInvoiceStatus(void) = %v, %v", s, ok)
	}
	if _, ok := ParseInvoiceStatus("cancelled"); ok {
		t.Error("ParseInvoiceStatus accepted an unknown status")
	}
	if s, ok := ParsePaymentStatus("partial"); !ok || s != PaymentStatusPartial {
		t.Errorf("ParsePaymentStatus(partial) = %v, %v", s, ok)
	}
	if _, ok := ParsePaymentStatus(""); ok {
		t.Error("ParsePaymentStatus accepted an empty status")
	}
}
