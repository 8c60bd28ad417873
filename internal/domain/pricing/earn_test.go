package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoyaltySchedulePointsFor(t *testing.T) {
	s := LoyaltySchedule{SpendAmount: d("100"), EarnPoints: 5}
	tests := []struct {
		spend string
		want  int64
	}{
		{"0", 0},
		{"99.99", 0},
		{"100", 5},
		{"250", 10},
		{"-10", 0},
	}
	for _, tt := range tests {
		if got := s.PointsFor(d(tt.spend)); got != tt.want {
			t.Errorf("PointsFor(%s) = %d, want %d", tt.spend, got, tt.want)
		}
	}

	if got := (LoyaltySchedule{}).PointsFor(d("1000")); got != 0 {
		t.Errorf("empty schedule earned %d points", got)
	}
}

func TestLoyaltyScheduleRedemption(t *testing.T) {
	s := LoyaltySchedule{RedeemPoints: 100, RedeemAmount: d("5")}
	if got := s.RedemptionValue(250); !got.Equal(d("12.5")) {
		t.Errorf("RedemptionValue(250) = %s, want 12.5", got)
	}
	if got := s.PointsForValue(d("12.51")); got != 251 {
		t.Errorf("PointsForValue(12.51) = %d, want 251", got)
	}
}

func TestCashBackEarned(t *testing.T) {
	items := []LineItem{
		{Quantity: 1, UnitPrice: d("100"), CashBackPercent: d("10")},
		{Quantity: 2, UnitPrice: d("50"), CashBackPercent: decimal.Zero},
	}

	if got := CashBackEarned(items, d("200"), d("200")); !got.Equal(d("10")) {
		t.Errorf("full spend cashback = %s, want 10", got)
	}
	if got := CashBackEarned(items, d("200"), d("100")); !got.Equal(d("5")) {
		t.Errorf("half spend cashback = %s, want 5", got)
	}
	if got := CashBackEarned(items, d("200"), decimal.Zero); !got.IsZero() {
		t.Errorf("no spend cashback = %s, want 0", got)
	}
}

func TestEarnableSpend(t *testing.T) {
	if got := EarnableSpend(d("95"), d("5")); !got.Equal(d("90")) {
		t.Errorf("EarnableSpend = %s, want 90", got)
	}
	if got := EarnableSpend(d("3"), d("5")); !got.IsZero() {
		t.Errorf("EarnableSpend = %s, want 0", got)
	}
}
