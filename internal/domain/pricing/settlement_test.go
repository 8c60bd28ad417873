package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	cashMode = uuid.New()
	cardMode = uuid.New()
	bankMode = uuid.New()
)

func cash(amount string) Tender {
	return Tender{PaymentModeID: cashMode, IsCash: true, Amount: d(amount)}
}

func card(amount string) Tender {
	return Tender{PaymentModeID: cardMode, Amount: d(amount)}
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		tenders []Tender
		paid    string
		due     string
		change  string
		status  enum.PaymentStatus
	}{
		{"exact cash", "90", []Tender{cash("90")}, "90", "0", "0", enum.PaymentStatusPaid},
		{"cash change", "90", []Tender{cash("100")}, "90", "0", "10", enum.PaymentStatusPaid},
		{"partial", "90", []Tender{card("40")}, "40", "50", "0", enum.PaymentStatusPartial},
		{"unpaid", "90", nil, "0", "90", "0", enum.PaymentStatusUnpaid},
		{"zero total", "0", nil, "0", "0", "0", enum.PaymentStatusPaid},
		{"split with cash change", "90", []Tender{card("50"), cash("50")}, "90", "0", "10", enum.PaymentStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Allocate(d(tt.total), tt.tenders)
			if err != nil {
				t.Fatalf("Allocate() error = %v", err)
			}
			if !s.AmountPaid.Equal(d(tt.paid)) {
				t.Errorf("AmountPaid = %s, want %s", s.AmountPaid, tt.paid)
			}
			if !s.BalanceDue.Equal(d(tt.due)) {
				t.Errorf("BalanceDue = %s, want %s", s.BalanceDue, tt.due)
			}
			if !s.GivenChange.Equal(d(tt.change)) {
				t.Errorf("GivenChange = %s, want %s", s.GivenChange, tt.change)
			}
			if s.PaymentStatus != tt.status {
				t.Errorf("PaymentStatus = %s, want %s", s.PaymentStatus, tt.status)
			}
		})
	}
}

func TestAllocateOverpayWithoutCash(t *testing.T) {
	_, err := Allocate(d("90"), []Tender{card("100")})
	if apperror.ReasonOf(err) != apperror.ReasonOverpaymentNotAllowed {
		t.Errorf("reason = %q, want OVERPAYMENT_NOT_ALLOWED", apperror.ReasonOf(err))
	}

	// excess larger than the cash that could be handed back
	_, err = Allocate(d("90"), []Tender{card("95"), cash("3")})
	if apperror.ReasonOf(err) != apperror.ReasonOverpaymentNotAllowed {
		t.Errorf("reason = %q, want OVERPAYMENT_NOT_ALLOWED", apperror.ReasonOf(err))
	}
}

func TestAllocateValidation(t *testing.T) {
	tests := []struct {
		name    string
		tenders []Tender
	}{
		{"negative amount", []Tender{{PaymentModeID: cashMode, IsCash: true, Amount: d("-1")}}},
		{"duplicate mode", []Tender{cash("10"), cash("5")}},
		{"missing mode", []Tender{{Amount: d("5")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Allocate(d("10"), tt.tenders)
			if apperror.KindOf(err) != apperror.KindValidation {
				t.Errorf("kind = %q, want validation", apperror.KindOf(err))
			}
		})
	}
}

func TestAllocateIdentity(t *testing.T) {
	totals := []string{"0", "0.01", "45.5", "90", "1234.56"}
	amounts := []string{"0", "0.01", "20", "45.5", "100", "2000"}
	for _, total := range totals {
		for _, a := range amounts {
			for _, b := range amounts {
				tenders := []Tender{card(a), {PaymentModeID: bankMode, Amount: d(b)}, cash(b)}
				s, err := Allocate(d(total), tenders)
				if err != nil {
					if apperror.ReasonOf(err) != apperror.ReasonOverpaymentNotAllowed {
						t.Fatalf("unexpected error %v", err)
					}
					continue
				}
				lhs := s.AmountPaid.Add(s.BalanceDue)
				if !lhs.Equal(d(total)) {
					t.Errorf("total %s tenders %s/%s: paid+due = %s", total, a, b, lhs)
				}
				if s.BalanceDue.IsPositive() && s.GivenChange.IsPositive() {
					t.Errorf("total %s: both balance due and change set", total)
				}
				if !s.TotalReceived.Sub(s.GivenChange).Equal(s.AmountPaid) {
					t.Errorf("total %s: received-change != paid", total)
				}
			}
		}
	}
}

func TestAllocateRetainedNetsChange(t *testing.T) {
	s, err := Allocate(d("90"), []Tender{card("50"), cash("50")})
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	byMode := s.RetainedByMode()
	if !byMode[cardMode].Equal(d("50")) {
		t.Errorf("card retained = %s, want 50", byMode[cardMode])
	}
	if !byMode[cashMode].Equal(d("40")) {
		t.Errorf("cash retained = %s, want 40", byMode[cashMode])
	}

	sum := decimal.Zero
	for _, v := range byMode {
		sum = sum.Add(v)
	}
	if !sum.Equal(s.AmountPaid) {
		t.Errorf("retained sum = %s, want amount paid %s", sum, s.AmountPaid)
	}
}
