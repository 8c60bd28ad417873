package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"github.com/sangkips/salonpos-api/internal/domain/pricing"
	"github.com/sangkips/salonpos-api/internal/domain/repository"
	"github.com/sangkips/salonpos-api/pkg/apperror"
)

func (h *harness) cashSale(amount string) {
	h.t.Helper()
	h.commit(CommitInput{
		PreviewInput: PreviewInput{Items: []pricing.LineItem{flatItem(amount)}},
		Tenders:      []TenderInput{tender(h.cash, amount)},
	})
}

func (h *harness) isOpen() bool {
	h.t.Helper()
	current, err := h.registers.Current(h.ctx, h.rc)
	if err != nil {
		h.t.Fatalf("Current() error = %v", err)
	}
	return current.Register != nil
}

// Three cash sales, a short count explained, part of the cash banked.
func TestCloseCarriesForwardCountedCash(t *testing.T) {
	h := newHarness(t)
	h.openRegister("500")
	h.cashSale("200")
	h.cashSale("150")
	h.cashSale("50")

	closed, err := h.registers.Close(h.ctx, h.rc, CloseInput{
		Counts:      []ModeCount{{PaymentModeID: h.cash.ID, Amount: d("395"), Reason: "till shortage"}},
		BankDeposit: d("300"),
	})
	if err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if closed.Status != enum.RegisterStatusClosed || closed.ClosedAt == nil {
		t.Errorf("register not closed: %+v", closed)
	}
	assertDecimal(t, "ManualCashCount", closed.ManualCashCount, "395")
	assertDecimal(t, "BankDeposit", closed.BankDeposit, "300")
	assertDecimal(t, "CarryForwardBalance", closed.CarryForwardBalance, "95")

	var cashEntry *entity.RegisterCloseEntry
	for i := range closed.CloseEntries {
		if closed.CloseEntries[i].PaymentModeID == h.cash.ID {
			cashEntry = &closed.CloseEntries[i]
		}
	}
	if cashEntry == nil {
		t.Fatalf("no close entry for cash in %+v", closed.CloseEntries)
	}
	assertDecimal(t, "cash automatic", cashEntry.AutomaticTotal, "400")
	assertDecimal(t, "cash discrepancy", cashEntry.Discrepancy, "-5")
	if cashEntry.Reason == nil || *cashEntry.Reason != "till shortage" {
		t.Errorf("cash reason = %v", cashEntry.Reason)
	}
	if len(closed.CloseEntries) != 4 {
		t.Errorf("close entries = %d, want one per active mode", len(closed.CloseEntries))
	}

	current, err := h.registers.Current(h.ctx, h.rc)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current.Register != nil {
		t.Errorf("register still open after close")
	}
	assertDecimal(t, "SuggestedOpeningBalance", current.SuggestedOpeningBalance, "95")
}

func TestCloseRejections(t *testing.T) {
	tests := []struct {
		name   string
		input  func(h *harness) CloseInput
		reason apperror.Reason
	}{
		{
			name: "discrepancy without reason",
			input: func(h *harness) CloseInput {
				return CloseInput{Counts: []ModeCount{{PaymentModeID: h.cash.ID, Amount: d("95")}}}
			},
			reason: apperror.ReasonReasonRequired,
		},
		{
			name: "uncounted card sales need a reason",
			input: func(h *harness) CloseInput {
				return CloseInput{Counts: []ModeCount{{PaymentModeID: h.cash.ID, Amount: d("100")}}}
			},
			reason: apperror.ReasonReasonRequired,
		},
		{
			name: "deposit above counted cash",
			input: func(h *harness) CloseInput {
				return CloseInput{
					Counts: []ModeCount{
						{PaymentModeID: h.cash.ID, Amount: d("100")},
						{PaymentModeID: h.card.ID, Amount: d("40")},
					},
					BankDeposit: d("100.01"),
				}
			},
			reason: apperror.ReasonBankDepositExceedsCash,
		},
		{
			name: "unknown payment mode",
			input: func(h *harness) CloseInput {
				return CloseInput{Counts: []ModeCount{{PaymentModeID: uuid.New(), Amount: d("1"), Reason: "found"}}}
			},
			reason: apperror.ReasonUnknownPaymentMode,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.openRegister("0")
			h.cashSale("100")
			h.commit(CommitInput{
				PreviewInput: PreviewInput{Items: []pricing.LineItem{flatItem("40")}},
				Tenders:      []TenderInput{tender(h.card, "40")},
			})

			_, err := h.registers.Close(h.ctx, h.rc, tt.input(h))
			assertReason(t, err, tt.reason)
			if !h.isOpen() {
				t.Errorf("register closed despite the rejection")
			}
			if n := h.count(&entity.RegisterCloseEntry{}, ""); n != 0 {
				t.Errorf("close entries written: %d", n)
			}
		})
	}
}

func TestCloseInputValidation(t *testing.T) {
	h := newHarness(t)
	h.openRegister("0")

	tests := []struct {
		name  string
		input CloseInput
	}{
		{"negative count", CloseInput{Counts: []ModeCount{{PaymentModeID: h.cash.ID, Amount: d("-1")}}}},
		{"duplicate mode", CloseInput{Counts: []ModeCount{{PaymentModeID: h.cash.ID}, {PaymentModeID: h.cash.ID}}}},
		{"negative deposit", CloseInput{BankDeposit: d("-5")}},
		{"cash usage without reason", CloseInput{CashUsages: []CashUsageInput{{Amount: d("5")}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.registers.Close(h.ctx, h.rc, tt.input)
			if apperror.KindOf(err) != apperror.KindValidation {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCashUsageReducesCarryForward(t *testing.T) {
	tests := []struct {
		name        string
		recorded    string
		atClose     string
		deposit     string
		wantUsage   string
		wantCarried string
	}{
		{"usage during the day and at close", "20", "30", "100", "50", "50"},
		{"usage larger than the drawer floors at zero", "150", "100", "0", "250", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.openRegister("0")
			h.cashSale("200")

			if _, err := h.registers.RecordCashUsage(h.ctx, h.rc, CashUsageInput{Reason: "towels", Amount: d(tt.recorded)}); err != nil {
				t.Fatalf("RecordCashUsage() error = %v", err)
			}
			closed, err := h.registers.Close(h.ctx, h.rc, CloseInput{
				Counts:      []ModeCount{{PaymentModeID: h.cash.ID, Amount: d("200")}},
				BankDeposit: d(tt.deposit),
				CashUsages:  []CashUsageInput{{Reason: "laundry", Amount: d(tt.atClose)}},
			})
			if err != nil {
				t.Fatalf("Close() error = %v", err)
			}
			assertDecimal(t, "TotalCashUsage", closed.TotalCashUsage, tt.wantUsage)
			assertDecimal(t, "CarryForwardBalance", closed.CarryForwardBalance, tt.wantCarried)
			if len(closed.CashUsages) != 2 {
				t.Errorf("cash usages = %d, want 2", len(closed.CashUsages))
			}
		})
	}
}

func TestOpenRules(t *testing.T) {
	h := newHarness(t)

	if _, err := h.registers.Open(h.ctx, h.rc, d("-1")); apperror.KindOf(err) != apperror.KindValidation {
		t.Errorf("expected validation error for negative opening balance, got %v", err)
	}

	_, err := h.registers.Close(h.ctx, h.rc, CloseInput{})
	assertReason(t, err, apperror.ReasonNoOpenRegister)

	_, err = h.registers.RecordCashUsage(h.ctx, h.rc, CashUsageInput{Reason: "tips", Amount: d("5")})
	assertReason(t, err, apperror.ReasonNoOpenRegister)

	register := h.openRegister("150.50")
	assertDecimal(t, "OpeningBalance", register.OpeningBalance, "150.5")

	_, err = h.registers.Open(h.ctx, h.rc, d("0"))
	assertReason(t, err, apperror.ReasonAlreadyOpen)

	other := h.rc
	other.OutletID = uuid.New()
	if _, err := h.registers.Open(h.ctx, other, d("0")); err != nil {
		t.Errorf("another outlet should open independently, got %v", err)
	}
}

func TestCurrentShowsRunningTotals(t *testing.T) {
	h := newHarness(t)

	current, err := h.registers.Current(h.ctx, h.rc)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current.Register != nil || !current.SuggestedOpeningBalance.IsZero() {
		t.Errorf("fresh outlet current = %+v", current)
	}

	register := h.openRegister("0")
	h.cashSale("30")
	current, err = h.registers.Current(h.ctx, h.rc)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current.Register == nil || current.Register.ID != register.ID {
		t.Fatalf("Current() register = %+v", current.Register)
	}
	if len(current.Register.ModeTotals) != 1 {
		t.Fatalf("mode totals = %+v", current.Register.ModeTotals)
	}
	assertDecimal(t, "cash total", current.Register.ModeTotals[0].Amount, "30")

	page, err := h.registers.List(h.ctx, h.rc, repository.QuerySpec{}, nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Pagination.Total != 1 {
		t.Errorf("List() total = %d", page.Pagination.Total)
	}
}
