package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/repository"
	infraRepo "github.com/sangkips/salonpos-api/internal/infrastructure/repository"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/sangkips/salonpos-api/pkg/pagination"
)

func TestCustomerService(t *testing.T) {
	h := newHarness(t)

	if _, err := h.customers.CreateCustomer(h.ctx, h.rc, &CreateCustomerInput{Name: "   "}); apperror.KindOf(err) != apperror.KindValidation {
		t.Errorf("expected validation error for a blank name, got %v", err)
	}

	phone := "+254700000001"
	created, err := h.customers.CreateCustomer(h.ctx, h.rc, &CreateCustomerInput{Name: " Wanjiru ", Phone: &phone})
	if err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}
	if created.Name != "Wanjiru" || created.CompanyID != h.rc.CompanyID {
		t.Errorf("CreateCustomer() = %+v", created)
	}

	wallet, err := h.customers.Wallet(h.ctx, h.rc, created.ID)
	if err != nil {
		t.Fatalf("Wallet() error = %v", err)
	}
	if wallet.LoyaltyPoints != 0 || !wallet.CashBackAmount.IsZero() {
		t.Errorf("new wallet = %+v", wallet)
	}

	if _, err := h.customers.GetCustomer(h.ctx, h.rc, uuid.New()); apperror.KindOf(err) != apperror.KindNotFound {
		t.Errorf("expected not found, got %v", err)
	}

	h.customer("0", 0)
	page, err := h.customers.ListCustomers(h.ctx, h.rc,
		repository.QuerySpec{Search: "wanj", SearchColumns: []string{"name", "phone"}},
		&pagination.PaginationParams{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("ListCustomers() error = %v", err)
	}
	if page.Pagination.Total != 1 || page.Items[0].ID != created.ID {
		t.Errorf("ListCustomers() = %+v", page)
	}
}

func TestPaymentModeServiceListsSeededModes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentModeService(infraRepo.NewPaymentModeRepository(db))

	modes, err := svc.ListActive(t.Context())
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	want := []string{"Cash", "Card", "Bank Transfer", "Mobile Money"}
	if len(modes) != len(want) {
		t.Fatalf("ListActive() returned %d modes", len(modes))
	}
	for i, name := range want {
		if modes[i].Name != name {
			t.Errorf("modes[%d] = %s, want %s", i, modes[i].Name, name)
		}
	}
	if !modes[0].IsCash {
		t.Error("Cash should be flagged as cash")
	}
}
