package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salonpos-api/pkg/apperror"
)

func TestBindErrorUsesJSONFieldNames(t *testing.T) {
	gin.SetMode(gin.TestMode)
	UseJSONFieldNames()

	tests := []struct {
		name string
		body any
		want []string
	}{
		{"missing note", &request.VoidInvoiceRequest{}, []string{"note"}},
		{"empty cart", &request.CommitInvoiceRequest{}, []string{"items"}},
		{
			"line without item",
			&request.CommitInvoiceRequest{PreviewInvoiceRequest: request.PreviewInvoiceRequest{
				Items: []request.LineItemRequest{{Quantity: 1}},
			}},
			[]string{"items[0].item_id"},
		},
		{
			"tender without mode",
			&request.EditPaymentRequest{Tenders: []request.TenderRequest{{}}},
			[]string{"tenders[0].payment_mode_id"},
		},
		{"cash usage without reason", &request.CashUsageRequest{}, []string{"reason"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.body)
			if err == nil {
				t.Fatal("ValidateStruct() error = nil")
			}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

			bindError(c, err)

			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", w.Code)
			}
			var body struct {
				Errors []apperror.FieldError `json:"errors"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			var fields []string
			for _, fe := range body.Errors {
				fields = append(fields, fe.Field)
			}
			if !reflect.DeepEqual(fields, tt.want) {
				t.Errorf("fields = %v, want %v", fields, tt.want)
			}
		})
	}
}

func TestBindErrorMalformedBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	bindError(c, errors.New("unexpected EOF"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestParseDate(t *testing.T) {
	from, err := parseDate("start_date", "2026-03-04", false)
	if err != nil || !from.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, %v", from, err)
	}
	to, err := parseDate("end_date", "2026-03-04", true)
	if err != nil || to.Day() != 4 || to.Hour() != 23 {
		t.Errorf("end = %v, %v", to, err)
	}
	if got, err := parseDate("end_date", "", true); got != nil || err != nil {
		t.Errorf("empty = %v, %v", got, err)
	}
	if _, err := parseDate("end_date", "03/04/2026", true); apperror.KindOf(err) != apperror.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestInvoiceQuery(t *testing.T) {
	spec, err := invoiceQuery(request.InvoiceFilterRequest{
		Search:        "INV-0001",
		Status:        "void",
		PaymentStatus: "partial",
		CustomerID:    "7f3c2a5e-8e44-4a5e-9d0c-0b4d4a2f9a10",
		StartDate:     "2026-01-01",
	})
	if err != nil {
		t.Fatalf("invoiceQuery() error = %v", err)
	}
	if len(spec.Equals) != 3 || spec.DateFrom == nil || spec.DateTo != nil {
		t.Errorf("spec = %+v", spec)
	}
	if spec.SearchColumns[0] != "invoice_no" || spec.DateColumn != "invoice_date" {
		t.Errorf("spec columns = %+v", spec)
	}
}

func TestCustomerInvoiceQuery(t *testing.T) {
	customerID := uuid.MustParse("7f3c2a5e-8e44-4a5e-9d0c-0b4d4a2f9a10")

	spec, err := customerInvoiceQuery(request.InvoiceFilterRequest{Status: "active", EndDate: "2026-03-31"}, customerID)
	if err != nil {
		t.Fatalf("customerInvoiceQuery() error = %v", err)
	}
	if spec.Equals["customer_id"] != customerID || spec.Equals["status"] == nil {
		t.Errorf("equals = %+v", spec.Equals)
	}
	if spec.DateColumn != "invoice_date" || spec.DateTo == nil || spec.DateFrom != nil {
		t.Errorf("window = %+v", spec)
	}

	// the same customer in the query string is redundant, not contradictory
	if _, err := customerInvoiceQuery(request.InvoiceFilterRequest{CustomerID: customerID.String()}, customerID); err != nil {
		t.Errorf("same customer filter error = %v", err)
	}

	_, err = customerInvoiceQuery(request.InvoiceFilterRequest{CustomerID: uuid.NewString()}, customerID)
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Errorf("conflicting customer filter error = %v, want validation", err)
	}
}
