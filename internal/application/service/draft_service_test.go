package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/internal/infrastructure/cache"
	"github.com/sangkips/salonpos-api/pkg/apperror"
)

func TestDraftLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewDraftService(cache.NewMemoryStore(), time.Hour)
	rc := entity.RequestContext{UserID: uuid.New(), OutletID: uuid.New(), CompanyID: uuid.New()}

	saved, err := svc.Save(ctx, rc, &Draft{
		Items:      []DraftItem{{ItemID: uuid.New(), Name: "Pedicure", Quantity: 2, UnitPrice: d("35")}},
		CouponCode: "SPRING10",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID == uuid.Nil || saved.OutletID != rc.OutletID || saved.CreatedBy != rc.UserID {
		t.Errorf("Save() did not stamp the draft: %+v", saved)
	}

	got, err := svc.Get(ctx, rc, saved.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 || got.CouponCode != "SPRING10" {
		t.Errorf("Get() = %+v", got)
	}
	assertDecimal(t, "unit price", got.Items[0].UnitPrice, "35")

	other := rc
	other.CompanyID = uuid.New()
	if _, err := svc.Get(ctx, other, saved.ID); apperror.KindOf(err) != apperror.KindNotFound {
		t.Errorf("draft visible to another company: %v", err)
	}

	if err := svc.Delete(ctx, rc, saved.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, rc, saved.ID); apperror.KindOf(err) != apperror.KindNotFound {
		t.Errorf("expected not found after delete, got %v", err)
	}
	if err := svc.Delete(ctx, rc, saved.ID); err != nil {
		t.Errorf("deleting a missing draft should succeed, got %v", err)
	}
}

func TestDraftSaveRequiresCaller(t *testing.T) {
	svc := NewDraftService(cache.NewMemoryStore(), time.Hour)
	_, err := svc.Save(context.Background(), entity.RequestContext{}, &Draft{})
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}
