package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryStoreRoundTripAndExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	if err := store.SetObject(ctx, "k", sample{Name: "facial", Count: 2}, time.Minute); err != nil {
		t.Fatalf("SetObject() error = %v", err)
	}

	var got sample
	found, err := store.GetObject(ctx, "k", &got)
	if err != nil || !found {
		t.Fatalf("GetObject() = %v, %v; want found", found, err)
	}
	if got.Name != "facial" || got.Count != 2 {
		t.Errorf("GetObject() decoded %+v", got)
	}

	clock = clock.Add(2 * time.Minute)
	found, err = store.GetObject(ctx, "k", &got)
	if err != nil || found {
		t.Errorf("expected expired key to be missing, got found=%v err=%v", found, err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.SetObject(ctx, "a", 1, 0)
	_ = store.SetObject(ctx, "b", 2, 0)

	if err := store.Delete(ctx, "a", "missing"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	var v int
	if found, _ := store.GetObject(ctx, "a", &v); found {
		t.Errorf("expected a to be deleted")
	}
	if found, _ := store.GetObject(ctx, "b", &v); !found || v != 2 {
		t.Errorf("expected b to survive, got found=%v v=%d", found, v)
	}
}

func TestKeys(t *testing.T) {
	id := uuid.MustParse("6f1c1f43-5c43-4a0c-9a43-0d3bbf0c9d11")
	if got := LoyaltyRulesKey(id); got != "loyalty_rules:6f1c1f43-5c43-4a0c-9a43-0d3bbf0c9d11" {
		t.Errorf("LoyaltyRulesKey() = %q", got)
	}
	if got := DraftKey(id, id); got != "draft:"+id.String()+":"+id.String() {
		t.Errorf("DraftKey() = %q", got)
	}
}
