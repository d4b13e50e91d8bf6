package mem

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCarrierAccessExpiry(t *testing.T) {
	store := NewCarrierAccess()
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	account := uuid.New()
	carrier := uuid.New()
	store.Set(account, []uuid.UUID{carrier}, time.Minute)

	ids, ok := store.Get(account)
	if !ok || len(ids) != 1 || ids[0] != carrier {
		t.Fatalf("expected cached carrier, got %v (ok=%v)", ids, ok)
	}

	clock = clock.Add(2 * time.Minute)
	if _, ok := store.Get(account); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestCarrierAccessInvalidate(t *testing.T) {
	store := NewCarrierAccess()
	account := uuid.New()
	store.Set(account, nil, time.Hour)

	if _, ok := store.Get(account); !ok {
		t.Fatal("expected empty set to be cached")
	}
	store.Invalidate(account)
	if _, ok := store.Get(account); ok {
		t.Fatal("expected entry to be gone after invalidate")
	}
}
