package dialogue

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10, time.Minute)

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}

	s := NewSession("s1", time.Now())
	if err := store.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	s.State = StateBooking

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if got.State != StateInitial {
		t.Errorf("stored session changed through the caller's copy: %v", got.State)
	}
}

func TestMemoryStoreEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(2, 0)
	for _, id := range []string{"a", "b", "c"} {
		_ = store.Save(ctx, NewSession(id, time.Now()))
	}
	if store.Len() != 2 {
		t.Errorf("len = %d, want 2", store.Len())
	}
	if _, err := store.Get(ctx, "a"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("oldest session should have been evicted, err = %v", err)
	}
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0, 20*time.Millisecond)
	_ = store.Save(ctx, NewSession("s1", time.Now()))
	time.Sleep(60 * time.Millisecond)
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound after ttl", err)
	}
}
