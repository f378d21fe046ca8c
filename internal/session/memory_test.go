package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := Session{
		ID:        "s1",
		UserID:    7,
		Username:  "alice",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.UserID != 7 || got.Username != "alice" {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStore_UnknownID(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_ExpiredSessionIsDropped(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	sess := Session{ID: "s1", UserID: 7, ExpiresAt: now.Add(time.Minute)}
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	// Still valid just before expiry.
	if _, err := store.Get(ctx, "s1"); err != nil {
		t.Fatalf("expected session before expiry, got %v", err)
	}

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}
