package utils

import (
	"context"
	"testing"
	"time"
)

func TestLockManagerNilClientDegradesToUnlocked(t *testing.T) {
	m := NewLockManager(nil)

	token, ok, err := m.Acquire(context.Background(), "fee-request:abc", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected acquire to succeed without Redis")
	}
	if err := m.Release(context.Background(), "fee-request:abc", token); err != nil {
		t.Fatalf("unexpected release error: %v", err)
	}
}
