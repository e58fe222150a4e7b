package store

import (
	"context"
	"testing"
)

func TestMemoryStore_SeedIsCopied(t *testing.T) {
	seed := map[string]string{"bow": "a"}
	m := NewMemoryStoreFrom(seed)

	seed["bow"] = "changed"

	got, err := m.Read(context.Background(), "bow")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "a" {
		t.Errorf("Read = %q, want seed value unaffected by caller mutation", got)
	}
}

func TestMemoryStore_Snapshot(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	_ = m.Write(ctx, "bow", "a")

	snap := m.Snapshot()
	snap["bow"] = "mutated"

	got, _ := m.Read(ctx, "bow")
	if got != "a" {
		t.Errorf("Snapshot should be a copy, store now holds %q", got)
	}
}
