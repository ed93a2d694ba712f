package dbtypes

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartSnapshotValueKeepsOrder(t *testing.T) {
	snap := CartSnapshot{
		{Name: "Luxury Perfume", Price: decimal.NewFromInt(1999), Image: "perfume.jpeg", AddedAt: "2024-01-02 03:04:05"},
		{Name: "Wireless Mouse", Price: decimal.RequireFromString("499.50"), Image: "mouse.jpeg", AddedAt: "2024-01-02 03:04:06"},
	}

	value, err := snap.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}

	var decoded CartSnapshot
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Name != "Luxury Perfume" || decoded[1].Name != "Wireless Mouse" {
		t.Fatalf("unexpected decoded lines %+v", decoded)
	}
	if !decoded[1].Price.Equal(decimal.RequireFromString("499.5")) {
		t.Fatalf("price lost precision: %s", decoded[1].Price)
	}
}

func TestCartSnapshotScanEdgeCases(t *testing.T) {
	var snap CartSnapshot
	if err := snap.Scan(nil); err != nil || len(snap) != 0 {
		t.Fatalf("expected empty snapshot from nil, got %v err=%v", snap, err)
	}
	if err := snap.Scan([]byte("null")); err != nil || snap == nil {
		t.Fatalf("expected non-nil empty snapshot from null, got %v err=%v", snap, err)
	}
	if err := snap.Scan(42); err == nil {
		t.Fatal("expected error for unsupported type")
	}
	if err := snap.Scan("{not json"); err == nil {
		t.Fatal("expected error for malformed json")
	}

	value, err := CartSnapshot(nil).Value()
	if err != nil || value != "[]" {
		t.Fatalf("expected empty array literal, got %v err=%v", value, err)
	}
}
