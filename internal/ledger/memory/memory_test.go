package memory

import (
	"context"
	"errors"
	"testing"

	"nutrilog/internal/ledger"
)

func TestReadMissingTable(t *testing.T) {
	s := New()
	_, err := s.ReadRange(context.Background(), ledger.FoodLog, ledger.Range{})
	if !errors.Is(err, ledger.ErrTableMissing) {
		t.Fatalf("expected ErrTableMissing, got %v", err)
	}
	// The flattening helper turns it into zero rows.
	rows, err := ledger.ReadAll(context.Background(), s, ledger.FoodLog)
	if err != nil || rows != nil {
		t.Fatalf("ReadAll on missing table = %v, %v", rows, err)
	}
}

func TestAppendPreservesStoreOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, desc := range []string{"a", "b", "c"} {
		if _, err := s.AppendRow(ctx, ledger.FoodLog, ledger.Row{"01.01.2024", "", desc, "100"}); err != nil {
			t.Fatal(err)
		}
	}
	rows, err := s.ReadRange(ctx, ledger.FoodLog, ledger.Range{})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[0][2] != "a" || rows[2][2] != "c" {
		t.Fatalf("store order not preserved: %v", rows)
	}
}

func TestDeleteRow(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Seed(ledger.Favorites, []ledger.Row{{"shake", "180"}, {"oats", "310"}})

	err := s.DeleteRow(ctx, ledger.Favorites, func(r ledger.Row) bool { return r[0] == "shake" })
	if err != nil {
		t.Fatal(err)
	}
	rows, _ := s.ReadRange(ctx, ledger.Favorites, ledger.Range{})
	if len(rows) != 1 || rows[0][0] != "oats" {
		t.Fatalf("unexpected rows after delete: %v", rows)
	}

	err = s.DeleteRow(ctx, ledger.Favorites, func(r ledger.Row) bool { return r[0] == "shake" })
	if !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReadRangeMaxRows(t *testing.T) {
	s := New()
	s.Seed(ledger.WeightLog, []ledger.Row{{"01.01.2024", "81"}, {"02.01.2024", "80.5"}, {"03.01.2024", "80"}})
	rows, err := s.ReadRange(context.Background(), ledger.WeightLog, ledger.Range{MaxRows: 2})
	if err != nil || len(rows) != 2 {
		t.Fatalf("MaxRows not honored: %v, %v", rows, err)
	}
}
