package services

import (
	"context"
	"errors"
	"testing"

	"nutrilog/internal/core"
	"nutrilog/internal/ledger"
	"nutrilog/internal/ledger/memory"
)

func floatPtr(v float64) *float64 { return &v }

func TestLogFoodAppendsRow(t *testing.T) {
	store := memory.New()
	svc := NewEntryService(store, nil)

	ref, err := svc.LogFood(context.Background(), core.FoodEntry{
		Date:        core.NewDateKey(2024, 3, 10),
		Time:        "12:30",
		Description: "rice bowl",
		Kcal:        600,
		ProteinG:    25,
		FatG:        12,
		CarbsG:      90,
	})
	if err != nil {
		t.Fatal(err)
	}
	if ref == "" {
		t.Fatal("expected a row reference")
	}

	rows, err := ledger.ReadAll(context.Background(), store, ledger.FoodLog)
	if err != nil {
		t.Fatal(err)
	}
	entries, skipped := ledger.ParseFoodRows(rows)
	if skipped != 0 || len(entries) != 1 {
		t.Fatalf("entries = %d, skipped = %d", len(entries), skipped)
	}
	if entries[0].Description != "rice bowl" || entries[0].Kcal != 600 {
		t.Fatalf("round trip mismatch: %+v", entries[0])
	}
}

func TestLogFoodRejectsInvalidEntry(t *testing.T) {
	svc := NewEntryService(memory.New(), nil)

	_, err := svc.LogFood(context.Background(), core.FoodEntry{
		Date: core.NewDateKey(2024, 3, 10),
		Kcal: 100,
	})
	if !errors.Is(err, core.ErrEmptyDescription) {
		t.Fatalf("err = %v, want ErrEmptyDescription", err)
	}

	_, err = svc.LogFood(context.Background(), core.FoodEntry{
		Date:        core.NewDateKey(2024, 3, 10),
		Description: "x",
		Kcal:        -1,
	})
	if !errors.Is(err, core.ErrNegativeKcal) {
		t.Fatalf("err = %v, want ErrNegativeKcal", err)
	}
}

func TestLogWeightRequiresWeight(t *testing.T) {
	svc := NewEntryService(memory.New(), nil)

	_, err := svc.LogWeight(context.Background(), core.WeightEntry{
		Date:       core.NewDateKey(2024, 3, 10),
		BodyFatPct: floatPtr(20),
	})
	if !errors.Is(err, core.ErrInvalidWeight) {
		t.Fatalf("err = %v, want ErrInvalidWeight", err)
	}

	ref, err := svc.LogWeight(context.Background(), core.WeightEntry{
		Date:     core.NewDateKey(2024, 3, 10),
		WeightKg: floatPtr(81.4),
	})
	if err != nil || ref == "" {
		t.Fatalf("ref = %q, err = %v", ref, err)
	}
}

func TestDeleteFoodMatchesNormalizedDate(t *testing.T) {
	store := memory.New()
	// Stored with unpadded date, deleted via the canonical form.
	store.Seed(ledger.FoodLog, []ledger.Row{
		{"9.3.2024", "12:00", "Snack", "200"},
	})
	svc := NewEntryService(store, nil)

	err := svc.DeleteFood(context.Background(), core.NewDateKey(2024, 3, 9), "snack")
	if err != nil {
		t.Fatal(err)
	}

	err = svc.DeleteFood(context.Background(), core.NewDateKey(2024, 3, 9), "snack")
	if !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSetBudgetRejectsNonPositive(t *testing.T) {
	svc := NewEntryService(memory.New(), nil)
	if err := svc.SetBudget(context.Background(), 0); err == nil {
		t.Fatal("zero budget should fail")
	}
	if err := svc.SetBudget(context.Background(), -100); err == nil {
		t.Fatal("negative budget should fail")
	}
	if err := svc.SetBudget(context.Background(), 1800); err != nil {
		t.Fatal(err)
	}
}

func TestAddFavoriteRequiresName(t *testing.T) {
	svc := NewEntryService(memory.New(), nil)
	_, err := svc.AddFavorite(context.Background(), core.Favorite{Kcal: 100})
	if !errors.Is(err, core.ErrEmptyDescription) {
		t.Fatalf("err = %v, want ErrEmptyDescription", err)
	}
}
