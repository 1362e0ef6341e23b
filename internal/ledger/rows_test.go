package ledger

import (
	"testing"

	"nutrilog/internal/core"
)

func TestParseFoodRowsSkipsBadRows(t *testing.T) {
	rows := []Row{
		{"Datum", "Zeit", "Beschreibung", "kcal", "P", "F", "KH"}, // header
		{"05.05.2024", "12:30", "pasta", "550", "18", "9,5", "80"},
		{"not-a-date", "12:30", "ghost", "100"},
		{"06.05.2024", "", "soup", "abc"}, // bad kcal
		{"06.05.2024", "", "soup", "210"},
	}
	entries, skipped := ParseFoodRows(rows)
	if skipped != 3 {
		t.Fatalf("skipped = %d, want 3", skipped)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].FatG != 9.5 {
		t.Fatalf("decimal comma not normalized: %+v", entries[0])
	}
	if entries[1].Time != core.UnknownTime {
		t.Fatalf("missing time must decode to sentinel, got %q", entries[1].Time)
	}
}

func TestFoodRowRoundTrip(t *testing.T) {
	e := core.FoodEntry{
		Date:        core.NewDateKey(2024, 5, 5),
		Time:        "08:00",
		Description: "oats",
		Kcal:        312.5,
		ProteinG:    11,
		FatG:        6,
		CarbsG:      52,
	}
	got, skipped := ParseFoodRows([]Row{FoodRow(e)})
	if skipped != 0 || len(got) != 1 {
		t.Fatalf("round trip failed: skipped=%d got=%+v", skipped, got)
	}
	if got[0] != e {
		t.Fatalf("round trip mismatch: %+v != %+v", got[0], e)
	}
}

func TestParseWeightRows(t *testing.T) {
	rows := []Row{
		{"Datum", "kg"},
		{"05.05.2024", "81,4", "22.0", "", "54.1"},
		{"06.05.2024", ""}, // no weight, still a valid row: exclusion is the aggregator's call
	}
	entries, skipped := ParseWeightRows(rows)
	if skipped != 1 {
		t.Fatalf("skipped = %d, want 1 (header)", skipped)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].WeightKg == nil || *entries[0].WeightKg != 81.4 {
		t.Fatalf("weight = %+v", entries[0])
	}
	if entries[0].MusclePct != nil {
		t.Fatalf("empty cell must decode to absent, got %v", *entries[0].MusclePct)
	}
	if entries[1].WeightKg != nil {
		t.Fatalf("missing weight must decode to nil")
	}
}

func TestParseBudgetRowsLastWins(t *testing.T) {
	kcal, ok := ParseBudgetRows([]Row{{"Budget"}, {"1800"}, {"0"}, {"2100"}})
	if !ok || kcal != 2100 {
		t.Fatalf("budget = %v ok=%v, want 2100 true", kcal, ok)
	}
	if _, ok := ParseBudgetRows(nil); ok {
		t.Fatalf("empty table must report no budget")
	}
}

func TestParseFavoriteRows(t *testing.T) {
	favs := ParseFavoriteRows([]Row{
		{"Name", "kcal"},
		{"protein shake", "180", "30", "2", "8"},
		{"", "100"},
	})
	if len(favs) != 1 || favs[0].Name != "protein shake" || favs[0].ProteinG != 30 {
		t.Fatalf("favorites = %+v", favs)
	}
}
