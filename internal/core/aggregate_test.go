package core

import (
	"math/rand"
	"testing"
)

func mustDate(t *testing.T, s string) DateKey {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestAggregateDaily(t *testing.T) {
	today := NewDateKey(2024, 5, 6)
	entries := []FoodEntry{
		{Date: NewDateKey(2024, 5, 5), Description: "oats", Kcal: 300, ProteinG: 10, FatG: 5, CarbsG: 50},
		{Date: NewDateKey(2024, 5, 6), Description: "pasta", Kcal: 500, ProteinG: 18, FatG: 9, CarbsG: 80},
		{Date: NewDateKey(2024, 5, 5), Description: "yogurt", Kcal: 250, ProteinG: 20, FatG: 8, CarbsG: 12},
	}

	got := AggregateDaily(entries, 30, today)
	if len(got) != 2 {
		t.Fatalf("expected 2 days, got %d", len(got))
	}
	if got[0].Date != NewDateKey(2024, 5, 5) || got[0].Kcal != 550 {
		t.Fatalf("day 1 = %+v, want 05.05.2024 with 550 kcal", got[0])
	}
	if got[0].ProteinG != 30 || got[0].FatG != 13 || got[0].CarbsG != 62 {
		t.Fatalf("day 1 macros = %+v", got[0])
	}
	if got[1].Date != NewDateKey(2024, 5, 6) || got[1].Kcal != 500 {
		t.Fatalf("day 2 = %+v, want 06.05.2024 with 500 kcal", got[1])
	}
}

func TestAggregateDailyOrderIndependent(t *testing.T) {
	today := NewDateKey(2024, 6, 30)
	var entries []FoodEntry
	for day := 1; day <= 30; day++ {
		for i := 0; i < 3; i++ {
			entries = append(entries, FoodEntry{
				Date:        NewDateKey(2024, 6, day),
				Description: "meal",
				Kcal:        float64(100 + day + i),
				ProteinG:    float64(i),
			})
		}
	}
	want := AggregateDaily(entries, 30, today)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 5; trial++ {
		shuffled := append([]FoodEntry(nil), entries...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := AggregateDaily(shuffled, 30, today)
		if len(got) != len(want) {
			t.Fatalf("trial %d: length %d != %d", trial, len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("trial %d: day %d differs: %+v != %+v", trial, i, got[i], want[i])
			}
		}
	}
}

func TestAggregateDailyWindowInclusive(t *testing.T) {
	today := NewDateKey(2024, 5, 31)
	entries := []FoodEntry{
		{Date: NewDateKey(2024, 5, 1), Description: "edge", Kcal: 100},  // exactly 30 days back
		{Date: NewDateKey(2024, 4, 30), Description: "out", Kcal: 100},  // 31 days back
		{Date: NewDateKey(2024, 5, 31), Description: "today", Kcal: 1},  // window end
		{Date: NewDateKey(2024, 6, 1), Description: "future", Kcal: 99}, // past today
	}
	got := AggregateDaily(entries, 30, today)
	if len(got) != 2 {
		t.Fatalf("expected 2 days inside window, got %d: %+v", len(got), got)
	}
	if got[0].Date != NewDateKey(2024, 5, 1) || got[1].Date != NewDateKey(2024, 5, 31) {
		t.Fatalf("window edges wrong: %+v", got)
	}
}

func TestAggregateToday(t *testing.T) {
	today := NewDateKey(2024, 5, 6)
	entries := []FoodEntry{
		{Date: today, Time: "08:15", Description: "breakfast", Kcal: 320, ProteinG: 12},
		{Date: today, Time: "", Description: "snack", Kcal: 90},
		{Date: NewDateKey(2024, 5, 5), Time: "12:00", Description: "yesterday", Kcal: 700},
	}
	total, items := AggregateToday(entries, today)
	if total.Kcal != 410 {
		t.Fatalf("total kcal = %v, want 410", total.Kcal)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 intraday items, got %d", len(items))
	}
	if items[1].Time != UnknownTime {
		t.Fatalf("missing time should render as %q, got %q", UnknownTime, items[1].Time)
	}
}

func TestAggregateWeight(t *testing.T) {
	today := mustDate(t, "10.05.2024")
	w := func(v float64) *float64 { return &v }
	entries := []WeightEntry{
		{Date: mustDate(t, "08.05.2024"), WeightKg: w(81.2)},
		{Date: mustDate(t, "09.05.2024"), BodyFatPct: w(22.1)}, // no weight: excluded
		{Date: mustDate(t, "01.01.2024"), WeightKg: w(84.0)},   // outside window
		{Date: mustDate(t, "10.05.2024"), WeightKg: w(81.0)},
		{Date: mustDate(t, "08.05.2024"), WeightKg: w(80.9)}, // later row wins
	}
	got := AggregateWeight(entries, 30, today)
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d: %+v", len(got), got)
	}
	if got[0].Date != mustDate(t, "08.05.2024") || *got[0].WeightKg != 80.9 {
		t.Fatalf("duplicate date must resolve by store row order, got %+v", got[0])
	}
	if got[1].Date != today {
		t.Fatalf("expected ascending order, got %+v", got)
	}
}
