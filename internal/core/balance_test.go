package core

import "testing"

func TestCumulativeBalance(t *testing.T) {
	totals := []DailyTotal{
		{Date: NewDateKey(2024, 5, 1), Kcal: 1800},
		{Date: NewDateKey(2024, 5, 2), Kcal: 0}, // unlogged day still advances budget
		{Date: NewDateKey(2024, 5, 3), Kcal: 2400},
	}
	got := CumulativeBalance(totals, 2000)
	if len(got) != 3 {
		t.Fatalf("expected 3 points, got %d", len(got))
	}
	if got[0].ConsumedCumulative != 1800 || got[0].BudgetCumulative != 2000 {
		t.Fatalf("point 0 = %+v", got[0])
	}
	if got[1].ConsumedCumulative != 1800 || got[1].BudgetCumulative != 4000 {
		t.Fatalf("zero-kcal day must still advance the budget sum: %+v", got[1])
	}
	if got[2].ConsumedCumulative != 4200 || got[2].BudgetCumulative != 6000 {
		t.Fatalf("point 2 = %+v", got[2])
	}
}

func TestCumulativeBalanceMonotonic(t *testing.T) {
	totals := []DailyTotal{
		{Date: NewDateKey(2024, 5, 1), Kcal: 300},
		{Date: NewDateKey(2024, 5, 2), Kcal: 0},
		{Date: NewDateKey(2024, 5, 4), Kcal: 1250},
		{Date: NewDateKey(2024, 5, 9), Kcal: 90},
	}
	got := CumulativeBalance(totals, 1900)
	for i := 1; i < len(got); i++ {
		if got[i].ConsumedCumulative < got[i-1].ConsumedCumulative {
			t.Fatalf("consumed sum decreased at %d: %+v", i, got)
		}
		if got[i].BudgetCumulative < got[i-1].BudgetCumulative {
			t.Fatalf("budget sum decreased at %d: %+v", i, got)
		}
	}
}

func TestCumulativeBalanceEmpty(t *testing.T) {
	if got := CumulativeBalance(nil, 2000); len(got) != 0 {
		t.Fatalf("expected empty series, got %+v", got)
	}
}
