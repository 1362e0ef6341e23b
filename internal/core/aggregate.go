package core

import "sort"

// IntakeItem is a single intraday food entry retained for today's view.
type IntakeItem struct {
	Time string
	Kcal float64
}

// inWindow reports whether d falls inside [today-windowDays, today],
// inclusive on both ends.
func inWindow(d, today DateKey, windowDays int) bool {
	diff := DaysBetween(d, today)
	return diff >= 0 && diff <= windowDays
}

// AggregateDaily folds food entries into per-day macro totals. Entries
// outside the rolling window are discarded; the result is ascending by
// DateKey. Input row order does not influence the sums.
func AggregateDaily(entries []FoodEntry, windowDays int, today DateKey) []DailyTotal {
	byDay := make(map[DateKey]*DailyTotal)
	for _, e := range entries {
		if e.Date.IsZero() || !inWindow(e.Date, today, windowDays) {
			continue
		}
		t, ok := byDay[e.Date]
		if !ok {
			t = &DailyTotal{Date: e.Date}
			byDay[e.Date] = t
		}
		t.Kcal += e.Kcal
		t.ProteinG += e.ProteinG
		t.FatG += e.FatG
		t.CarbsG += e.CarbsG
	}
	out := make([]DailyTotal, 0, len(byDay))
	for _, t := range byDay {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// AggregateToday sums the current calendar day and retains per-entry
// time-of-day for intraday display. Entries without a time show the
// UnknownTime sentinel.
func AggregateToday(entries []FoodEntry, today DateKey) (DailyTotal, []IntakeItem) {
	total := DailyTotal{Date: today}
	var items []IntakeItem
	for _, e := range entries {
		if e.Date != today {
			continue
		}
		total.Kcal += e.Kcal
		total.ProteinG += e.ProteinG
		total.FatG += e.FatG
		total.CarbsG += e.CarbsG
		tm := e.Time
		if tm == "" {
			tm = UnknownTime
		}
		items = append(items, IntakeItem{Time: tm, Kcal: e.Kcal})
	}
	return total, items
}

// AggregateWeight filters body-composition samples to the rolling window and
// sorts them ascending by DateKey. Samples without a weight value are
// excluded entirely. When a date appears more than once the entry appearing
// later in store order wins.
func AggregateWeight(entries []WeightEntry, windowDays int, today DateKey) []WeightEntry {
	byDay := make(map[DateKey]WeightEntry)
	for _, e := range entries {
		if !e.HasWeight() {
			continue
		}
		if !inWindow(e.Date, today, windowDays) {
			continue
		}
		byDay[e.Date] = e
	}
	out := make([]WeightEntry, 0, len(byDay))
	for _, e := range byDay {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
