package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"nutrilog/internal/core"
)

// Column layouts, the only place in the repo that knows them.
//
//	FoodLog:   date | time | description | kcal | protein_g | fat_g | carbs_g
//	WeightLog: date | weight_kg | body_fat_pct | muscle_pct | water_pct
//	Favorites: name | kcal | protein_g | fat_g | carbs_g
//	Budgets:   daily_kcal
//
// Stores are loosely-typed grids: numeric cells can arrive as "550", "550.0"
// or "550,0" depending on locale, and a log may start with a header row.
// Parsers skip rows that do not decode instead of failing the whole read: one
// bad row must not blank a user's entire history.

// FoodRow serializes a food entry for appending.
func FoodRow(e core.FoodEntry) Row {
	return Row{
		e.Date.String(),
		e.Time,
		e.Description,
		formatNum(e.Kcal),
		formatNum(e.ProteinG),
		formatNum(e.FatG),
		formatNum(e.CarbsG),
	}
}

// ParseFoodRows decodes food-log rows, skipping any that do not parse. The
// skipped count lets callers log the degradation without aborting.
func ParseFoodRows(rows []Row) (entries []core.FoodEntry, skipped int) {
	for _, r := range rows {
		e, err := parseFoodRow(r)
		if err != nil {
			skipped++
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped
}

func parseFoodRow(r Row) (core.FoodEntry, error) {
	if len(r) < 4 {
		return core.FoodEntry{}, fmt.Errorf("food row too short: %d cells", len(r))
	}
	d, err := core.ParseDate(cell(r, 0))
	if err != nil {
		return core.FoodEntry{}, err
	}
	kcal, err := parseNum(cell(r, 3))
	if err != nil {
		return core.FoodEntry{}, err
	}
	tm := cell(r, 1)
	if tm == "" {
		tm = core.UnknownTime
	}
	e := core.FoodEntry{
		Date:        d,
		Time:        tm,
		Description: cell(r, 2),
		Kcal:        kcal,
	}
	// Macro columns may be absent on old rows; missing means zero here, at
	// the aggregation boundary, and nowhere else.
	e.ProteinG = numOrZero(cell(r, 4))
	e.FatG = numOrZero(cell(r, 5))
	e.CarbsG = numOrZero(cell(r, 6))
	return e, nil
}

// WeightRow serializes a weight entry; absent fields become empty cells.
func WeightRow(w core.WeightEntry) Row {
	return Row{
		w.Date.String(),
		formatOptNum(w.WeightKg),
		formatOptNum(w.BodyFatPct),
		formatOptNum(w.MusclePct),
		formatOptNum(w.WaterPct),
	}
}

// ParseWeightRows decodes weight-log rows, skipping unparsable ones.
// Store order is preserved so last-write-wins stays deterministic upstream.
func ParseWeightRows(rows []Row) (entries []core.WeightEntry, skipped int) {
	for _, r := range rows {
		w, err := parseWeightRow(r)
		if err != nil {
			skipped++
			continue
		}
		entries = append(entries, w)
	}
	return entries, skipped
}

func parseWeightRow(r Row) (core.WeightEntry, error) {
	if len(r) < 2 {
		return core.WeightEntry{}, fmt.Errorf("weight row too short: %d cells", len(r))
	}
	d, err := core.ParseDate(cell(r, 0))
	if err != nil {
		return core.WeightEntry{}, err
	}
	return core.WeightEntry{
		Date:       d,
		WeightKg:   parseOptNum(cell(r, 1)),
		BodyFatPct: parseOptNum(cell(r, 2)),
		MusclePct:  parseOptNum(cell(r, 3)),
		WaterPct:   parseOptNum(cell(r, 4)),
	}, nil
}

// FavoriteRow serializes a favorite food.
func FavoriteRow(f core.Favorite) Row {
	return Row{f.Name, formatNum(f.Kcal), formatNum(f.ProteinG), formatNum(f.FatG), formatNum(f.CarbsG)}
}

// ParseFavoriteRows decodes favorites, skipping rows without a name.
func ParseFavoriteRows(rows []Row) []core.Favorite {
	var out []core.Favorite
	for _, r := range rows {
		name := cell(r, 0)
		if name == "" || len(r) < 2 {
			continue
		}
		kcal, err := parseNum(cell(r, 1))
		if err != nil {
			continue
		}
		out = append(out, core.Favorite{
			Name:     name,
			Kcal:     kcal,
			ProteinG: numOrZero(cell(r, 2)),
			FatG:     numOrZero(cell(r, 3)),
			CarbsG:   numOrZero(cell(r, 4)),
		})
	}
	return out
}

// BudgetRow serializes a daily kcal budget.
func BudgetRow(dailyKcal float64) Row {
	return Row{formatNum(dailyKcal)}
}

// ParseBudgetRows returns the most recently appended budget, or ok=false
// when the table holds no usable value.
func ParseBudgetRows(rows []Row) (dailyKcal float64, ok bool) {
	for _, r := range rows {
		v, err := parseNum(cell(r, 0))
		if err != nil || v <= 0 {
			continue
		}
		dailyKcal, ok = v, true
	}
	return dailyKcal, ok
}

// FoodDates extracts the raw date cells of food-log rows for unique-day
// counting; normalization happens in core.
func FoodDates(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, cell(r, 0))
	}
	return out
}

// WeightDates extracts the raw date cells of weight-log rows.
func WeightDates(rows []Row) []string {
	return FoodDates(rows)
}

func cell(r Row, i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

func parseNum(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty numeric cell")
	}
	// Normalize decimal comma
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}

func numOrZero(s string) float64 {
	v, err := parseNum(s)
	if err != nil {
		return 0
	}
	return v
}

func parseOptNum(s string) *float64 {
	v, err := parseNum(s)
	if err != nil {
		return nil
	}
	return &v
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptNum(v *float64) string {
	if v == nil {
		return ""
	}
	return formatNum(*v)
}
