package core

// BalancePoint is one day of the consumed-vs-budgeted running sums.
type BalancePoint struct {
	Date               DateKey
	ConsumedCumulative float64
	BudgetCumulative   float64
}

// CumulativeBalance produces the running consumed and budget sums across a
// day sequence sorted ascending. Every day present in the input advances the
// budget sum by the fixed daily budget, including days with zero logged
// kcal: callers rely on this to visualize a widening deficit over unlogged
// days. Both series are non-decreasing by construction.
func CumulativeBalance(totals []DailyTotal, dailyBudgetKcal float64) []BalancePoint {
	out := make([]BalancePoint, 0, len(totals))
	var consumed, budget float64
	for _, t := range totals {
		consumed += t.Kcal
		budget += dailyBudgetKcal
		out = append(out, BalancePoint{
			Date:               t.Date,
			ConsumedCumulative: consumed,
			BudgetCumulative:   budget,
		})
	}
	return out
}
