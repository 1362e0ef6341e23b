package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"nutrilog/internal/core"
	"nutrilog/internal/ledger"
)

// SummaryService shapes raw ledger rows into the derived views the API
// serves. It holds no state between requests; every call re-reads the
// store.
type SummaryService struct {
	store             ledger.Store
	defaultBudgetKcal float64
}

func NewSummaryService(store ledger.Store, defaultBudgetKcal float64) *SummaryService {
	return &SummaryService{store: store, defaultBudgetKcal: defaultBudgetKcal}
}

// DailyTotals aggregates the food log into per-day macro sums over the
// rolling window ending at today.
func (s *SummaryService) DailyTotals(ctx context.Context, windowDays int, today core.DateKey) ([]core.DailyTotal, error) {
	entries, err := s.foodEntries(ctx)
	if err != nil {
		return nil, err
	}
	return core.AggregateDaily(entries, windowDays, today), nil
}

// Today returns the current day's total plus intraday sub-entries.
func (s *SummaryService) Today(ctx context.Context, today core.DateKey) (core.DailyTotal, []core.IntakeItem, error) {
	entries, err := s.foodEntries(ctx)
	if err != nil {
		return core.DailyTotal{}, nil, err
	}
	total, items := core.AggregateToday(entries, today)
	return total, items, nil
}

// WeightSeries returns windowed, ascending body-composition samples.
func (s *SummaryService) WeightSeries(ctx context.Context, windowDays int, today core.DateKey) ([]core.WeightEntry, error) {
	rows, err := ledger.ReadAll(ctx, s.store, ledger.WeightLog)
	if err != nil {
		return nil, fmt.Errorf("read weight log: %w", err)
	}
	entries, skipped := ledger.ParseWeightRows(rows)
	if skipped > 0 {
		slog.WarnContext(ctx, "Skipped unparsable weight rows", "skipped", skipped)
	}
	return core.AggregateWeight(entries, windowDays, today), nil
}

// Balance returns the cumulative consumed-vs-budgeted series over the
// window. The food log and the budget table are independent reads and are
// fetched concurrently.
func (s *SummaryService) Balance(ctx context.Context, windowDays int, today core.DateKey) ([]core.BalancePoint, error) {
	var (
		entries []core.FoodEntry
		budget  float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.foodEntries(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		budget, err = s.budget(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	totals := core.AggregateDaily(entries, windowDays, today)
	return core.CumulativeBalance(totals, budget), nil
}

// ActivityDays counts distinct logged days across both logs. The two range
// reads have no ordering dependency and run concurrently.
func (s *SummaryService) ActivityDays(ctx context.Context) (core.ActivityDays, error) {
	var foodRows, weightRows []ledger.Row
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		foodRows, err = ledger.ReadAll(gctx, s.store, ledger.FoodLog)
		if err != nil {
			return fmt.Errorf("read food log: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		weightRows, err = ledger.ReadAll(gctx, s.store, ledger.WeightLog)
		if err != nil {
			return fmt.Errorf("read weight log: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return core.ActivityDays{}, err
	}
	return core.CountUniqueDays(ledger.FoodDates(foodRows), ledger.WeightDates(weightRows)), nil
}

// Budget returns the configured daily kcal budget, falling back to the
// service default when the budget table is empty or missing.
func (s *SummaryService) Budget(ctx context.Context) (float64, error) {
	return s.budget(ctx)
}

// Favorites lists stored favorite foods.
func (s *SummaryService) Favorites(ctx context.Context) ([]core.Favorite, error) {
	rows, err := ledger.ReadAll(ctx, s.store, ledger.Favorites)
	if err != nil {
		return nil, fmt.Errorf("read favorites: %w", err)
	}
	return ledger.ParseFavoriteRows(rows), nil
}

func (s *SummaryService) foodEntries(ctx context.Context) ([]core.FoodEntry, error) {
	rows, err := ledger.ReadAll(ctx, s.store, ledger.FoodLog)
	if err != nil {
		return nil, fmt.Errorf("read food log: %w", err)
	}
	entries, skipped := ledger.ParseFoodRows(rows)
	if skipped > 0 {
		slog.WarnContext(ctx, "Skipped unparsable food rows", "skipped", skipped)
	}
	return entries, nil
}

func (s *SummaryService) budget(ctx context.Context) (float64, error) {
	rows, err := ledger.ReadAll(ctx, s.store, ledger.Budgets)
	if err != nil {
		return 0, fmt.Errorf("read budgets: %w", err)
	}
	if kcal, ok := ledger.ParseBudgetRows(rows); ok {
		return kcal, nil
	}
	return s.defaultBudgetKcal, nil
}
