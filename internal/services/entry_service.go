package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"nutrilog/internal/amqp"
	"nutrilog/internal/core"
	"nutrilog/internal/ledger"
)

// EntryService writes log entries to the ledger. When an AMQP client is
// configured the append is also published for write-behind mirroring to the
// primary spreadsheet; a publish failure never fails the request, because
// the local append already succeeded.
type EntryService struct {
	store      ledger.Store
	amqpClient *amqp.Client
}

func NewEntryService(store ledger.Store, amqpClient *amqp.Client) *EntryService {
	return &EntryService{store: store, amqpClient: amqpClient}
}

// LogFood appends a food entry and returns the store's row reference.
func (s *EntryService) LogFood(ctx context.Context, e core.FoodEntry) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	ref, err := s.store.AppendRow(ctx, ledger.FoodLog, ledger.FoodRow(e))
	if err != nil {
		return "", fmt.Errorf("append food entry: %w", err)
	}
	s.publishSync(ctx, ledger.FoodLog, ref)
	return ref, nil
}

// LogWeight appends a body-composition sample.
func (s *EntryService) LogWeight(ctx context.Context, w core.WeightEntry) (string, error) {
	if err := w.Validate(); err != nil {
		return "", err
	}
	ref, err := s.store.AppendRow(ctx, ledger.WeightLog, ledger.WeightRow(w))
	if err != nil {
		return "", fmt.Errorf("append weight entry: %w", err)
	}
	s.publishSync(ctx, ledger.WeightLog, ref)
	return ref, nil
}

// DeleteFood removes the first food entry matching date and description.
func (s *EntryService) DeleteFood(ctx context.Context, date core.DateKey, description string) error {
	want := date.String()
	return s.store.DeleteRow(ctx, ledger.FoodLog, func(r ledger.Row) bool {
		if len(r) < 3 {
			return false
		}
		d, err := core.ParseDate(r[0])
		if err != nil {
			return false
		}
		return d.String() == want && strings.EqualFold(strings.TrimSpace(r[2]), strings.TrimSpace(description))
	})
}

// AddFavorite stores a favorite food.
func (s *EntryService) AddFavorite(ctx context.Context, f core.Favorite) (string, error) {
	if strings.TrimSpace(f.Name) == "" {
		return "", core.ErrEmptyDescription
	}
	ref, err := s.store.AppendRow(ctx, ledger.Favorites, ledger.FavoriteRow(f))
	if err != nil {
		return "", fmt.Errorf("append favorite: %w", err)
	}
	return ref, nil
}

// DeleteFavorite removes a favorite by name.
func (s *EntryService) DeleteFavorite(ctx context.Context, name string) error {
	return s.store.DeleteRow(ctx, ledger.Favorites, func(r ledger.Row) bool {
		return len(r) > 0 && strings.EqualFold(strings.TrimSpace(r[0]), strings.TrimSpace(name))
	})
}

// SetBudget appends a new daily kcal budget; read side takes the latest.
func (s *EntryService) SetBudget(ctx context.Context, dailyKcal float64) error {
	if dailyKcal <= 0 {
		return fmt.Errorf("invalid budget: %v", dailyKcal)
	}
	if _, err := s.store.AppendRow(ctx, ledger.Budgets, ledger.BudgetRow(dailyKcal)); err != nil {
		return fmt.Errorf("append budget: %w", err)
	}
	return nil
}

func (s *EntryService) publishSync(ctx context.Context, table ledger.Table, ref string) {
	if s.amqpClient == nil {
		return
	}
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		// Non-numeric refs come from stores that are already the primary;
		// nothing to mirror.
		return
	}
	if err := s.amqpClient.PublishRowSync(ctx, string(table), id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"table", table, "id", id, "error", err)
	}
}
