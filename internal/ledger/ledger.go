package ledger

import (
	"context"
	"errors"
	"fmt"
)

// Logical tables. Adapters map these onto whatever their backing store
// calls a table (a sheet tab, a SQL table, a map key).
type Table string

const (
	FoodLog   Table = "FoodLog"
	WeightLog Table = "WeightLog"
	Favorites Table = "Favorites"
	Budgets   Table = "Budgets"
)

// Row is one stored record: an ordered sequence of loosely-typed cells.
type Row []string

// Range narrows a read to a slice of the table. The zero value means the
// whole table. Adapters interpret MaxRows as "at most this many rows from
// the start"; it exists so huge logs can be paged if a store needs it.
type Range struct {
	MaxRows int
}

var (
	// ErrTableMissing means the table has never been written. Every read
	// path treats it as zero rows, never as a hard failure.
	ErrTableMissing = errors.New("table missing")

	// ErrNotFound means a delete predicate matched no row.
	ErrNotFound = errors.New("row not found")
)

// StoreUnavailableError wraps a transient infrastructure failure. It is
// propagated unchanged; no layer below the caller retries.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %v", e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// Store is the capability set the core consumes: ordered range reads,
// appends, and predicate deletes over named logical tables. No uniqueness or
// ordering guarantee beyond store order is implied.
type Store interface {
	// ReadRange returns rows in store order. Header rows, if the store has
	// them, are the caller's responsibility to skip.
	ReadRange(ctx context.Context, table Table, rng Range) ([]Row, error)

	// AppendRow appends and returns an adapter-specific row reference.
	AppendRow(ctx context.Context, table Table, row Row) (string, error)

	// DeleteRow removes the first row satisfying match, or ErrNotFound.
	DeleteRow(ctx context.Context, table Table, match func(Row) bool) error
}

// ReadAll is ReadRange over the whole table with ErrTableMissing flattened
// to an empty result, the contract every read-side consumer wants.
func ReadAll(ctx context.Context, s Store, table Table) ([]Row, error) {
	rows, err := s.ReadRange(ctx, table, Range{})
	if errors.Is(err, ErrTableMissing) {
		return nil, nil
	}
	return rows, err
}
