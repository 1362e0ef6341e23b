package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"nutrilog/internal/ledger"

	_ "modernc.org/sqlite"
)

// Store keeps ledger rows in a local SQLite database. Rows are stored as
// JSON cell arrays in a single generic table, preserving the loosely-typed
// grid shape of the primary spreadsheet store so the same codecs apply.
type Store struct {
	db *sql.DB
}

var _ ledger.Store = (*Store)(nil)

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) ReadRange(ctx context.Context, table ledger.Table, rng ledger.Range) ([]ledger.Row, error) {
	q := `SELECT cells FROM ledger_rows WHERE table_name = ? ORDER BY id`
	args := []any{string(table)}
	if rng.MaxRows > 0 {
		q += ` LIMIT ?`
		args = append(args, rng.MaxRows)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &ledger.StoreUnavailableError{Err: fmt.Errorf("%s: %w", table, err)}
	}
	defer rows.Close()

	var out []ledger.Row
	for rows.Next() {
		var cells string
		if err := rows.Scan(&cells); err != nil {
			return nil, &ledger.StoreUnavailableError{Err: err}
		}
		var r ledger.Row
		if err := json.Unmarshal([]byte(cells), &r); err != nil {
			// A corrupt cell payload degrades to a skipped row, same as any
			// other unparsable row.
			continue
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &ledger.StoreUnavailableError{Err: err}
	}
	if out == nil {
		// SQLite has no notion of a missing logical table once migrated;
		// an empty table and a never-written one are the same thing here.
		return nil, fmt.Errorf("%s: %w", table, ledger.ErrTableMissing)
	}
	return out, nil
}

func (s *Store) AppendRow(ctx context.Context, table ledger.Table, row ledger.Row) (string, error) {
	cells, err := json.Marshal(row)
	if err != nil {
		return "", fmt.Errorf("encode row: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO ledger_rows (table_name, cells) VALUES (?, ?)`,
		string(table), string(cells))
	if err != nil {
		return "", &ledger.StoreUnavailableError{Err: fmt.Errorf("%s: %w", table, err)}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", &ledger.StoreUnavailableError{Err: err}
	}
	return strconv.FormatInt(id, 10), nil
}

func (s *Store) DeleteRow(ctx context.Context, table ledger.Table, match func(ledger.Row) bool) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, cells FROM ledger_rows WHERE table_name = ? ORDER BY id`, string(table))
	if err != nil {
		return &ledger.StoreUnavailableError{Err: fmt.Errorf("%s: %w", table, err)}
	}
	defer rows.Close()

	var matchID int64 = -1
	for rows.Next() {
		var id int64
		var cells string
		if err := rows.Scan(&id, &cells); err != nil {
			return &ledger.StoreUnavailableError{Err: err}
		}
		var r ledger.Row
		if err := json.Unmarshal([]byte(cells), &r); err != nil {
			continue
		}
		if match(r) {
			matchID = id
			break
		}
	}
	if err := rows.Err(); err != nil {
		return &ledger.StoreUnavailableError{Err: err}
	}
	if matchID < 0 {
		return fmt.Errorf("%s: %w", table, ledger.ErrNotFound)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM ledger_rows WHERE id = ?`, matchID); err != nil {
		return &ledger.StoreUnavailableError{Err: err}
	}
	return nil
}

// GetRow fetches a single row by its append reference. The sync worker uses
// this to re-read a row before mirroring it to the primary store.
func (s *Store) GetRow(ctx context.Context, id int64) (ledger.Table, ledger.Row, error) {
	var tableName, cells string
	err := s.db.QueryRowContext(ctx,
		`SELECT table_name, cells FROM ledger_rows WHERE id = ?`, id).
		Scan(&tableName, &cells)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, fmt.Errorf("row %d: %w", id, ledger.ErrNotFound)
	}
	if err != nil {
		return "", nil, &ledger.StoreUnavailableError{Err: err}
	}
	var r ledger.Row
	if err := json.Unmarshal([]byte(cells), &r); err != nil {
		return "", nil, fmt.Errorf("decode row %d: %w", id, err)
	}
	return ledger.Table(tableName), r, nil
}
