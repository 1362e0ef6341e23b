package worker

import (
	"context"
	"fmt"
	"log/slog"

	"nutrilog/internal/amqp"
	"nutrilog/internal/ledger"
	"nutrilog/internal/ledger/sqlite"
)

// SyncWorker mirrors locally-appended ledger rows to the primary
// spreadsheet store. Mirroring is append-only and idempotent on the read
// side: re-running aggregation after more rows only adds entries.
type SyncWorker struct {
	local   *sqlite.Store
	primary ledger.Store
}

func NewSyncWorker(local *sqlite.Store, primary ledger.Store) *SyncWorker {
	return &SyncWorker{local: local, primary: primary}
}

// HandleSyncMessage re-reads the referenced row from the local store and
// appends it to the primary store.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RowSyncMessage) error {
	slog.InfoContext(ctx, "Processing row sync message", "table", msg.Table, "id", msg.ID)

	table, row, err := w.local.GetRow(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get local row: %w", err)
	}
	if string(table) != msg.Table {
		return fmt.Errorf("row %d belongs to table %q, message says %q", msg.ID, table, msg.Table)
	}

	ref, err := w.primary.AppendRow(ctx, table, row)
	if err != nil {
		return fmt.Errorf("append to primary store: %w", err)
	}

	slog.InfoContext(ctx, "Row mirrored to primary store",
		"table", table, "id", msg.ID, "ref", ref)
	return nil
}
