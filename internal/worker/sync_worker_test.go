package worker

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"nutrilog/internal/amqp"
	"nutrilog/internal/ledger"
	"nutrilog/internal/ledger/memory"
	"nutrilog/internal/ledger/sqlite"
)

func newLocalStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "local.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestHandleSyncMessageMirrorsRow(t *testing.T) {
	local := newLocalStore(t)
	primary := memory.New()
	ctx := context.Background()

	ref, err := local.AppendRow(ctx, ledger.FoodLog, ledger.Row{"10.03.2024", "12:00", "rice", "450"})
	if err != nil {
		t.Fatal(err)
	}
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		t.Fatal(err)
	}

	w := NewSyncWorker(local, primary)
	msg := amqp.NewRowSyncMessage(string(ledger.FoodLog), id)
	if err := w.HandleSyncMessage(ctx, msg); err != nil {
		t.Fatal(err)
	}

	rows, err := ledger.ReadAll(ctx, primary, ledger.FoodLog)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0][2] != "rice" {
		t.Fatalf("primary rows = %v", rows)
	}
}

func TestHandleSyncMessageMissingRow(t *testing.T) {
	w := NewSyncWorker(newLocalStore(t), memory.New())

	msg := amqp.NewRowSyncMessage(string(ledger.FoodLog), 42)
	if err := w.HandleSyncMessage(context.Background(), msg); err == nil {
		t.Fatal("expected error for unknown row id")
	}
}

func TestHandleSyncMessageTableMismatch(t *testing.T) {
	local := newLocalStore(t)
	ctx := context.Background()

	ref, err := local.AppendRow(ctx, ledger.WeightLog, ledger.Row{"10.03.2024", "80"})
	if err != nil {
		t.Fatal(err)
	}
	id, _ := strconv.ParseInt(ref, 10, 64)

	w := NewSyncWorker(local, memory.New())
	msg := amqp.NewRowSyncMessage(string(ledger.FoodLog), id)
	if err := w.HandleSyncMessage(ctx, msg); err == nil {
		t.Fatal("expected error for table mismatch")
	}
}
