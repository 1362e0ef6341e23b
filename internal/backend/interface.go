package backend

import (
	"context"

	"nutrilog/internal/amqp"
	"nutrilog/internal/ledger"
)

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result contains the selected store plus the optional AMQP client used
// for write-behind mirroring.
type Result struct {
	Store   ledger.Store
	AMQP    *amqp.Client
	Cleanup CleanupFunc
}

// Factory creates ledger stores based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Type represents the kind of ledger store.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	SheetsBackend Type = "sheets"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
