package amqp

import (
	"encoding/json"
	"time"
)

// RowSyncMessage asks the sync worker to mirror one locally-appended ledger
// row to the primary spreadsheet. It carries only the table and local row
// id; the worker re-reads the row so the mirrored data is always current.
type RowSyncMessage struct {
	Table     string    `json:"table"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRowSyncMessage(table string, id int64) *RowSyncMessage {
	return &RowSyncMessage{Table: table, ID: id, Timestamp: time.Now()}
}

func (m *RowSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RowSyncMessageFromJSON(data []byte) (*RowSyncMessage, error) {
	var msg RowSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
