package amqp

import (
	"encoding/json"
	"time"
)

// Sync reasons carried on a ListSyncMessage.
const (
	ReasonChange = "change" // list or budget mutated, mirror it
	ReasonExport = "export" // user asked for a spreadsheet export
)

// ListSyncMessage asks the worker to push the current list snapshot to the
// spreadsheet. Only the revision travels on the wire; the worker reads the
// snapshot itself from storage so it always exports the latest state.
type ListSyncMessage struct {
	Revision  int64     `json:"revision"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

func NewListSyncMessage(revision int64, reason string) *ListSyncMessage {
	return &ListSyncMessage{
		Revision:  revision,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

func (m *ListSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ListSyncMessageFromJSON(data []byte) (*ListSyncMessage, error) {
	var msg ListSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
