package amqp

import (
	"encoding/json"
	"time"
)

// LedgerSavedMessage announces that a full ledger overwrite completed on the
// primary store. The backup worker reacts by mirroring the store; the message
// carries no row data, only enough context to log and re-read.
type LedgerSavedMessage struct {
	Backend   string    `json:"backend"`
	Rows      int       `json:"rows"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerSavedMessage(backend string, rows int) *LedgerSavedMessage {
	return &LedgerSavedMessage{
		Backend:   backend,
		Rows:      rows,
		Timestamp: time.Now(),
	}
}

func (m *LedgerSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerSavedMessageFromJSON(data []byte) (*LedgerSavedMessage, error) {
	var msg LedgerSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
