package amqp

import (
	"testing"
	"time"
)

func TestLedgerSavedMessageRoundTrip(t *testing.T) {
	msg := NewLedgerSavedMessage("sheets", 42)
	if msg.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := LedgerSavedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Backend != "sheets" || back.Rows != 42 {
		t.Fatalf("round trip mismatch: %+v", back)
	}
	if back.Timestamp.Sub(msg.Timestamp) > time.Second {
		t.Fatalf("timestamp drift: %v vs %v", back.Timestamp, msg.Timestamp)
	}
}

func TestLedgerSavedMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := LedgerSavedMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}
