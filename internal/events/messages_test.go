package events

import "testing"

func TestRecordCreatedMessageRoundTrip(t *testing.T) {
	msg := NewRecordCreatedMessage("invoices", "INV-000123")

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := RecordCreatedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Collection != "invoices" || got.RecordID != "INV-000123" {
		t.Fatalf("unexpected message %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}
}

func TestRecordCreatedMessageFromJSONInvalid(t *testing.T) {
	if _, err := RecordCreatedMessageFromJSON([]byte(`{broken`)); err == nil {
		t.Fatalf("expected error")
	}
}
