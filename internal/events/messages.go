package events

import (
	"encoding/json"
	"time"
)

// RecordCreatedMessage notifies interested consumers that a record was
// appended to a collection. It carries identifiers only; consumers fetch
// the record from the store themselves.
type RecordCreatedMessage struct {
	Collection string    `json:"collection"`
	RecordID   string    `json:"recordId"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewRecordCreatedMessage(collection, recordID string) *RecordCreatedMessage {
	return &RecordCreatedMessage{
		Collection: collection,
		RecordID:   recordID,
		Timestamp:  time.Now(),
	}
}

func (m *RecordCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordCreatedMessageFromJSON(data []byte) (*RecordCreatedMessage, error) {
	var msg RecordCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
