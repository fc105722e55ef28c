package kafka

import "time"

const DefaultTopicPrefix = `gallery-store`

// Representation of the record we write to kafka for every bus event

type StructureOfEvent struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Key       string    `json:"key"`
	Payload   any       `json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"` // Timestamp of the change
}
