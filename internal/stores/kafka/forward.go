package kafka

import (
	"encoding/json"
	"log/slog"

	"gallery-store/internal/events"
	"gallery-store/pkg/logkey"
)

// Producer hands a record off for delivery without blocking on the broker.
type Producer interface {
	ProduceMessage(topic string, key, value []byte, done func(error))
}

// TopicFor maps a bus topic to the kafka topic it is mirrored to.
func TopicFor(prefix string, topic events.Topic) string {
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return prefix + "." + string(topic)
}

// Forward mirrors every bus event to kafka and returns a func that stops it.
// Delivery is asynchronous; failures are logged and never reach the
// publishing store.
func Forward(bus *events.Bus, p Producer, prefix string) func() {
	return bus.SubscribeAll(func(e events.Event) {
		jsonData, err := json.Marshal(StructureOfEvent{
			ID:        e.ID,
			Topic:     string(e.Topic),
			Key:       e.Key,
			Payload:   e.Payload,
			CreatedAt: e.CreatedAt,
		})
		if err != nil {
			slog.Error("failed to marshal event", slog.String("event_id", e.ID), slog.String(logkey.ERROR, err.Error()))
			return
		}

		topic := TopicFor(prefix, e.Topic)
		p.ProduceMessage(topic, []byte(e.Key), jsonData, func(err error) {
			if err != nil {
				slog.Error("failed to produce message", slog.String("topic", topic),
					slog.String("event_id", e.ID), slog.String(logkey.ERROR, err.Error()))
				return
			}
			slog.Debug("message produced", slog.String("topic", topic), slog.String("event_id", e.ID))
		})
	})
}
