package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gallery-store/pkg/logkey"

	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	deliveryTimeout = 5 * time.Second
	flushTimeout    = 10 * time.Second
)

type Conf struct {
	client *kgo.Client
}

func NewConf(brokers []string) (*Conf, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers configured")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
		kgo.RecordDeliveryTimeout(deliveryTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}
	return &Conf{client: client}, nil
}

func (c *Conf) Ping(ctx context.Context) error {
	return c.client.Ping(ctx)
}

// ProduceMessage buffers the record and returns without waiting for the
// broker. done, if non-nil, runs once the record is acknowledged or fails.
func (c *Conf) ProduceMessage(topic string, key, value []byte, done func(error)) {
	record := &kgo.Record{Topic: topic, Key: key, Value: value}
	c.client.Produce(context.Background(), record, func(r *kgo.Record, err error) {
		if err != nil {
			err = fmt.Errorf("failed to produce message to %s: %w", r.Topic, err)
		}
		if done != nil {
			done(err)
		}
	})
}

// Close waits for buffered records to be delivered, then closes the client.
func (c *Conf) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	if err := c.client.Flush(ctx); err != nil {
		slog.Warn("kafka flush incomplete", slog.String(logkey.ERROR, err.Error()))
	}
	c.client.Close()
}
