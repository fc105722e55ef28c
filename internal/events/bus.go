// Package events is the in-process change notification bus. Stores publish a
// generic "something changed" signal per topic; subscribers re-fetch whatever
// state they need.
package events

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Topic string

const (
	TopicCatalogChanged Topic = "catalog.changed"
	TopicCartChanged    Topic = "cart.changed"
	TopicUserChanged    Topic = "user.changed"
	TopicOrderPlaced    Topic = "order.placed"
)

// Topics lists every topic the stores publish on.
var Topics = []Topic{TopicCatalogChanged, TopicCartChanged, TopicUserChanged, TopicOrderPlaced}

type Event struct {
	ID        string    `json:"id"`
	Topic     Topic     `json:"topic"`
	Key       string    `json:"key"`
	Payload   any       `json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Handler func(Event)

type subscription struct {
	topic   Topic // empty matches every topic
	handler Handler
}

type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]subscription
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]subscription)}
}

// Subscribe registers h for topic and returns a func removing it.
func (b *Bus) Subscribe(topic Topic, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[id] = subscription{topic: topic, handler: h}

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

func (b *Bus) SubscribeAll(h Handler) func() {
	return b.Subscribe("", h)
}

// Publish delivers the event synchronously, in subscription order. Handlers
// run without the bus lock held, so they may subscribe or publish themselves.
func (b *Bus) Publish(topic Topic, key string, payload any) {
	event := Event{
		ID:        uuid.NewString(),
		Topic:     topic,
		Key:       key,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}

	b.mu.RLock()
	ids := make([]int, 0, len(b.subs))
	for id, sub := range b.subs {
		if sub.topic == "" || sub.topic == topic {
			ids = append(ids, id)
		}
	}
	handlers := make([]Handler, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		handlers = append(handlers, b.subs[id].handler)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		deliver(h, event)
	}
}

func deliver(h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("event subscriber panicked", slog.String("topic", string(event.Topic)),
				slog.String("event_id", event.ID), slog.Any("panic", r))
		}
	}()
	h(event)
}
