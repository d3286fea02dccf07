// Package bus implements the process-wide publish/subscribe channel
// that couples the domain stores to their observers. It is the only
// coupling mechanism between them: publishers never know who listens,
// and subscribers re-read authoritative state from the stores instead
// of trusting an event payload, so events carry no payload at all.
package bus

import (
	"sync"

	"go.uber.org/zap"

	"fleetpulse.io/fleetpulse/internal/pkg/logger"
)

// Topic names a change signal. The "<domain>.changed" strings are the
// only contract surface external consumers may depend on.
type Topic string

const (
	TopicEquipmentChanged   Topic = "equipment.changed"
	TopicMaintenanceChanged Topic = "maintenance.changed"
	TopicInspectionsChanged Topic = "inspections.changed"
	TopicRemarksChanged     Topic = "remarks.changed"
	TopicTasksChanged       Topic = "tasks.changed"
)

// Topics returns every domain change topic.
func Topics() []Topic {
	return []Topic{
		TopicEquipmentChanged,
		TopicMaintenanceChanged,
		TopicInspectionsChanged,
		TopicRemarksChanged,
		TopicTasksChanged,
	}
}

// Handler reacts to a publish on a topic. Handlers run synchronously on
// the goroutine that called Publish and must not block.
type Handler func()

type subscription struct {
	topic   Topic
	handler Handler
}

// Bus is a topic-keyed publish/subscribe registry. Construct one per
// application and inject it; its lifecycle is tied to the session, not
// to package load.
type Bus struct {
	mu   sync.Mutex
	subs map[Topic][]*subscription
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[Topic][]*subscription)}
}

// Subscribe registers handler for topic and returns an unsubscribe
// function. Unsubscribing is idempotent and safe to call during
// teardown of the subscribing component.
func (b *Bus) Subscribe(topic Topic, handler Handler) (unsubscribe func()) {
	sub := &subscription{topic: topic, handler: handler}

	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], sub)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[topic]
		for i, s := range list {
			if s == sub {
				b.subs[topic] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
		// Already removed: unsubscribe is idempotent.
	}
}

// Publish synchronously invokes every handler currently subscribed to
// topic, exactly once each, in subscription order, before returning.
// Rapid successive publishes are never batched or coalesced. A handler
// that panics is logged and does not prevent delivery to the handlers
// after it.
func (b *Bus) Publish(topic Topic) {
	b.mu.Lock()
	list := b.subs[topic]
	handlers := make([]Handler, len(list))
	for i, s := range list {
		handlers[i] = s.handler
	}
	b.mu.Unlock()

	if len(handlers) == 0 {
		logger.Debug("no subscribers for topic", zap.String("topic", string(topic)))
		return
	}

	for i, h := range handlers {
		b.deliver(topic, i, h)
	}
}

// deliver runs one handler with panic isolation.
func (b *Bus) deliver(topic Topic, index int, h Handler) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("subscriber panicked",
				zap.String("topic", string(topic)),
				zap.Int("subscriber", index),
				zap.Any("panic", r),
			)
		}
	}()
	h()
}

// SubscriberCount returns the number of handlers on topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}
