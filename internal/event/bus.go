package event

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Errors returned by bus operations.
var (
	ErrNilHandler          = errors.New("handler must not be nil")
	ErrInvalidTopic        = errors.New("topic pattern must not be empty")
	ErrSubscriptionUnknown = errors.New("subscription not found")
)

// Handler processes a published event.
type Handler func(topic Topic, payload any)

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	id      string
	pattern Topic
}

// ID returns the subscription's unique identifier.
func (s Subscription) ID() string {
	return s.id
}

// Pattern returns the topic pattern the subscription matches.
func (s Subscription) Pattern() Topic {
	return s.pattern
}

// Stats summarizes bus activity.
type Stats struct {
	EventsPublished   uint64
	HandlersExecuted  uint64
	HandlerPanics     uint64
	ActiveSubscribers int
}

// Bus is a synchronous publish/subscribe event bus.
// Handlers run on the publisher's goroutine in subscription order.
// All methods are safe for concurrent use.
type Bus struct {
	mu   sync.RWMutex
	subs []subscription

	eventsPublished  atomic.Uint64
	handlersExecuted atomic.Uint64
	handlerPanics    atomic.Uint64
}

// subscription pairs a handle with its handler.
type subscription struct {
	Subscription
	handler Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for every topic matching the pattern.
func (b *Bus) Subscribe(pattern Topic, handler Handler) (Subscription, error) {
	if handler == nil {
		return Subscription{}, ErrNilHandler
	}
	if pattern == "" {
		return Subscription{}, ErrInvalidTopic
	}

	sub := Subscription{id: uuid.NewString(), pattern: pattern}

	b.mu.Lock()
	b.subs = append(b.subs, subscription{Subscription: sub, handler: handler})
	b.mu.Unlock()

	return sub, nil
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(sub Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == sub.id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionUnknown
}

// Publish delivers the payload to every handler whose pattern matches
// the topic. Delivery is synchronous; Publish returns after the last
// handler completes. A panicking handler is recovered and counted so it
// cannot take down the command loop.
func (b *Bus) Publish(topic Topic, payload any) {
	if topic == "" {
		return
	}

	b.mu.RLock()
	matched := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if topic.Match(s.pattern) {
			matched = append(matched, s.handler)
		}
	}
	b.mu.RUnlock()

	b.eventsPublished.Add(1)

	for _, h := range matched {
		b.dispatch(h, topic, payload)
	}
}

// dispatch runs one handler with panic recovery.
func (b *Bus) dispatch(h Handler, topic Topic, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
		}
	}()

	h(topic, payload)
	b.handlersExecuted.Add(1)
}

// Stats returns current bus statistics.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	subscribers := len(b.subs)
	b.mu.RUnlock()

	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		HandlersExecuted:  b.handlersExecuted.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: subscribers,
	}
}
