// Package event implements the notification hub that fans each committed
// calculation out to its subscribers.
//
// Delivery is synchronous and in subscription order. A failing subscriber
// does not stop delivery to the rest, but the failure is not swallowed
// either: Publish reports every failure wrapped in an ObserverError so the
// caller can tell a degraded-but-committed operation from a failed one.
package event

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/calcstorm/internal/calc"
)

// Subscriber receives each committed calculation.
type Subscriber interface {
	Notify(c calc.Calculation) error
}

// SubscriberFunc adapts a function into a Subscriber.
type SubscriberFunc func(c calc.Calculation) error

// Notify implements Subscriber.
func (f SubscriberFunc) Notify(c calc.Calculation) error { return f(c) }

// subscription pairs a subscriber with its removal handle.
type subscription struct {
	id  string
	sub Subscriber
}

// Hub is the observer subject. Subscribers are held by reference and
// notified in subscription order. Subscribing the same subscriber twice
// yields duplicate notifications; each subscription has its own id, so one
// of the two can still be removed.
type Hub struct {
	mu   sync.Mutex
	subs []subscription
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers a subscriber and returns its subscription id.
func (h *Hub) Subscribe(s Subscriber) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.NewString()
	h.subs = append(h.subs, subscription{id: id, sub: s})
	return id
}

// Unsubscribe removes the subscription with the given id.
func (h *Hub) Unsubscribe(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of active subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Publish notifies every subscriber synchronously, in subscription order.
// Every subscriber runs even when an earlier one fails; the failures come
// back as a single ObserverError.
func (h *Hub) Publish(c calc.Calculation) error {
	h.mu.Lock()
	subs := make([]subscription, len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	var failures []error
	for _, s := range subs {
		if err := s.sub.Notify(c); err != nil {
			failures = append(failures, fmt.Errorf("subscription %s: %w", s.id, err))
		}
	}
	if len(failures) > 0 {
		return newObserverError(failures)
	}
	return nil
}
