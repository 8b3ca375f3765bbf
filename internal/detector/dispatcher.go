package detector

import (
	"errors"
	"fmt"
	"sync"

	"HoyoSentinel/internal/model"
)

// Subscriber receives recovery events for an account.
type Subscriber interface {
	HandleEvent(account string, ev model.Event) error
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(account string, ev model.Event) error

func (f SubscriberFunc) HandleEvent(account string, ev model.Event) error {
	return f(account, ev)
}

// Subscription is the handle returned by Subscribe.
type Subscription uint64

type registration struct {
	id  Subscription
	sub Subscriber
}

// Dispatcher delivers events synchronously to registered subscribers.
type Dispatcher struct {
	mu   sync.Mutex
	next Subscription
	subs []registration
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers sub and returns its handle.
func (d *Dispatcher) Subscribe(sub Subscriber) Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	d.subs = append(d.subs, registration{id: d.next, sub: sub})
	return d.next
}

// Unsubscribe removes a subscription. It reports whether the handle was registered.
func (d *Dispatcher) Unsubscribe(id Subscription) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, r := range d.subs {
		if r.id == id {
			d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered subscribers.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

// Publish delivers events in order, each to every subscriber in registration
// order, on the caller's goroutine. A failing subscriber does not stop
// delivery; all failures are joined into the returned error.
func (d *Dispatcher) Publish(account string, events []model.Event) error {
	d.mu.Lock()
	subs := make([]registration, len(d.subs))
	copy(subs, d.subs)
	d.mu.Unlock()

	var errs []error
	for _, ev := range events {
		for _, r := range subs {
			if err := r.sub.HandleEvent(account, ev); err != nil {
				errs = append(errs, fmt.Errorf("subscriber %d: %s event: %w", r.id, ev.Kind(), err))
			}
		}
	}
	return errors.Join(errs...)
}
