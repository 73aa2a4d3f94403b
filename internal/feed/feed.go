// Package feed carries order change notifications from the workflow engine
// to whoever is watching a canteen's orders.
package feed

import (
	"context"
	"sync"

	"canteen-backend/domain"
)

type Feed interface {
	Publish(ctx context.Context, event domain.OrderChangeEvent) error
	// Subscribe delivers events for one canteen until ctx is cancelled or the
	// returned cancel func is called. The channel is closed afterwards.
	Subscribe(ctx context.Context, canteenID string) (<-chan domain.OrderChangeEvent, func(), error)
	Close() error
}

const subscriberBuffer = 16

type subscription struct {
	ch   chan domain.OrderChangeEvent
	done chan struct{}
}

type localFeed struct {
	mu   sync.Mutex
	subs map[string]map[*subscription]struct{}

	// watchers tracks the goroutines tying subscriptions to their context
	watchers sync.WaitGroup
}

// NewLocalFeed fans events out inside the process. It is used when no broker
// is configured and in tests.
func NewLocalFeed() Feed {
	return &localFeed{subs: make(map[string]map[*subscription]struct{})}
}

func (f *localFeed) Publish(_ context.Context, event domain.OrderChangeEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sub := range f.subs[event.CanteenID] {
		select {
		case sub.ch <- event:
		default:
			// slow subscriber, it refetches on the next event anyway
		}
	}
	return nil
}

func (f *localFeed) Subscribe(ctx context.Context, canteenID string) (<-chan domain.OrderChangeEvent, func(), error) {
	sub := &subscription{
		ch:   make(chan domain.OrderChangeEvent, subscriberBuffer),
		done: make(chan struct{}),
	}

	f.mu.Lock()
	if f.subs[canteenID] == nil {
		f.subs[canteenID] = make(map[*subscription]struct{})
	}
	f.subs[canteenID][sub] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.remove(canteenID, sub)
	}

	f.watchers.Add(1)
	go func() {
		defer f.watchers.Done()
		select {
		case <-ctx.Done():
			cancel()
		case <-sub.done:
		}
	}()
	return sub.ch, cancel, nil
}

// remove must be called with f.mu held.
func (f *localFeed) remove(canteenID string, sub *subscription) {
	if _, ok := f.subs[canteenID][sub]; !ok {
		return
	}
	delete(f.subs[canteenID], sub)
	if len(f.subs[canteenID]) == 0 {
		delete(f.subs, canteenID)
	}
	close(sub.ch)
	close(sub.done)
}

func (f *localFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for canteenID, subs := range f.subs {
		for sub := range subs {
			f.remove(canteenID, sub)
		}
	}
	return nil
}
