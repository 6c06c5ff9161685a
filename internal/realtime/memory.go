package realtime

import (
	"context"
	"sync"
)

// MemoryBroker is an in-process Broker for single-instance deployments.
// Slow subscribers drop events rather than block publishers.
type MemoryBroker struct {
	mu   sync.Mutex
	subs map[string]map[*memorySub]struct{}
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[string]map[*memorySub]struct{})}
}

func (b *MemoryBroker) Publish(_ context.Context, ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for s := range b.subs[ev.UserID] {
		select {
		case s.ch <- ev:
		default:
		}
	}
	return nil
}

func (b *MemoryBroker) Subscribe(_ context.Context, userID string) (Subscription, error) {
	s := &memorySub{broker: b, userID: userID, ch: make(chan Event, bufferSize)}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[*memorySub]struct{})
	}
	b.subs[userID][s] = struct{}{}
	return s, nil
}

// Count returns the number of open subscriptions for a user.
func (b *MemoryBroker) Count(userID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[userID])
}

type memorySub struct {
	broker *MemoryBroker
	userID string
	ch     chan Event
	once   sync.Once
}

func (s *memorySub) C() <-chan Event { return s.ch }

func (s *memorySub) Close() error {
	s.once.Do(func() {
		b := s.broker
		b.mu.Lock()
		defer b.mu.Unlock()

		delete(b.subs[s.userID], s)
		if len(b.subs[s.userID]) == 0 {
			delete(b.subs, s.userID)
		}
		close(s.ch)
	})
	return nil
}
