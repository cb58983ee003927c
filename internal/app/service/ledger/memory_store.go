package ledger

import (
	"context"
	"slices"
	"sync"

	"github.com/fatflowers/crm/internal/models"
)

// MemoryStore keeps the ledger in process memory. It is a cache of Stripe-side
// state and does not survive restarts.
type MemoryStore struct {
	mu     sync.RWMutex
	subs   map[string]*models.Subscription
	events []*models.WebhookEvent // newest first
	cap    int
}

func NewMemoryStore() *MemoryStore {
	return newMemoryStoreWithCapacity(EventLogCapacity)
}

func newMemoryStoreWithCapacity(capacity int) *MemoryStore {
	return &MemoryStore{
		subs:   make(map[string]*models.Subscription),
		events: make([]*models.WebhookEvent, 0, capacity),
		cap:    capacity,
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.subs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *MemoryStore) Upsert(_ context.Context, rec *models.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[rec.ID] = rec.Clone()
	return nil
}

func (s *MemoryStore) Update(_ context.Context, id string, fn UpdateFunc) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.subs[id]
	if !ok {
		return false, nil
	}
	next := rec.Clone()
	if err := fn(next); err != nil {
		return true, err
	}
	next.ID = id
	s.subs[id] = next
	return true, nil
}

func (s *MemoryStore) List(_ context.Context) ([]*models.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Subscription, 0, len(s.subs))
	for _, rec := range s.subs {
		out = append(out, rec.Clone())
	}
	return out, nil
}

func (s *MemoryStore) AppendEvent(_ context.Context, ev *models.WebhookEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// A redelivered event replaces its earlier entry and moves to the head.
	s.events = slices.DeleteFunc(s.events, func(e *models.WebhookEvent) bool { return e.ID == ev.ID })
	s.events = append(s.events, nil)
	copy(s.events[1:], s.events)
	s.events[0] = ev.Clone()
	if len(s.events) > s.cap {
		clear(s.events[s.cap:])
		s.events = s.events[:s.cap]
	}
	return nil
}

func (s *MemoryStore) ListEvents(_ context.Context, limit int) ([]*models.WebhookEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.events)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*models.WebhookEvent, n)
	for i := range n {
		out[i] = s.events[i].Clone()
	}
	return out, nil
}
