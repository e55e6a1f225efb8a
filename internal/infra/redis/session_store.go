package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"music-eras-service/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRegistry.
// Pages live in a local map because their timers run in this process;
// Redis only carries a liveness key per page so other instances can count
// connected pages.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration

	mu    sync.RWMutex
	pages map[string]*app.Page
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
		pages:  make(map[string]*app.Page),
	}
}

func (s *SessionStore) Register(id string, page *app.Page) {
	s.mu.Lock()
	s.pages[id] = page
	s.mu.Unlock()
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(id), page.CatalogID, s.ttl).Err()
}

func (s *SessionStore) Get(id string) (*app.Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.pages[id]
	return page, ok
}

func (s *SessionStore) Remove(id string) {
	s.mu.Lock()
	delete(s.pages, id)
	s.mu.Unlock()
	_ = s.client.Del(context.Background(), s.key(id)).Err()
}

// Touch extends the liveness key of a connected page.
func (s *SessionStore) Touch(id string) {
	if _, ok := s.Get(id); !ok || s.ttl <= 0 {
		return
	}
	_ = s.client.Expire(context.Background(), s.key(id), s.ttl).Err()
}

func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

// LiveCount counts liveness keys across every instance sharing Redis.
func (s *SessionStore) LiveCount(ctx context.Context) (int, error) {
	n := 0
	iter := s.client.Scan(ctx, 0, s.key("*"), 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	return n, iter.Err()
}

func (s *SessionStore) key(id string) string {
	return "eras:session:" + id
}
