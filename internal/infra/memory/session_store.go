package memory

import (
	"sync"

	"music-eras-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRegistry.
type SessionStore struct {
	mu    sync.RWMutex
	pages map[string]*app.Page
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		pages: make(map[string]*app.Page),
	}
}

func (s *SessionStore) Register(id string, page *app.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[id] = page
}

func (s *SessionStore) Get(id string) (*app.Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.pages[id]
	return page, ok
}

func (s *SessionStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pages, id)
}

// Touch is a no-op; in-process pages live until removed.
func (s *SessionStore) Touch(string) {}

func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}
