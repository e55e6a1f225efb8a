package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"music-eras-service/internal/domain"
	"music-eras-service/internal/random"
	"music-eras-service/internal/schedule"
)

// PageDeps are the per-connection collaborators a page runs on.
type PageDeps struct {
	Scheduler schedule.Scheduler
	Random    random.Source
	Presenter Presenter
	Player    Player
}

// PageService opens and closes page sessions.
type PageService struct {
	catalogs CatalogRepository
	sessions SessionRegistry
	cfg      PageConfig
	newID    func() string
	log      *zap.Logger
}

func NewPageService(catalogs CatalogRepository, sessions SessionRegistry, cfg PageConfig, log *zap.Logger) *PageService {
	return NewPageServiceWithIDs(catalogs, sessions, cfg, log, uuid.NewString)
}

// NewPageServiceWithIDs is test-only for deterministic session ids.
func NewPageServiceWithIDs(catalogs CatalogRepository, sessions SessionRegistry, cfg PageConfig, log *zap.Logger, newID func() string) *PageService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PageService{
		catalogs: catalogs,
		sessions: sessions,
		cfg:      cfg,
		newID:    newID,
		log:      log,
	}
}

// Open loads the catalog and registers a new page built on deps.
// An empty catalogID selects the configured catalog.
func (s *PageService) Open(ctx context.Context, catalogID string, deps PageDeps) (*Page, error) {
	if catalogID == "" {
		catalogID = s.cfg.CatalogID
	}
	if catalogID == "" {
		catalogID = domain.DefaultCatalogID
	}
	// Pages cannot open on unknown catalogs.
	catalog, err := s.catalogs.GetCatalog(ctx, catalogID)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}

	page, err := NewPage(s.newID(), catalog, s.cfg, deps.Scheduler, deps.Random, deps.Presenter, deps.Player, s.log)
	if err != nil {
		return nil, err
	}
	s.sessions.Register(page.ID, page)
	s.log.Info("page opened", zap.String("page", page.ID), zap.String("catalog", catalogID))
	return page, nil
}

// Get returns a registered page.
func (s *PageService) Get(id string) (*Page, error) {
	page, ok := s.sessions.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return page, nil
}

// Touch marks the page as still connected.
func (s *PageService) Touch(id string) {
	s.sessions.Touch(id)
}

// Close tears the page down and forgets it. It must run on the page's
// event loop.
func (s *PageService) Close(id string) {
	page, ok := s.sessions.Get(id)
	if !ok {
		return
	}
	page.Close()
	s.sessions.Remove(id)
	s.log.Info("page closed", zap.String("page", id))
}

// Active is the number of open pages.
func (s *PageService) Active() int {
	return s.sessions.Count()
}
