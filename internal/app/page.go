package app

import (
	"fmt"

	"go.uber.org/zap"
	"music-eras-service/internal/domain"
	"music-eras-service/internal/random"
	"music-eras-service/internal/schedule"
)

// PageConfig gathers the tunables of every engine on a page.
type PageConfig struct {
	CatalogID        string
	Minigame         MinigameConfig
	Navigator        NavigatorConfig
	FeedbackCooldown int
}

// DefaultPageConfig returns stock settings for all engines.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		CatalogID:        domain.DefaultCatalogID,
		Minigame:         DefaultMinigameConfig(),
		Navigator:        DefaultNavigatorConfig(),
		FeedbackCooldown: FeedbackCooldown,
	}
}

// Page is one browser page session: the engines sharing a scheduler, a
// random source and a presenter. Engines share no state with each other.
type Page struct {
	ID        string
	CatalogID string
	Quiz      *Quiz
	Game      *Minigame
	Feedback  *Feedback
	Nav       *Navigator

	log *zap.Logger
}

// NewPage validates the catalog and builds the engines.
func NewPage(id string, catalog domain.Catalog, cfg PageConfig, sched schedule.Scheduler, src random.Source, presenter Presenter, player Player, log *zap.Logger) (*Page, error) {
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("page %s: %w", id, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("page", id))

	p := &Page{
		ID:        id,
		CatalogID: catalog.ID,
		Quiz:      NewQuiz(catalog.Questions, presenter, log),
		Game:      NewMinigame(cfg.Minigame, catalog.Instruments, sched, src, presenter, log),
		Feedback:  NewFeedback(cfg.FeedbackCooldown, sched, presenter, log),
		Nav:       NewNavigator(cfg.Navigator, catalog.EraTracks, sched, src, player, presenter, log),
		log:       log,
	}
	p.Nav.OnOpen(func(section string) {
		if section == SectionMinigame {
			p.Game.EnsureFreshRound()
		}
	})
	return p, nil
}

// Reset is the page-wide reset button.
func (p *Page) Reset() {
	p.Nav.Reset()
	p.Feedback.Clear()
	p.Quiz.Retry()
	p.Game.Reset()
	p.log.Debug("page reset")
}

// Close tears the page down, cancelling every live timer.
func (p *Page) Close() {
	p.Game.Close()
	p.Feedback.Clear()
	p.Nav.Close()
	p.log.Debug("page closed")
}
