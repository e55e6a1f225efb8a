package app

import (
	"context"

	"music-eras-service/internal/domain"
	"music-eras-service/internal/notes"
)

// CatalogRepository loads catalog content (from cache/backing store).
type CatalogRepository interface {
	GetCatalog(ctx context.Context, catalogID string) (domain.Catalog, error)
}

// SessionRegistry tracks the page sessions that are currently connected.
type SessionRegistry interface {
	Register(id string, page *Page)
	Get(id string) (*Page, bool)
	Remove(id string)
	Touch(id string)
	Count() int
}

// MinigameListener renders minigame state changes.
type MinigameListener interface {
	RoundStarted(domain.RoundStarted)
	Tick(domain.Tick)
	Revealed(domain.Revealed)
	GameFinished(domain.GameFinished)
	NotesMoved([]notes.Note)
}

// QuizListener renders grading outcomes.
type QuizListener interface {
	Graded(domain.GradeResult)
	Nudged(domain.Nudge)
}

// FeedbackListener renders the feedback widget status line.
type FeedbackListener interface {
	FeedbackSent(domain.FeedbackStatus)
	CooldownTick(domain.FeedbackStatus)
	CooldownEnded()
	StatusHidden()
}

// NavigatorListener renders section changes and the now-playing bar.
type NavigatorListener interface {
	SectionShown(section string)
	NowPlaying(label string)
	BackgroundNotes([]notes.Note)
}

// Presenter is everything a page renders.
type Presenter interface {
	MinigameListener
	QuizListener
	FeedbackListener
	NavigatorListener
}

// Player is the background-music media element.
type Player interface {
	Volume() float64
	SetVolume(v float64)
	SetSource(src string)
	Play() error
	Pause()
	Paused() bool
}
