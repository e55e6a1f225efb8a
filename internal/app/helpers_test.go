package app_test

import (
	"errors"

	"music-eras-service/internal/domain"
	"music-eras-service/internal/notes"
)

// recorder captures everything engines present.
type recorder struct {
	started    []domain.RoundStarted
	ticks      []domain.Tick
	revealed   []domain.Revealed
	finished   []domain.GameFinished
	noteFrames [][]notes.Note

	graded []domain.GradeResult
	nudges []domain.Nudge

	feedback []string
	statuses []domain.FeedbackStatus

	sections   []string
	nowPlaying []string
	bandFrames int
}

func (r *recorder) RoundStarted(e domain.RoundStarted) { r.started = append(r.started, e) }
func (r *recorder) Tick(e domain.Tick)                 { r.ticks = append(r.ticks, e) }
func (r *recorder) Revealed(e domain.Revealed)         { r.revealed = append(r.revealed, e) }
func (r *recorder) GameFinished(e domain.GameFinished) { r.finished = append(r.finished, e) }
func (r *recorder) NotesMoved(n []notes.Note)          { r.noteFrames = append(r.noteFrames, n) }
func (r *recorder) Graded(g domain.GradeResult)        { r.graded = append(r.graded, g) }
func (r *recorder) Nudged(n domain.Nudge)              { r.nudges = append(r.nudges, n) }

func (r *recorder) FeedbackSent(s domain.FeedbackStatus) {
	r.feedback = append(r.feedback, "sent")
	r.statuses = append(r.statuses, s)
}

func (r *recorder) CooldownTick(s domain.FeedbackStatus) {
	r.feedback = append(r.feedback, "tick")
	r.statuses = append(r.statuses, s)
}

func (r *recorder) CooldownEnded() { r.feedback = append(r.feedback, "ended") }
func (r *recorder) StatusHidden()  { r.feedback = append(r.feedback, "hidden") }

func (r *recorder) SectionShown(s string)          { r.sections = append(r.sections, s) }
func (r *recorder) NowPlaying(label string)        { r.nowPlaying = append(r.nowPlaying, label) }
func (r *recorder) BackgroundNotes(_ []notes.Note) { r.bandFrames++ }

func (r *recorder) lastRevealed() domain.Revealed {
	return r.revealed[len(r.revealed)-1]
}

// fakePlayer is an in-memory media element.
type fakePlayer struct {
	volume  float64
	src     string
	sources []string
	playing bool
	blocked bool
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{volume: 1}
}

func (p *fakePlayer) Volume() float64 { return p.volume }

func (p *fakePlayer) SetVolume(v float64) { p.volume = v }

func (p *fakePlayer) SetSource(src string) {
	p.src = src
	p.sources = append(p.sources, src)
}

func (p *fakePlayer) Play() error {
	if p.blocked {
		return errors.New("autoplay blocked")
	}
	p.playing = true
	return nil
}

func (p *fakePlayer) Pause()       { p.playing = false }
func (p *fakePlayer) Paused() bool { return !p.playing }
