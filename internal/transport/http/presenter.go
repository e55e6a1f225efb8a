package http

import (
	"time"

	"music-eras-service/internal/domain"
	"music-eras-service/internal/metrics"
	"music-eras-service/internal/notes"
)

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type sectionPayload struct {
	Section string `json:"section"`
}

type nowPlayingPayload struct {
	Label string `json:"label"`
}

type notesPayload struct {
	Layer string       `json:"layer"`
	Notes []notes.Note `json:"notes"`
}

type audioPayload struct {
	Src     string  `json:"src"`
	Volume  float64 `json:"volume"`
	Playing bool    `json:"playing"`
}

type clipPayload struct {
	Audio string `json:"audio"`
}

// presenter turns engine events into outbound messages. It runs on the
// page's event loop only.
type presenter struct {
	send    chan<- outboundMessage[any]
	closed  <-chan struct{}
	metrics *metrics.Metrics

	noteEvery time.Duration
	now       func() time.Time
	lastNotes map[string]time.Time
}

func newPresenter(send chan<- outboundMessage[any], closed <-chan struct{}, m *metrics.Metrics, noteEvery time.Duration) *presenter {
	return &presenter{
		send:      send,
		closed:    closed,
		metrics:   m,
		noteEvery: noteEvery,
		now:       time.Now,
		lastNotes: make(map[string]time.Time),
	}
}

func (p *presenter) emit(typ string, payload any) {
	select {
	case p.send <- outboundMessage[any]{Type: typ, Payload: payload}:
	case <-p.closed:
	}
}

func (p *presenter) RoundStarted(e domain.RoundStarted) {
	p.metrics.RoundStarted()
	p.emit("roundStarted", e)
}

func (p *presenter) Tick(e domain.Tick) { p.emit("tick", e) }

func (p *presenter) Revealed(e domain.Revealed) {
	p.metrics.RoundRevealed(e.Correct, e.TimedOut)
	p.emit("revealed", e)
}

func (p *presenter) GameFinished(e domain.GameFinished) {
	p.metrics.GameFinished()
	p.emit("gameFinished", e)
}

func (p *presenter) NotesMoved(n []notes.Note) { p.emitNotes("minigame", n) }

func (p *presenter) Graded(g domain.GradeResult) {
	p.metrics.QuizSubmitted("graded")
	p.emit("graded", g)
}

func (p *presenter) Nudged(n domain.Nudge) {
	p.metrics.QuizSubmitted("nudged")
	p.emit("nudge", n)
}

func (p *presenter) FeedbackSent(s domain.FeedbackStatus) {
	p.metrics.Feedback()
	p.emit("feedbackSent", s)
}

func (p *presenter) CooldownTick(s domain.FeedbackStatus) { p.emit("cooldownTick", s) }
func (p *presenter) CooldownEnded()                       { p.emit("cooldownEnded", struct{}{}) }
func (p *presenter) StatusHidden()                        { p.emit("statusHidden", struct{}{}) }

func (p *presenter) SectionShown(section string) {
	p.emit("sectionShown", sectionPayload{Section: section})
}

func (p *presenter) NowPlaying(label string) {
	p.emit("nowPlaying", nowPlayingPayload{Label: label})
}

func (p *presenter) BackgroundNotes(n []notes.Note) { p.emitNotes("background", n) }

// emitNotes forwards at most one frame per layer every noteEvery; the
// client interpolates between frames.
func (p *presenter) emitNotes(layer string, n []notes.Note) {
	now := p.now()
	if last, ok := p.lastNotes[layer]; ok && now.Sub(last) < p.noteEvery {
		return
	}
	p.lastNotes[layer] = now
	p.emit("notes", notesPayload{Layer: layer, Notes: n})
}

// remotePlayer mirrors the media element state to the client.
type remotePlayer struct {
	p       *presenter
	volume  float64
	src     string
	playing bool
}

func newRemotePlayer(p *presenter) *remotePlayer {
	return &remotePlayer{p: p, volume: 1}
}

func (r *remotePlayer) Volume() float64 { return r.volume }

func (r *remotePlayer) SetVolume(v float64) {
	r.volume = v
	r.sync()
}

func (r *remotePlayer) SetSource(src string) {
	r.src = src
	r.sync()
}

func (r *remotePlayer) Play() error {
	r.playing = true
	r.sync()
	return nil
}

func (r *remotePlayer) Pause() {
	r.playing = false
	r.sync()
}

func (r *remotePlayer) Paused() bool { return !r.playing }

func (r *remotePlayer) sync() {
	r.p.emit("audio", audioPayload{Src: r.src, Volume: r.volume, Playing: r.playing})
}
