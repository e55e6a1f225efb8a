package app

import (
	"time"

	"go.uber.org/zap"
	"music-eras-service/internal/domain"
	"music-eras-service/internal/notes"
	"music-eras-service/internal/random"
	"music-eras-service/internal/schedule"
)

const (
	// TotalRounds is the default number of rounds per game.
	TotalRounds = 10
	// TimePerRound is the default countdown length in seconds.
	TimePerRound = 15
	// NoteSpawnInterval is the default period of the note spawner.
	NoteSpawnInterval = 400 * time.Millisecond
	// ChoiceCount is the size of a full choice set.
	ChoiceCount = 4
)

// MinigameConfig tunes a Minigame. Zero fields take the defaults.
type MinigameConfig struct {
	TotalRounds     int
	SecondsPerRound int
	SpawnInterval   time.Duration
	Stage           notes.Stage
}

// DefaultMinigameConfig returns the stock game settings.
func DefaultMinigameConfig() MinigameConfig {
	return MinigameConfig{
		TotalRounds:     TotalRounds,
		SecondsPerRound: TimePerRound,
		SpawnInterval:   NoteSpawnInterval,
		Stage:           notes.DefaultStage,
	}
}

func (c MinigameConfig) withDefaults() MinigameConfig {
	def := DefaultMinigameConfig()
	if c.TotalRounds <= 0 {
		c.TotalRounds = def.TotalRounds
	}
	if c.SecondsPerRound <= 0 {
		c.SecondsPerRound = def.SecondsPerRound
	}
	if c.SpawnInterval <= 0 {
		c.SpawnInterval = def.SpawnInterval
	}
	if c.Stage.Width <= 0 || c.Stage.Height <= 0 {
		c.Stage = def.Stage
	}
	return c
}

// Minigame is the instrument-identification round state machine. It is not
// safe for concurrent use; drive it from the scheduler's thread only.
type Minigame struct {
	cfg         MinigameConfig
	instruments []domain.Instrument
	src         random.Source
	sched       schedule.Scheduler
	listener    MinigameListener
	log         *zap.Logger
	notes       *notes.Drift

	round     int
	score     int
	answerID  string
	choices   []string
	remaining int
	phase     domain.Phase
	timers    activeTimers
}

func NewMinigame(cfg MinigameConfig, instruments []domain.Instrument, sched schedule.Scheduler, src random.Source, listener MinigameListener, log *zap.Logger) *Minigame {
	if log == nil {
		log = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	g := &Minigame{
		cfg:         cfg,
		instruments: uniqueInstruments(instruments),
		src:         src,
		sched:       sched,
		listener:    listener,
		log:         log.Named("minigame"),
		notes:       notes.NewDrift(src, cfg.Stage),
	}
	g.resetState()
	return g
}

// StartRound begins round n, or finishes the game when n is past the last
// round. Any activity left over from a previous round is cancelled first.
func (g *Minigame) StartRound(n int) {
	g.stopRound()
	if n < 1 {
		n = 1
	}
	g.round = n

	if n > g.cfg.TotalRounds || len(g.instruments) == 0 {
		g.phase = domain.PhaseFinished
		g.answerID = ""
		g.choices = nil
		g.log.Debug("game finished", zap.Int("score", g.score), zap.Int("rounds", g.cfg.TotalRounds))
		g.listener.GameFinished(domain.GameFinished{FinalScore: g.score, TotalRounds: g.cfg.TotalRounds})
		return
	}

	answer := g.instruments[random.Index(g.src, len(g.instruments))]
	g.answerID = answer.ID
	g.choices = buildChoices(g.src, g.instruments, answer.ID)
	g.remaining = g.cfg.SecondsPerRound
	g.phase = domain.PhaseActive

	g.timers = startRoundTimers(g.sched, roundActivities{
		tickEvery:  time.Second,
		spawnEvery: g.cfg.SpawnInterval,
		tick:       g.tick,
		spawn:      g.notes.Spawn,
		frame:      g.frame,
	})

	g.log.Debug("round started", zap.Int("round", n), zap.String("answer", answer.ID), zap.Strings("choices", g.choices))
	g.listener.RoundStarted(domain.RoundStarted{
		RoundNumber:   n,
		TotalRounds:   g.cfg.TotalRounds,
		Choices:       g.choiceViews(),
		TimeRemaining: g.remaining,
		Score:         g.score,
		SpriteClass:   answer.SpriteClass,
	})
}

// SubmitChoice answers the active round. Choices outside the current set
// and clicks after the round locked are ignored and report false.
func (g *Minigame) SubmitChoice(choiceID string) bool {
	if g.phase != domain.PhaseActive || !contains(g.choices, choiceID) {
		return false
	}
	g.reveal(choiceID == g.answerID, false)
	return true
}

// Advance moves from a revealed round to the next one.
func (g *Minigame) Advance() bool {
	if g.phase != domain.PhaseRevealed {
		return false
	}
	g.StartRound(g.round + 1)
	return true
}

// Reset cancels all activity and returns to a freshly constructed state.
func (g *Minigame) Reset() {
	g.stopRound()
	g.resetState()
	g.log.Debug("game reset")
}

// EnsureFreshRound starts a round if the game is idle.
func (g *Minigame) EnsureFreshRound() bool {
	if g.phase != domain.PhaseIdle {
		return false
	}
	g.StartRound(g.round)
	return true
}

// Close cancels all live timers without touching the score.
func (g *Minigame) Close() {
	g.stopRound()
}

// CurrentClip returns the audio reference of the current answer.
func (g *Minigame) CurrentClip() (string, bool) {
	if g.answerID == "" {
		return "", false
	}
	for _, inst := range g.instruments {
		if inst.ID == g.answerID {
			return inst.AudioRef, true
		}
	}
	return "", false
}

// State returns a snapshot of the round.
func (g *Minigame) State() domain.RoundState {
	return domain.RoundState{
		RoundNumber:   g.round,
		AnswerID:      g.answerID,
		ChoiceIDs:     append([]string(nil), g.choices...),
		Score:         g.score,
		TimeRemaining: g.remaining,
		Phase:         g.phase,
	}
}

// Running reports whether the round's timers are live.
func (g *Minigame) Running() bool {
	return g.timers.live()
}

func (g *Minigame) tick() {
	if g.phase != domain.PhaseActive {
		return
	}
	g.remaining--
	g.listener.Tick(domain.Tick{TimeRemaining: g.remaining})
	if g.remaining <= 0 {
		g.onCountdownExpired()
	}
}

func (g *Minigame) onCountdownExpired() {
	if g.phase != domain.PhaseActive {
		return
	}
	g.reveal(false, true)
}

func (g *Minigame) reveal(correct, timedOut bool) {
	g.stopRound()
	if correct {
		g.score++
	}
	g.phase = domain.PhaseRevealed

	label := g.answerID
	for _, inst := range g.instruments {
		if inst.ID == g.answerID {
			label = inst.Label
			break
		}
	}
	g.log.Debug("round revealed", zap.Int("round", g.round), zap.Bool("correct", correct), zap.Bool("timedOut", timedOut))
	g.listener.Revealed(domain.Revealed{
		Correct:     correct,
		TimedOut:    timedOut,
		AnswerID:    g.answerID,
		AnswerLabel: label,
		Score:       g.score,
		Standing:    domain.StandingFor(g.score, g.round),
	})
}

func (g *Minigame) frame() {
	g.notes.Step()
	g.listener.NotesMoved(g.notes.Notes())
}

func (g *Minigame) stopRound() {
	g.timers.stop()
	g.notes.Clear()
}

func (g *Minigame) resetState() {
	g.round = 1
	g.score = 0
	g.answerID = ""
	g.choices = nil
	g.remaining = g.cfg.SecondsPerRound
	g.phase = domain.PhaseIdle
}

func (g *Minigame) choiceViews() []domain.Choice {
	views := make([]domain.Choice, 0, len(g.choices))
	for _, id := range g.choices {
		label := id
		for _, inst := range g.instruments {
			if inst.ID == id {
				label = inst.Label
				break
			}
		}
		views = append(views, domain.Choice{ID: id, Label: label})
	}
	return views
}

// buildChoices shuffles the catalog, takes the first distractors that are
// not the answer, adds the answer and shuffles the result. Small catalogs
// yield fewer than ChoiceCount options.
func buildChoices(src random.Source, instruments []domain.Instrument, answerID string) []string {
	pool := make([]string, len(instruments))
	for i, inst := range instruments {
		pool[i] = inst.ID
	}
	random.Shuffle(src, pool)

	distractors := make([]string, 0, ChoiceCount-1)
	for _, id := range pool {
		if len(distractors) == ChoiceCount-1 {
			break
		}
		if id != answerID {
			distractors = append(distractors, id)
		}
	}

	options := append([]string{answerID}, distractors...)
	random.Shuffle(src, options)
	return options
}

func uniqueInstruments(in []domain.Instrument) []domain.Instrument {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.Instrument, 0, len(in))
	for _, inst := range in {
		if _, dup := seen[inst.ID]; dup {
			continue
		}
		seen[inst.ID] = struct{}{}
		out = append(out, inst)
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
