package app

import (
	"time"

	"go.uber.org/zap"
	"music-eras-service/internal/domain"
	"music-eras-service/internal/schedule"
)

const (
	// FeedbackCooldown is the default wait, in seconds, between two sends.
	FeedbackCooldown = 10
	statusHideDelay  = 1500 * time.Millisecond
)

// Feedback is the emoji feedback widget with a send cooldown.
type Feedback struct {
	sched    schedule.Scheduler
	listener FeedbackListener
	log      *zap.Logger
	cooldown int

	cooling   bool
	remaining int
	countdown schedule.Cancel
	hide      schedule.Cancel
}

func NewFeedback(cooldownSeconds int, sched schedule.Scheduler, listener FeedbackListener, log *zap.Logger) *Feedback {
	if cooldownSeconds <= 0 {
		cooldownSeconds = FeedbackCooldown
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Feedback{
		sched:    sched,
		listener: listener,
		log:      log.Named("feedback"),
		cooldown: cooldownSeconds,
	}
}

// Send accepts a rating while no cooldown is running.
func (f *Feedback) Send(emoji, text string) bool {
	if f.cooling || emoji == "" {
		return false
	}
	cancelPending(&f.hide)
	cancelPending(&f.countdown)

	f.log.Info("feedback received", zap.String("emoji", emoji), zap.Int("length", len(text)))
	f.cooling = true
	f.remaining = f.cooldown
	f.listener.FeedbackSent(domain.FeedbackStatus{Remaining: f.remaining})
	f.countdown = f.sched.Every(time.Second, f.tick)
	return true
}

// Clear cancels the cooldown and hides the status.
func (f *Feedback) Clear() {
	cancelPending(&f.countdown)
	cancelPending(&f.hide)
	f.cooling = false
	f.remaining = 0
}

// CoolingDown reports whether Send is currently refused.
func (f *Feedback) CoolingDown() bool {
	return f.cooling
}

// Remaining is the number of cooldown seconds left.
func (f *Feedback) Remaining() int {
	return f.remaining
}

func (f *Feedback) tick() {
	if !f.cooling {
		return
	}
	f.remaining--
	if f.remaining > 0 {
		f.listener.CooldownTick(domain.FeedbackStatus{Remaining: f.remaining})
		return
	}
	cancelPending(&f.countdown)
	f.cooling = false
	f.remaining = 0
	f.listener.CooldownEnded()
	f.hide = f.sched.After(statusHideDelay, func() {
		f.hide = nil
		f.listener.StatusHidden()
	})
}
