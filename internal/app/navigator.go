package app

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"music-eras-service/internal/domain"
	"music-eras-service/internal/notes"
	"music-eras-service/internal/random"
	"music-eras-service/internal/schedule"
)

const (
	SectionHome     = "home"
	SectionMinigame = "minigame"
)

// Sections lists the navigable content sections in menu order.
var Sections = []string{"baroque", "classical", "romantic", "modern", SectionMinigame}

// NavigatorConfig tunes fades and the background note band.
type NavigatorConfig struct {
	FadeStep  time.Duration
	SwapDelay time.Duration
	FadeOut   time.Duration
	FadeIn    time.Duration
	StopFade  time.Duration
	BandSize  int
	BandStep  time.Duration
	BandStage notes.Stage
}

// DefaultNavigatorConfig returns the page's stock timings.
func DefaultNavigatorConfig() NavigatorConfig {
	return NavigatorConfig{
		FadeStep:  30 * time.Millisecond,
		SwapDelay: 160 * time.Millisecond,
		FadeOut:   100 * time.Millisecond,
		FadeIn:    200 * time.Millisecond,
		StopFade:  150 * time.Millisecond,
		BandSize:  22,
		BandStep:  30 * time.Millisecond,
		BandStage: notes.Stage{Width: 1280, Height: 260},
	}
}

// Navigator shows one section at a time and crossfades the era track that
// belongs to it.
type Navigator struct {
	cfg      NavigatorConfig
	sched    schedule.Scheduler
	player   Player
	listener NavigatorListener
	log      *zap.Logger
	tracks   map[string]string
	onOpen   func(section string)

	open       string
	currentSrc string
	fade       schedule.Cancel
	pending    schedule.Cancel
	band       *notes.Band
	bandTimer  schedule.Cancel
}

func NewNavigator(cfg NavigatorConfig, tracks map[string]string, sched schedule.Scheduler, src random.Source, player Player, listener NavigatorListener, log *zap.Logger) *Navigator {
	if log == nil {
		log = zap.NewNop()
	}
	def := DefaultNavigatorConfig()
	if cfg.FadeStep <= 0 {
		cfg = def
	}
	return &Navigator{
		cfg:      cfg,
		sched:    sched,
		player:   player,
		listener: listener,
		log:      log.Named("navigator"),
		tracks:   tracks,
		band:     notes.NewBand(src, cfg.BandStage),
	}
}

// OnOpen registers a hook called after a section is shown.
func (n *Navigator) OnOpen(fn func(section string)) {
	n.onOpen = fn
}

// Open returns the shown section, or SectionHome.
func (n *Navigator) Open() string {
	if n.open == "" {
		return SectionHome
	}
	return n.open
}

// Toggle shows the section, or goes home when it is already open.
func (n *Navigator) Toggle(section string) error {
	if section == SectionHome || (n.open != "" && n.open == section) {
		n.ShowHome()
		return nil
	}
	return n.ShowSection(section)
}

// ShowSection hides everything else, shows section and plays its track.
func (n *Navigator) ShowSection(section string) error {
	if !isSection(section) {
		return domain.ErrUnknownSection
	}
	n.open = section
	n.listener.SectionShown(section)
	n.playEra(section)
	if n.onOpen != nil {
		n.onOpen(section)
	}
	return nil
}

// ShowHome returns to the landing section and stops the music.
func (n *Navigator) ShowHome() {
	n.open = ""
	n.listener.SectionShown(SectionHome)
	n.stopMusic()
}

// Reset forgets the current track before going home.
func (n *Navigator) Reset() {
	n.currentSrc = ""
	n.ShowHome()
	n.stopBand()
}

// Close cancels fades, the pending swap and the note band.
func (n *Navigator) Close() {
	cancelPending(&n.fade)
	cancelPending(&n.pending)
	n.stopBand()
}

// BandRunning reports whether the background notes are animating.
func (n *Navigator) BandRunning() bool {
	return n.bandTimer != nil
}

func (n *Navigator) playEra(section string) {
	src, ok := n.tracks[section]
	if !ok {
		n.stopMusic()
		return
	}
	label := strings.ToUpper(section)

	if n.currentSrc != src {
		n.fadeTo(0, n.cfg.FadeOut)
		n.schedule(n.cfg.SwapDelay, func() {
			n.player.Pause()
			n.player.SetSource(src)
			n.currentSrc = src
			if err := n.player.Play(); err != nil {
				n.log.Warn("audio play blocked", zap.String("src", src), zap.Error(err))
				return
			}
			n.fadeTo(1, n.cfg.FadeIn)
			n.listener.NowPlaying(label)
			n.startBand()
		})
		return
	}

	cancelPending(&n.pending)
	if n.player.Paused() {
		if err := n.player.Play(); err != nil {
			n.log.Warn("audio resume blocked", zap.String("src", src), zap.Error(err))
		} else {
			n.listener.NowPlaying(label)
		}
	}
	if !n.BandRunning() {
		n.startBand()
	}
	n.fadeTo(1, n.cfg.FadeIn)
}

func (n *Navigator) stopMusic() {
	n.fadeTo(0, n.cfg.StopFade)
	n.schedule(n.cfg.SwapDelay, func() {
		n.player.Pause()
		n.listener.NowPlaying("")
		n.stopBand()
	})
}

// schedule replaces any pending track change with fn.
func (n *Navigator) schedule(d time.Duration, fn func()) {
	cancelPending(&n.pending)
	n.pending = n.sched.After(d, func() {
		n.pending = nil
		fn()
	})
}

// fadeTo ramps the volume linearly, one step per FadeStep.
func (n *Navigator) fadeTo(to float64, d time.Duration) {
	cancelPending(&n.fade)
	from := n.player.Volume()
	steps := int(d / n.cfg.FadeStep)
	if steps < 1 {
		steps = 1
	}
	i := 0
	n.fade = n.sched.Every(n.cfg.FadeStep, func() {
		i++
		n.player.SetVolume(from + (to-from)*float64(i)/float64(steps))
		if i >= steps {
			cancelPending(&n.fade)
		}
	})
}

func (n *Navigator) startBand() {
	n.stopBand()
	n.band.Fill(n.cfg.BandSize)
	n.bandTimer = n.sched.Every(n.cfg.BandStep, func() {
		n.band.Step()
		n.listener.BackgroundNotes(n.band.Notes())
	})
}

func (n *Navigator) stopBand() {
	cancelPending(&n.bandTimer)
	n.band.Clear()
}

func isSection(id string) bool {
	for _, s := range Sections {
		if s == id {
			return true
		}
	}
	return false
}
