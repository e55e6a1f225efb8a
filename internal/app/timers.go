package app

import (
	"time"

	"music-eras-service/internal/schedule"
)

// activeTimers holds the three periodic activities of a minigame round.
// They are always started together and always stopped together.
type activeTimers struct {
	countdown schedule.Cancel
	spawner   schedule.Cancel
	frames    schedule.Cancel
}

func startRoundTimers(s schedule.Scheduler, r roundActivities) activeTimers {
	return activeTimers{
		countdown: s.Every(r.tickEvery, r.tick),
		spawner:   s.Every(r.spawnEvery, r.spawn),
		frames:    s.EachFrame(r.frame),
	}
}

type roundActivities struct {
	tickEvery  time.Duration
	spawnEvery time.Duration
	tick       func()
	spawn      func()
	frame      func()
}

func (t *activeTimers) live() bool {
	return t.countdown != nil || t.spawner != nil || t.frames != nil
}

func (t *activeTimers) stop() {
	for _, c := range []schedule.Cancel{t.countdown, t.spawner, t.frames} {
		if c != nil {
			c()
		}
	}
	*t = activeTimers{}
}

// cancelPending stops a single handle and clears it.
func cancelPending(c *schedule.Cancel) {
	if *c != nil {
		(*c)()
		*c = nil
	}
}
