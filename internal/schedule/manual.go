package schedule

import "time"

// Manual is a virtual-time Scheduler. Nothing runs until the owner calls
// Advance or Frames, which makes timer behaviour fully deterministic.
type Manual struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
	frames []*manualTimer
}

type manualTimer struct {
	seq       int
	due       time.Duration
	period    time.Duration
	fn        func()
	cancelled bool
}

func NewManual() *Manual {
	return &Manual{}
}

// Now is the virtual time elapsed since construction.
func (m *Manual) Now() time.Duration {
	return m.now
}

func (m *Manual) After(d time.Duration, fn func()) Cancel {
	return m.add(d, 0, fn)
}

func (m *Manual) Every(d time.Duration, fn func()) Cancel {
	if d <= 0 {
		d = time.Nanosecond
	}
	return m.add(d, d, fn)
}

func (m *Manual) EachFrame(fn func()) Cancel {
	m.seq++
	t := &manualTimer{seq: m.seq, fn: fn}
	m.frames = append(m.frames, t)
	return func() { t.cancelled = true }
}

func (m *Manual) add(d, period time.Duration, fn func()) Cancel {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{seq: m.seq, due: m.now + d, period: period, fn: fn}
	m.timers = append(m.timers, t)
	return func() { t.cancelled = true }
}

// Advance moves virtual time forward by d, firing due timers in order of
// due time, then registration order.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.due
		if next.period > 0 {
			next.due += next.period
		} else {
			next.cancelled = true
		}
		next.fn()
	}
	m.now = target
	m.timers = compact(m.timers)
}

// Frames fires n animation frames.
func (m *Manual) Frames(n int) {
	for i := 0; i < n; i++ {
		snapshot := append([]*manualTimer(nil), m.frames...)
		for _, f := range snapshot {
			if !f.cancelled {
				f.fn()
			}
		}
		m.frames = compact(m.frames)
	}
}

// Live counts timers and frame callbacks that have not been cancelled.
func (m *Manual) Live() int {
	return m.LiveTimers() + m.LiveFrames()
}

// LiveTimers counts pending After and Every callbacks.
func (m *Manual) LiveTimers() int {
	return countLive(m.timers)
}

// LiveFrames counts active frame callbacks.
func (m *Manual) LiveFrames() int {
	return countLive(m.frames)
}

func (m *Manual) nextDue(target time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range m.timers {
		if t.cancelled || t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func countLive(ts []*manualTimer) int {
	n := 0
	for _, t := range ts {
		if !t.cancelled {
			n++
		}
	}
	return n
}

func compact(ts []*manualTimer) []*manualTimer {
	out := ts[:0]
	for _, t := range ts {
		if !t.cancelled {
			out = append(out, t)
		}
	}
	return out
}
