package schedule_test

import (
	"context"
	"testing"
	"time"

	"music-eras-service/internal/schedule"
)

func TestManualOrdersTimers(t *testing.T) {
	m := schedule.NewManual()
	var order []string

	m.After(300*time.Millisecond, func() { order = append(order, "after") })
	stop := m.Every(100*time.Millisecond, func() { order = append(order, "every") })

	m.Advance(300 * time.Millisecond)
	want := []string{"every", "every", "after", "every"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}

	if m.LiveTimers() != 1 {
		t.Fatalf("expected only the periodic timer alive, got %d", m.LiveTimers())
	}
	stop()
	stop()
	if m.Live() != 0 {
		t.Fatalf("expected no live timers after cancel, got %d", m.Live())
	}
}

func TestManualCancelInsideCallback(t *testing.T) {
	m := schedule.NewManual()
	calls := 0
	var stop schedule.Cancel
	stop = m.Every(time.Second, func() {
		calls++
		if calls == 2 {
			stop()
		}
	})
	m.Advance(10 * time.Second)
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestManualFrames(t *testing.T) {
	m := schedule.NewManual()
	frames := 0
	stop := m.EachFrame(func() { frames++ })
	m.Frames(3)
	stop()
	m.Frames(3)
	if frames != 3 {
		t.Fatalf("expected 3 frames, got %d", frames)
	}
	if m.LiveFrames() != 0 {
		t.Fatalf("expected no live frames")
	}
}

func TestLoopRunsCallbacksOnLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := schedule.NewLoop(5 * time.Millisecond)
	go loop.Run(ctx)

	fired := make(chan struct{})
	loop.Post(func() {
		loop.After(10*time.Millisecond, func() { close(fired) })
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatalf("after callback never fired")
	}
}

func TestLoopCancelPreventsCallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := schedule.NewLoop(5 * time.Millisecond)
	go loop.Run(ctx)

	ticks := 0
	var stop schedule.Cancel
	loop.Do(func() {
		stop = loop.Every(5*time.Millisecond, func() { ticks++ })
	})
	time.Sleep(40 * time.Millisecond)
	var seen int
	loop.Do(func() {
		stop()
		seen = ticks
	})
	time.Sleep(40 * time.Millisecond)
	var after int
	loop.Do(func() { after = ticks })
	if after != seen {
		t.Fatalf("ticks continued after cancel: %d -> %d", seen, after)
	}
}

func TestLoopPostAfterClose(t *testing.T) {
	loop := schedule.NewLoop(0)
	loop.Close()
	if loop.Post(func() {}) {
		t.Fatalf("expected post to fail on closed loop")
	}
	if loop.Do(func() {}) {
		t.Fatalf("expected do to fail on closed loop")
	}
}
