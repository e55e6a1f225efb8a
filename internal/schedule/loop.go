package schedule

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultFrameInterval approximates a 60Hz display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

// Loop is a Scheduler backed by wall-clock timers. All callbacks, and
// every func handed to Post, execute on the goroutine running Run.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	frame time.Duration

	closeOnce sync.Once
}

// NewLoop builds a loop whose frames tick every frame interval.
func NewLoop(frame time.Duration) *Loop {
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	return &Loop{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
		frame: frame,
	}
}

// Run executes posted work until ctx is done or Close is called.
func (l *Loop) Run(ctx context.Context) {
	defer l.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Post enqueues fn. It reports false once the loop is closed.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do posts fn and waits for it to finish. It must not be called from the
// loop goroutine.
func (l *Loop) Do(fn func()) bool {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}

// Close stops the loop. Pending work is dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}

// Done is closed when the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) After(d time.Duration, fn func()) Cancel {
	var stopped atomic.Bool
	t := time.AfterFunc(d, func() {
		l.Post(func() {
			if stopped.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	return func() {
		stopped.Store(true)
		t.Stop()
	}
}

func (l *Loop) Every(d time.Duration, fn func()) Cancel {
	var stopped atomic.Bool
	quit := make(chan struct{})
	ticker := time.NewTicker(d)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ok := l.Post(func() {
					if !stopped.Load() {
						fn()
					}
				})
				if !ok {
					return
				}
			case <-quit:
				return
			case <-l.done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		stopped.Store(true)
		once.Do(func() { close(quit) })
	}
}

func (l *Loop) EachFrame(fn func()) Cancel {
	return l.Every(l.frame, fn)
}
