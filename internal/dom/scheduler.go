package dom

import "time"

// Scheduler abstracts deferred work: animation frames for render batching
// and timers for debounce and close animations.
type Scheduler interface {
	// RequestFrame runs fn at the next frame boundary.
	RequestFrame(fn func())
	// After runs fn once d has elapsed.
	After(d time.Duration, fn func())
}

// ImmediateScheduler runs everything synchronously. Useful in tests that do
// not care about ordering.
type ImmediateScheduler struct{}

func (ImmediateScheduler) RequestFrame(fn func())           { fn() }
func (ImmediateScheduler) After(_ time.Duration, fn func()) { fn() }

// TimerScheduler backs frames and timers with real timers. Frames fire on a
// fixed cadence approximating 60Hz.
type TimerScheduler struct{}

func (TimerScheduler) RequestFrame(fn func()) {
	time.AfterFunc(16*time.Millisecond, fn)
}

func (TimerScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

type pendingTimer struct {
	due time.Duration
	fn  func()
}

// ManualScheduler queues frames and timers for explicit draining, so tests
// control exactly when deferred work runs.
type ManualScheduler struct {
	frames []func()
	timers []pendingTimer
	now    time.Duration
}

func (s *ManualScheduler) RequestFrame(fn func()) {
	s.frames = append(s.frames, fn)
}

func (s *ManualScheduler) After(d time.Duration, fn func()) {
	s.timers = append(s.timers, pendingTimer{due: s.now + d, fn: fn})
}

// PendingFrames reports how many frame callbacks are queued.
func (s *ManualScheduler) PendingFrames() int { return len(s.frames) }

// PendingTimers reports how many timers have not yet fired.
func (s *ManualScheduler) PendingTimers() int { return len(s.timers) }

// FlushFrames runs queued frame callbacks, including ones queued while
// flushing.
func (s *ManualScheduler) FlushFrames() {
	for len(s.frames) > 0 {
		frames := s.frames
		s.frames = nil
		for _, fn := range frames {
			fn()
		}
	}
}

// Advance moves the clock forward and fires timers that come due, in order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.now += d
	for {
		idx := -1
		for i, t := range s.timers {
			if t.due <= s.now && (idx == -1 || t.due < s.timers[idx].due) {
				idx = i
			}
		}
		if idx == -1 {
			return
		}
		t := s.timers[idx]
		s.timers = append(s.timers[:idx], s.timers[idx+1:]...)
		t.fn()
	}
}
