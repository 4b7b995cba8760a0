package engine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/glyph-rain/constants"
)

// FrameID identifies a pending frame request, zero is never issued
type FrameID uint64

// Loop is a cooperative single-goroutine frame driver
// Frame callbacks are one-shot: a callback that wants another frame requests it again
// Posted functions and resize handlers run on the loop goroutine before pending frames
type Loop struct {
	clock    *PausableClock
	interval time.Duration
	logger   *slog.Logger

	mu         sync.Mutex
	nextFrame  FrameID
	pending    map[FrameID]func(time.Time)
	order      []FrameID
	posted     []func()
	nextResize uint64
	resize     map[uint64]func()
	resizeIDs  []uint64
	afterFrame func()

	frameCount atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
}

// NewLoop creates a loop ticking at interval against clock
// Non-positive interval falls back to the default frame interval, nil clock uses system time
func NewLoop(clock *PausableClock, interval time.Duration) *Loop {
	if clock == nil {
		clock = NewPausableClock(nil)
	}
	if interval <= 0 {
		interval = constants.FrameUpdateInterval
	}
	return &Loop{
		clock:    clock,
		interval: interval,
		logger:   slog.New(slog.DiscardHandler),
		pending:  make(map[FrameID]func(time.Time)),
		resize:   make(map[uint64]func()),
		stopChan: make(chan struct{}),
	}
}

// IntervalForFPS converts a frames-per-second setting into a tick interval
func IntervalForFPS(fps int) time.Duration {
	if fps <= 0 {
		fps = constants.DefaultFPS
	}
	if fps > constants.MaxFPS {
		fps = constants.MaxFPS
	}
	return time.Second / time.Duration(fps)
}

// SetLogger replaces the loop logger, nil is ignored
func (l *Loop) SetLogger(logger *slog.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// Clock returns the loop clock
func (l *Loop) Clock() *PausableClock {
	return l.clock
}

// FrameCount returns the number of steps that fired at least one frame callback
func (l *Loop) FrameCount() uint64 {
	return l.frameCount.Load()
}

// SetAfterFrame installs a hook run once after each step that fired frame callbacks
func (l *Loop) SetAfterFrame(fn func()) {
	l.mu.Lock()
	l.afterFrame = fn
	l.mu.Unlock()
}

// RequestFrame schedules fn for the next step
func (l *Loop) RequestFrame(fn func(time.Time)) FrameID {
	if fn == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextFrame++
	id := l.nextFrame
	l.pending[id] = fn
	l.order = append(l.order, id)
	return id
}

// CancelFrame drops a pending request, unknown or fired ids are ignored
func (l *Loop) CancelFrame(id FrameID) {
	l.mu.Lock()
	delete(l.pending, id)
	l.mu.Unlock()
}

// PendingFrames returns the number of requests waiting for a step
func (l *Loop) PendingFrames() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// OnResize registers a resize handler and returns its removal function
func (l *Loop) OnResize(fn func()) (remove func()) {
	if fn == nil {
		return func() {}
	}
	l.mu.Lock()
	l.nextResize++
	id := l.nextResize
	l.resize[id] = fn
	l.resizeIDs = append(l.resizeIDs, id)
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.resize, id)
			for i, rid := range l.resizeIDs {
				if rid == id {
					l.resizeIDs = append(l.resizeIDs[:i], l.resizeIDs[i+1:]...)
					break
				}
			}
			l.mu.Unlock()
		})
	}
}

// NotifyResize queues dispatch of all resize handlers for the next step
// Safe to call from any goroutine
func (l *Loop) NotifyResize() {
	l.Post(l.dispatchResize)
}

func (l *Loop) dispatchResize() {
	l.mu.Lock()
	handlers := make([]func(), 0, len(l.resizeIDs))
	for _, id := range l.resizeIDs {
		handlers = append(handlers, l.resize[id])
	}
	l.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}

// Post queues fn to run on the loop goroutine at the start of the next step
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()
}

// Step runs posted functions, then fires pending frames unless the clock is paused
// Requests made by callbacks during a step fire on the following step
func (l *Loop) Step() {
	l.mu.Lock()
	posted := l.posted
	l.posted = nil
	l.mu.Unlock()

	for _, fn := range posted {
		fn()
	}

	if l.clock.IsPaused() {
		return
	}

	l.mu.Lock()
	order := l.order
	l.order = nil
	after := l.afterFrame
	l.mu.Unlock()

	if len(order) == 0 {
		return
	}

	now := l.clock.Now()
	fired := 0
	for _, id := range order {
		l.mu.Lock()
		fn, ok := l.pending[id]
		delete(l.pending, id)
		l.mu.Unlock()
		if !ok {
			continue
		}
		fn(now)
		fired++
	}

	if fired == 0 {
		return
	}
	l.frameCount.Add(1)
	if after != nil {
		after()
	}
}

// Run steps the loop on a ticker until ctx is done or Stop is called
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return nil
	}
	defer l.running.Store(false)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Debug("frame loop started", "interval", l.interval)
	defer func() {
		l.logger.Debug("frame loop stopped", "frames", l.frameCount.Load())
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stopChan:
			return nil
		case <-ticker.C:
			l.Step()
		}
	}
}

// Stop ends Run, safe to call multiple times
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}

// Running reports whether Run is active
func (l *Loop) Running() bool {
	return l.running.Load()
}
