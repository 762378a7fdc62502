package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/sdvig/pkg/model"
)

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler is backed by time.AfterFunc.
var SystemScheduler Scheduler = realScheduler{}

// Writer is the part of Persistence the saver needs.
type Writer interface {
	Save(ctx context.Context, s *model.AppState) error
}

// SaverOption customises a Saver.
type SaverOption func(*Saver)

// WithScheduler replaces the system timer source.
func WithScheduler(s Scheduler) SaverOption {
	return func(sv *Saver) {
		if s != nil {
			sv.sched = s
		}
	}
}

// WithLogger sets the logger used to report failed writes.
func WithLogger(l *zap.Logger) SaverOption {
	return func(sv *Saver) {
		if l != nil {
			sv.log = l
		}
	}
}

// Saver coalesces bursts of state changes into one write. Every Schedule
// restarts the delay; when it elapses only the newest state is written.
// Failed writes are logged and kept for LastError; nothing is retried.
type Saver struct {
	w     Writer
	delay time.Duration
	sched Scheduler
	log   *zap.Logger

	mu      sync.Mutex
	timer   Timer
	pending *model.AppState
	gen     uint64
	lastErr error
	closed  bool

	// writeMu is taken before mu and serializes writes; written is the
	// generation of the newest state handed to w.
	writeMu sync.Mutex
	written uint64
}

// NewSaver returns a saver writing to w after delay of quiet.
func NewSaver(w Writer, delay time.Duration, opts ...SaverOption) *Saver {
	if delay <= 0 {
		delay = defaultSaveDelay
	}
	s := &Saver{w: w, delay: delay, sched: SystemScheduler, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule records st as the state to write once the delay passes without
// another call. It is ignored after Close.
func (s *Saver) Schedule(st *model.AppState) {
	if st == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.log.Debug("store: save scheduled after close")
		return
	}
	s.gen++
	s.pending = st
	if s.timer != nil {
		s.timer.Stop()
	}
	gen := s.gen
	s.timer = s.sched.AfterFunc(s.delay, func() {
		_ = s.flush(context.Background(), gen)
	})
}

// Pending reports whether a write is waiting for its timer.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Flush writes the pending state now, if any. It returns after any write
// already in progress has finished.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	return s.flush(ctx, 0)
}

// Close stops the timer and lets the final pending write through.
func (s *Saver) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.Flush(ctx)
}

// LastError is the error of the most recent write, nil after a success.
func (s *Saver) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// flush writes the pending state. A timer passes the generation it was
// armed for and does nothing once a later Schedule has replaced it; zero
// means any generation.
func (s *Saver) flush(ctx context.Context, want uint64) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if want != 0 && want != s.gen {
		s.mu.Unlock()
		return nil
	}
	st, gen := s.pending, s.gen
	s.pending = nil
	s.timer = nil
	s.mu.Unlock()
	if st == nil {
		return nil
	}

	if gen <= s.written {
		// A newer state already reached the store.
		return nil
	}
	err := s.w.Save(ctx, st)
	if err == nil {
		s.written = gen
	} else {
		s.log.Error("store: save failed", zap.Uint64("generation", gen), zap.Error(err))
	}

	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	return err
}
