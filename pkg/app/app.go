// Package app owns the live AppState. A Store serializes dispatches, keeps
// the debounced saver fed and tells subscribers about each new state. The
// composition root builds one and hands it to whoever needs it.
package app

import (
	"context"
	"errors"
	"io"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"tableflip.dev/sdvig/pkg/model"
	"tableflip.dev/sdvig/pkg/state"
	"tableflip.dev/sdvig/pkg/store"
)

var (
	// ErrClosed is returned by operations on a closed Store.
	ErrClosed = errors.New("app: store is closed")
	// ErrReplacing is returned while an Import or Reset is running.
	ErrReplacing = errors.New("app: import or reset in progress")
)

// Listener receives every new state after a change.
type Listener func(*model.AppState)

// Option customises a Store.
type Option func(*Store)

// WithReducer replaces the default reducer, e.g. to pin its clock.
func WithReducer(r *state.Reducer) Option {
	return func(s *Store) {
		if r != nil {
			s.reducer = r
		}
	}
}

// WithSaver replaces the default debounced saver.
func WithSaver(sv *store.Saver) Option {
	return func(s *Store) {
		if sv != nil {
			s.saver = sv
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Store is the state container.
type Store struct {
	p       store.Persistence
	reducer *state.Reducer
	saver   *store.Saver
	log     *zap.Logger

	mu        sync.Mutex
	state     *model.AppState
	hydrated  bool
	queue     []state.Action
	autosave  bool
	loadErr   error
	closed    bool
	replacing bool
	listeners map[int]Listener
	nextID    int
}

// New returns an unhydrated Store over p. Until Hydrate runs, State is the
// default state and dispatched actions are queued.
func New(p store.Persistence, opts ...Option) *Store {
	s := &Store{
		p:         p,
		reducer:   state.NewReducer(),
		log:       zap.NewNop(),
		state:     model.InitialState(),
		listeners: map[int]Listener{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.saver == nil {
		s.saver = store.NewSaver(p, 0, store.WithLogger(s.log))
	}
	return s
}

// Hydrate loads the persisted state once and replays any actions dispatched
// before it. When the load fails the default state is used, the error is
// returned and autosave stays off so the stored data is not overwritten.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.hydrated {
		err := s.loadErr
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	loaded, err := s.p.Load(ctx)
	if loaded == nil {
		loaded = model.InitialState()
	}

	s.mu.Lock()
	next := loaded
	for _, a := range s.queue {
		next = s.reducer.Apply(next, a)
	}
	replayed := len(s.queue)
	s.queue = nil
	s.state = next
	s.hydrated = true
	s.loadErr = err
	s.autosave = err == nil
	if replayed > 0 && s.autosave {
		s.saver.Schedule(next)
	}
	notify := s.snapshotListeners()
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("app: load failed, autosave suspended", zap.Error(err))
	} else {
		s.log.Debug("app: hydrated", zap.Int("replayed", replayed))
	}
	for _, fn := range notify {
		fn(next)
	}
	return err
}

// Dispatch applies a to the current state and returns the resulting state.
// Before hydration, and while an Import or Reset is replacing the state, the
// action is queued and the current state returned.
func (s *Store) Dispatch(a state.Action) *model.AppState {
	s.mu.Lock()
	if s.closed {
		st := s.state
		s.mu.Unlock()
		return st
	}
	if !s.hydrated || s.replacing {
		s.queue = append(s.queue, a)
		st := s.state
		s.mu.Unlock()
		return st
	}
	prev := s.state
	next := s.reducer.Apply(prev, a)
	if next == prev {
		s.mu.Unlock()
		return prev
	}
	s.state = next
	if s.autosave {
		s.saver.Schedule(next)
	}
	notify := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range notify {
		fn(next)
	}
	return next
}

// State is the current snapshot. Callers must not modify it.
func (s *Store) State() *model.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Hydrated reports whether Hydrate has run.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// LoadError is the error Hydrate reported, if any.
func (s *Store) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Autosave reports whether changes are being persisted.
func (s *Store) Autosave() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autosave
}

// SaveError is the error of the last background write.
func (s *Store) SaveError() error {
	return s.saver.LastError()
}

// Subscribe registers fn for state changes and returns its cancel func.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Save writes the current state immediately and turns autosave back on. It
// is the explicit way out of a failed load.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.replacing {
		s.mu.Unlock()
		return ErrReplacing
	}
	st := s.state
	s.autosave = true
	s.saver.Schedule(st)
	s.mu.Unlock()
	return s.saver.Flush(ctx)
}

// Flush writes any pending autosave now.
func (s *Store) Flush(ctx context.Context) error {
	return s.saver.Flush(ctx)
}

// Export flushes pending changes and writes a backup document to w.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	if err := s.saver.Flush(ctx); err != nil {
		return err
	}
	return s.p.Export(ctx, w)
}

// Import restores a backup document, replacing both the stored data and the
// live state. A rejected document changes nothing. Actions dispatched while
// it runs are applied on top of the restored state.
func (s *Store) Import(ctx context.Context, r io.Reader) (*model.AppState, error) {
	if err := s.beginReplace(ctx); err != nil {
		return nil, err
	}
	restored, err := s.p.Import(ctx, r)
	if err != nil {
		s.endReplace(nil)
		return nil, err
	}
	return s.endReplace(restored), nil
}

// Reset erases stored data and returns to the default state.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.beginReplace(ctx); err != nil {
		return err
	}
	if err := s.p.Clear(ctx); err != nil {
		s.endReplace(nil)
		return err
	}
	s.endReplace(model.InitialState())
	return nil
}

// beginReplace stops dispatches from reaching the saver and lands whatever
// is pending, so no older state can be written after the replacement.
func (s *Store) beginReplace(ctx context.Context) error {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return ErrClosed
	case s.replacing:
		s.mu.Unlock()
		return ErrReplacing
	}
	s.replacing = true
	s.mu.Unlock()

	if err := s.saver.Flush(ctx); err != nil {
		s.log.Warn("app: flush before replace", zap.Error(err))
	}
	return nil
}

// endReplace installs next, or keeps the current state when next is nil,
// and replays the actions queued meanwhile.
func (s *Store) endReplace(next *model.AppState) *model.AppState {
	s.mu.Lock()
	s.replacing = false
	if next == nil && !s.hydrated {
		// Hydrate replays the queue.
		st := s.state
		s.mu.Unlock()
		return st
	}
	prev := s.state
	base := prev
	if next != nil {
		base = next
		s.hydrated = true
		s.loadErr = nil
		s.autosave = true
	}
	for _, a := range s.queue {
		base = s.reducer.Apply(base, a)
	}
	replayed := len(s.queue)
	s.queue = nil
	s.state = base
	if replayed > 0 && s.autosave && base != next && base != prev {
		s.saver.Schedule(base)
	}
	var notify []Listener
	if base != prev {
		notify = s.snapshotListeners()
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(base)
	}
	return base
}

// Close flushes the pending write and closes the persistence.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	return multierr.Append(s.saver.Close(ctx), s.p.Close())
}

func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}
