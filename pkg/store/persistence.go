package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"tableflip.dev/sdvig/pkg/model"
)

// StateKey is the primary-store key holding the serialized AppState.
const StateKey = "sdvig-app-state"

const (
	dbFile    = "sdvig.db"
	legacyDir = "kv"
)

// ErrCorruptState marks a stored payload that is not a decodable AppState.
var ErrCorruptState = errors.New("store: corrupt state")

// LoadError reports a failed load. Load still returns a usable default state
// alongside it.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("store: load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Persistence is the durable home of the AppState.
type Persistence interface {
	Load(ctx context.Context) (*model.AppState, error)
	Save(ctx context.Context, s *model.AppState) error
	Clear(ctx context.Context) error
	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader) (*model.AppState, error)
	Close() error
}

// Open builds the persistence for cfg: a SQLite primary store in the base
// path, with the legacy diskv namespace next to it.
func Open(cfg Config, logger *zap.Logger) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	base := cfg.BasePath()
	if base == "" {
		return nil, errors.New("store: base path required")
	}
	primary, err := OpenSQLite(filepath.Join(base, dbFile))
	if err != nil {
		return nil, err
	}
	return New(primary, OpenDiskv(filepath.Join(base, legacyDir)), logger), nil
}

// New wires a persistence over explicit backends. legacy may be nil.
func New(primary, legacy Backend, logger *zap.Logger) Persistence {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &persistence{primary: primary, legacy: legacy, log: logger}
}

type persistence struct {
	primary Backend
	legacy  Backend
	log     *zap.Logger
}

// Load reads the primary key, migrating from the legacy namespace on first
// run. Any failure yields InitialState plus a *LoadError.
func (p *persistence) Load(ctx context.Context) (*model.AppState, error) {
	data, err := p.primary.Get(ctx, StateKey)
	switch {
	case err == nil:
		s, err := decodeState(data)
		if err != nil {
			return model.InitialState(), &LoadError{Source: "primary", Err: err}
		}
		return s, nil
	case !errors.Is(err, ErrNotFound):
		return model.InitialState(), &LoadError{Source: "primary", Err: err}
	}

	s, err := p.migrate(ctx)
	if err != nil {
		return model.InitialState(), &LoadError{Source: "legacy", Err: err}
	}
	if s == nil {
		return model.InitialState(), nil
	}
	return s, nil
}

// migrate moves legacy data into the primary store. It returns nil, nil when
// there is nothing to migrate.
func (p *persistence) migrate(ctx context.Context) (*model.AppState, error) {
	if p.legacy == nil {
		return nil, nil
	}
	keys, err := p.legacy.Keys(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	var (
		blob     []byte
		consumed []string
	)
	if slices.Contains(keys, StateKey) {
		if blob, err = p.legacy.Get(ctx, StateKey); err != nil {
			return nil, err
		}
		consumed = []string{StateKey}
	} else {
		fields := map[string]json.RawMessage{}
		for _, k := range keys {
			if !stateFields[k] {
				continue
			}
			v, err := p.legacy.Get(ctx, k)
			if err != nil {
				return nil, err
			}
			fields[k] = v
			consumed = append(consumed, k)
		}
		if len(fields) == 0 {
			return nil, nil
		}
		if blob, err = json.Marshal(fields); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
		}
	}

	s, err := decodeState(blob)
	if err != nil {
		return nil, err
	}
	if err := p.Save(ctx, s); err != nil {
		return nil, err
	}
	var errs error
	for _, k := range consumed {
		errs = multierr.Append(errs, p.legacy.Delete(ctx, k))
	}
	if errs != nil {
		// The primary copy is authoritative now; stale legacy keys are ignored.
		p.log.Warn("store: erase migrated legacy keys", zap.Error(errs))
	}
	p.log.Info("store: migrated legacy state", zap.Strings("keys", consumed))
	return s, nil
}

func (p *persistence) Save(ctx context.Context, s *model.AppState) error {
	if s == nil {
		return errors.New("store: nil state")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("store: encode state: %w", err)
	}
	return p.primary.Put(ctx, StateKey, data)
}

// Clear erases everything in the primary store.
func (p *persistence) Clear(ctx context.Context) error {
	return p.primary.Replace(ctx, map[string][]byte{})
}

func (p *persistence) Close() error {
	err := p.primary.Close()
	if p.legacy != nil {
		err = multierr.Append(err, p.legacy.Close())
	}
	return err
}

// stateFields are the top-level AppState keys older releases stored one per
// legacy key.
var stateFields = map[string]bool{
	"tasks":         true,
	"habits":        true,
	"routines":      true,
	"events":        true,
	"dayTasks":      true,
	"wallets":       true,
	"transactions":  true,
	"ideas":         true,
	"documents":     true,
	"focusSessions": true,
	"categories":    true,
	"profile":       true,
	"settings":      true,
}

var jsonNull = []byte("null")

// decodeState shallow-merges a stored payload over InitialState: absent or
// null top-level fields keep their defaults. The result is normalized and
// validated.
func decodeState(data []byte) (*model.AppState, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: not an object", ErrCorruptState)
	}
	present := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		if bytes.Equal(bytes.TrimSpace(v), jsonNull) {
			continue
		}
		present[k] = v
	}
	merged, err := json.Marshal(present)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}

	s := model.InitialState()
	if err := json.Unmarshal(merged, s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("store: invalid state: %w", err)
	}
	return s, nil
}
