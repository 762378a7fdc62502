package app

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/sdvig/pkg/store"
)

// Open builds a hydrated Store from cfg, loading the config from disk when
// cfg is nil. A load failure still returns the Store, in its recovered
// default state, together with the *store.LoadError.
func Open(ctx context.Context, cfg store.Config, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg == nil {
		c, err := store.LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	p, err := store.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	s := New(p,
		WithLogger(log),
		WithSaver(store.NewSaver(p, cfg.SaveDelay(), store.WithLogger(log))),
	)
	return s, s.Hydrate(ctx)
}
