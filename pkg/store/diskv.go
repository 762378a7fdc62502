package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/peterbourgon/diskv/v3"
)

// OpenDiskv opens the flat file-per-key namespace rooted at basePath. It is
// the layout older releases wrote and is read once for migration.
func OpenDiskv(basePath string) Backend {
	return &diskvBackend{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		TempDir:      basePath + ".tmp",
		Transform:    flatTransform,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

func flatTransform(string) []string { return []string{} }

type diskvBackend struct {
	d *diskv.Diskv
}

func (b *diskvBackend) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	for key := range b.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *diskvBackend) Get(_ context.Context, key string) ([]byte, error) {
	val, err := b.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: diskv read %s: %w", key, err)
	}
	return val, nil
}

func (b *diskvBackend) Put(_ context.Context, key string, value []byte) error {
	if err := b.d.Write(key, value); err != nil {
		return fmt.Errorf("store: diskv write %s: %w", key, err)
	}
	return nil
}

func (b *diskvBackend) Delete(_ context.Context, key string) error {
	if !b.d.Has(key) {
		return nil
	}
	if err := b.d.Erase(key); err != nil {
		return fmt.Errorf("store: diskv erase %s: %w", key, err)
	}
	return nil
}

// Replace writes entries and erases every other key. Files cannot be swapped
// in one step, so on failure the previous values are written back.
func (b *diskvBackend) Replace(ctx context.Context, entries map[string][]byte) error {
	keys, err := b.Keys(ctx)
	if err != nil {
		return err
	}
	previous := make(map[string][]byte, len(keys))
	for _, k := range keys {
		v, err := b.Get(ctx, k)
		if err != nil {
			return err
		}
		previous[k] = v
	}

	apply := func(want map[string][]byte) error {
		for k, v := range want {
			if err := b.Put(ctx, k, v); err != nil {
				return err
			}
		}
		for k := range previous {
			if _, keep := want[k]; !keep {
				if err := b.Delete(ctx, k); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := apply(entries); err != nil {
		for k := range entries {
			if _, existed := previous[k]; !existed {
				_ = b.Delete(ctx, k)
			}
		}
		for k, v := range previous {
			_ = b.Put(ctx, k, v)
		}
		return fmt.Errorf("store: diskv replace: %w", err)
	}
	return nil
}

func (b *diskvBackend) Close() error {
	return nil
}
